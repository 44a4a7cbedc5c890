package main

import (
	"fmt"
	"time"
)

// visitSearchCap bounds the forward search for the next visit so a
// malformed birth date surfaces as an error instead of a spin.
const visitSearchCap = 1000

// newbornText is shown when the birth date is after the reference date,
// i.e. the raw month count is negative.
const newbornText = "newborn"

// ageOf converts a birth date and reference date into an age in whole
// months (clamped at zero) and a display string.
func ageOf(birth, ref time.Time) (int, string) {
	raw := monthsBetween(birth, ref)

	// Future birth dates show a distinct label rather than a zero count
	if raw < 0 {
		return 0, newbornText
	}

	years := raw / 12
	months := raw % 12
	if years > 0 {
		return raw, fmt.Sprintf("%da %dm", years, months)
	}
	return raw, fmt.Sprintf("%dm", months)
}

// nextVisit returns the first recurring visit on or after the reference
// date, along with the cadence rule that produced it. Visits fall on
// birth-date-plus-N-months offsets: monthly through the first year,
// quarterly afterwards. Day-of-month overflow is left to time.Date
// normalization (a birth on the 31st rolls into the following month);
// the status classifier depends on that behavior.
func nextVisit(birth, ref time.Time) (time.Time, string, error) {
	target := 0

	for i := 0; i < visitSearchCap; i++ {
		d := time.Date(birth.Year(), birth.Month()+time.Month(target), birth.Day(), 0, 0, 0, 0, birth.Location())

		if !d.Before(ref) {
			rule := RuleQuarterly
			if target < 12 {
				rule = RuleMonthly
			}
			return d, rule, nil
		}

		// Monthly through the first year, quarterly afterwards
		if target < 12 {
			target++
		} else {
			target += 3
		}
	}

	return time.Time{}, "", fmt.Errorf("no visit found within %d offsets of %s", visitSearchCap, birth.Format(dateLayout))
}

// classifyStatus buckets a due date relative to the reference date.
// Boundary days (0, 7, 30) are inclusive on the lower-urgency side.
func classifyStatus(due, ref time.Time) string {
	days := daysBetween(ref, due)

	switch {
	case days < 0:
		return StatusLate
	case days <= 7:
		return StatusUpcoming
	case days <= 30:
		return StatusCurrent
	default:
		return StatusFuture
	}
}

// checkedInThisPeriod reports whether the latest recorded visit falls in
// the same calendar month and year as the reference date. This is a
// calendar-field comparison, not a day-count window.
func checkedInThisPeriod(lastCheckIn *Date, ref time.Time) bool {
	if lastCheckIn == nil || lastCheckIn.IsZero() {
		return false
	}
	return sameMonthYear(lastCheckIn.Time, ref)
}

// isMilestoneVisit reports whether the upcoming visit is the 6-month
// nutritional-introduction visit: the whole-month age represented by
// the due date itself equals exactly 6.
func isMilestoneVisit(birth, due time.Time) bool {
	return monthsBetween(birth, due) == 6
}
