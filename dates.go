package main

import (
	"fmt"
	"time"
)

// monthsBetween returns the whole-month difference between two calendar
// dates. The count is decremented when the final partial month has not
// completed yet, and can be negative when end precedes start.
func monthsBetween(start, end time.Time) int {
	months := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())

	// Adjust if the end day-of-month is before the start day-of-month
	if end.Day() < start.Day() {
		months--
	}

	return months
}

// daysBetween returns the calendar-day difference to - from, ignoring
// any time-of-day component on either value.
func daysBetween(from, to time.Time) int {
	y1, m1, d1 := from.Date()
	y2, m2, d2 := to.Date()

	// Use the local timezone from the first value
	loc := from.Location()

	a := time.Date(y1, m1, d1, 0, 0, 0, 0, loc)
	b := time.Date(y2, m2, d2, 0, 0, 0, 0, loc)

	return int(b.Sub(a).Hours() / 24)
}

func sameMonthYear(t1, t2 time.Time) bool {
	return t1.Year() == t2.Year() && t1.Month() == t2.Month()
}

func parseDate(s string) (time.Time, error) {
	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02",
	}

	var t time.Time
	var err error
	for _, layout := range layouts {
		t, err = time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse date: %s", s)
}
