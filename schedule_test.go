package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func date(t *testing.T, s string) time.Time {
	t.Helper()
	parsed, err := parseDate(s)
	require.NoError(t, err)
	return parsed
}

func TestAgeOf(t *testing.T) {
	ref := "2025-12-18"

	tests := []struct {
		name   string
		birth  string
		months int
		text   string
	}{
		{"six months to the day", "2025-06-18", 6, "6m"},
		{"partial month not counted", "2025-06-20", 5, "5m"},
		{"eighteen months", "2024-06-18", 18, "1a 6m"},
		{"exactly one year", "2024-12-18", 12, "1a 0m"},
		{"same month", "2025-12-01", 0, "0m"},
		{"birth after reference", "2026-01-05", 0, "newborn"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			months, text := ageOf(date(t, tt.birth), date(t, ref))
			require.Equal(t, tt.months, months)
			require.Equal(t, tt.text, text)
		})
	}
}

func TestAgeOf_NonDecreasingByMonth(t *testing.T) {
	birth := date(t, "2024-03-15")

	prev := -1
	for i := 0; i < 36; i++ {
		ref := birth.AddDate(0, i, 0)
		months, _ := ageOf(birth, ref)
		require.GreaterOrEqual(t, months, prev, "age regressed at offset %d", i)
		prev = months
	}
}

func TestNextVisit(t *testing.T) {
	tests := []struct {
		name  string
		birth string
		ref   string
		due   string
		rule  string
	}{
		{"due today is not advanced", "2025-06-18", "2025-12-18", "2025-12-18", RuleMonthly},
		{"monthly regime rolls to next offset", "2025-10-05", "2025-12-18", "2026-01-05", RuleMonthly},
		{"quarterly regime after first year", "2023-01-10", "2025-12-18", "2026-01-10", RuleQuarterly},
		{"day overflow rolls into next month", "2025-01-31", "2025-02-20", "2025-03-03", RuleMonthly},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			due, rule, err := nextVisit(date(t, tt.birth), date(t, tt.ref))
			require.NoError(t, err)
			require.Equal(t, tt.due, due.Format(dateLayout))
			require.Equal(t, tt.rule, rule)
		})
	}
}

func TestNextVisit_AlwaysOnOrAfterReference(t *testing.T) {
	births := []string{"2020-02-29", "2023-07-31", "2025-01-01", "2025-12-17"}
	refs := []string{"2025-01-15", "2025-12-18", "2026-06-30"}

	for _, b := range births {
		for _, r := range refs {
			birth := date(t, b)
			ref := date(t, r)
			if birth.After(ref) {
				continue
			}
			due, _, err := nextVisit(birth, ref)
			require.NoError(t, err)
			require.False(t, due.Before(ref), "birth %s ref %s produced %s", b, r, due.Format(dateLayout))
		}
	}
}

func TestClassifyStatus_Boundaries(t *testing.T) {
	ref := date(t, "2025-12-18")

	tests := []struct {
		days   int
		status string
	}{
		{-1, StatusLate},
		{0, StatusUpcoming},
		{7, StatusUpcoming},
		{8, StatusCurrent},
		{30, StatusCurrent},
		{31, StatusFuture},
	}

	for _, tt := range tests {
		due := ref.AddDate(0, 0, tt.days)
		require.Equal(t, tt.status, classifyStatus(due, ref), "day offset %d", tt.days)
	}
}

func TestClassifyStatus_IgnoresTimeOfDay(t *testing.T) {
	ref := date(t, "2025-12-18")
	due := time.Date(2025, 12, 25, 23, 59, 0, 0, time.UTC)

	require.Equal(t, StatusUpcoming, classifyStatus(due, ref))
}

func TestCheckedInThisPeriod(t *testing.T) {
	ref := date(t, "2025-12-18")

	require.False(t, checkedInThisPeriod(nil, ref))
	require.True(t, checkedInThisPeriod(&Date{date(t, "2025-12-01")}, ref))
	require.True(t, checkedInThisPeriod(&Date{date(t, "2025-12-31")}, ref))
	require.False(t, checkedInThisPeriod(&Date{date(t, "2025-11-30")}, ref))
	require.False(t, checkedInThisPeriod(&Date{date(t, "2024-12-18")}, ref))
}

func TestIsMilestoneVisit(t *testing.T) {
	// The flag follows the age represented by the due date itself, not
	// the patient's current age.
	require.True(t, isMilestoneVisit(date(t, "2025-06-18"), date(t, "2025-12-18")))
	require.False(t, isMilestoneVisit(date(t, "2025-06-18"), date(t, "2026-01-18")))
	require.False(t, isMilestoneVisit(date(t, "2025-06-20"), date(t, "2025-12-18")))
}
