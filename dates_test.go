package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	for _, s := range []string{
		"2025-12-18",
		"2025-12-18T10:30:00",
		"2025-12-18T10:30:00Z",
	} {
		parsed, err := parseDate(s)
		require.NoError(t, err, s)
		require.Equal(t, 2025, parsed.Year())
		require.Equal(t, time.December, parsed.Month())
		require.Equal(t, 18, parsed.Day())
	}

	_, err := parseDate("18/12/2025")
	require.Error(t, err)
}

func TestMonthsBetween(t *testing.T) {
	tests := []struct {
		start, end string
		months     int
	}{
		{"2025-06-18", "2025-12-18", 6},
		{"2025-06-19", "2025-12-18", 5},
		{"2024-12-18", "2025-12-18", 12},
		{"2025-12-18", "2025-06-18", -6},
		{"2025-12-18", "2025-12-18", 0},
	}

	for _, tt := range tests {
		require.Equal(t, tt.months, monthsBetween(date(t, tt.start), date(t, tt.end)), "%s -> %s", tt.start, tt.end)
	}
}

func TestDaysBetween(t *testing.T) {
	require.Equal(t, 7, daysBetween(date(t, "2025-12-18"), date(t, "2025-12-25")))
	require.Equal(t, -1, daysBetween(date(t, "2025-12-18"), date(t, "2025-12-17")))
	require.Equal(t, 0, daysBetween(date(t, "2025-12-18"), date(t, "2025-12-18")))

	// Time-of-day on either side is ignored
	late := time.Date(2025, 12, 25, 23, 59, 59, 0, time.UTC)
	require.Equal(t, 7, daysBetween(date(t, "2025-12-18"), late))
}

func TestSameMonthYear(t *testing.T) {
	require.True(t, sameMonthYear(date(t, "2025-12-01"), date(t, "2025-12-31")))
	require.False(t, sameMonthYear(date(t, "2025-11-30"), date(t, "2025-12-01")))
	require.False(t, sameMonthYear(date(t, "2024-12-18"), date(t, "2025-12-18")))
}
