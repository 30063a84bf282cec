package model

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMonth_YearMonth(t *testing.T) {
	m, ok := ParseMonth("2024-03")
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), m)
}

func TestParseMonth_FullDateTruncated(t *testing.T) {
	m, ok := ParseMonth("2024-03-17")
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), m)
}

func TestParseMonth_Invalid(t *testing.T) {
	for _, s := range []string{"", "March 2024", "2024", "2024/03", "not-a-date"} {
		_, ok := ParseMonth(s)
		assert.False(t, ok, "input %q", s)
	}
}

func TestFormatMonth_RoundTrips(t *testing.T) {
	m, ok := ParseMonth("2023-11")
	require.True(t, ok)
	assert.Equal(t, "2023-11", FormatMonth(m))
}

func TestMonthRange_SpansYearBoundary(t *testing.T) {
	first, _ := ParseMonth("2023-11")
	last, _ := ParseMonth("2024-02")

	months := MonthRange(first, last)
	require.Len(t, months, 4)
	assert.Equal(t, "2023-11", FormatMonth(months[0]))
	assert.Equal(t, "2024-02", FormatMonth(months[3]))
}

func TestMonthRange_SingleMonth(t *testing.T) {
	m, _ := ParseMonth("2024-06")
	months := MonthRange(m, m)
	require.Len(t, months, 1)
}

func TestMonthRange_ReversedOrZero(t *testing.T) {
	first, _ := ParseMonth("2024-06")
	last, _ := ParseMonth("2024-01")
	assert.Nil(t, MonthRange(first, last))
	assert.Nil(t, MonthRange(time.Time{}, first))
}

func TestHasCoordinates(t *testing.T) {
	lat, lon := 52.2, 0.12
	nan := math.NaN()

	assert.True(t, CrimeRecord{Latitude: &lat, Longitude: &lon}.HasCoordinates())
	assert.False(t, CrimeRecord{Latitude: &lat}.HasCoordinates())
	assert.False(t, CrimeRecord{Longitude: &lon}.HasCoordinates())
	assert.False(t, CrimeRecord{}.HasCoordinates())
	assert.False(t, CrimeRecord{Latitude: &nan, Longitude: &lon}.HasCoordinates())
}
