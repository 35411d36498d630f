package itinerary

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestExpandDateRange(t *testing.T) {
	days, err := ExpandDateRange(date(2024, 7, 1), date(2024, 7, 5))
	require.NoError(t, err)
	require.Len(t, days, 5)

	for i, d := range days {
		assert.Equal(t, date(2024, 7, 1).AddDate(0, 0, i), d)
	}
}

func TestExpandDateRangeSingleDay(t *testing.T) {
	days, err := ExpandDateRange(date(2024, 7, 1), date(2024, 7, 1))
	require.NoError(t, err)
	require.Len(t, days, 1)
	assert.Equal(t, date(2024, 7, 1), days[0])
}

func TestExpandDateRangeIgnoresTimeOfDay(t *testing.T) {
	start := time.Date(2024, 7, 1, 23, 30, 0, 0, time.UTC)
	end := time.Date(2024, 7, 3, 1, 0, 0, 0, time.UTC)

	days, err := ExpandDateRange(start, end)
	require.NoError(t, err)
	assert.Len(t, days, 3)
	assert.Equal(t, date(2024, 7, 1), days[0])
}

func TestExpandDateRangeEndBeforeStart(t *testing.T) {
	_, err := ExpandDateRange(date(2024, 7, 5), date(2024, 7, 1))
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestExpandDateRangeZeroDates(t *testing.T) {
	_, err := ExpandDateRange(time.Time{}, date(2024, 7, 1))
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = ExpandDateRange(date(2024, 7, 1), time.Time{})
	assert.ErrorIs(t, err, ErrInvalidRange)
}
