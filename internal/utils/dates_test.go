package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2024-07-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC), got)

	got, err = ParseDate("2024-07-01T15:04:05Z")
	require.NoError(t, err)
	assert.Equal(t, 15, got.Hour())

	got, err = ParseDate("  2024-07-01  ")
	require.NoError(t, err)
	assert.Equal(t, "2024-07-01", FormatDate(got))

	_, err = ParseDate("01/07/2024")
	assert.Error(t, err)

	_, err = ParseDate("")
	assert.Error(t, err)
}
