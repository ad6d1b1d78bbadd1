package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSameCalendarDayAcrossZones(t *testing.T) {
	local := time.Date(2025, 6, 23, 0, 0, 0, 0, time.Local)
	rebased := local.In(time.FixedZone("UTC-6", -6*60*60))
	require.True(t, local.Equal(rebased))

	assert.True(t, SameCalendarDay(local, rebased),
		"same instant in another zone representation is the same day")
	assert.Equal(t, DayKey(local), DayKey(rebased))

	nextDay := local.AddDate(0, 0, 1)
	assert.False(t, SameCalendarDay(local, nextDay))
	assert.NotEqual(t, DayKey(local), DayKey(nextDay))
}

func TestLocalDateTimeUnmarshal(t *testing.T) {
	var full LocalDateTime
	require.NoError(t, full.UnmarshalJSON([]byte(`"2025-06-23T14:30:00"`)))
	assert.Equal(t, time.Date(2025, 6, 23, 14, 30, 0, 0, time.Local), full.Time)

	var dateOnly LocalDateTime
	require.NoError(t, dateOnly.UnmarshalJSON([]byte(`"2025-06-23"`)))
	assert.Equal(t, time.Date(2025, 6, 23, 0, 0, 0, 0, time.Local), dateOnly.Time)

	var bad LocalDateTime
	assert.Error(t, bad.UnmarshalJSON([]byte(`"next tuesday"`)))
}
