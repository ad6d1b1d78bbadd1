package calendarsync

import (
	"testing"
	"time"

	"github.com/famboard/famboard/internal/event"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeTitle(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Holiday", "holiday"},
		{"holiday!", "holiday"},
		{"  HOLIDAY  ", "holiday"},
		{"Pre-Kinder   (morning)", "pre kinder morning"},
		{"***", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, NormalizeTitle(tc.in), "input %q", tc.in)
	}
}

func TestDetectDuplicatesClustersByTitleAndDay(t *testing.T) {
	day := time.Date(2025, 6, 23, 0, 0, 0, 0, time.Local)

	events := []*event.CalendarEvent{
		dated("Holiday", day.Add(9*time.Hour)),
		dated("holiday!", day.Add(14*time.Hour)),
		dated("Holiday", day.AddDate(0, 0, 1)), // same title, next day
		dated("Dentist", day),
	}

	groups := DetectDuplicates(events)
	require.Len(t, groups, 1)
	assert.Len(t, groups[0].Events, 2)
	assert.Contains(t, groups[0].Reason, "holiday")
}

func TestDetectDuplicatesOrderInvariance(t *testing.T) {
	day := time.Date(2025, 6, 23, 0, 0, 0, 0, time.Local)
	events := []*event.CalendarEvent{
		dated("Holiday", day),
		dated("holiday", day),
		dated("Prekinder", day),
		dated("prekinder!!", day),
		{ID: uuid.New(), Title: "Untitled meetup"},
	}

	forward := DetectDuplicates(events)

	reversed := make([]*event.CalendarEvent, len(events))
	for i, e := range events {
		reversed[len(events)-1-i] = e
	}
	backward := DetectDuplicates(reversed)

	assert.Equal(t, forward, backward)
}

func TestDetectDuplicatesSameInstantDifferentZones(t *testing.T) {
	day := time.Date(2025, 6, 23, 0, 0, 0, 0, time.Local)

	// Two copies of the same instant, one rebased into another zone the
	// way a driver round-trip can rebase timestamps.
	groups := DetectDuplicates([]*event.CalendarEvent{
		dated("Holiday", day),
		dated("Holiday", day.In(time.FixedZone("UTC-6", -6*60*60))),
	})

	require.Len(t, groups, 1)
	assert.Len(t, groups[0].Events, 2)
}

func TestDetectDuplicatesUndatedBucket(t *testing.T) {
	day := time.Date(2025, 6, 23, 0, 0, 0, 0, time.Local)

	undated1 := &event.CalendarEvent{ID: uuid.New(), Title: "Groceries"}
	undated2 := &event.CalendarEvent{ID: uuid.New(), Title: "groceries"}
	datedSame := dated("Groceries", day)

	groups := DetectDuplicates([]*event.CalendarEvent{undated1, undated2, datedSame})

	// The dated event must not merge with the undated pair, but the pair
	// still clusters.
	require.Len(t, groups, 1)
	assert.Len(t, groups[0].Events, 2)
	assert.Contains(t, groups[0].Reason, "undated")
}

func TestDetectDuplicatesIgnoresEmptyTitles(t *testing.T) {
	groups := DetectDuplicates([]*event.CalendarEvent{
		{ID: uuid.New()},
		{ID: uuid.New()},
	})
	assert.Empty(t, groups)
}
