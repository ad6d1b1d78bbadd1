package calendarsync

import (
	"context"
	"testing"
	"time"

	"github.com/famboard/famboard/internal/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validate(t *testing.T, events ...*event.CalendarEvent) *ValidationResult {
	t.Helper()
	ctx := context.Background()
	store := event.NewMemoryStore()
	for _, e := range events {
		_, err := store.Create(ctx, e)
		require.NoError(t, err)
	}

	v := NewValidator(store, testCatalog())
	v.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.Local) }

	result, err := v.ValidateAllEvents(ctx)
	require.NoError(t, err)
	return result
}

func TestValidateMissingDate(t *testing.T) {
	result := validate(t, &event.CalendarEvent{Title: "Dentist", CreatedBy: "mama"})

	assert.False(t, result.IsValid)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, ErrorMissingDate, result.Errors[0].Type)
	assert.Equal(t, SeverityHigh, result.Errors[0].Severity)
	assert.Empty(t, result.Warnings)
}

func TestValidateInvalidDate(t *testing.T) {
	result := validate(t, &event.CalendarEvent{
		Title:        "Dentist",
		RawStartDate: "next tuesday-ish",
	})

	require.Len(t, result.Errors, 1)
	assert.Equal(t, ErrorInvalidDate, result.Errors[0].Type)
	assert.Equal(t, SeverityHigh, result.Errors[0].Severity)
}

func TestValidateMissingTitle(t *testing.T) {
	start := time.Date(2025, 6, 10, 10, 0, 0, 0, time.Local)
	result := validate(t, &event.CalendarEvent{StartDate: datePtr(start)})

	require.Len(t, result.Errors, 1)
	assert.Equal(t, ErrorMissingTitle, result.Errors[0].Type)
	assert.Equal(t, SeverityHigh, result.Errors[0].Severity)
}

func TestValidateInvalidAssignedTo(t *testing.T) {
	start := time.Date(2025, 6, 10, 10, 0, 0, 0, time.Local)
	result := validate(t, &event.CalendarEvent{
		Title:      "Soccer practice",
		StartDate:  datePtr(start),
		AssignedTo: "dad",
	})

	assert.False(t, result.IsValid)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, ErrorInvalidAssignedTo, result.Errors[0].Type)
	assert.Equal(t, SeverityMedium, result.Errors[0].Severity)
}

func TestValidateKnownAssigneePasses(t *testing.T) {
	start := time.Date(2025, 6, 10, 10, 0, 0, 0, time.Local)
	result := validate(t, &event.CalendarEvent{
		Title:      "Soccer practice",
		StartDate:  datePtr(start),
		AssignedTo: "emma",
	})

	assert.True(t, result.IsValid)
	assert.Empty(t, result.Errors)
}

func TestValidateFarFutureDate(t *testing.T) {
	start := time.Date(2027, 3, 1, 10, 0, 0, 0, time.Local)
	result := validate(t, &event.CalendarEvent{Title: "Graduation", StartDate: datePtr(start)})

	assert.True(t, result.IsValid, "far-future is a warning, not an error")
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, WarningFarFutureDate, result.Warnings[0].Type)
}

func TestValidateUnusualTime(t *testing.T) {
	start := time.Date(2025, 6, 10, 2, 30, 0, 0, time.Local)
	result := validate(t, &event.CalendarEvent{Title: "Dinner", StartDate: datePtr(start)})

	require.Len(t, result.Warnings, 1)
	assert.Equal(t, WarningUnusualTime, result.Warnings[0].Type)

	// The same start time on an all-day event is fine.
	allDay := validate(t, &event.CalendarEvent{Title: "Dinner", StartDate: datePtr(start), AllDay: true})
	assert.Empty(t, allDay.Warnings)
}

func TestValidateDuplicatesProduceWarnings(t *testing.T) {
	day := time.Date(2025, 6, 23, 0, 0, 0, 0, time.Local)
	result := validate(t,
		dated("Holiday", day),
		dated("holiday!", day),
	)

	assert.True(t, result.IsValid)
	require.Len(t, result.Duplicates, 1)
	require.Len(t, result.Warnings, 2, "every cluster member gets a warning")
	for _, w := range result.Warnings {
		assert.Equal(t, WarningPotentialDuplicate, w.Type)
	}
}

func TestValidateRuleIsolation(t *testing.T) {
	// One violated rule produces exactly one finding.
	start := time.Date(2025, 6, 10, 10, 0, 0, 0, time.Local)
	result := validate(t,
		&event.CalendarEvent{Title: "Fine event", StartDate: datePtr(start)},
		&event.CalendarEvent{Title: "No date here"},
	)

	assert.Equal(t, 2, result.EventCount)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, ErrorMissingDate, result.Errors[0].Type)
	assert.Empty(t, result.Warnings)
}

func TestValidateStoreFailure(t *testing.T) {
	store := &flakyStore{EventStore: event.NewMemoryStore(), failQuery: true}
	v := NewValidator(store, testCatalog())

	_, err := v.ValidateAllEvents(context.Background())
	assert.ErrorIs(t, err, errStoreDown)
}
