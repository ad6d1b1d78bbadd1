package calendarsync

import (
	"context"
	"errors"
	"time"

	"github.com/famboard/famboard/internal/canonical"
	"github.com/famboard/famboard/internal/event"
	"github.com/google/uuid"
)

var holidayDef = canonical.Definition{
	ID:          "holiday-2025-06-23",
	Title:       "Holiday",
	StartDate:   time.Date(2025, 6, 23, 0, 0, 0, 0, time.Local),
	EndDate:     time.Date(2025, 6, 23, 0, 0, 0, 0, time.Local),
	AllDay:      true,
	Description: "School holiday",
	Source:      "school-calendar-2025",
	Category:    "holiday",
}

func testCatalog(defs ...canonical.Definition) *canonical.Catalog {
	return &canonical.Catalog{
		Version:       1,
		FamilyMembers: []string{"mama", "papa", "emma"},
		Categories: []canonical.Category{
			{Name: "holiday", Keywords: []string{"holiday"}},
			{Name: "prekinder", Keywords: []string{"prekinder"}},
			{Name: "school-year", Keywords: []string{"year"}},
		},
		Definitions: defs,
	}
}

func datePtr(t time.Time) *time.Time {
	return &t
}

func dated(title string, start time.Time) *event.CalendarEvent {
	return &event.CalendarEvent{
		ID:        uuid.New(),
		Title:     title,
		StartDate: datePtr(start),
		AllDay:    true,
		CreatedBy: "mama",
	}
}

// countingStore tallies writes so tests can assert on zero-write paths.
type countingStore struct {
	event.EventStore
	creates int
	updates int
	deletes int
}

func (c *countingStore) Create(ctx context.Context, e *event.CalendarEvent) (uuid.UUID, error) {
	c.creates++
	return c.EventStore.Create(ctx, e)
}

func (c *countingStore) Update(ctx context.Context, id uuid.UUID, e *event.CalendarEvent) error {
	c.updates++
	return c.EventStore.Update(ctx, id, e)
}

func (c *countingStore) Delete(ctx context.Context, id uuid.UUID) error {
	c.deletes++
	return c.EventStore.Delete(ctx, id)
}

func (c *countingStore) writes() int {
	return c.creates + c.updates + c.deletes
}

var errStoreDown = errors.New("store unavailable")

// flakyStore fails selected operations to exercise error boundaries.
type flakyStore struct {
	event.EventStore
	failQuery  bool
	failCreate bool
}

func (f *flakyStore) Query(ctx context.Context, start, end time.Time) ([]*event.CalendarEvent, error) {
	if f.failQuery {
		return nil, errStoreDown
	}
	return f.EventStore.Query(ctx, start, end)
}

func (f *flakyStore) Create(ctx context.Context, e *event.CalendarEvent) (uuid.UUID, error) {
	if f.failCreate {
		return uuid.Nil, errStoreDown
	}
	return f.EventStore.Create(ctx, e)
}
