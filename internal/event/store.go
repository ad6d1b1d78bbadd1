package event

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrEventNotFound = errors.New("calendar event not found")

// SnapshotFunc receives the current contents of a subscribed window after
// every write that touches it.
type SnapshotFunc func(events []*CalendarEvent)

// EventStore is the narrow persistence contract the organizer core depends
// on. Everything above it is independent of the storage technology.
type EventStore interface {
	Create(ctx context.Context, e *CalendarEvent) (uuid.UUID, error)
	Update(ctx context.Context, id uuid.UUID, e *CalendarEvent) error
	Delete(ctx context.Context, id uuid.UUID) error
	// Query returns events overlapping [start, end] ordered by start date.
	// Zero bounds are unbounded; a fully unbounded query also returns events
	// that have no start date at all.
	Query(ctx context.Context, start, end time.Time) ([]*CalendarEvent, error)
	Subscribe(start, end time.Time, fn SnapshotFunc) (unsubscribe func())
}

type subscription struct {
	id         int64
	start, end time.Time
	fn         SnapshotFunc
}

// subscriptionHub fans out post-write snapshots to subscribers whose window
// overlaps the written event. Shared by the gorm and in-memory stores.
type subscriptionHub struct {
	mu     sync.Mutex
	nextID int64
	subs   map[int64]*subscription
}

func newSubscriptionHub() *subscriptionHub {
	return &subscriptionHub{subs: make(map[int64]*subscription)}
}

func (h *subscriptionHub) add(start, end time.Time, fn SnapshotFunc) func() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.nextID++
	id := h.nextID
	h.subs[id] = &subscription{id: id, start: start, end: end, fn: fn}
	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.subs, id)
	}
}

// affected returns the subscriptions whose window overlaps the changed
// event. Undated events notify every subscriber.
func (h *subscriptionHub) affected(e *CalendarEvent) []*subscription {
	h.mu.Lock()
	defer h.mu.Unlock()
	var out []*subscription
	for _, s := range h.subs {
		if e == nil || e.StartDate == nil || e.Overlaps(s.start, s.end) {
			out = append(out, s)
		}
	}
	return out
}

// notify re-queries each affected subscriber's window and delivers the
// snapshot. Runs synchronously on the writing goroutine, matching the
// last-writer-wins semantics of the read cache.
func (h *subscriptionHub) notify(ctx context.Context, store EventStore, changed *CalendarEvent) {
	for _, s := range h.affected(changed) {
		snapshot, err := store.Query(ctx, s.start, s.end)
		if err != nil {
			continue
		}
		s.fn(snapshot)
	}
}
