package event

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is an in-process EventStore used by tests and local
// development. It mirrors the ordering and window semantics of the
// postgres store.
type MemoryStore struct {
	mu     sync.RWMutex
	events map[uuid.UUID]*CalendarEvent
	hub    *subscriptionHub
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		events: make(map[uuid.UUID]*CalendarEvent),
		hub:    newSubscriptionHub(),
	}
}

func (s *MemoryStore) Create(ctx context.Context, e *CalendarEvent) (uuid.UUID, error) {
	cp := e.Clone()
	if cp.ID == uuid.Nil {
		cp.ID = uuid.New()
	}
	now := time.Now()
	cp.CreatedAt = now
	cp.UpdatedAt = now

	s.mu.Lock()
	s.events[cp.ID] = cp
	s.mu.Unlock()

	s.hub.notify(ctx, s, cp)
	return cp.ID, nil
}

func (s *MemoryStore) Update(ctx context.Context, id uuid.UUID, e *CalendarEvent) error {
	s.mu.Lock()
	existing, ok := s.events[id]
	if !ok {
		s.mu.Unlock()
		return ErrEventNotFound
	}
	cp := e.Clone()
	cp.ID = id
	cp.CreatedAt = existing.CreatedAt
	cp.UpdatedAt = time.Now()
	s.events[id] = cp
	s.mu.Unlock()

	s.hub.notify(ctx, s, cp)
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	existing, ok := s.events[id]
	if !ok {
		s.mu.Unlock()
		return ErrEventNotFound
	}
	delete(s.events, id)
	s.mu.Unlock()

	s.hub.notify(ctx, s, existing)
	return nil
}

func (s *MemoryStore) Query(_ context.Context, start, end time.Time) ([]*CalendarEvent, error) {
	bounded := !start.IsZero() || !end.IsZero()

	s.mu.RLock()
	var out []*CalendarEvent
	for _, e := range s.events {
		if bounded && e.StartDate == nil {
			continue
		}
		if bounded && !e.Overlaps(start, end) {
			continue
		}
		out = append(out, e.Clone())
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		switch {
		case a.StartDate == nil && b.StartDate == nil:
			return a.ID.String() < b.ID.String()
		case a.StartDate == nil:
			return false
		case b.StartDate == nil:
			return true
		case a.StartDate.Equal(*b.StartDate):
			return a.ID.String() < b.ID.String()
		default:
			return a.StartDate.Before(*b.StartDate)
		}
	})
	return out, nil
}

func (s *MemoryStore) Subscribe(start, end time.Time, fn SnapshotFunc) func() {
	return s.hub.add(start, end, fn)
}

// Len reports the number of stored events.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events)
}
