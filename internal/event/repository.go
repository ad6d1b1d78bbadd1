package event

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type gormStore struct {
	db  *gorm.DB
	hub *subscriptionHub
}

// NewStore returns the postgres-backed EventStore.
func NewStore(db *gorm.DB) EventStore {
	return &gormStore{db: db, hub: newSubscriptionHub()}
}

func (s *gormStore) Create(ctx context.Context, e *CalendarEvent) (uuid.UUID, error) {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	now := time.Now()
	e.CreatedAt = now
	e.UpdatedAt = now

	if err := s.db.WithContext(ctx).Create(e).Error; err != nil {
		return uuid.Nil, err
	}
	s.hub.notify(ctx, s, e)
	return e.ID, nil
}

func (s *gormStore) Update(ctx context.Context, id uuid.UUID, e *CalendarEvent) error {
	var existing CalendarEvent
	if err := s.db.WithContext(ctx).First(&existing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEventNotFound
		}
		return err
	}

	e.ID = id
	e.CreatedAt = existing.CreatedAt
	e.UpdatedAt = time.Now()

	if err := s.db.WithContext(ctx).Save(e).Error; err != nil {
		return err
	}
	s.hub.notify(ctx, s, e)
	return nil
}

func (s *gormStore) Delete(ctx context.Context, id uuid.UUID) error {
	var existing CalendarEvent
	if err := s.db.WithContext(ctx).First(&existing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEventNotFound
		}
		return err
	}

	if err := s.db.WithContext(ctx).Delete(&CalendarEvent{}, "id = ?", id).Error; err != nil {
		return err
	}
	s.hub.notify(ctx, s, &existing)
	return nil
}

func (s *gormStore) Query(ctx context.Context, start, end time.Time) ([]*CalendarEvent, error) {
	q := s.db.WithContext(ctx).Model(&CalendarEvent{})

	bounded := !start.IsZero() || !end.IsZero()
	if bounded {
		q = q.Where("start_date IS NOT NULL")
		if !start.IsZero() {
			q = q.Where("COALESCE(end_date, start_date) >= ?", start)
		}
		if !end.IsZero() {
			q = q.Where("start_date <= ?", end)
		}
	}

	var events []*CalendarEvent
	if err := q.Order("start_date ASC NULLS LAST, id ASC").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (s *gormStore) Subscribe(start, end time.Time, fn SnapshotFunc) func() {
	return s.hub.add(start, end, fn)
}
