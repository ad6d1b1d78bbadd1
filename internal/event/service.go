package event

import (
	"context"
	"errors"
	"time"

	"github.com/famboard/famboard/internal/cache"
	"github.com/famboard/famboard/internal/config"
	"github.com/google/uuid"
)

var (
	ErrInvalidID    = errors.New("invalid id format")
	ErrMissingTitle = errors.New("event title is required")
	ErrInvalidRange = errors.New("event ends before it starts")
)

type EventService interface {
	CreateEvent(ctx context.Context, req CreateEventRequest) (*CalendarEvent, error)
	ListEvents(ctx context.Context, start, end time.Time) ([]*CalendarEvent, error)
	GetEvent(ctx context.Context, id string) (*CalendarEvent, error)
	UpdateEvent(ctx context.Context, id string, req UpdateEventRequest) (*CalendarEvent, error)
	DeleteEvent(ctx context.Context, id string) error
}

type eventService struct {
	store EventStore
	cache *cache.QueryCache[*CalendarEvent]
}

func NewService(store EventStore, queryCache *cache.QueryCache[*CalendarEvent]) EventService {
	return &eventService{store: store, cache: queryCache}
}

func validateRange(e *CalendarEvent) error {
	if e.Title == "" {
		return ErrMissingTitle
	}
	if e.StartDate != nil && e.EndDate != nil && e.EndDate.Before(*e.StartDate) {
		return ErrInvalidRange
	}
	return nil
}

func (s *eventService) CreateEvent(ctx context.Context, req CreateEventRequest) (*CalendarEvent, error) {
	log := config.WithContext(ctx)

	e := req.ToEntity()
	if err := validateRange(e); err != nil {
		return nil, err
	}

	id, err := s.store.Create(ctx, e)
	if err != nil {
		log.WithError(err).Error("Failed to create event")
		return nil, err
	}
	e.ID = id
	s.cache.Invalidate("events")

	log.WithField("event_id", id).Info("Event created")
	return e, nil
}

func (s *eventService) ListEvents(ctx context.Context, start, end time.Time) ([]*CalendarEvent, error) {
	log := config.WithContext(ctx)

	if events, ok := s.cache.Get(start, end); ok {
		return events, nil
	}

	events, err := s.store.Query(ctx, start, end)
	if err != nil {
		log.WithError(err).Error("Failed to list events")
		return nil, err
	}
	s.cache.Put(start, end, events)
	return events, nil
}

func (s *eventService) GetEvent(ctx context.Context, id string) (*CalendarEvent, error) {
	log := config.WithContext(ctx)

	eventID, err := uuid.Parse(id)
	if err != nil {
		log.WithError(err).Warn("Invalid event ID")
		return nil, ErrInvalidID
	}

	// The store contract has no point lookup; an unbounded query keeps the
	// surface at the five agreed operations.
	events, err := s.store.Query(ctx, time.Time{}, time.Time{})
	if err != nil {
		log.WithError(err).Error("Failed to fetch events")
		return nil, err
	}
	for _, e := range events {
		if e.ID == eventID {
			return e, nil
		}
	}
	return nil, ErrEventNotFound
}

func (s *eventService) UpdateEvent(ctx context.Context, id string, req UpdateEventRequest) (*CalendarEvent, error) {
	log := config.WithContext(ctx)

	existing, err := s.GetEvent(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := existing.Clone()
	req.ApplyTo(updated)
	if err := validateRange(updated); err != nil {
		return nil, err
	}

	if err := s.store.Update(ctx, existing.ID, updated); err != nil {
		log.WithError(err).Error("Failed to update event")
		return nil, err
	}
	s.cache.Invalidate("events")

	log.WithField("event_id", id).Info("Event updated")
	return updated, nil
}

func (s *eventService) DeleteEvent(ctx context.Context, id string) error {
	log := config.WithContext(ctx)

	eventID, err := uuid.Parse(id)
	if err != nil {
		log.WithError(err).Warn("Invalid event ID")
		return ErrInvalidID
	}

	if err := s.store.Delete(ctx, eventID); err != nil {
		if errors.Is(err, ErrEventNotFound) {
			return ErrEventNotFound
		}
		log.WithError(err).Error("Failed to delete event")
		return err
	}
	s.cache.Invalidate("events")

	log.WithField("event_id", id).Info("Event deleted")
	return nil
}
