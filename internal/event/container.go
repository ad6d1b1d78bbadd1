package event

import (
	"github.com/famboard/famboard/internal/cache"
	"gorm.io/gorm"
)

type EventContainer struct {
	Store   EventStore
	Service EventService
	Handler *Handler
}

func NewEventContainer(db *gorm.DB, queryCache *cache.QueryCache[*CalendarEvent]) *EventContainer {
	store := NewStore(db)
	service := NewService(store, queryCache)
	handler := NewHandler(service)

	return &EventContainer{
		Store:   store,
		Service: service,
		Handler: handler,
	}
}
