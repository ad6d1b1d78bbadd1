package container

import (
	"context"
	"log"
	"os"

	"github.com/famboard/famboard/internal/cache"
	calendarsync "github.com/famboard/famboard/internal/calendar_sync"
	"github.com/famboard/famboard/internal/canonical"
	"github.com/famboard/famboard/internal/config"
	"github.com/famboard/famboard/internal/event"
)

type Container struct {
	Catalog        *canonical.Catalog
	QueryCache     *cache.QueryCache[*event.CalendarEvent]
	EventContainer *event.EventContainer
	SyncContainer  *calendarsync.SyncContainer
}

func New() *Container {
	config.Init()

	catalog, err := canonical.Load(os.Getenv("CANONICAL_EVENTS_PATH"))
	if err != nil {
		log.Fatalf("failed to load canonical catalog: %v", err)
	}

	dsn := os.Getenv("DATABASE_DSN")
	if err := config.Connect(context.Background(), dsn); err != nil {
		log.Fatalf("failed to connect to DB: %v", err)
	}
	if err := config.DB.AutoMigrate(&event.CalendarEvent{}, &calendarsync.ReconcileIntent{}); err != nil {
		log.Fatalf("failed to migrate schema: %v", err)
	}

	queryCache := cache.New[*event.CalendarEvent]()
	eventContainer := event.NewEventContainer(config.DB, queryCache)
	syncContainer := calendarsync.NewSyncContainer(
		eventContainer.Store,
		calendarsync.NewIntentStore(config.DB),
		catalog,
		queryCache,
	)

	return &Container{
		Catalog:        catalog,
		QueryCache:     queryCache,
		EventContainer: eventContainer,
		SyncContainer:  syncContainer,
	}
}
