package calendarsync

import (
	"github.com/famboard/famboard/internal/cache"
	"github.com/famboard/famboard/internal/canonical"
	"github.com/famboard/famboard/internal/event"
)

type SyncContainer struct {
	Validator    *Validator
	Reconciler   *Reconciler
	Orchestrator *Orchestrator
	Handler      *Handler
}

func NewSyncContainer(
	store event.EventStore,
	intents IntentStore,
	catalog *canonical.Catalog,
	invalidator cache.Invalidator,
) *SyncContainer {
	validator := NewValidator(store, catalog)
	reconciler := NewReconciler(store, intents, catalog)
	orchestrator := NewOrchestrator(validator, reconciler, invalidator, catalog)
	handler := NewHandler(validator, orchestrator)

	return &SyncContainer{
		Validator:    validator,
		Reconciler:   reconciler,
		Orchestrator: orchestrator,
		Handler:      handler,
	}
}
