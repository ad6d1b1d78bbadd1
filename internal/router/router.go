package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	calendarsync "github.com/famboard/famboard/internal/calendar_sync"
	"github.com/famboard/famboard/internal/event"
)

type RouterConfig struct {
	EventHandler *event.Handler
	SyncHandler  *calendarsync.Handler
}

func New(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Mount("/events", event.Routes(cfg.EventHandler))
	r.Mount("/calendar", calendarsync.Routes(cfg.SyncHandler))

	return r
}
