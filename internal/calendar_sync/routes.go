package calendarsync

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Post("/sync", h.Sync)
	r.Get("/validation", h.Validate)
	r.Get("/validation/report", h.ValidationReport)
	r.Get("/health", h.Health)
	return r
}
