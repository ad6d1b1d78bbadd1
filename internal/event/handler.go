package event

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/famboard/famboard/internal/config"
	util "github.com/famboard/famboard/internal/utils"
	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service EventService
}

func NewHandler(s EventService) *Handler {
	return &Handler{service: s}
}

func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var req CreateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.WithError(err).Error("Invalid request body for event creation")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	created, err := h.service.CreateEvent(r.Context(), req)
	if err != nil {
		if errors.Is(err, ErrMissingTitle) || errors.Is(err, ErrInvalidRange) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.WithError(err).Error("Failed to create event")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	config.JSON(w, http.StatusCreated, created)
}

func parseWindow(r *http.Request) (start, end time.Time, err error) {
	if from := r.URL.Query().Get("from"); from != "" {
		var ldt util.LocalDateTime
		if err = ldt.UnmarshalJSON([]byte(from)); err != nil {
			return
		}
		start = ldt.Time
	}
	if to := r.URL.Query().Get("to"); to != "" {
		var ldt util.LocalDateTime
		if err = ldt.UnmarshalJSON([]byte(to)); err != nil {
			return
		}
		end = ldt.Time
	}
	return
}

func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	start, end, err := parseWindow(r)
	if err != nil {
		http.Error(w, "invalid date range", http.StatusBadRequest)
		return
	}

	events, err := h.service.ListEvents(r.Context(), start, end)
	if err != nil {
		log.WithError(err).Error("Failed to list events")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	config.JSON(w, http.StatusOK, events)
}

func (h *Handler) GetEvent(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	id := chi.URLParam(r, "id")
	e, err := h.service.GetEvent(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidID):
			http.Error(w, "invalid event id", http.StatusBadRequest)
		case errors.Is(err, ErrEventNotFound):
			http.Error(w, "event not found", http.StatusNotFound)
		default:
			log.WithError(err).Error("Failed to get event")
			http.Error(w, "internal server error", http.StatusInternalServerError)
		}
		return
	}

	config.JSON(w, http.StatusOK, e)
}

func (h *Handler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	id := chi.URLParam(r, "id")

	var req UpdateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.WithError(err).Error("Invalid request body for event update")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	updated, err := h.service.UpdateEvent(r.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidID), errors.Is(err, ErrMissingTitle), errors.Is(err, ErrInvalidRange):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, ErrEventNotFound):
			http.Error(w, "event not found", http.StatusNotFound)
		default:
			log.WithError(err).Error("Failed to update event")
			http.Error(w, "internal server error", http.StatusInternalServerError)
		}
		return
	}

	config.JSON(w, http.StatusOK, updated)
}

func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	id := chi.URLParam(r, "id")
	if err := h.service.DeleteEvent(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, ErrInvalidID):
			http.Error(w, "invalid event id", http.StatusBadRequest)
		case errors.Is(err, ErrEventNotFound):
			http.Error(w, "event not found", http.StatusNotFound)
		default:
			log.WithError(err).Error("Failed to delete event")
			http.Error(w, "internal server error", http.StatusInternalServerError)
		}
		return
	}

	config.JSON(w, http.StatusOK, map[string]string{"message": "event deleted successfully"})
}
