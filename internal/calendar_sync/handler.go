package calendarsync

import (
	"net/http"

	"github.com/famboard/famboard/internal/config"
)

type Handler struct {
	validator    *Validator
	orchestrator *Orchestrator
}

func NewHandler(validator *Validator, orchestrator *Orchestrator) *Handler {
	return &Handler{validator: validator, orchestrator: orchestrator}
}

func (h *Handler) Sync(w http.ResponseWriter, r *http.Request) {
	result := h.orchestrator.SyncWithCanonicalSource(r.Context())

	status := http.StatusOK
	if !result.Success {
		status = http.StatusInternalServerError
	}
	config.JSON(w, status, result)
}

func (h *Handler) Validate(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	result, err := h.validator.ValidateAllEvents(r.Context())
	if err != nil {
		log.WithError(err).Error("Validation request failed")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	config.JSON(w, http.StatusOK, result)
}

func (h *Handler) ValidationReport(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	result, err := h.validator.ValidateAllEvents(r.Context())
	if err != nil {
		log.WithError(err).Error("Validation report request failed")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(FormatValidationResult(result)))
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	report, err := h.orchestrator.PerformHealthCheck(r.Context())
	if err != nil {
		log.WithError(err).Error("Health check failed to read the store")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	config.JSON(w, http.StatusOK, report)
}
