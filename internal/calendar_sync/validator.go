package calendarsync

import (
	"context"
	"fmt"
	"time"

	"github.com/famboard/famboard/internal/canonical"
	"github.com/famboard/famboard/internal/config"
	"github.com/famboard/famboard/internal/event"
)

// Validator applies the per-event structural and business rules. It only
// reads and computes; malformed events become result entries, never errors.
// An error return means the store itself failed.
type Validator struct {
	store   event.EventStore
	catalog *canonical.Catalog
	now     func() time.Time
}

func NewValidator(store event.EventStore, catalog *canonical.Catalog) *Validator {
	return &Validator{store: store, catalog: catalog, now: time.Now}
}

// ValidateAllEvents fetches every stored event ordered by start date and
// aggregates rule findings into a single result.
func (v *Validator) ValidateAllEvents(ctx context.Context) (*ValidationResult, error) {
	log := config.WithContext(ctx)

	events, err := v.store.Query(ctx, time.Time{}, time.Time{})
	if err != nil {
		log.WithError(err).Error("Failed to fetch events for validation")
		return nil, fmt.Errorf("fetch events: %w", err)
	}

	result := &ValidationResult{
		Errors:     []ValidationError{},
		Warnings:   []ValidationWarning{},
		EventCount: len(events),
		Duplicates: []DuplicateGroup{},
	}

	for _, e := range events {
		v.validateEvent(e, result)
	}

	result.Duplicates = DetectDuplicates(events)
	for _, g := range result.Duplicates {
		for _, entry := range g.Events {
			result.Warnings = append(result.Warnings, ValidationWarning{
				EventID:    entry.ID,
				EventTitle: entry.Title,
				Type:       WarningPotentialDuplicate,
				Message:    g.Reason,
			})
		}
	}

	result.IsValid = len(result.Errors) == 0

	log.WithFields(map[string]interface{}{
		"events":     result.EventCount,
		"errors":     len(result.Errors),
		"warnings":   len(result.Warnings),
		"duplicates": len(result.Duplicates),
	}).Debug("Validation pass complete")
	return result, nil
}

func (v *Validator) validateEvent(e *event.CalendarEvent, result *ValidationResult) {
	id := e.ID.String()

	if e.Title == "" {
		result.Errors = append(result.Errors, ValidationError{
			EventID:  id,
			Type:     ErrorMissingTitle,
			Message:  "event has no title",
			Severity: SeverityHigh,
		})
	}

	switch {
	case e.StartDate == nil && e.RawStartDate == "":
		result.Errors = append(result.Errors, ValidationError{
			EventID:    id,
			EventTitle: e.Title,
			Type:       ErrorMissingDate,
			Message:    "event has no start date",
			Severity:   SeverityHigh,
		})
	case e.StartDate == nil:
		result.Errors = append(result.Errors, ValidationError{
			EventID:    id,
			EventTitle: e.Title,
			Type:       ErrorInvalidDate,
			Message:    fmt.Sprintf("stored start date %q is not a parsable date", e.RawStartDate),
			Severity:   SeverityHigh,
		})
	default:
		if e.StartDate.Year() > v.now().Year()+1 {
			result.Warnings = append(result.Warnings, ValidationWarning{
				EventID:    id,
				EventTitle: e.Title,
				Type:       WarningFarFutureDate,
				Message:    fmt.Sprintf("start date %s is more than a year ahead", e.StartDate.Format("2006-01-02")),
			})
		}
		if !e.AllDay {
			if h := e.StartDate.Hour(); h < 6 || h >= 22 {
				result.Warnings = append(result.Warnings, ValidationWarning{
					EventID:    id,
					EventTitle: e.Title,
					Type:       WarningUnusualTime,
					Message:    fmt.Sprintf("event starts at %s, outside usual family hours", e.StartDate.Format("15:04")),
				})
			}
		}
	}

	if e.AssignedTo != "" && !v.catalog.HasMember(e.AssignedTo) {
		result.Errors = append(result.Errors, ValidationError{
			EventID:    id,
			EventTitle: e.Title,
			Type:       ErrorInvalidAssignedTo,
			Message:    fmt.Sprintf("%q is not a known family member", e.AssignedTo),
			Severity:   SeverityMedium,
		})
	}
}
