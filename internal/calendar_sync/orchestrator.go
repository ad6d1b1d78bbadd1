package calendarsync

import (
	"context"
	"fmt"

	"github.com/famboard/famboard/internal/cache"
	"github.com/famboard/famboard/internal/canonical"
	"github.com/famboard/famboard/internal/config"
)

// CacheScope is the invalidation scope passed to the read cache after any
// reconciliation attempt.
const CacheScope = "calendar"

// Orchestrator sequences validation, reconciliation, cache invalidation and
// re-validation into one report. It is stateless between calls; each
// invocation is a fresh computation. Concurrent invocations over the same
// catalog are not coordinated beyond the reconciler's own mutex.
type Orchestrator struct {
	validator  *Validator
	reconciler *Reconciler
	cache      cache.Invalidator
	catalog    *canonical.Catalog
}

func NewOrchestrator(validator *Validator, reconciler *Reconciler, invalidator cache.Invalidator, catalog *canonical.Catalog) *Orchestrator {
	return &Orchestrator{
		validator:  validator,
		reconciler: reconciler,
		cache:      invalidator,
		catalog:    catalog,
	}
}

// SyncWithCanonicalSource runs the full pipeline. Store failures never
// escape as errors; they are folded into the result at this boundary.
func (o *Orchestrator) SyncWithCanonicalSource(ctx context.Context) *SyncResult {
	log := config.WithContext(ctx)
	result := &SyncResult{Errors: []string{}, Warnings: []string{}}

	resumed, err := o.reconciler.ResumePending(ctx)
	if err != nil {
		log.WithError(err).Warn("Failed to resume pending reconcile intents")
		result.Warnings = append(result.Warnings, fmt.Sprintf("resume pending intents: %v", err))
	}
	result.Resolutions = append(result.Resolutions, resumed...)

	pre, err := o.validator.ValidateAllEvents(ctx)
	if err != nil {
		log.WithError(err).Error("Sync aborted: validation could not read the store")
		result.Success = false
		result.Message = "sync failed: could not read calendar events"
		result.Errors = append(result.Errors, err.Error())
		return result
	}
	result.EventsProcessed = pre.EventCount

	if len(resumed) == 0 && pre.IsValid && len(pre.Duplicates) == 0 {
		converged, err := o.allConverged(ctx)
		if err != nil {
			result.Success = false
			result.Message = "sync failed: could not check canonical coverage"
			result.Errors = append(result.Errors, err.Error())
			return result
		}
		if converged {
			result.Success = true
			result.Message = "calendar already valid, nothing to do"
			result.ValidationResult = pre
			log.Info("Sync fast path: calendar already valid and converged")
			return result
		}
	}

	// An ambiguous event can sit inside several definitions' windows; report
	// it for review once.
	reviewSeen := map[string]bool{}
	for _, def := range o.catalog.Definitions {
		res, err := o.reconciler.Reconcile(ctx, def)
		if err != nil {
			// Best effort: one bad definition must not block the rest.
			log.WithError(err).WithField("definition_id", def.ID).
				Error("Reconciliation failed for definition")
			result.Errors = append(result.Errors, fmt.Sprintf("definition %s: %v", def.ID, err))
			continue
		}
		result.Resolutions = append(result.Resolutions, *res)
		for _, id := range res.ManualReview {
			if !reviewSeen[id] {
				reviewSeen[id] = true
				result.ManualReview = append(result.ManualReview, id)
			}
		}
	}

	o.cache.Invalidate(CacheScope)

	post, err := o.validator.ValidateAllEvents(ctx)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("post-sync validation: %v", err))
	} else {
		result.ValidationResult = post
	}

	result.Success = len(result.Errors) == 0
	if result.Success {
		result.Message = fmt.Sprintf("sync complete, %d definitions reconciled", len(o.catalog.Definitions))
	} else {
		result.Message = fmt.Sprintf("sync finished with %d errors", len(result.Errors))
	}
	if len(result.ManualReview) > 0 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("%d events match multiple categories and need manual review", len(result.ManualReview)))
	}

	log.WithFields(map[string]interface{}{
		"success":     result.Success,
		"resolutions": len(result.Resolutions),
		"errors":      len(result.Errors),
	}).Info("Sync run finished")
	return result
}

func (o *Orchestrator) allConverged(ctx context.Context) (bool, error) {
	for _, def := range o.catalog.Definitions {
		ok, err := o.reconciler.Converged(ctx, def)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

// PerformHealthCheck reports whether the latest validation is completely
// clean and, if not, what a human should look at.
func (o *Orchestrator) PerformHealthCheck(ctx context.Context) (*HealthReport, error) {
	vr, err := o.validator.ValidateAllEvents(ctx)
	if err != nil {
		return nil, err
	}

	report := &HealthReport{
		Healthy:         vr.Clean(),
		Issues:          []string{},
		Recommendations: []string{},
	}
	if report.Healthy {
		return report, nil
	}

	for _, e := range vr.Errors {
		report.Issues = append(report.Issues,
			fmt.Sprintf("[%s] %s: %s", e.Severity, e.Type, e.Message))
	}
	for _, w := range vr.Warnings {
		report.Issues = append(report.Issues, fmt.Sprintf("[warning] %s: %s", w.Type, w.Message))
	}

	if len(vr.Errors) > 0 {
		report.Recommendations = append(report.Recommendations,
			"run a calendar sync to reconcile events against the canonical catalog")
	}
	if len(vr.Duplicates) > 0 {
		report.Recommendations = append(report.Recommendations,
			fmt.Sprintf("review %d duplicate clusters; a sync will collapse those covered by canonical definitions", len(vr.Duplicates)))
	}
	for _, w := range vr.Warnings {
		if w.Type != WarningPotentialDuplicate {
			report.Recommendations = append(report.Recommendations,
				"check events flagged with unusual times or far-future dates for typos")
			break
		}
	}
	return report, nil
}
