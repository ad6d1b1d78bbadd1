package calendarsync

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/famboard/famboard/internal/canonical"
	"github.com/famboard/famboard/internal/config"
	"github.com/famboard/famboard/internal/event"
	util "github.com/famboard/famboard/internal/utils"
)

// WindowSlack widens each canonical window on both sides so mis-dated
// entries are still picked up as conflicts.
const WindowSlack = 7 * 24 * time.Hour

const syncAuthor = "sync-engine"

// Reconciler compares stored events against canonical definitions and issues
// the corrective writes. Definitions are always processed under a single
// mutex: overlapping windows of two definitions must never race on the same
// events, so sequential execution is enforced rather than assumed.
type Reconciler struct {
	mu      sync.Mutex
	store   event.EventStore
	intents IntentStore
	catalog *canonical.Catalog
}

func NewReconciler(store event.EventStore, intents IntentStore, catalog *canonical.Catalog) *Reconciler {
	return &Reconciler{store: store, intents: intents, catalog: catalog}
}

// classify maps an event to a category. An explicit tag wins; untagged
// events fall back to keyword matching against every category. Matching
// more than one category is ambiguous and never resolved automatically.
func (r *Reconciler) classify(e *event.CalendarEvent) (category string, ambiguous bool) {
	if e.Category != "" {
		return e.Category, false
	}

	title := NormalizeTitle(e.Title)
	if title == "" {
		return "", false
	}

	var matched []string
	for name, keywords := range r.catalog.CategoryKeywords() {
		for _, kw := range keywords {
			if strings.Contains(title, NormalizeTitle(kw)) {
				matched = append(matched, name)
				break
			}
		}
	}

	switch len(matched) {
	case 0:
		return "", false
	case 1:
		return matched[0], false
	default:
		return "", true
	}
}

// gather returns the events conflicting with the definition and the ids of
// ambiguous events inside its window.
func (r *Reconciler) gather(ctx context.Context, def canonical.Definition) (conflicts []*event.CalendarEvent, review []string, err error) {
	start, end := def.Window(WindowSlack)
	events, err := r.store.Query(ctx, start, end)
	if err != nil {
		return nil, nil, fmt.Errorf("query window of %s: %w", def.ID, err)
	}

	for _, e := range events {
		cat, ambiguous := r.classify(e)
		if ambiguous {
			review = append(review, e.ID.String())
			continue
		}
		if cat == def.Category && e.Overlaps(start, end) {
			conflicts = append(conflicts, e)
		}
	}
	return conflicts, review, nil
}

// matchesDefinition reports an exact field match: normalized title, both
// dates, all-day flag and assignee. All-day events compare by calendar day.
func matchesDefinition(e *event.CalendarEvent, def canonical.Definition) bool {
	if e.StartDate == nil {
		return false
	}
	if NormalizeTitle(e.Title) != NormalizeTitle(def.Title) {
		return false
	}
	if e.AllDay != def.AllDay || e.AssignedTo != def.AssignedTo {
		return false
	}

	end := *e.StartDate
	if e.EndDate != nil {
		end = *e.EndDate
	}
	if def.AllDay {
		return util.SameCalendarDay(*e.StartDate, def.StartDate) &&
			util.SameCalendarDay(end, def.EndDate)
	}
	return e.StartDate.Equal(def.StartDate) && end.Equal(def.EndDate)
}

func eventFromDefinition(def canonical.Definition) *event.CalendarEvent {
	start := def.StartDate
	end := def.EndDate
	return &event.CalendarEvent{
		Title:       def.Title,
		Description: def.Description,
		StartDate:   &start,
		EndDate:     &end,
		AllDay:      def.AllDay,
		AssignedTo:  def.AssignedTo,
		Category:    def.Category,
		CreatedBy:   syncAuthor,
		Color:       "#1976d2",
	}
}

// Reconcile resolves one canonical definition. The store calls it issues
// have no cross-call atomicity; the destructive multi-conflict path records
// a pending intent before deleting anything.
func (r *Reconciler) Reconcile(ctx context.Context, def canonical.Definition) (*Resolution, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.reconcileLocked(ctx, def)
}

func (r *Reconciler) reconcileLocked(ctx context.Context, def canonical.Definition) (*Resolution, error) {
	log := config.WithContext(ctx).WithField("definition_id", def.ID)

	conflicts, review, err := r.gather(ctx, def)
	if err != nil {
		return nil, err
	}

	res := &Resolution{DefinitionID: def.ID, ManualReview: review}

	switch len(conflicts) {
	case 0:
		id, err := r.store.Create(ctx, eventFromDefinition(def))
		if err != nil {
			return nil, fmt.Errorf("create canonical event for %s: %w", def.ID, err)
		}
		res.Strategy = StrategyUseCanonical
		res.Action = "created missing canonical event"
		res.CreatedID = id.String()
		log.WithField("event_id", id).Info("Created canonical event")

	case 1:
		existing := conflicts[0]
		if matchesDefinition(existing, def) {
			res.Strategy = StrategyKeepExisting
			res.Action = "existing event already matches"
			return res, nil
		}

		updated := existing.Clone()
		updated.Title = def.Title
		updated.Description = def.Description
		start, end := def.StartDate, def.EndDate
		updated.StartDate = &start
		updated.EndDate = &end
		updated.RawStartDate = ""
		updated.AllDay = def.AllDay
		updated.AssignedTo = def.AssignedTo
		updated.Category = def.Category

		if err := r.store.Update(ctx, existing.ID, updated); err != nil {
			return nil, fmt.Errorf("update event %s for %s: %w", existing.ID, def.ID, err)
		}
		res.Strategy = StrategyUseCanonical
		res.Action = "updated existing event to canonical values"
		res.UpdatedID = existing.ID.String()
		log.WithField("event_id", existing.ID).Info("Updated event to canonical values")

	default:
		intent, err := NewIntent(def.ID, conflicts)
		if err != nil {
			return nil, fmt.Errorf("snapshot conflicts for %s: %w", def.ID, err)
		}
		if err := r.intents.Create(ctx, intent); err != nil {
			return nil, fmt.Errorf("record intent for %s: %w", def.ID, err)
		}

		for _, c := range conflicts {
			if err := r.store.Delete(ctx, c.ID); err != nil {
				return nil, fmt.Errorf("delete conflicting event %s for %s: %w", c.ID, def.ID, err)
			}
			res.DeletedIDs = append(res.DeletedIDs, c.ID.String())
		}

		id, err := r.store.Create(ctx, eventFromDefinition(def))
		if err != nil {
			// The intent stays pending; the next sync run replays the
			// create phase instead of losing the canonical event.
			return nil, fmt.Errorf("create canonical event for %s after deleting %d conflicts: %w",
				def.ID, len(res.DeletedIDs), err)
		}
		if err := r.intents.Complete(ctx, intent.ID); err != nil {
			log.WithError(err).Warn("Failed to complete reconcile intent")
		}

		res.Strategy = StrategyUseCanonical
		res.Action = fmt.Sprintf("replaced %d conflicting events with one canonical event", len(res.DeletedIDs))
		res.CreatedID = id.String()
		log.WithFields(map[string]interface{}{
			"deleted":  len(res.DeletedIDs),
			"event_id": id,
		}).Info("Replaced conflicting events with canonical event")
	}

	return res, nil
}

// Converged reports whether the definition's window already holds exactly
// one event equal to the definition, i.e. reconciling it would write nothing.
func (r *Reconciler) Converged(ctx context.Context, def canonical.Definition) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	conflicts, _, err := r.gather(ctx, def)
	if err != nil {
		return false, err
	}
	return len(conflicts) == 1 && matchesDefinition(conflicts[0], def), nil
}

// ResumePending replays the create phase of intents whose run crashed
// between the delete and create phases.
func (r *Reconciler) ResumePending(ctx context.Context) ([]Resolution, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	log := config.WithContext(ctx)

	pending, err := r.intents.ListPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("list pending intents: %w", err)
	}

	var resumed []Resolution
	for _, intent := range pending {
		def, ok := r.definition(intent.DefinitionID)
		if !ok {
			log.WithField("definition_id", intent.DefinitionID).
				Warn("Pending intent references a definition no longer in the catalog")
			if err := r.intents.Complete(ctx, intent.ID); err != nil {
				log.WithError(err).Warn("Failed to retire orphaned intent")
			}
			continue
		}

		conflicts, _, err := r.gather(ctx, def)
		if err != nil {
			return resumed, err
		}

		res := Resolution{DefinitionID: def.ID, Strategy: StrategyUseCanonical}
		exists := false
		for _, c := range conflicts {
			if matchesDefinition(c, def) {
				exists = true
				break
			}
		}

		if !exists {
			id, err := r.store.Create(ctx, eventFromDefinition(def))
			if err != nil {
				return resumed, fmt.Errorf("resume create for %s: %w", def.ID, err)
			}
			res.Action = "resumed interrupted reconciliation, recreated canonical event"
			res.CreatedID = id.String()
			log.WithFields(map[string]interface{}{
				"definition_id": def.ID,
				"event_id":      id,
			}).Info("Resumed interrupted reconciliation")
		} else {
			res.Strategy = StrategyKeepExisting
			res.Action = "interrupted reconciliation already converged"
		}

		if err := r.intents.Complete(ctx, intent.ID); err != nil {
			log.WithError(err).Warn("Failed to complete resumed intent")
		}
		resumed = append(resumed, res)
	}
	return resumed, nil
}

func (r *Reconciler) definition(id string) (canonical.Definition, bool) {
	for _, d := range r.catalog.Definitions {
		if d.ID == id {
			return d, true
		}
	}
	return canonical.Definition{}, false
}
