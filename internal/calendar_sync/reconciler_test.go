package calendarsync

import (
	"context"
	"testing"
	"time"

	"github.com/famboard/famboard/internal/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestReconciler(store event.EventStore) (*Reconciler, *MemoryIntentStore) {
	intents := NewMemoryIntentStore()
	return NewReconciler(store, intents, testCatalog(holidayDef)), intents
}

func TestReconcileCreatesMissingCanonicalEvent(t *testing.T) {
	ctx := context.Background()
	store := event.NewMemoryStore()
	r, _ := newTestReconciler(store)

	res, err := r.Reconcile(ctx, holidayDef)
	require.NoError(t, err)

	assert.Equal(t, StrategyUseCanonical, res.Strategy)
	assert.NotEmpty(t, res.CreatedID)
	assert.Empty(t, res.DeletedIDs)

	events, err := store.Query(ctx, time.Time{}, time.Time{})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Holiday", events[0].Title)
	assert.Equal(t, "holiday", events[0].Category)
	assert.True(t, events[0].AllDay)
}

func TestReconcileKeepsExactMatch(t *testing.T) {
	ctx := context.Background()
	store := event.NewMemoryStore()

	// Case and punctuation differ but all fields match after normalization.
	existing := dated("holiday!", holidayDef.StartDate)
	_, err := store.Create(ctx, existing)
	require.NoError(t, err)

	counting := &countingStore{EventStore: store}
	intents := NewMemoryIntentStore()
	r := NewReconciler(counting, intents, testCatalog(holidayDef))

	res, err := r.Reconcile(ctx, holidayDef)
	require.NoError(t, err)

	assert.Equal(t, StrategyKeepExisting, res.Strategy)
	assert.Zero(t, counting.writes(), "exact match must issue no writes")
}

func TestReconcileKeepsExactMatchAcrossZones(t *testing.T) {
	ctx := context.Background()
	store := event.NewMemoryStore()

	// Same instant as the definition but represented in another zone, as a
	// timestamptz round-trip through the database can produce.
	rebased := holidayDef.StartDate.In(time.FixedZone("UTC-6", -6*60*60))
	_, err := store.Create(ctx, dated("Holiday", rebased))
	require.NoError(t, err)

	counting := &countingStore{EventStore: store}
	r := NewReconciler(counting, NewMemoryIntentStore(), testCatalog(holidayDef))

	res, err := r.Reconcile(ctx, holidayDef)
	require.NoError(t, err)

	assert.Equal(t, StrategyKeepExisting, res.Strategy)
	assert.Zero(t, counting.writes(), "zone representation must not force a rewrite")
}

func TestReconcileUpdatesPartialMatch(t *testing.T) {
	ctx := context.Background()
	store := event.NewMemoryStore()

	// Mis-dated by two days: inside the ±7d window but not an exact match.
	misdated := dated("Holiday", holidayDef.StartDate.AddDate(0, 0, 2))
	_, err := store.Create(ctx, misdated)
	require.NoError(t, err)

	r, _ := newTestReconciler(store)
	res, err := r.Reconcile(ctx, holidayDef)
	require.NoError(t, err)

	assert.Equal(t, StrategyUseCanonical, res.Strategy)
	assert.Equal(t, misdated.ID.String(), res.UpdatedID)

	events, err := store.Query(ctx, time.Time{}, time.Time{})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.True(t, events[0].StartDate.Equal(holidayDef.StartDate))
	assert.Equal(t, "Holiday", events[0].Title)
}

func TestReconcileReplacesMultipleConflicts(t *testing.T) {
	ctx := context.Background()
	store := event.NewMemoryStore()

	a := dated("Holiday", holidayDef.StartDate)
	a.Description = "from mama"
	b := dated("Holiday", holidayDef.StartDate)
	b.Description = "from papa"
	for _, e := range []*event.CalendarEvent{a, b} {
		_, err := store.Create(ctx, e)
		require.NoError(t, err)
	}

	r, intents := newTestReconciler(store)
	res, err := r.Reconcile(ctx, holidayDef)
	require.NoError(t, err)

	assert.Equal(t, StrategyUseCanonical, res.Strategy)
	assert.Len(t, res.DeletedIDs, 2)
	assert.NotEmpty(t, res.CreatedID)

	events, err := store.Query(ctx, time.Time{}, time.Time{})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, holidayDef.Description, events[0].Description)

	pending, err := intents.ListPending(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending, "intent must be completed after the create phase")
}

func TestReconcileIgnoresUnrelatedEvents(t *testing.T) {
	ctx := context.Background()
	store := event.NewMemoryStore()

	// Same week, different category, no keyword overlap.
	_, err := store.Create(ctx, dated("Dentist", holidayDef.StartDate))
	require.NoError(t, err)

	r, _ := newTestReconciler(store)
	res, err := r.Reconcile(ctx, holidayDef)
	require.NoError(t, err)

	assert.NotEmpty(t, res.CreatedID, "unrelated event must not count as a conflict")

	events, err := store.Query(ctx, time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Len(t, events, 2)
}

func TestReconcileFlagsAmbiguousTitles(t *testing.T) {
	ctx := context.Background()
	store := event.NewMemoryStore()

	// Matches both "holiday" and "school-year" keyword sets.
	ambiguous := dated("Holiday year party", holidayDef.StartDate)
	_, err := store.Create(ctx, ambiguous)
	require.NoError(t, err)

	r, _ := newTestReconciler(store)
	res, err := r.Reconcile(ctx, holidayDef)
	require.NoError(t, err)

	require.Len(t, res.ManualReview, 1)
	assert.Equal(t, ambiguous.ID.String(), res.ManualReview[0])
	// The ambiguous event is left untouched; the canonical event is created
	// alongside it.
	assert.NotEmpty(t, res.CreatedID)

	events, err := store.Query(ctx, time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Len(t, events, 2)
}

func TestReconcileExplicitCategoryTagWins(t *testing.T) {
	ctx := context.Background()
	store := event.NewMemoryStore()

	tagged := dated("Dia libre", holidayDef.StartDate)
	tagged.Category = "holiday"
	_, err := store.Create(ctx, tagged)
	require.NoError(t, err)

	r, _ := newTestReconciler(store)
	res, err := r.Reconcile(ctx, holidayDef)
	require.NoError(t, err)

	// Tagged event conflicts despite sharing no keywords; partial match
	// updates it in place.
	assert.Equal(t, tagged.ID.String(), res.UpdatedID)
}

func TestReconcileConvergence(t *testing.T) {
	ctx := context.Background()
	store := event.NewMemoryStore()
	r, _ := newTestReconciler(store)

	ok, err := r.Converged(ctx, holidayDef)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = r.Reconcile(ctx, holidayDef)
	require.NoError(t, err)

	ok, err = r.Converged(ctx, holidayDef)
	require.NoError(t, err)
	assert.True(t, ok)

	// Querying the window returns exactly one event with canonical fields.
	start, end := holidayDef.Window(WindowSlack)
	events, err := store.Query(ctx, start, end)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, holidayDef.Title, events[0].Title)
	assert.Equal(t, holidayDef.AssignedTo, events[0].AssignedTo)
}

func TestResumePendingRecreatesCanonicalEvent(t *testing.T) {
	ctx := context.Background()
	store := event.NewMemoryStore()
	r, intents := newTestReconciler(store)

	// Simulate a crash between the delete and create phases: the intent
	// exists, the conflicting events are gone, no canonical event was made.
	doomed := []*event.CalendarEvent{dated("Holiday", holidayDef.StartDate)}
	intent, err := NewIntent(holidayDef.ID, doomed)
	require.NoError(t, err)
	require.NoError(t, intents.Create(ctx, intent))

	resumed, err := r.ResumePending(ctx)
	require.NoError(t, err)
	require.Len(t, resumed, 1)
	assert.NotEmpty(t, resumed[0].CreatedID)

	events, err := store.Query(ctx, time.Time{}, time.Time{})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Holiday", events[0].Title)

	pending, err := intents.ListPending(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestResumePendingSkipsConvergedIntent(t *testing.T) {
	ctx := context.Background()
	store := event.NewMemoryStore()
	r, intents := newTestReconciler(store)

	_, err := r.Reconcile(ctx, holidayDef)
	require.NoError(t, err)

	intent, err := NewIntent(holidayDef.ID, nil)
	require.NoError(t, err)
	require.NoError(t, intents.Create(ctx, intent))

	resumed, err := r.ResumePending(ctx)
	require.NoError(t, err)
	require.Len(t, resumed, 1)
	assert.Equal(t, StrategyKeepExisting, resumed[0].Strategy)
	assert.Empty(t, resumed[0].CreatedID)
}
