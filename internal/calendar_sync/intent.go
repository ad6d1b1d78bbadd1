package calendarsync

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/famboard/famboard/internal/event"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ReconcileIntent marks a destructive delete-then-create resolution that is
// in flight. It is written before the delete phase and completed after the
// create phase, so a crash in between leaves a detectable, resumable record
// instead of a silently lost canonical event.
type ReconcileIntent struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	DefinitionID string         `gorm:"index;not null" json:"definition_id"`
	// DeletedEvents snapshots the conflicting events as JSON before they
	// are removed, for auditing a resumed run.
	DeletedEvents datatypes.JSON `json:"deleted_events"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
	CompletedAt   *time.Time     `json:"completed_at,omitempty"`
}

func (ReconcileIntent) TableName() string {
	return "reconcile_intents"
}

// NewIntent builds an intent for the given definition over the events about
// to be deleted.
func NewIntent(definitionID string, doomed []*event.CalendarEvent) (*ReconcileIntent, error) {
	snapshot, err := json.Marshal(doomed)
	if err != nil {
		return nil, err
	}
	return &ReconcileIntent{
		ID:            uuid.New(),
		DefinitionID:  definitionID,
		DeletedEvents: snapshot,
	}, nil
}

type IntentStore interface {
	Create(ctx context.Context, intent *ReconcileIntent) error
	Complete(ctx context.Context, id uuid.UUID) error
	ListPending(ctx context.Context) ([]*ReconcileIntent, error)
}

type gormIntentStore struct {
	db *gorm.DB
}

func NewIntentStore(db *gorm.DB) IntentStore {
	return &gormIntentStore{db: db}
}

func (s *gormIntentStore) Create(ctx context.Context, intent *ReconcileIntent) error {
	return s.db.WithContext(ctx).Create(intent).Error
}

func (s *gormIntentStore) Complete(ctx context.Context, id uuid.UUID) error {
	now := time.Now()
	return s.db.WithContext(ctx).
		Model(&ReconcileIntent{}).
		Where("id = ?", id).
		Update("completed_at", &now).Error
}

func (s *gormIntentStore) ListPending(ctx context.Context) ([]*ReconcileIntent, error) {
	var intents []*ReconcileIntent
	if err := s.db.WithContext(ctx).
		Where("completed_at IS NULL").
		Order("created_at ASC").
		Find(&intents).Error; err != nil {
		return nil, err
	}
	return intents, nil
}

// MemoryIntentStore is the in-process IntentStore used by tests.
type MemoryIntentStore struct {
	mu      sync.Mutex
	intents map[uuid.UUID]*ReconcileIntent
}

func NewMemoryIntentStore() *MemoryIntentStore {
	return &MemoryIntentStore{intents: make(map[uuid.UUID]*ReconcileIntent)}
}

func (s *MemoryIntentStore) Create(_ context.Context, intent *ReconcileIntent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *intent
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = time.Now()
	}
	s.intents[cp.ID] = &cp
	return nil
}

func (s *MemoryIntentStore) Complete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if intent, ok := s.intents[id]; ok {
		now := time.Now()
		intent.CompletedAt = &now
	}
	return nil
}

func (s *MemoryIntentStore) ListPending(_ context.Context) ([]*ReconcileIntent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*ReconcileIntent
	for _, intent := range s.intents {
		if intent.CompletedAt == nil {
			cp := *intent
			out = append(out, &cp)
		}
	}
	return out, nil
}
