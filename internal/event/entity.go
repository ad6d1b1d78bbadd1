package event

import (
	"time"

	"github.com/google/uuid"
)

type CalendarEvent struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string     `gorm:"type:text;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description,omitempty"`
	StartDate   *time.Time `gorm:"index" json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	// RawStartDate preserves the stored value whenever it could not be parsed
	// as a timestamp, so validation can tell a malformed date from a missing
	// one. Legacy organizer clients wrote dates as free-form strings.
	RawStartDate string `gorm:"column:raw_start_date" json:"raw_start_date,omitempty"`
	AllDay       bool   `json:"all_day"`
	AssignedTo   string `gorm:"index" json:"assigned_to,omitempty"`
	// Category is the explicit conflict-classification tag set at creation
	// time. Events written before tagging existed have it empty and fall back
	// to keyword matching during reconciliation.
	Category  string    `gorm:"index" json:"category,omitempty"`
	CreatedBy string    `json:"created_by"`
	Color     string    `json:"color,omitempty"`
	Recurring bool      `json:"recurring"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (CalendarEvent) TableName() string {
	return "calendar_events"
}

// Overlaps reports whether the event's date range intersects [start, end].
// A zero bound is treated as unbounded. Undated events never overlap a
// bounded window.
func (e *CalendarEvent) Overlaps(start, end time.Time) bool {
	if e.StartDate == nil {
		return start.IsZero() && end.IsZero()
	}
	evEnd := *e.StartDate
	if e.EndDate != nil {
		evEnd = *e.EndDate
	}
	if !start.IsZero() && evEnd.Before(start) {
		return false
	}
	if !end.IsZero() && e.StartDate.After(end) {
		return false
	}
	return true
}

// Clone returns a deep copy so callers can mutate query results freely.
func (e *CalendarEvent) Clone() *CalendarEvent {
	cp := *e
	if e.StartDate != nil {
		t := *e.StartDate
		cp.StartDate = &t
	}
	if e.EndDate != nil {
		t := *e.EndDate
		cp.EndDate = &t
	}
	return &cp
}
