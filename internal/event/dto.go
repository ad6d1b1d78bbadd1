package event

import (
	util "github.com/famboard/famboard/internal/utils"
)

type CreateEventRequest struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	StartDate   *util.LocalDateTime `json:"start_date"`
	EndDate     *util.LocalDateTime `json:"end_date"`
	AllDay      bool                `json:"all_day"`
	AssignedTo  string              `json:"assigned_to"`
	Category    string              `json:"category"`
	CreatedBy   string              `json:"created_by"`
	Color       string              `json:"color"`
	Recurring   bool                `json:"recurring"`
}

func (r CreateEventRequest) ToEntity() *CalendarEvent {
	return &CalendarEvent{
		Title:       r.Title,
		Description: r.Description,
		StartDate:   util.ToTimePtr(r.StartDate),
		EndDate:     util.ToTimePtr(r.EndDate),
		AllDay:      r.AllDay,
		AssignedTo:  r.AssignedTo,
		Category:    r.Category,
		CreatedBy:   r.CreatedBy,
		Color:       r.Color,
		Recurring:   r.Recurring,
	}
}

// UpdateEventRequest carries only the fields the client wants to change.
type UpdateEventRequest struct {
	Title       *string             `json:"title"`
	Description *string             `json:"description"`
	StartDate   *util.LocalDateTime `json:"start_date"`
	EndDate     *util.LocalDateTime `json:"end_date"`
	AllDay      *bool               `json:"all_day"`
	AssignedTo  *string             `json:"assigned_to"`
	Category    *string             `json:"category"`
	Color       *string             `json:"color"`
	Recurring   *bool               `json:"recurring"`
}

func (r UpdateEventRequest) ApplyTo(e *CalendarEvent) {
	if r.Title != nil {
		e.Title = *r.Title
	}
	if r.Description != nil {
		e.Description = *r.Description
	}
	if r.StartDate != nil {
		e.StartDate = util.ToTimePtr(r.StartDate)
		e.RawStartDate = ""
	}
	if r.EndDate != nil {
		e.EndDate = util.ToTimePtr(r.EndDate)
	}
	if r.AllDay != nil {
		e.AllDay = *r.AllDay
	}
	if r.AssignedTo != nil {
		e.AssignedTo = *r.AssignedTo
	}
	if r.Category != nil {
		e.Category = *r.Category
	}
	if r.Color != nil {
		e.Color = *r.Color
	}
	if r.Recurring != nil {
		e.Recurring = *r.Recurring
	}
}
