// Package calendar holds scheduled property events such as inspections and viewings.
package calendar

import (
	"github.com/google/uuid"
	"github.com/propmanager/backend/internal/domain/shared"
)

// Type classifies an event
type Type string

const (
	TypeInspection  Type = "inspection"
	TypeMaintenance Type = "maintenance"
	TypeViewing     Type = "viewing"
	TypeMeeting     Type = "meeting"
	TypeLease       Type = "lease"
	TypeOther       Type = "other"
)

// IsValid returns true for a known event type
func (t Type) IsValid() bool {
	switch t {
	case TypeInspection, TypeMaintenance, TypeViewing, TypeMeeting, TypeLease, TypeOther:
		return true
	}
	return false
}

// Status is the lifecycle state of an event
type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Event is an appointment on the property calendar
type Event struct {
	shared.BaseEntity
	Title       string
	Property    string
	PropertyID  *uuid.UUID
	Type        Type
	Date        string
	Time        string
	Description string
	UserID      *uuid.UUID
	CreatedBy   uuid.UUID
	Status      Status
}

// Details holds the editable attributes of an event
type Details struct {
	Title       string
	Property    string
	PropertyID  *uuid.UUID
	Type        Type
	Date        string
	Time        string
	Description string
	UserID      *uuid.UUID
}

// NewEvent creates a scheduled event
func NewEvent(d Details, createdBy uuid.UUID) (*Event, error) {
	e := &Event{
		BaseEntity: shared.NewBaseEntity(),
		CreatedBy:  createdBy,
		Status:     StatusScheduled,
	}
	if err := e.Update(d); err != nil {
		return nil, err
	}
	return e, nil
}

// Update replaces the editable attributes. Finished events cannot change.
func (e *Event) Update(d Details) error {
	if e.Status == StatusCompleted || e.Status == StatusCancelled {
		return shared.InvalidState("Cannot edit a " + string(e.Status) + " event")
	}
	d.Title = shared.SanitizeString(d.Title)
	d.Property = shared.SanitizeString(d.Property)
	d.Description = shared.SanitizeString(d.Description)
	if d.Title == "" {
		return shared.InvalidInput("title is required")
	}
	if d.Type == "" {
		d.Type = TypeOther
	}
	if !d.Type.IsValid() {
		return shared.InvalidInput("Invalid event type")
	}
	if !shared.ValidateDate(d.Date) {
		return shared.InvalidInput("date must be in YYYY-MM-DD format")
	}
	if d.Time != "" && !shared.ValidateClock(d.Time) {
		return shared.InvalidInput("time must be in HH:MM format")
	}

	e.Title = d.Title
	e.Property = d.Property
	e.PropertyID = d.PropertyID
	e.Type = d.Type
	e.Date = d.Date
	e.Time = d.Time
	e.Description = d.Description
	e.UserID = d.UserID
	e.Touch()
	return nil
}

// Confirm moves a scheduled event to confirmed
func (e *Event) Confirm() error {
	if e.Status != StatusScheduled {
		return shared.InvalidState("Only scheduled events can be confirmed")
	}
	e.Status = StatusConfirmed
	e.Touch()
	return nil
}

// Complete finishes a scheduled or confirmed event
func (e *Event) Complete() error {
	if e.Status != StatusScheduled && e.Status != StatusConfirmed {
		return shared.InvalidState("Only scheduled or confirmed events can be completed")
	}
	e.Status = StatusCompleted
	e.Touch()
	return nil
}

// IsAttendee returns true when userID is the event's assigned user
func (e *Event) IsAttendee(userID uuid.UUID) bool {
	return e.UserID != nil && *e.UserID == userID
}
