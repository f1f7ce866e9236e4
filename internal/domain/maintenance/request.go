package maintenance

import (
	"time"

	"github.com/google/uuid"
	"github.com/propmanager/backend/internal/domain/shared"
)

// Status is the progress of a maintenance request
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
)

// IsValid returns true for a known status
func (s Status) IsValid() bool {
	return s == StatusPending || s == StatusInProgress || s == StatusCompleted
}

// allowedTransitions lists the statuses reachable from each status
var allowedTransitions = map[Status][]Status{
	StatusPending:    {StatusInProgress, StatusCompleted},
	StatusInProgress: {StatusCompleted},
	StatusCompleted:  {},
}

// CanTransitionTo reports whether next is reachable from s
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Priority is how urgent the request is
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// IsValid returns true for a known priority
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Request is a repair request filed by a tenant
type Request struct {
	shared.BaseEntity
	Title       string
	Description string
	PropertyID  *uuid.UUID
	TenantID    uuid.UUID
	Priority    Priority
	Status      Status
	ResolvedAt  *time.Time
}

// NewRequest creates a pending request on behalf of tenantID
func NewRequest(tenantID uuid.UUID, title, description string, propertyID *uuid.UUID, priority Priority) (*Request, error) {
	title = shared.SanitizeString(title)
	description = shared.SanitizeString(description)
	if title == "" {
		return nil, shared.InvalidInput("title is required")
	}
	if description == "" {
		return nil, shared.InvalidInput("description is required")
	}
	if len(title) > 200 {
		return nil, shared.InvalidInput("title cannot exceed 200 characters")
	}
	if priority == "" {
		priority = PriorityNormal
	}
	if !priority.IsValid() {
		return nil, shared.InvalidInput("Invalid priority")
	}
	return &Request{
		BaseEntity:  shared.NewBaseEntity(),
		Title:       title,
		Description: description,
		PropertyID:  propertyID,
		TenantID:    tenantID,
		Priority:    priority,
		Status:      StatusPending,
	}, nil
}

// ChangeStatus moves the request along its lifecycle and returns the
// previous status.
func (r *Request) ChangeStatus(next Status) (Status, error) {
	if !next.IsValid() {
		return r.Status, shared.InvalidInput("Status must be one of: pending, in-progress, completed")
	}
	prev := r.Status
	if prev == next {
		return prev, nil
	}
	if !prev.CanTransitionTo(next) {
		return prev, shared.InvalidState("Cannot change status from " + string(prev) + " to " + string(next))
	}
	r.Status = next
	if next == StatusCompleted {
		now := time.Now()
		r.ResolvedAt = &now
	}
	r.Touch()
	return prev, nil
}

// StatusChangedEvent is published when a request changes status
type StatusChangedEvent struct {
	shared.EventHeader
	RequestID uuid.UUID `json:"request_id"`
	TenantID  uuid.UUID `json:"tenant_id"`
	Title     string    `json:"title"`
	From      Status    `json:"from"`
	To        Status    `json:"to"`
	ChangedBy uuid.UUID `json:"changed_by"`
}

// EventTypeStatusChanged is the event type for StatusChangedEvent
const EventTypeStatusChanged = "maintenance.status_changed"

// NewStatusChangedEvent builds the event for a status change
func NewStatusChangedEvent(r *Request, from Status, changedBy uuid.UUID) *StatusChangedEvent {
	return &StatusChangedEvent{
		EventHeader: shared.NewEventHeader(EventTypeStatusChanged, "MaintenanceRequest", r.ID),
		RequestID:   r.ID,
		TenantID:    r.TenantID,
		Title:       r.Title,
		From:        from,
		To:          r.Status,
		ChangedBy:   changedBy,
	}
}
