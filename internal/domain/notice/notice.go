package notice

import (
	"time"

	"github.com/google/uuid"
	"github.com/propmanager/backend/internal/domain/shared"
)

// Priority of a notice
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

// Notice is an announcement broadcast by an admin to all tenants
type Notice struct {
	shared.BaseEntity
	Title     string
	Message   string
	Priority  Priority
	CreatedBy uuid.UUID
}

// NewNotice creates a notice; priority defaults to normal
func NewNotice(title, message string, priority Priority, createdBy uuid.UUID) (*Notice, error) {
	title = shared.SanitizeString(title)
	message = shared.SanitizeString(message)
	if title == "" || message == "" {
		return nil, shared.InvalidInput("Title and message are required")
	}
	if priority == "" {
		priority = PriorityNormal
	}
	if !priority.IsValid() {
		return nil, shared.InvalidInput("Invalid priority")
	}
	return &Notice{
		BaseEntity: shared.NewBaseEntity(),
		Title:      title,
		Message:    message,
		Priority:   priority,
		CreatedBy:  createdBy,
	}, nil
}

// Read records that a user has seen a notice
type Read struct {
	NoticeID uuid.UUID
	UserID   uuid.UUID
	ReadAt   time.Time
}
