package maintenance

import (
	"time"

	"github.com/google/uuid"
	"github.com/propmanager/backend/internal/domain/maintenance"
)

// RequestInfo is the API view of a maintenance request
type RequestInfo struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	PropertyID  *uuid.UUID `json:"property_id"`
	TenantID    uuid.UUID  `json:"tenant_id"`
	Priority    string     `json:"priority"`
	Status      string     `json:"status"`
	ResolvedAt  *time.Time `json:"resolved_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ToRequestInfo converts a domain request to its API view
func ToRequestInfo(r *maintenance.Request) RequestInfo {
	return RequestInfo{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		PropertyID:  r.PropertyID,
		TenantID:    r.TenantID,
		Priority:    string(r.Priority),
		Status:      string(r.Status),
		ResolvedAt:  r.ResolvedAt,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// CreateRequestInput holds a new maintenance request
type CreateRequestInput struct {
	Title       string
	Description string
	PropertyID  *uuid.UUID
	Priority    string
}
