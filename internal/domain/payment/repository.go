package payment

import (
	"context"

	"github.com/google/uuid"
)

// Filter narrows payment listings
type Filter struct {
	TenantID *uuid.UUID
	Status   Status
	Month    string
}

// Repository defines payment persistence
type Repository interface {
	Create(ctx context.Context, p *Payment) error
	Update(ctx context.Context, p *Payment) error
	FindByID(ctx context.Context, id uuid.UUID) (*Payment, error)

	// FindAll returns matching payments, newest first
	FindAll(ctx context.Context, filter Filter) ([]*Payment, error)
}
