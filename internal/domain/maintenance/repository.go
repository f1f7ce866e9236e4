package maintenance

import (
	"context"

	"github.com/google/uuid"
)

// Filter narrows request listings
type Filter struct {
	TenantID *uuid.UUID
	Status   Status
}

// Repository defines maintenance request persistence
type Repository interface {
	Create(ctx context.Context, r *Request) error
	Update(ctx context.Context, r *Request) error
	FindByID(ctx context.Context, id uuid.UUID) (*Request, error)

	// FindAll returns matching requests, newest first
	FindAll(ctx context.Context, filter Filter) ([]*Request, error)
}
