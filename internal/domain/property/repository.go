package property

import (
	"context"

	"github.com/google/uuid"
	"github.com/propmanager/backend/internal/domain/shared"
)

// Filter narrows property listings
type Filter struct {
	shared.Filter
	Status   Status
	Type     Type
	TenantID *uuid.UUID
}

// Repository defines property persistence
type Repository interface {
	Create(ctx context.Context, p *Property) error
	Update(ctx context.Context, p *Property) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Property, error)
	FindAll(ctx context.Context, filter Filter) ([]*Property, int64, error)

	// FindByTenant returns all properties let to the tenant
	FindByTenant(ctx context.Context, tenantID uuid.UUID) ([]*Property, error)

	// ListAll returns every property, newest first; used by reports
	ListAll(ctx context.Context) ([]*Property, error)

	// UnassignTenant clears tenant_id on every property of the tenant
	UnassignTenant(ctx context.Context, tenantID uuid.UUID) (int64, error)

	Count(ctx context.Context) (int64, error)
}
