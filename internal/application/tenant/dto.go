package tenant

import (
	"github.com/google/uuid"
	appidentity "github.com/propmanager/backend/internal/application/identity"
	appproperty "github.com/propmanager/backend/internal/application/property"
)

// TenantDetail is a tenant together with the properties let to them
type TenantDetail struct {
	appidentity.UserInfo
	Properties []appproperty.PropertyInfo `json:"properties"`
}

// CreateTenantInput holds the new tenant's details
type CreateTenantInput struct {
	Email      string
	FirstName  string
	LastName   string
	Phone      string
	PropertyID *uuid.UUID
}

// CreateTenantResult carries the generated password; it is shown only once
type CreateTenantResult struct {
	Tenant            appidentity.UserInfo      `json:"tenant"`
	TemporaryPassword string                    `json:"temporaryPassword"`
	Property          *appproperty.PropertyInfo `json:"property,omitempty"`
}

// UpdateTenantInput is a partial update; nil fields are left unchanged
type UpdateTenantInput struct {
	Email     *string
	FirstName *string
	LastName  *string
	Phone     *string
}
