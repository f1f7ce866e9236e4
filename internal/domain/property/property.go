package property

import (
	"github.com/google/uuid"
	"github.com/propmanager/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Type is the kind of building
type Type string

const (
	TypeApartment  Type = "apartment"
	TypeHouse      Type = "house"
	TypeCondo      Type = "condo"
	TypeTownhouse  Type = "townhouse"
	TypeCommercial Type = "commercial"
)

// IsValid returns true for a known property type
func (t Type) IsValid() bool {
	switch t {
	case TypeApartment, TypeHouse, TypeCondo, TypeTownhouse, TypeCommercial:
		return true
	}
	return false
}

// Status is the letting status of a property
type Status string

const (
	StatusVacant      Status = "vacant"
	StatusOccupied    Status = "occupied"
	StatusMaintenance Status = "maintenance"
)

// IsValid returns true for a known status
func (s Status) IsValid() bool {
	return s == StatusVacant || s == StatusOccupied || s == StatusMaintenance
}

// Property is a rentable unit managed by an admin
type Property struct {
	shared.BaseEntity
	Name      string
	Address   string
	Type      Type
	Units     int
	Bedrooms  int
	Bathrooms int
	Rent      decimal.Decimal
	Status    Status
	TenantID  *uuid.UUID
}

// Details holds the editable attributes of a property
type Details struct {
	Name      string
	Address   string
	Type      Type
	Units     int
	Bedrooms  int
	Bathrooms int
	Rent      decimal.Decimal
}

// NewProperty creates a vacant property
func NewProperty(d Details) (*Property, error) {
	p := &Property{
		BaseEntity: shared.NewBaseEntity(),
		Status:     StatusVacant,
	}
	if err := p.Update(d); err != nil {
		return nil, err
	}
	return p, nil
}

// Update replaces the editable attributes after validating them
func (p *Property) Update(d Details) error {
	d.Name = shared.SanitizeString(d.Name)
	d.Address = shared.SanitizeString(d.Address)
	if d.Name == "" {
		return shared.InvalidInput("name is required")
	}
	if d.Address == "" {
		return shared.InvalidInput("address is required")
	}
	if d.Type == "" {
		d.Type = TypeApartment
	}
	if !d.Type.IsValid() {
		return shared.InvalidInput("Invalid property type")
	}
	if d.Units < 0 || d.Bedrooms < 0 || d.Bathrooms < 0 {
		return shared.InvalidInput("units, bedrooms and bathrooms cannot be negative")
	}
	if d.Units == 0 {
		d.Units = 1
	}
	if d.Rent.IsNegative() {
		return shared.InvalidInput("rent cannot be negative")
	}

	p.Name = d.Name
	p.Address = d.Address
	p.Type = d.Type
	p.Units = d.Units
	p.Bedrooms = d.Bedrooms
	p.Bathrooms = d.Bathrooms
	p.Rent = d.Rent.Round(2)
	p.Touch()
	return nil
}

// IsOccupied returns true when a tenant is assigned
func (p *Property) IsOccupied() bool {
	return p.TenantID != nil
}

// AssignTenant lets the property to a tenant
func (p *Property) AssignTenant(tenantID uuid.UUID) error {
	if tenantID == uuid.Nil {
		return shared.InvalidInput("tenant ID is required")
	}
	if p.TenantID != nil && *p.TenantID != tenantID {
		return shared.NewDomainError("ALREADY_EXISTS", "Property is already occupied by another tenant")
	}
	id := tenantID
	p.TenantID = &id
	if p.Status != StatusMaintenance {
		p.Status = StatusOccupied
	}
	p.Touch()
	return nil
}

// ClearTenant removes the tenant
func (p *Property) ClearTenant() {
	p.TenantID = nil
	if p.Status != StatusMaintenance {
		p.Status = StatusVacant
	}
	p.Touch()
}

// SetStatus changes the status explicitly. Occupied requires a tenant and
// a property with a tenant can only be marked occupied or maintenance.
func (p *Property) SetStatus(s Status) error {
	if !s.IsValid() {
		return shared.InvalidInput("Invalid property status")
	}
	if s == StatusOccupied && p.TenantID == nil {
		return shared.InvalidState("Property without a tenant cannot be occupied")
	}
	if s == StatusVacant && p.TenantID != nil {
		return shared.InvalidState("Property with a tenant cannot be vacant")
	}
	p.Status = s
	p.Touch()
	return nil
}

// CanDelete reports whether the property may be removed
func (p *Property) CanDelete() error {
	if p.IsOccupied() {
		return shared.InvalidState("Cannot delete an occupied property; unassign the tenant first")
	}
	return nil
}
