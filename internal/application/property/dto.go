package property

import (
	"time"

	"github.com/google/uuid"
	"github.com/propmanager/backend/internal/domain/property"
	"github.com/shopspring/decimal"
)

// PropertyInfo is the API view of a property
type PropertyInfo struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Address   string          `json:"address"`
	Type      string          `json:"type"`
	Units     int             `json:"units"`
	Bedrooms  int             `json:"bedrooms"`
	Bathrooms int             `json:"bathrooms"`
	Rent      decimal.Decimal `json:"rent"`
	Status    string          `json:"status"`
	TenantID  *uuid.UUID      `json:"tenant_id"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ToPropertyInfo converts a domain property to its API view
func ToPropertyInfo(p *property.Property) PropertyInfo {
	return PropertyInfo{
		ID:        p.ID,
		Name:      p.Name,
		Address:   p.Address,
		Type:      string(p.Type),
		Units:     p.Units,
		Bedrooms:  p.Bedrooms,
		Bathrooms: p.Bathrooms,
		Rent:      p.Rent,
		Status:    string(p.Status),
		TenantID:  p.TenantID,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// ToPropertyInfos converts a slice of domain properties
func ToPropertyInfos(props []*property.Property) []PropertyInfo {
	out := make([]PropertyInfo, len(props))
	for i, p := range props {
		out[i] = ToPropertyInfo(p)
	}
	return out
}

// ListPropertiesInput holds listing filters and paging
type ListPropertiesInput struct {
	Page     int
	PageSize int
	Search   string
	Status   string
	Type     string
	OrderBy  string
	OrderDir string
}

// CreatePropertyInput holds the attributes of a new property
type CreatePropertyInput struct {
	Name      string
	Address   string
	Type      string
	Units     int
	Bedrooms  int
	Bathrooms int
	Rent      decimal.Decimal
}

// UpdatePropertyInput is a partial update; nil fields are left unchanged
type UpdatePropertyInput struct {
	Name      *string
	Address   *string
	Type      *string
	Units     *int
	Bedrooms  *int
	Bathrooms *int
	Rent      *decimal.Decimal
	Status    *string
}
