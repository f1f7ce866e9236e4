package report

import (
	"time"

	"github.com/google/uuid"
	"github.com/propmanager/backend/internal/domain/identity"
	"github.com/propmanager/backend/internal/domain/property"
	"github.com/shopspring/decimal"
)

// Occupancy labels used by the properties summary
const (
	LabelOccupied = "Occupied"
	LabelVacant   = "Vacant"
	UnknownTenant = "Unknown"
)

// PropertySummary is a property enriched with its tenant's contact details
type PropertySummary struct {
	ID             uuid.UUID       `json:"id"`
	Name           string          `json:"name"`
	Address        string          `json:"address"`
	Type           string          `json:"type"`
	Units          int             `json:"units"`
	Bedrooms       int             `json:"bedrooms"`
	Bathrooms      int             `json:"bathrooms"`
	Rent           decimal.Decimal `json:"rent"`
	TenantID       *uuid.UUID      `json:"tenant_id"`
	PropertyStatus string          `json:"propertyStatus"`
	CreatedAt      time.Time       `json:"created_at"`
	TenantName     *string         `json:"tenantName"`
	TenantEmail    *string         `json:"tenantEmail"`
	Status         string          `json:"status"`
}

// BuildPropertiesSummary joins properties with tenants. A tenant_id that
// no longer resolves to a user is reported as "Unknown".
func BuildPropertiesSummary(properties []*property.Property, tenants map[uuid.UUID]*identity.User) []PropertySummary {
	out := make([]PropertySummary, 0, len(properties))
	for _, p := range properties {
		s := PropertySummary{
			ID:             p.ID,
			Name:           p.Name,
			Address:        p.Address,
			Type:           string(p.Type),
			Units:          p.Units,
			Bedrooms:       p.Bedrooms,
			Bathrooms:      p.Bathrooms,
			Rent:           p.Rent,
			TenantID:       p.TenantID,
			PropertyStatus: string(p.Status),
			CreatedAt:      p.CreatedAt,
			Status:         LabelVacant,
		}
		if p.TenantID != nil {
			s.Status = LabelOccupied
			if u, ok := tenants[*p.TenantID]; ok {
				name := u.FirstName + " " + u.LastName
				email := u.Email
				s.TenantName = &name
				s.TenantEmail = &email
			} else {
				name := UnknownTenant
				s.TenantName = &name
			}
		}
		out = append(out, s)
	}
	return out
}

// TenantIDs collects the distinct tenant IDs referenced by properties
func TenantIDs(properties []*property.Property) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{})
	ids := make([]uuid.UUID, 0)
	for _, p := range properties {
		if p.TenantID == nil {
			continue
		}
		if _, ok := seen[*p.TenantID]; ok {
			continue
		}
		seen[*p.TenantID] = struct{}{}
		ids = append(ids, *p.TenantID)
	}
	return ids
}
