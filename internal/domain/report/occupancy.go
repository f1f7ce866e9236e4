package report

import (
	"fmt"
	"time"

	"github.com/propmanager/backend/internal/domain/property"
)

// Kind names a report that can be exported or archived
type Kind string

const (
	KindOccupancy         Kind = "occupancy"
	KindRevenue           Kind = "revenue"
	KindPropertiesSummary Kind = "properties-summary"
)

// IsValid returns true for a known report kind
func (k Kind) IsValid() bool {
	return k == KindOccupancy || k == KindRevenue || k == KindPropertiesSummary
}

// AllKinds returns every report kind
func AllKinds() []Kind {
	return []Kind{KindOccupancy, KindRevenue, KindPropertiesSummary}
}

// Occupancy is a read model of how many properties are let
type Occupancy struct {
	Total         int       `json:"total"`
	Occupied      int       `json:"occupied"`
	Vacant        int       `json:"vacant"`
	OccupancyRate string    `json:"occupancyRate"` // "xx.xx%"
	LastUpdated   time.Time `json:"lastUpdated"`
}

// ComputeOccupancy counts occupied properties; a property is occupied
// when it has a tenant, regardless of its status column.
func ComputeOccupancy(properties []*property.Property, now time.Time) Occupancy {
	total := len(properties)
	occupied := 0
	for _, p := range properties {
		if p.IsOccupied() {
			occupied++
		}
	}
	rate := 0.0
	if total > 0 {
		rate = float64(occupied) / float64(total) * 100
	}
	return Occupancy{
		Total:         total,
		Occupied:      occupied,
		Vacant:        total - occupied,
		OccupancyRate: fmt.Sprintf("%.2f%%", rate),
		LastUpdated:   now.UTC(),
	}
}
