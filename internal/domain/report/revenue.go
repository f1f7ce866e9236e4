package report

import (
	"sort"
	"time"

	"github.com/propmanager/backend/internal/domain/property"
	"github.com/propmanager/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Period bounds the revenue report by property creation date. Both ends
// are inclusive calendar days in UTC.
type Period struct {
	Start time.Time
	End   time.Time
}

// ParsePeriod builds a period from YYYY-MM-DD strings. It returns nil when
// either bound is empty, meaning all time.
func ParsePeriod(start, end string) (*Period, error) {
	if start == "" || end == "" {
		return nil, nil
	}
	s, err := time.Parse(shared.DateLayout, start)
	if err != nil {
		return nil, shared.InvalidInput("startDate must be in YYYY-MM-DD format")
	}
	e, err := time.Parse(shared.DateLayout, end)
	if err != nil {
		return nil, shared.InvalidInput("endDate must be in YYYY-MM-DD format")
	}
	if e.Before(s) {
		return nil, shared.InvalidInput("endDate must not be before startDate")
	}
	return &Period{Start: s, End: e}, nil
}

// Contains reports whether t falls within the period
func (p *Period) Contains(t time.Time) bool {
	t = t.UTC()
	return !t.Before(p.Start) && t.Before(p.End.AddDate(0, 0, 1))
}

// String renders the period the way the report shows it
func (p *Period) String() string {
	if p == nil {
		return "All time"
	}
	return p.Start.Format(shared.DateLayout) + " to " + p.End.Format(shared.DateLayout)
}

// MonthlyRevenue is the rent attributed to one YYYY-MM month
type MonthlyRevenue struct {
	Month   string          `json:"month"`
	Revenue decimal.Decimal `json:"revenue"`
}

// Revenue is a read model of expected rent from let properties
type Revenue struct {
	TotalRent          decimal.Decimal  `json:"totalRent"`
	AverageRent        decimal.Decimal  `json:"averageRent"`
	OccupiedProperties int              `json:"occupiedProperties"`
	TotalProperties    int              `json:"totalProperties"`
	MonthlyRevenue     []MonthlyRevenue `json:"monthlyRevenue"`
	Period             string           `json:"period"`
	LastUpdated        time.Time        `json:"lastUpdated"`
}

// ComputeRevenue sums the rent of occupied properties inside the period.
// Monthly buckets are keyed by the month the property was created.
func ComputeRevenue(properties []*property.Property, period *Period, now time.Time) Revenue {
	total := decimal.Zero
	occupied := 0
	considered := 0
	buckets := make(map[string]decimal.Decimal)

	for _, p := range properties {
		if period != nil && !period.Contains(p.CreatedAt) {
			continue
		}
		considered++
		if !p.IsOccupied() {
			continue
		}
		occupied++
		total = total.Add(p.Rent)
		key := p.CreatedAt.UTC().Format(shared.MonthLayout)
		buckets[key] = buckets[key].Add(p.Rent)
	}

	monthly := make([]MonthlyRevenue, 0, len(buckets))
	for month, revenue := range buckets {
		monthly = append(monthly, MonthlyRevenue{Month: month, Revenue: revenue.Round(2)})
	}
	sort.Slice(monthly, func(i, j int) bool { return monthly[i].Month < monthly[j].Month })

	average := decimal.Zero
	if occupied > 0 {
		average = total.Div(decimal.NewFromInt(int64(occupied)))
	}

	return Revenue{
		TotalRent:          total.Round(2),
		AverageRent:        average.Round(2),
		OccupiedProperties: occupied,
		TotalProperties:    considered,
		MonthlyRevenue:     monthly,
		Period:             period.String(),
		LastUpdated:        now.UTC(),
	}
}
