package report

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/propmanager/backend/internal/domain/identity"
	"github.com/propmanager/backend/internal/domain/property"
	"github.com/propmanager/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func prop(rent string, created time.Time, tenant *uuid.UUID) *property.Property {
	return &property.Property{
		BaseEntity: shared.BaseEntity{ID: uuid.New(), CreatedAt: created},
		Name:       "Unit",
		Rent:       decimal.RequireFromString(rent),
		TenantID:   tenant,
	}
}

func ptr(id uuid.UUID) *uuid.UUID { return &id }

func TestComputeOccupancy(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	props := []*property.Property{
		prop("100", now, ptr(uuid.New())),
		prop("100", now, nil),
		prop("100", now, nil),
	}
	o := ComputeOccupancy(props, now)
	assert.Equal(t, 3, o.Total)
	assert.Equal(t, 1, o.Occupied)
	assert.Equal(t, 2, o.Vacant)
	assert.Equal(t, "33.33%", o.OccupancyRate)
	assert.Equal(t, now, o.LastUpdated)

	empty := ComputeOccupancy(nil, now)
	assert.Equal(t, "0.00%", empty.OccupancyRate)
}

func TestComputeRevenue_AllTime(t *testing.T) {
	now := time.Now()
	jan := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	mar := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)
	props := []*property.Property{
		prop("1000.00", mar, ptr(uuid.New())),
		prop("1500.50", jan, ptr(uuid.New())),
		prop("800", jan, ptr(uuid.New())),
		prop("9999", jan, nil),
	}

	r := ComputeRevenue(props, nil, now)
	assert.Equal(t, "3300.50", r.TotalRent.StringFixed(2))
	assert.Equal(t, "1100.17", r.AverageRent.StringFixed(2))
	assert.Equal(t, 3, r.OccupiedProperties)
	assert.Equal(t, 4, r.TotalProperties)
	assert.Equal(t, "All time", r.Period)
	require.Len(t, r.MonthlyRevenue, 2)
	assert.Equal(t, "2024-01", r.MonthlyRevenue[0].Month)
	assert.Equal(t, "2300.50", r.MonthlyRevenue[0].Revenue.StringFixed(2))
	assert.Equal(t, "2024-03", r.MonthlyRevenue[1].Month)
}

func TestComputeRevenue_Period(t *testing.T) {
	period, err := ParsePeriod("2024-02-01", "2024-03-31")
	require.NoError(t, err)

	props := []*property.Property{
		prop("500", time.Date(2024, 1, 31, 23, 0, 0, 0, time.UTC), ptr(uuid.New())),
		prop("700", time.Date(2024, 3, 31, 22, 0, 0, 0, time.UTC), ptr(uuid.New())),
		prop("300", time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC), nil),
	}
	r := ComputeRevenue(props, period, time.Now())
	assert.Equal(t, "700.00", r.TotalRent.StringFixed(2))
	assert.Equal(t, 2, r.TotalProperties)
	assert.Equal(t, 1, r.OccupiedProperties)
	assert.Equal(t, "2024-02-01 to 2024-03-31", r.Period)
}

func TestComputeRevenue_NoOccupied(t *testing.T) {
	r := ComputeRevenue([]*property.Property{prop("100", time.Now(), nil)}, nil, time.Now())
	assert.True(t, r.TotalRent.IsZero())
	assert.True(t, r.AverageRent.IsZero())
	assert.Empty(t, r.MonthlyRevenue)
}

func TestParsePeriod(t *testing.T) {
	p, err := ParsePeriod("", "2024-01-01")
	assert.NoError(t, err)
	assert.Nil(t, p)

	_, err = ParsePeriod("2024-13-01", "2024-12-01")
	assert.True(t, errors.Is(err, shared.ErrInvalidInput))

	_, err = ParsePeriod("2024-05-01", "2024-04-01")
	assert.True(t, errors.Is(err, shared.ErrInvalidInput))
}

func TestPeriod_ContainsWholeEndDay(t *testing.T) {
	p, err := ParsePeriod("2024-01-01", "2024-01-31")
	require.NoError(t, err)

	assert.True(t, p.Contains(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, p.Contains(time.Date(2024, 1, 31, 10, 0, 0, 0, time.UTC)))
	assert.True(t, p.Contains(time.Date(2024, 1, 31, 23, 59, 59, 0, time.UTC)))
	assert.False(t, p.Contains(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)))
	assert.False(t, p.Contains(time.Date(2023, 12, 31, 23, 59, 59, 0, time.UTC)))
}

func TestBuildPropertiesSummary(t *testing.T) {
	known := uuid.New()
	missing := uuid.New()
	props := []*property.Property{
		prop("100", time.Now(), &known),
		prop("100", time.Now(), &missing),
		prop("100", time.Now(), nil),
	}
	tenants := map[uuid.UUID]*identity.User{
		known: {FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"},
	}

	s := BuildPropertiesSummary(props, tenants)
	require.Len(t, s, 3)

	assert.Equal(t, LabelOccupied, s[0].Status)
	assert.Equal(t, "Ada Lovelace", *s[0].TenantName)
	assert.Equal(t, "ada@example.com", *s[0].TenantEmail)

	assert.Equal(t, LabelOccupied, s[1].Status)
	assert.Equal(t, UnknownTenant, *s[1].TenantName)
	assert.Nil(t, s[1].TenantEmail)

	assert.Equal(t, LabelVacant, s[2].Status)
	assert.Nil(t, s[2].TenantName)

	assert.ElementsMatch(t, []uuid.UUID{known, missing}, TenantIDs(props))
}

func TestKind(t *testing.T) {
	for _, k := range AllKinds() {
		assert.True(t, k.IsValid())
	}
	assert.False(t, Kind("payroll").IsValid())
}
