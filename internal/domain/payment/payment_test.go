package payment

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/propmanager/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func details() Details {
	return Details{
		TenantID: uuid.New(),
		Amount:   decimal.NewFromInt(1200),
		Month:    "2024-05",
	}
}

func TestRecord(t *testing.T) {
	p, err := Record(details())
	require.NoError(t, err)
	assert.Equal(t, StatusPaid, p.Status)
	assert.NotNil(t, p.PaidAt)
	assert.Equal(t, MethodOther, p.Method)
}

func TestSubmit(t *testing.T) {
	p, err := Submit(details())
	require.NoError(t, err)
	assert.Equal(t, StatusPending, p.Status)
	assert.Nil(t, p.PaidAt)
}

func TestNewPayment_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Details)
	}{
		{"zero amount", func(d *Details) { d.Amount = decimal.Zero }},
		{"negative amount", func(d *Details) { d.Amount = decimal.NewFromInt(-5) }},
		{"bad month", func(d *Details) { d.Month = "May 2024" }},
		{"missing tenant", func(d *Details) { d.TenantID = uuid.Nil }},
		{"bad method", func(d *Details) { d.Method = "bitcoin" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := details()
			tt.mutate(&d)
			_, err := Record(d)
			assert.True(t, errors.Is(err, shared.ErrInvalidInput))
		})
	}
}

func TestPayment_ConfirmReject(t *testing.T) {
	p, err := Submit(details())
	require.NoError(t, err)
	require.NoError(t, p.Confirm())
	assert.Equal(t, StatusPaid, p.Status)
	assert.NotNil(t, p.PaidAt)

	assert.True(t, errors.Is(p.Confirm(), shared.ErrInvalidState))
	assert.True(t, errors.Is(p.Reject(), shared.ErrInvalidState))

	q, err := Submit(details())
	require.NoError(t, err)
	require.NoError(t, q.Reject())
	assert.Equal(t, StatusRejected, q.Status)
}

func TestTotalPaid(t *testing.T) {
	paid, _ := Record(Details{TenantID: uuid.New(), Amount: decimal.RequireFromString("100.25"), Month: "2024-01"})
	paid2, _ := Record(Details{TenantID: uuid.New(), Amount: decimal.RequireFromString("50.50"), Month: "2024-02"})
	pending, _ := Submit(Details{TenantID: uuid.New(), Amount: decimal.NewFromInt(999), Month: "2024-03"})

	assert.Equal(t, "150.75", TotalPaid([]*Payment{paid, paid2, pending}).StringFixed(2))
	assert.True(t, TotalPaid(nil).IsZero())
}
