package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/propmanager/backend/internal/domain/payment"
	"github.com/propmanager/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormPaymentRepository(t *testing.T) {
	repo := NewGormPaymentRepository(newTestDB(t))
	ctx := context.Background()
	tenantA, tenantB := uuid.New(), uuid.New()

	paid, err := payment.Record(payment.Details{TenantID: tenantA, Amount: decimal.NewFromFloat(1200.50), Month: "2024-01"})
	require.NoError(t, err)
	pending, err := payment.Submit(payment.Details{TenantID: tenantA, Amount: decimal.NewFromInt(800), Month: "2024-02", Method: payment.MethodCard})
	require.NoError(t, err)
	other, err := payment.Record(payment.Details{TenantID: tenantB, Amount: decimal.NewFromInt(500), Month: "2024-01"})
	require.NoError(t, err)
	for _, p := range []*payment.Payment{paid, pending, other} {
		require.NoError(t, repo.Create(ctx, p))
	}

	t.Run("find by id keeps decimal amount", func(t *testing.T) {
		got, err := repo.FindByID(ctx, paid.ID)
		require.NoError(t, err)
		assert.Equal(t, "1200.5", got.Amount.String())
		assert.Equal(t, payment.StatusPaid, got.Status)
		assert.NotNil(t, got.PaidAt)
	})

	t.Run("filters", func(t *testing.T) {
		all, err := repo.FindAll(ctx, payment.Filter{})
		require.NoError(t, err)
		assert.Len(t, all, 3)

		mine, err := repo.FindAll(ctx, payment.Filter{TenantID: &tenantA})
		require.NoError(t, err)
		assert.Len(t, mine, 2)

		january, err := repo.FindAll(ctx, payment.Filter{Month: "2024-01"})
		require.NoError(t, err)
		assert.Len(t, january, 2)

		pendingOnly, err := repo.FindAll(ctx, payment.Filter{Status: payment.StatusPending})
		require.NoError(t, err)
		require.Len(t, pendingOnly, 1)
		assert.Equal(t, payment.MethodCard, pendingOnly[0].Method)
	})

	t.Run("confirm is persisted", func(t *testing.T) {
		require.NoError(t, pending.Confirm())
		require.NoError(t, repo.Update(ctx, pending))

		got, err := repo.FindByID(ctx, pending.ID)
		require.NoError(t, err)
		assert.Equal(t, payment.StatusPaid, got.Status)
	})

	t.Run("missing payment", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
