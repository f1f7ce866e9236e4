package payment

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/propmanager/backend/internal/domain/identity"
	"github.com/propmanager/backend/internal/domain/payment"
	"github.com/propmanager/backend/internal/domain/property"
	"github.com/propmanager/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// PaymentService handles rent payment use cases
type PaymentService struct {
	payments   payment.Repository
	users      identity.UserRepository
	properties property.Repository
	logger     *zap.Logger
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(
	payments payment.Repository,
	users identity.UserRepository,
	properties property.Repository,
	logger *zap.Logger,
) *PaymentService {
	return &PaymentService{
		payments:   payments,
		users:      users,
		properties: properties,
		logger:     logger,
	}
}

// Record stores a payment an admin has received; it is paid immediately
func (s *PaymentService) Record(ctx context.Context, input RecordPaymentInput) (*PaymentInfo, error) {
	if input.TenantID == uuid.Nil {
		return nil, shared.InvalidInput("tenantId is required")
	}
	tenant, err := s.users.FindByID(ctx, input.TenantID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NotFound("Tenant")
		}
		return nil, err
	}
	if !tenant.IsTenant() {
		return nil, shared.NotFound("Tenant")
	}
	if err := s.ensureProperty(ctx, input.PropertyID); err != nil {
		return nil, err
	}

	p, err := payment.Record(payment.Details{
		TenantID:   input.TenantID,
		PropertyID: input.PropertyID,
		Amount:     input.Amount,
		Month:      input.Month,
		Method:     payment.Method(input.Method),
		Reference:  input.Reference,
	})
	if err != nil {
		return nil, err
	}
	if err := s.payments.Create(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Info("Payment recorded",
		zap.String("payment_id", p.ID.String()),
		zap.String("tenant_id", p.TenantID.String()),
		zap.String("amount", p.Amount.StringFixed(2)),
		zap.String("month", p.Month))

	info := ToPaymentInfo(p)
	return &info, nil
}

// Submit stores a payment reported by the calling tenant, pending confirmation
func (s *PaymentService) Submit(ctx context.Context, caller identity.Principal, input SubmitPaymentInput) (*PaymentInfo, error) {
	if err := s.ensureProperty(ctx, input.PropertyID); err != nil {
		return nil, err
	}
	p, err := payment.Submit(payment.Details{
		TenantID:   caller.UserID,
		PropertyID: input.PropertyID,
		Amount:     input.Amount,
		Month:      input.Month,
		Method:     payment.Method(input.Method),
		Reference:  input.Reference,
	})
	if err != nil {
		return nil, err
	}
	if err := s.payments.Create(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Info("Payment submitted",
		zap.String("payment_id", p.ID.String()),
		zap.String("tenant_id", p.TenantID.String()))

	info := ToPaymentInfo(p)
	return &info, nil
}

// List returns payments visible to the caller, newest first.
// Tenants only ever see their own.
func (s *PaymentService) List(ctx context.Context, caller identity.Principal, input ListPaymentsInput) ([]PaymentInfo, error) {
	filter := payment.Filter{
		Status: payment.Status(input.Status),
		Month:  input.Month,
	}
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, shared.InvalidInput("Invalid payment status")
	}
	if caller.IsAdmin() {
		filter.TenantID = input.TenantID
	} else {
		id := caller.UserID
		filter.TenantID = &id
	}

	payments, err := s.payments.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return toPaymentInfos(payments), nil
}

// History returns all payments of a tenant and the sum of paid ones
func (s *PaymentService) History(ctx context.Context, caller identity.Principal, tenantID uuid.UUID) (*PaymentHistory, error) {
	if !caller.CanAccessTenant(tenantID) {
		return nil, shared.Forbidden("You can only view your own payment history")
	}
	payments, err := s.payments.FindAll(ctx, payment.Filter{TenantID: &tenantID})
	if err != nil {
		return nil, err
	}
	return &PaymentHistory{
		TenantID:  tenantID,
		Payments:  toPaymentInfos(payments),
		TotalPaid: payment.TotalPaid(payments).Round(2),
	}, nil
}

// Confirm marks a pending payment as received
func (s *PaymentService) Confirm(ctx context.Context, id uuid.UUID) (*PaymentInfo, error) {
	return s.transition(ctx, id, "confirmed", (*payment.Payment).Confirm)
}

// Reject marks a pending payment as not received
func (s *PaymentService) Reject(ctx context.Context, id uuid.UUID) (*PaymentInfo, error) {
	return s.transition(ctx, id, "rejected", (*payment.Payment).Reject)
}

func (s *PaymentService) transition(ctx context.Context, id uuid.UUID, verb string, apply func(*payment.Payment) error) (*PaymentInfo, error) {
	p, err := s.payments.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NotFound("Payment")
		}
		return nil, err
	}
	if err := apply(p); err != nil {
		return nil, err
	}
	if err := s.payments.Update(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Info("Payment "+verb,
		zap.String("payment_id", p.ID.String()),
		zap.String("tenant_id", p.TenantID.String()))

	info := ToPaymentInfo(p)
	return &info, nil
}

func (s *PaymentService) ensureProperty(ctx context.Context, id *uuid.UUID) error {
	if id == nil {
		return nil
	}
	if _, err := s.properties.FindByID(ctx, *id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NotFound("Property")
		}
		return err
	}
	return nil
}
