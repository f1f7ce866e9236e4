package payment

import (
	"time"

	"github.com/google/uuid"
	"github.com/propmanager/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Status is the settlement state of a rent payment
type Status string

const (
	StatusPending  Status = "pending"
	StatusPaid     Status = "paid"
	StatusRejected Status = "rejected"
)

// IsValid returns true for a known status
func (s Status) IsValid() bool {
	return s == StatusPending || s == StatusPaid || s == StatusRejected
}

// Method is how the tenant paid
type Method string

const (
	MethodBankTransfer Method = "bank_transfer"
	MethodCard         Method = "card"
	MethodCash         Method = "cash"
	MethodCheck        Method = "check"
	MethodOther        Method = "other"
)

// IsValid returns true for a known method
func (m Method) IsValid() bool {
	switch m {
	case MethodBankTransfer, MethodCard, MethodCash, MethodCheck, MethodOther:
		return true
	}
	return false
}

// Payment is a rent payment for one month
type Payment struct {
	shared.BaseEntity
	TenantID   uuid.UUID
	PropertyID *uuid.UUID
	Amount     decimal.Decimal
	Month      string
	Method     Method
	Reference  string
	Status     Status
	PaidAt     *time.Time
}

// Details carries the values common to recorded and submitted payments
type Details struct {
	TenantID   uuid.UUID
	PropertyID *uuid.UUID
	Amount     decimal.Decimal
	Month      string
	Method     Method
	Reference  string
}

func newPayment(d Details, status Status) (*Payment, error) {
	if d.TenantID == uuid.Nil {
		return nil, shared.InvalidInput("tenant_id is required")
	}
	if !d.Amount.IsPositive() {
		return nil, shared.InvalidInput("Amount must be a positive number")
	}
	if !shared.ValidateMonth(d.Month) {
		return nil, shared.InvalidInput("month must be in YYYY-MM format")
	}
	if d.Method == "" {
		d.Method = MethodOther
	}
	if !d.Method.IsValid() {
		return nil, shared.InvalidInput("Invalid payment method")
	}
	p := &Payment{
		BaseEntity: shared.NewBaseEntity(),
		TenantID:   d.TenantID,
		PropertyID: d.PropertyID,
		Amount:     d.Amount.Round(2),
		Month:      d.Month,
		Method:     d.Method,
		Reference:  shared.SanitizeString(d.Reference),
		Status:     status,
	}
	if status == StatusPaid {
		now := p.CreatedAt
		p.PaidAt = &now
	}
	return p, nil
}

// Record creates a payment an admin has already received
func Record(d Details) (*Payment, error) {
	return newPayment(d, StatusPaid)
}

// Submit creates a payment a tenant reports, awaiting confirmation
func Submit(d Details) (*Payment, error) {
	return newPayment(d, StatusPending)
}

// Confirm marks a pending payment as received
func (p *Payment) Confirm() error {
	if p.Status != StatusPending {
		return shared.InvalidState("Only pending payments can be confirmed")
	}
	now := time.Now()
	p.Status = StatusPaid
	p.PaidAt = &now
	p.UpdatedAt = now
	return nil
}

// Reject marks a pending payment as not received
func (p *Payment) Reject() error {
	if p.Status != StatusPending {
		return shared.InvalidState("Only pending payments can be rejected")
	}
	p.Status = StatusRejected
	p.Touch()
	return nil
}

// TotalPaid sums the amounts of paid payments
func TotalPaid(payments []*Payment) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payments {
		if p.Status == StatusPaid {
			total = total.Add(p.Amount)
		}
	}
	return total
}
