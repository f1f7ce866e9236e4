package payment

import (
	"time"

	"github.com/google/uuid"
	"github.com/propmanager/backend/internal/domain/payment"
	"github.com/shopspring/decimal"
)

// PaymentInfo is the API view of a payment
type PaymentInfo struct {
	ID         uuid.UUID       `json:"id"`
	TenantID   uuid.UUID       `json:"tenant_id"`
	PropertyID *uuid.UUID      `json:"property_id"`
	Amount     decimal.Decimal `json:"amount"`
	Month      string          `json:"month"`
	Method     string          `json:"method"`
	Reference  string          `json:"reference"`
	Status     string          `json:"status"`
	PaidAt     *time.Time      `json:"paid_at"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// ToPaymentInfo converts a domain payment to its API view
func ToPaymentInfo(p *payment.Payment) PaymentInfo {
	return PaymentInfo{
		ID:         p.ID,
		TenantID:   p.TenantID,
		PropertyID: p.PropertyID,
		Amount:     p.Amount,
		Month:      p.Month,
		Method:     string(p.Method),
		Reference:  p.Reference,
		Status:     string(p.Status),
		PaidAt:     p.PaidAt,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

func toPaymentInfos(payments []*payment.Payment) []PaymentInfo {
	out := make([]PaymentInfo, len(payments))
	for i, p := range payments {
		out[i] = ToPaymentInfo(p)
	}
	return out
}

// RecordPaymentInput is an admin-recorded payment
type RecordPaymentInput struct {
	TenantID   uuid.UUID
	PropertyID *uuid.UUID
	Amount     decimal.Decimal
	Month      string
	Method     string
	Reference  string
}

// SubmitPaymentInput is a payment reported by the tenant themself
type SubmitPaymentInput struct {
	PropertyID *uuid.UUID
	Amount     decimal.Decimal
	Month      string
	Method     string
	Reference  string
}

// ListPaymentsInput filters payment listings; TenantID is honoured for admins only
type ListPaymentsInput struct {
	TenantID *uuid.UUID
	Status   string
	Month    string
}

// PaymentHistory is every payment of one tenant plus the total actually paid
type PaymentHistory struct {
	TenantID  uuid.UUID       `json:"tenantId"`
	Payments  []PaymentInfo   `json:"payments"`
	TotalPaid decimal.Decimal `json:"totalPaid"`
}
