package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/propmanager/backend/internal/domain/payment"
	"github.com/shopspring/decimal"
)

// PaymentModel is the persistence model for payment.Payment
type PaymentModel struct {
	BaseModel
	TenantID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	PropertyID *uuid.UUID      `gorm:"type:uuid;index"`
	Amount     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Month      string          `gorm:"type:varchar(7);not null;index"`
	Method     payment.Method  `gorm:"type:varchar(20);not null;default:'other'"`
	Reference  string          `gorm:"type:varchar(100)"`
	Status     payment.Status  `gorm:"type:varchar(20);not null;default:'pending';index"`
	PaidAt     *time.Time
}

// TableName returns the table name for GORM
func (PaymentModel) TableName() string {
	return "payments"
}

// ToDomain converts the persistence model to a domain Payment
func (m *PaymentModel) ToDomain() *payment.Payment {
	return &payment.Payment{
		BaseEntity: m.BaseModel.ToDomain(),
		TenantID:   m.TenantID,
		PropertyID: m.PropertyID,
		Amount:     m.Amount,
		Month:      m.Month,
		Method:     m.Method,
		Reference:  m.Reference,
		Status:     m.Status,
		PaidAt:     m.PaidAt,
	}
}

// PaymentModelFromDomain creates a persistence model from a domain Payment
func PaymentModelFromDomain(p *payment.Payment) *PaymentModel {
	m := &PaymentModel{
		TenantID:   p.TenantID,
		PropertyID: p.PropertyID,
		Amount:     p.Amount,
		Month:      p.Month,
		Method:     p.Method,
		Reference:  p.Reference,
		Status:     p.Status,
		PaidAt:     p.PaidAt,
	}
	m.BaseModel.FromDomain(p.BaseEntity)
	return m
}
