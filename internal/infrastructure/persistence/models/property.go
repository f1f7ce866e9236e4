package models

import (
	"github.com/google/uuid"
	"github.com/propmanager/backend/internal/domain/property"
	"github.com/shopspring/decimal"
)

// PropertyModel is the persistence model for property.Property
type PropertyModel struct {
	BaseModel
	Name      string          `gorm:"type:varchar(200);not null"`
	Address   string          `gorm:"type:varchar(500);not null"`
	Type      property.Type   `gorm:"type:varchar(20);not null;default:'apartment'"`
	Units     int             `gorm:"not null;default:1"`
	Bedrooms  int             `gorm:"not null;default:0"`
	Bathrooms int             `gorm:"not null;default:0"`
	Rent      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Status    property.Status `gorm:"type:varchar(20);not null;default:'vacant';index"`
	TenantID  *uuid.UUID      `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (PropertyModel) TableName() string {
	return "properties"
}

// ToDomain converts the persistence model to a domain Property
func (m *PropertyModel) ToDomain() *property.Property {
	return &property.Property{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		Address:    m.Address,
		Type:       m.Type,
		Units:      m.Units,
		Bedrooms:   m.Bedrooms,
		Bathrooms:  m.Bathrooms,
		Rent:       m.Rent,
		Status:     m.Status,
		TenantID:   m.TenantID,
	}
}

// PropertyModelFromDomain creates a persistence model from a domain Property
func PropertyModelFromDomain(p *property.Property) *PropertyModel {
	m := &PropertyModel{
		Name:      p.Name,
		Address:   p.Address,
		Type:      p.Type,
		Units:     p.Units,
		Bedrooms:  p.Bedrooms,
		Bathrooms: p.Bathrooms,
		Rent:      p.Rent,
		Status:    p.Status,
		TenantID:  p.TenantID,
	}
	m.BaseModel.FromDomain(p.BaseEntity)
	return m
}
