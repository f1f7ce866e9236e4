package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/propmanager/backend/internal/domain/maintenance"
)

// MaintenanceRequestModel is the persistence model for maintenance.Request
type MaintenanceRequestModel struct {
	BaseModel
	Title       string               `gorm:"type:varchar(200);not null"`
	Description string               `gorm:"type:text;not null"`
	PropertyID  *uuid.UUID           `gorm:"type:uuid;index"`
	TenantID    uuid.UUID            `gorm:"type:uuid;not null;index"`
	Priority    maintenance.Priority `gorm:"type:varchar(20);not null;default:'normal'"`
	Status      maintenance.Status   `gorm:"type:varchar(20);not null;default:'pending';index"`
	ResolvedAt  *time.Time
}

// TableName returns the table name for GORM
func (MaintenanceRequestModel) TableName() string {
	return "maintenance_requests"
}

// ToDomain converts the persistence model to a domain Request
func (m *MaintenanceRequestModel) ToDomain() *maintenance.Request {
	return &maintenance.Request{
		BaseEntity:  m.BaseModel.ToDomain(),
		Title:       m.Title,
		Description: m.Description,
		PropertyID:  m.PropertyID,
		TenantID:    m.TenantID,
		Priority:    m.Priority,
		Status:      m.Status,
		ResolvedAt:  m.ResolvedAt,
	}
}

// MaintenanceRequestModelFromDomain creates a persistence model from a domain Request
func MaintenanceRequestModelFromDomain(r *maintenance.Request) *MaintenanceRequestModel {
	m := &MaintenanceRequestModel{
		Title:       r.Title,
		Description: r.Description,
		PropertyID:  r.PropertyID,
		TenantID:    r.TenantID,
		Priority:    r.Priority,
		Status:      r.Status,
		ResolvedAt:  r.ResolvedAt,
	}
	m.BaseModel.FromDomain(r.BaseEntity)
	return m
}
