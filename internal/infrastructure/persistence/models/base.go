package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/propmanager/backend/internal/domain/shared"
)

// BaseModel provides the persistence fields shared by every table.
// It maps to the domain's BaseEntity.
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"not null;index"`
	UpdatedAt time.Time `gorm:"not null"`
}

// ToDomain converts BaseModel to domain BaseEntity
func (m BaseModel) ToDomain() shared.BaseEntity {
	return shared.BaseEntity{
		ID:        m.ID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromDomain populates BaseModel from domain BaseEntity
func (m *BaseModel) FromDomain(e shared.BaseEntity) {
	m.ID = e.ID
	m.CreatedAt = e.CreatedAt
	m.UpdatedAt = e.UpdatedAt
}

// All returns one zero value of every model, in foreign-key order.
// Used by AutoMigrate in tests.
func All() []any {
	return []any{
		&UserModel{},
		&PropertyModel{},
		&PaymentModel{},
		&MaintenanceRequestModel{},
		&NoticeModel{},
		&NoticeReadModel{},
		&EventModel{},
		&MessageModel{},
		&ReportArchiveModel{},
	}
}
