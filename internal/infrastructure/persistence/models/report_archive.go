package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/propmanager/backend/internal/domain/report"
)

// ReportArchiveModel records a report file kept in object storage
type ReportArchiveModel struct {
	ID         uuid.UUID   `gorm:"type:uuid;primaryKey"`
	Kind       report.Kind `gorm:"type:varchar(30);not null;index"`
	StorageKey string      `gorm:"type:varchar(500);not null"`
	Format     string      `gorm:"type:varchar(10);not null"`
	SizeBytes  int64       `gorm:"not null;default:0"`
	CreatedBy  *uuid.UUID  `gorm:"type:uuid"`
	CreatedAt  time.Time   `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (ReportArchiveModel) TableName() string {
	return "report_archives"
}

// ToDomain converts the persistence model to a domain Archive
func (m *ReportArchiveModel) ToDomain() *report.Archive {
	return &report.Archive{
		ID:         m.ID,
		Kind:       m.Kind,
		StorageKey: m.StorageKey,
		Format:     m.Format,
		SizeBytes:  m.SizeBytes,
		CreatedBy:  m.CreatedBy,
		CreatedAt:  m.CreatedAt,
	}
}

// ReportArchiveModelFromDomain creates a persistence model from a domain Archive
func ReportArchiveModelFromDomain(a *report.Archive) *ReportArchiveModel {
	return &ReportArchiveModel{
		ID:         a.ID,
		Kind:       a.Kind,
		StorageKey: a.StorageKey,
		Format:     a.Format,
		SizeBytes:  a.SizeBytes,
		CreatedBy:  a.CreatedBy,
		CreatedAt:  a.CreatedAt,
	}
}
