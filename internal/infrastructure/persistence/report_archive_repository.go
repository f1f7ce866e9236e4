package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/propmanager/backend/internal/domain/report"
	"github.com/propmanager/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

const maxArchiveListing = 100

// GormReportArchiveRepository implements report.ArchiveRepository using GORM
type GormReportArchiveRepository struct {
	db *gorm.DB
}

// NewGormReportArchiveRepository creates a new GormReportArchiveRepository
func NewGormReportArchiveRepository(db *gorm.DB) *GormReportArchiveRepository {
	return &GormReportArchiveRepository{db: db}
}

// Create stores an archive record
func (r *GormReportArchiveRepository) Create(ctx context.Context, a *report.Archive) error {
	return translateError(r.db.WithContext(ctx).Create(models.ReportArchiveModelFromDomain(a)).Error)
}

// FindByID finds an archive by ID
func (r *GormReportArchiveRepository) FindByID(ctx context.Context, id uuid.UUID) (*report.Archive, error) {
	var model models.ReportArchiveModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindRecent returns up to limit archives, newest first
func (r *GormReportArchiveRepository) FindRecent(ctx context.Context, limit int) ([]*report.Archive, error) {
	if limit <= 0 || limit > maxArchiveListing {
		limit = maxArchiveListing
	}
	var rows []models.ReportArchiveModel
	if err := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*report.Archive, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out, nil
}

var _ report.ArchiveRepository = (*GormReportArchiveRepository)(nil)
