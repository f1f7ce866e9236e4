package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/propmanager/backend/internal/domain/maintenance"
	"github.com/propmanager/backend/internal/domain/shared"
	"github.com/propmanager/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormMaintenanceRepository implements maintenance.Repository using GORM
type GormMaintenanceRepository struct {
	db *gorm.DB
}

// NewGormMaintenanceRepository creates a new GormMaintenanceRepository
func NewGormMaintenanceRepository(db *gorm.DB) *GormMaintenanceRepository {
	return &GormMaintenanceRepository{db: db}
}

// Create creates a new maintenance request
func (r *GormMaintenanceRepository) Create(ctx context.Context, req *maintenance.Request) error {
	return translateError(r.db.WithContext(ctx).Create(models.MaintenanceRequestModelFromDomain(req)).Error)
}

// Update writes every column of the request
func (r *GormMaintenanceRepository) Update(ctx context.Context, req *maintenance.Request) error {
	model := models.MaintenanceRequestModelFromDomain(req)
	result := r.db.WithContext(ctx).Model(model).Select("*").Updates(model)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a request by ID
func (r *GormMaintenanceRepository) FindByID(ctx context.Context, id uuid.UUID) (*maintenance.Request, error) {
	var model models.MaintenanceRequestModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindAll returns matching requests, newest first
func (r *GormMaintenanceRepository) FindAll(ctx context.Context, filter maintenance.Filter) ([]*maintenance.Request, error) {
	query := r.db.WithContext(ctx).Model(&models.MaintenanceRequestModel{})
	if filter.TenantID != nil {
		query = query.Where("tenant_id = ?", *filter.TenantID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var rows []models.MaintenanceRequestModel
	if err := query.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*maintenance.Request, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out, nil
}

var _ maintenance.Repository = (*GormMaintenanceRepository)(nil)
