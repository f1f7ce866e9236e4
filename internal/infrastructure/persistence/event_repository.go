package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/propmanager/backend/internal/domain/calendar"
	"github.com/propmanager/backend/internal/domain/shared"
	"github.com/propmanager/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormEventRepository implements calendar.Repository using GORM
type GormEventRepository struct {
	db *gorm.DB
}

// NewGormEventRepository creates a new GormEventRepository
func NewGormEventRepository(db *gorm.DB) *GormEventRepository {
	return &GormEventRepository{db: db}
}

// Create creates a new event
func (r *GormEventRepository) Create(ctx context.Context, e *calendar.Event) error {
	return translateError(r.db.WithContext(ctx).Create(models.EventModelFromDomain(e)).Error)
}

// Update writes every column of the event
func (r *GormEventRepository) Update(ctx context.Context, e *calendar.Event) error {
	model := models.EventModelFromDomain(e)
	result := r.db.WithContext(ctx).Model(model).Select("*").Updates(model)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete deletes an event by ID
func (r *GormEventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.EventModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds an event by ID
func (r *GormEventRepository) FindByID(ctx context.Context, id uuid.UUID) (*calendar.Event, error) {
	var model models.EventModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindAll returns events within the inclusive date range, by date then time
func (r *GormEventRepository) FindAll(ctx context.Context, filter calendar.Filter) ([]*calendar.Event, error) {
	query := r.db.WithContext(ctx).Model(&models.EventModel{})
	if filter.From != "" {
		query = query.Where("date >= ?", filter.From)
	}
	if filter.To != "" {
		query = query.Where("date <= ?", filter.To)
	}

	var rows []models.EventModel
	if err := query.Order("date ASC").Order("time ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*calendar.Event, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out, nil
}

var _ calendar.Repository = (*GormEventRepository)(nil)
