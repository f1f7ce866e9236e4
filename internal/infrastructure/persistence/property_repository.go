package persistence

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/propmanager/backend/internal/domain/property"
	"github.com/propmanager/backend/internal/domain/shared"
	"github.com/propmanager/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormPropertyRepository implements property.Repository using GORM
type GormPropertyRepository struct {
	db *gorm.DB
}

// NewGormPropertyRepository creates a new GormPropertyRepository
func NewGormPropertyRepository(db *gorm.DB) *GormPropertyRepository {
	return &GormPropertyRepository{db: db}
}

// Create creates a new property
func (r *GormPropertyRepository) Create(ctx context.Context, p *property.Property) error {
	return translateError(r.db.WithContext(ctx).Create(models.PropertyModelFromDomain(p)).Error)
}

// Update writes every column of the property
func (r *GormPropertyRepository) Update(ctx context.Context, p *property.Property) error {
	model := models.PropertyModelFromDomain(p)
	result := r.db.WithContext(ctx).Model(model).Select("*").Updates(model)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete deletes a property by ID
func (r *GormPropertyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.PropertyModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a property by ID
func (r *GormPropertyRepository) FindByID(ctx context.Context, id uuid.UUID) (*property.Property, error) {
	var model models.PropertyModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindAll returns one page of matching properties and the total match count
func (r *GormPropertyRepository) FindAll(ctx context.Context, filter property.Filter) ([]*property.Property, int64, error) {
	filter.Normalize()

	query := r.db.WithContext(ctx).Model(&models.PropertyModel{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.TenantID != nil {
		query = query.Where("tenant_id = ?", *filter.TenantID)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(address) LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := ValidateSortField(filter.OrderBy, PropertySortFields, "created_at")
	sortDir := ValidateSortOrder(filter.OrderDir)

	var rows []models.PropertyModel
	if err := query.
		Order(sortBy + " " + sortDir).
		Offset(filter.Offset()).
		Limit(filter.PageSize).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	return propertiesToDomain(rows), total, nil
}

// FindByTenant returns all properties let to the tenant
func (r *GormPropertyRepository) FindByTenant(ctx context.Context, tenantID uuid.UUID) ([]*property.Property, error) {
	var rows []models.PropertyModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return propertiesToDomain(rows), nil
}

// ListAll returns every property, newest first
func (r *GormPropertyRepository) ListAll(ctx context.Context) ([]*property.Property, error) {
	var rows []models.PropertyModel
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return propertiesToDomain(rows), nil
}

// UnassignTenant clears tenant_id on every property of the tenant.
// Properties under maintenance keep their status; the rest become vacant.
func (r *GormPropertyRepository) UnassignTenant(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.PropertyModel{}).
		Where("tenant_id = ?", tenantID).
		Updates(map[string]any{
			"tenant_id":  nil,
			"status":     gorm.Expr("CASE WHEN status = ? THEN status ELSE ? END", property.StatusMaintenance, property.StatusVacant),
			"updated_at": time.Now(),
		})
	return result.RowsAffected, result.Error
}

// Count returns the number of properties
func (r *GormPropertyRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.PropertyModel{}).Count(&count).Error
	return count, err
}

func propertiesToDomain(rows []models.PropertyModel) []*property.Property {
	out := make([]*property.Property, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out
}

var _ property.Repository = (*GormPropertyRepository)(nil)
