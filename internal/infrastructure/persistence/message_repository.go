package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/propmanager/backend/internal/domain/messaging"
	"github.com/propmanager/backend/internal/domain/shared"
	"github.com/propmanager/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormMessageRepository implements messaging.Repository using GORM
type GormMessageRepository struct {
	db *gorm.DB
}

// NewGormMessageRepository creates a new GormMessageRepository
func NewGormMessageRepository(db *gorm.DB) *GormMessageRepository {
	return &GormMessageRepository{db: db}
}

// Create creates a new message
func (r *GormMessageRepository) Create(ctx context.Context, m *messaging.Message) error {
	return translateError(r.db.WithContext(ctx).Create(models.MessageModelFromDomain(m)).Error)
}

// Update writes every column of the message
func (r *GormMessageRepository) Update(ctx context.Context, m *messaging.Message) error {
	model := models.MessageModelFromDomain(m)
	result := r.db.WithContext(ctx).Model(model).Select("*").Updates(model)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a message by ID
func (r *GormMessageRepository) FindByID(ctx context.Context, id uuid.UUID) (*messaging.Message, error) {
	var model models.MessageModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindForUser returns messages sent or received by the user, newest first
func (r *GormMessageRepository) FindForUser(ctx context.Context, userID uuid.UUID) ([]*messaging.Message, error) {
	var rows []models.MessageModel
	if err := r.db.WithContext(ctx).
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*messaging.Message, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out, nil
}

var _ messaging.Repository = (*GormMessageRepository)(nil)
