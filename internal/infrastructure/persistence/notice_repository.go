package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/propmanager/backend/internal/domain/notice"
	"github.com/propmanager/backend/internal/domain/shared"
	"github.com/propmanager/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormNoticeRepository implements notice.Repository using GORM
type GormNoticeRepository struct {
	db *gorm.DB
}

// NewGormNoticeRepository creates a new GormNoticeRepository
func NewGormNoticeRepository(db *gorm.DB) *GormNoticeRepository {
	return &GormNoticeRepository{db: db}
}

// Create creates a new notice
func (r *GormNoticeRepository) Create(ctx context.Context, n *notice.Notice) error {
	return translateError(r.db.WithContext(ctx).Create(models.NoticeModelFromDomain(n)).Error)
}

// FindByID finds a notice by ID
func (r *GormNoticeRepository) FindByID(ctx context.Context, id uuid.UUID) (*notice.Notice, error) {
	var model models.NoticeModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindAll returns all notices, newest first
func (r *GormNoticeRepository) FindAll(ctx context.Context) ([]*notice.Notice, error) {
	var rows []models.NoticeModel
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*notice.Notice, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out, nil
}

// Delete removes the notice along with its read markers
func (r *GormNoticeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("notice_id = ?", id).Delete(&models.NoticeReadModel{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.NoticeModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// MarkRead inserts a read marker. It reports false when the marker already existed.
func (r *GormNoticeRepository) MarkRead(ctx context.Context, read notice.Read) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.NoticeReadModel{
			NoticeID: read.NoticeID,
			UserID:   read.UserID,
			ReadAt:   read.ReadAt,
		})
	if result.Error != nil {
		return false, translateError(result.Error)
	}
	return result.RowsAffected > 0, nil
}

// ReadNoticeIDs returns the IDs of notices the user has read
func (r *GormNoticeRepository) ReadNoticeIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0)
	err := r.db.WithContext(ctx).
		Model(&models.NoticeReadModel{}).
		Where("user_id = ?", userID).
		Order("read_at DESC").
		Pluck("notice_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

var _ notice.Repository = (*GormNoticeRepository)(nil)
