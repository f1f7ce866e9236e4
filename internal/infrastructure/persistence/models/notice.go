package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/propmanager/backend/internal/domain/notice"
)

// NoticeModel is the persistence model for notice.Notice
type NoticeModel struct {
	BaseModel
	Title     string          `gorm:"type:varchar(200);not null"`
	Message   string          `gorm:"type:text;not null"`
	Priority  notice.Priority `gorm:"type:varchar(20);not null;default:'normal'"`
	CreatedBy uuid.UUID       `gorm:"type:uuid;not null"`
}

// TableName returns the table name for GORM
func (NoticeModel) TableName() string {
	return "notices"
}

// ToDomain converts the persistence model to a domain Notice
func (m *NoticeModel) ToDomain() *notice.Notice {
	return &notice.Notice{
		BaseEntity: m.BaseModel.ToDomain(),
		Title:      m.Title,
		Message:    m.Message,
		Priority:   m.Priority,
		CreatedBy:  m.CreatedBy,
	}
}

// NoticeModelFromDomain creates a persistence model from a domain Notice
func NoticeModelFromDomain(n *notice.Notice) *NoticeModel {
	m := &NoticeModel{
		Title:     n.Title,
		Message:   n.Message,
		Priority:  n.Priority,
		CreatedBy: n.CreatedBy,
	}
	m.BaseModel.FromDomain(n.BaseEntity)
	return m
}

// NoticeReadModel marks a notice as read by a user
type NoticeReadModel struct {
	NoticeID uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID   uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	ReadAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (NoticeReadModel) TableName() string {
	return "notice_reads"
}
