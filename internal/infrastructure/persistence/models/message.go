package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/propmanager/backend/internal/domain/messaging"
)

// MessageModel is the persistence model for messaging.Message
type MessageModel struct {
	BaseModel
	SenderID   uuid.UUID `gorm:"type:uuid;not null;index"`
	ReceiverID uuid.UUID `gorm:"type:uuid;not null;index"`
	Subject    string    `gorm:"type:varchar(200)"`
	Body       string    `gorm:"type:text;not null"`
	ReadAt     *time.Time
}

// TableName returns the table name for GORM
func (MessageModel) TableName() string {
	return "messages"
}

// ToDomain converts the persistence model to a domain Message
func (m *MessageModel) ToDomain() *messaging.Message {
	return &messaging.Message{
		BaseEntity: m.BaseModel.ToDomain(),
		SenderID:   m.SenderID,
		ReceiverID: m.ReceiverID,
		Subject:    m.Subject,
		Body:       m.Body,
		ReadAt:     m.ReadAt,
	}
}

// MessageModelFromDomain creates a persistence model from a domain Message
func MessageModelFromDomain(msg *messaging.Message) *MessageModel {
	m := &MessageModel{
		SenderID:   msg.SenderID,
		ReceiverID: msg.ReceiverID,
		Subject:    msg.Subject,
		Body:       msg.Body,
		ReadAt:     msg.ReadAt,
	}
	m.BaseModel.FromDomain(msg.BaseEntity)
	return m
}
