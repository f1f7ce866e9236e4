package messaging

import (
	"time"

	"github.com/google/uuid"
	"github.com/propmanager/backend/internal/domain/shared"
)

const maxBodyLength = 5000

// Message is a direct message between two users
type Message struct {
	shared.BaseEntity
	SenderID   uuid.UUID
	ReceiverID uuid.UUID
	Subject    string
	Body       string
	ReadAt     *time.Time
}

// NewMessage creates an unread message
func NewMessage(senderID, receiverID uuid.UUID, subject, body string) (*Message, error) {
	body = shared.SanitizeString(body)
	subject = shared.SanitizeString(subject)
	if receiverID == uuid.Nil {
		return nil, shared.InvalidInput("receiver_id is required")
	}
	if body == "" {
		return nil, shared.InvalidInput("message is required")
	}
	if len(body) > maxBodyLength {
		return nil, shared.InvalidInput("message cannot exceed 5000 characters")
	}
	if senderID == receiverID {
		return nil, shared.InvalidInput("Cannot send a message to yourself")
	}
	return &Message{
		BaseEntity: shared.NewBaseEntity(),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Subject:    subject,
		Body:       body,
	}, nil
}

// MarkRead stamps the message as read by its receiver
func (m *Message) MarkRead(by uuid.UUID) error {
	if by != m.ReceiverID {
		return shared.Forbidden("Only the receiver can mark a message as read")
	}
	if m.ReadAt != nil {
		return nil
	}
	now := time.Now()
	m.ReadAt = &now
	m.UpdatedAt = now
	return nil
}

// Involves returns true when userID sent or received the message
func (m *Message) Involves(userID uuid.UUID) bool {
	return m.SenderID == userID || m.ReceiverID == userID
}
