package communication

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/propmanager/backend/internal/domain/identity"
	"github.com/propmanager/backend/internal/domain/messaging"
	"github.com/propmanager/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// MessageInfo is the API view of a message
type MessageInfo struct {
	ID         uuid.UUID  `json:"id"`
	SenderID   uuid.UUID  `json:"sender_id"`
	ReceiverID uuid.UUID  `json:"receiver_id"`
	Subject    string     `json:"subject"`
	Message    string     `json:"message"`
	ReadAt     *time.Time `json:"read_at"`
	CreatedAt  time.Time  `json:"created_at"`
}

func toMessageInfo(m *messaging.Message) MessageInfo {
	return MessageInfo{
		ID:         m.ID,
		SenderID:   m.SenderID,
		ReceiverID: m.ReceiverID,
		Subject:    m.Subject,
		Message:    m.Body,
		ReadAt:     m.ReadAt,
		CreatedAt:  m.CreatedAt,
	}
}

// SendMessageInput holds a message to deliver
type SendMessageInput struct {
	SenderID   uuid.UUID
	ReceiverID uuid.UUID
	Subject    string
	Message    string
}

// MessageService handles direct messaging between users
type MessageService struct {
	messages messaging.Repository
	users    identity.UserRepository
	logger   *zap.Logger
}

// NewMessageService creates a new MessageService
func NewMessageService(messages messaging.Repository, users identity.UserRepository, logger *zap.Logger) *MessageService {
	return &MessageService{messages: messages, users: users, logger: logger}
}

// Send delivers a message; the receiver must be an existing user
func (s *MessageService) Send(ctx context.Context, input SendMessageInput) (*MessageInfo, error) {
	m, err := messaging.NewMessage(input.SenderID, input.ReceiverID, input.Subject, input.Message)
	if err != nil {
		return nil, err
	}
	if _, err := s.users.FindByID(ctx, input.ReceiverID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NotFound("Receiver")
		}
		return nil, err
	}
	if err := s.messages.Create(ctx, m); err != nil {
		return nil, err
	}

	s.logger.Info("Message sent",
		zap.String("message_id", m.ID.String()),
		zap.String("sender_id", m.SenderID.String()),
		zap.String("receiver_id", m.ReceiverID.String()))

	info := toMessageInfo(m)
	return &info, nil
}

// List returns messages sent or received by userID, newest first
func (s *MessageService) List(ctx context.Context, userID uuid.UUID) ([]MessageInfo, error) {
	msgs, err := s.messages.FindForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]MessageInfo, len(msgs))
	for i, m := range msgs {
		out[i] = toMessageInfo(m)
	}
	return out, nil
}

// MarkRead stamps the message as read. Only its receiver may do this.
func (s *MessageService) MarkRead(ctx context.Context, userID, messageID uuid.UUID) (*MessageInfo, error) {
	m, err := s.messages.FindByID(ctx, messageID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NotFound("Message")
		}
		return nil, err
	}
	alreadyRead := m.ReadAt != nil
	if err := m.MarkRead(userID); err != nil {
		return nil, err
	}
	if !alreadyRead {
		if err := s.messages.Update(ctx, m); err != nil {
			return nil, err
		}
	}

	info := toMessageInfo(m)
	return &info, nil
}
