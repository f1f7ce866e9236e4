package messaging

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines message persistence
type Repository interface {
	Create(ctx context.Context, m *Message) error
	Update(ctx context.Context, m *Message) error
	FindByID(ctx context.Context, id uuid.UUID) (*Message, error)

	// FindForUser returns messages sent or received by the user, newest first
	FindForUser(ctx context.Context, userID uuid.UUID) ([]*Message, error)
}
