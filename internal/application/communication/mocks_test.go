package communication

import (
	"context"

	"github.com/google/uuid"
	"github.com/propmanager/backend/internal/domain/identity"
	"github.com/propmanager/backend/internal/domain/messaging"
	"github.com/propmanager/backend/internal/domain/shared"
	"github.com/stretchr/testify/mock"
)

type MockMessageRepository struct {
	mock.Mock
}

func (m *MockMessageRepository) Create(ctx context.Context, msg *messaging.Message) error {
	return m.Called(ctx, msg).Error(0)
}

func (m *MockMessageRepository) Update(ctx context.Context, msg *messaging.Message) error {
	return m.Called(ctx, msg).Error(0)
}

func (m *MockMessageRepository) FindByID(ctx context.Context, id uuid.UUID) (*messaging.Message, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*messaging.Message), args.Error(1)
}

func (m *MockMessageRepository) FindForUser(ctx context.Context, userID uuid.UUID) ([]*messaging.Message, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]*messaging.Message), args.Error(1)
}

// userFinder answers FindByID and panics on anything else
type userFinder struct {
	identity.UserRepository
	users map[uuid.UUID]*identity.User
}

func (f *userFinder) FindByID(_ context.Context, id uuid.UUID) (*identity.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, shared.ErrNotFound
}
