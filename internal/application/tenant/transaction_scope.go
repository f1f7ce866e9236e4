package tenant

import (
	"context"

	"github.com/propmanager/backend/internal/domain/identity"
	"github.com/propmanager/backend/internal/domain/property"
)

// TransactionScope provides transactional access to the user and property repositories.
// All repository operations inside Execute share one database transaction.
type TransactionScope interface {
	// Execute runs fn within a database transaction.
	// If fn returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides repositories bound to the current transaction
type TransactionalRepositories interface {
	Users() identity.UserRepository
	Properties() property.Repository
}

// NoOpTransactionScope runs functions without a real transaction.
// Useful for tests.
type NoOpTransactionScope struct {
	users      identity.UserRepository
	properties property.Repository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories
func NewNoOpTransactionScope(users identity.UserRepository, properties property.Repository) *NoOpTransactionScope {
	return &NoOpTransactionScope{users: users, properties: properties}
}

// Execute runs fn directly
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// Users returns the user repository
func (s *NoOpTransactionScope) Users() identity.UserRepository {
	return s.users
}

// Properties returns the property repository
func (s *NoOpTransactionScope) Properties() property.Repository {
	return s.properties
}
