package identity

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository defines the interface for user persistence
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *User) error

	// Update updates an existing user
	Update(ctx context.Context, user *User) error

	// Delete deletes a user by ID
	Delete(ctx context.Context, id uuid.UUID) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByEmail finds a user by normalized email
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindByIDs loads several users at once; missing IDs are skipped
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*User, error)

	// FindByRole returns users with the given role, newest first
	FindByRole(ctx context.Context, role Role) ([]*User, error)

	// ExistsByEmail checks if an email already exists
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// GetRole returns only the role column; used by access checks
	GetRole(ctx context.Context, id uuid.UUID) (Role, error)
}
