package notice

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines notice persistence
type Repository interface {
	Create(ctx context.Context, n *Notice) error
	FindByID(ctx context.Context, id uuid.UUID) (*Notice, error)

	// FindAll returns all notices, newest first
	FindAll(ctx context.Context) ([]*Notice, error)

	// Delete removes the notice along with its read markers
	Delete(ctx context.Context, id uuid.UUID) error

	// MarkRead stores a read marker. It returns false when the marker
	// already existed.
	MarkRead(ctx context.Context, read Read) (bool, error)

	// ReadNoticeIDs returns the IDs of notices the user has read
	ReadNoticeIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}
