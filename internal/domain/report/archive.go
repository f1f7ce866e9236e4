package report

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Archive records a rendered report stored in object storage
type Archive struct {
	ID         uuid.UUID  `json:"id"`
	Kind       Kind       `json:"kind"`
	StorageKey string     `json:"storage_key"`
	Format     string     `json:"format"`
	SizeBytes  int64      `json:"size_bytes"`
	CreatedBy  *uuid.UUID `json:"created_by,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// NewArchive builds an archive record; createdBy is nil for scheduled runs
func NewArchive(kind Kind, storageKey, format string, size int64, createdBy *uuid.UUID) *Archive {
	return &Archive{
		ID:         uuid.New(),
		Kind:       kind,
		StorageKey: storageKey,
		Format:     format,
		SizeBytes:  size,
		CreatedBy:  createdBy,
		CreatedAt:  time.Now(),
	}
}

// ArchiveRepository persists archive records
type ArchiveRepository interface {
	Create(ctx context.Context, a *Archive) error
	FindByID(ctx context.Context, id uuid.UUID) (*Archive, error)

	// FindRecent returns the newest archives first
	FindRecent(ctx context.Context, limit int) ([]*Archive, error)
}
