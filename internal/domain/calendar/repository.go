package calendar

import (
	"context"

	"github.com/google/uuid"
)

// Filter narrows event listings by inclusive date range
type Filter struct {
	From string
	To   string
}

// Repository defines event persistence
type Repository interface {
	Create(ctx context.Context, e *Event) error
	Update(ctx context.Context, e *Event) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Event, error)

	// FindAll returns events ordered by date then time ascending
	FindAll(ctx context.Context, filter Filter) ([]*Event, error)
}
