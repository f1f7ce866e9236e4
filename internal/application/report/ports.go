package report

import (
	"context"
	"time"
)

// Cache stores computed report read models. Implementations own the TTL.
type Cache interface {
	// Get loads key into dest and reports whether it was present
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	// Invalidate drops every cached report
	Invalidate(ctx context.Context) error
}

// Sheet is one tabular worksheet of an exported report
type Sheet struct {
	Name    string
	Headers []string
	Rows    [][]any
}

// WorkbookRenderer turns sheets into a spreadsheet file
type WorkbookRenderer interface {
	Render(sheets ...Sheet) ([]byte, error)
	ContentType() string
	Extension() string
}

// ObjectStorage stores rendered archives
type ObjectStorage interface {
	Upload(ctx context.Context, storageKey string, data []byte, contentType string) error
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)
}
