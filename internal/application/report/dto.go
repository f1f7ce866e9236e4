package report

import (
	"time"

	"github.com/google/uuid"
	"github.com/propmanager/backend/internal/domain/report"
)

// ExportFile is a rendered report ready to stream
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ArchiveInfo is the API view of a stored report
type ArchiveInfo struct {
	ID         uuid.UUID  `json:"id"`
	Kind       string     `json:"kind"`
	StorageKey string     `json:"storage_key"`
	Format     string     `json:"format"`
	SizeBytes  int64      `json:"size_bytes"`
	CreatedBy  *uuid.UUID `json:"created_by"`
	CreatedAt  time.Time  `json:"created_at"`
}

// ToArchiveInfo converts a domain archive
func ToArchiveInfo(a *report.Archive) ArchiveInfo {
	return ArchiveInfo{
		ID:         a.ID,
		Kind:       string(a.Kind),
		StorageKey: a.StorageKey,
		Format:     a.Format,
		SizeBytes:  a.SizeBytes,
		CreatedBy:  a.CreatedBy,
		CreatedAt:  a.CreatedAt,
	}
}

// ArchiveResult is returned after storing a report
type ArchiveResult struct {
	Archive     ArchiveInfo `json:"archive"`
	DownloadURL string      `json:"downloadUrl"`
	ExpiresAt   time.Time   `json:"expiresAt"`
}
