package storage

import (
	"context"
	"fmt"

	reportapp "github.com/propmanager/backend/internal/application/report"
	"github.com/propmanager/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// New builds the object storage named by cfg.Provider. For s3 the bucket
// is created when missing.
func New(ctx context.Context, cfg *config.StorageConfig, logger *zap.Logger) (reportapp.ObjectStorage, error) {
	switch cfg.Provider {
	case "s3":
		s, err := NewS3ObjectStorage(cfg, WithLogger(logger))
		if err != nil {
			return nil, err
		}
		if err := s.EnsureBucket(ctx); err != nil {
			return nil, err
		}
		logger.Info("Using S3 object storage", zap.String("bucket", s.Bucket()))
		return s, nil
	case "stub", "":
		logger.Warn("Using in-memory stub object storage; archives are lost on restart")
		return NewStubObjectStorage(), nil
	default:
		return nil, fmt.Errorf("unknown storage provider %q", cfg.Provider)
	}
}
