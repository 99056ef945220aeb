package storage

import (
	"context"
	"fmt"

	"github.com/mytheresa/go-item-listing/app/config"
)

// New builds the backend selected by cfg.Type.
func New(ctx context.Context, cfg config.StorageConfig, contentType string) (Backend, error) {
	switch cfg.Type {
	case config.StorageLocal:
		return NewLocalBackend(cfg.ImagesDir)
	case config.StorageS3:
		return NewS3Backend(ctx, cfg.S3, contentType)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}
