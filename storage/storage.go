// Package storage keeps uploaded media (post images and avatars).
package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"photogram-api/config"
)

// Storage saves media objects and returns the URL they are served from.
type Storage interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

// New picks the backend named by cfg.Driver ("local" or "minio").
func New(ctx context.Context, cfg config.Storage, log *slog.Logger) (Storage, error) {
	switch cfg.Driver {
	case "", "local":
		log.Info("Using local media storage", slog.String("dir", cfg.LocalDir))
		return NewLocal(cfg.LocalDir, cfg.PublicURL)
	case "minio":
		log.Info("Using MinIO media storage",
			slog.String("endpoint", cfg.Minio.Endpoint),
			slog.String("bucket", cfg.Minio.Bucket))
		return NewMinio(ctx, cfg.Minio)
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Driver)
	}
}
