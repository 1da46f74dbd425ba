// Package backend opens the storage backend selected by configuration.
package backend

import (
	"context"
	"fmt"

	"tasklist/internal/config"
	"tasklist/internal/storage"
	"tasklist/internal/storage/filestore"
	"tasklist/internal/storage/sqlitestore"
)

// Open returns the configured storage backend, creating the config directory first.
// Callers should close the result if it implements io.Closer.
func Open(ctx context.Context, cfg *config.Config) (storage.Storage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := cfg.EnsureDir(); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	switch cfg.Backend {
	case storage.BackendFile, "":
		return filestore.New(cfg.FilePath())
	case storage.BackendSQLite:
		return sqlitestore.Open(cfg.DatabasePath())
	default:
		return nil, fmt.Errorf("unknown backend: %s", cfg.Backend)
	}
}
