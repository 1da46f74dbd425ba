// Package storage defines the durable key-value slot the task list is mirrored to.
package storage

import (
	"context"
	"errors"
)

// ErrKeyRequired is returned when a backend is asked for an empty key.
var ErrKeyRequired = errors.New("storage key required")

// Storage is a persistent string store scoped to one config directory.
// Backends overwrite the whole value on Set; there are no partial writes.
type Storage interface {
	// Get returns the value stored under key.
	// ok is false when the key has never been set.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set replaces the value stored under key.
	Set(ctx context.Context, key, value string) error
}

// Backend names accepted by configuration.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// ValidBackend reports whether name is a known backend.
func ValidBackend(name string) bool {
	return name == BackendFile || name == BackendSQLite
}
