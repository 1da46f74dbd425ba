// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"sync"

	"tasklist/internal/storage"
)

// MemoryStorage is an in-memory implementation of storage.Storage for testing.
type MemoryStorage struct {
	mu     sync.RWMutex
	values map[string]string

	// Writes counts successful and failed Set calls.
	Writes int

	// Error injection for testing
	GetErr error
	SetErr error
}

// NewMemoryStorage creates an empty MemoryStorage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{values: make(map[string]string)}
}

// Put stores a value without counting it as a write.
func (m *MemoryStorage) Put(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
}

// Value returns the stored value for key, or "" if absent.
func (m *MemoryStorage) Value(key string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.values[key]
}

// Get implements storage.Storage.
func (m *MemoryStorage) Get(ctx context.Context, key string) (string, bool, error) {
	if m.GetErr != nil {
		return "", false, m.GetErr
	}
	if key == "" {
		return "", false, storage.ErrKeyRequired
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.values[key]
	return value, ok, nil
}

// Set implements storage.Storage.
func (m *MemoryStorage) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Writes++
	if m.SetErr != nil {
		return m.SetErr
	}
	if key == "" {
		return storage.ErrKeyRequired
	}
	m.values[key] = value
	return nil
}
