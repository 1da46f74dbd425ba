package taskstore

import (
	"errors"
	"fmt"
)

// ErrStorage marks failures of the durable storage medium.
var ErrStorage = errors.New("storage error")

// StoreError records a failed read or write of the storage slot.
// The display is left as it was after the operation's in-memory effect.
type StoreError struct {
	Op  string // "load" or "save"
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s tasks: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *StoreError) Unwrap() error { return e.Err }

// Is reports ErrStorage as a match so callers can test with errors.Is.
func (e *StoreError) Is(target error) bool { return target == ErrStorage }
