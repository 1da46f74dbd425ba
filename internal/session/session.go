// Package session assembles one task store over a fresh display, the way a
// page load would, and loads the stored list into it.
package session

import (
	"context"
	"log"

	"tasklist/internal/display"
	"tasklist/internal/storage"
	"tasklist/internal/taskstore"
)

// Session is an initialized task store with its display and input field.
type Session struct {
	Store *taskstore.Store
	List  *display.List
	Input *display.Field
}

// Open builds a session over st and initializes it from storage.
// On a load failure the session is still returned with an empty list.
func Open(ctx context.Context, st storage.Storage, logger *log.Logger) (*Session, error) {
	list := display.NewList()
	input := display.NewField("")
	store := taskstore.New(st, list,
		taskstore.WithInput(input),
		taskstore.WithLogger(logger),
	)
	s := &Session{Store: store, List: list, Input: input}
	return s, store.Initialize(ctx)
}

// Row returns the row at the 1-based position n.
func (s *Session) Row(n int) (*display.Row, bool) {
	return s.List.At(n)
}
