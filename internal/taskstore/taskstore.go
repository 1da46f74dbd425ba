// Package taskstore keeps an ordered task list, renders it to a display
// surface and mirrors it to durable storage after every mutation.
//
// The display is the model: saves walk the rendered rows, so the stored
// value can never drift from what is shown.
package taskstore

import (
	"context"
	"io"
	"log"
	"strings"

	"tasklist/internal/storage"
)

// StorageKey is the single key the list is stored under.
const StorageKey = "tasks"

// Row is one rendered task. Implementations must be comparable
// (typically a pointer) so a row reference can be matched against the surface.
type Row interface {
	Text() string
	Completed() bool
	SetCompleted(completed bool)
}

// Surface is the container the rows are rendered into.
type Surface interface {
	// Rows returns the direct task-row children, top to bottom.
	Rows() []Row

	// Append adds a row at the end and returns it.
	Append(text string, completed bool) Row
}

// Input is the user-editable field holding pending task text.
type Input interface {
	Value() string
	SetValue(value string)
}

// Store owns the task list for one session. It is not safe for concurrent use;
// callers run one operation to completion before starting the next.
type Store struct {
	storage storage.Storage
	surface Surface
	input   Input
	logger  *log.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithInput wires the pending-text field used by Submit and cleared by AddTask.
func WithInput(in Input) Option {
	return func(s *Store) { s.input = in }
}

// WithLogger sets the debug logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a Store rendering into surface and persisting to st.
func New(st storage.Storage, surface Surface, opts ...Option) *Store {
	s := &Store{
		storage: st,
		surface: surface,
		logger:  log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize renders the stored list. A missing or malformed value renders
// nothing and is not an error. Only a failing storage read is returned.
// Nothing is written.
func (s *Store) Initialize(ctx context.Context) error {
	value, ok, err := s.storage.Get(ctx, StorageKey)
	if err != nil {
		s.logger.Printf("load failed: %v", err)
		return &StoreError{Op: "load", Err: err}
	}
	if !ok {
		s.logger.Printf("no stored tasks")
		return nil
	}

	tasks, err := Decode(value)
	if err != nil {
		s.logger.Printf("discarding malformed stored tasks: %v", err)
		return nil
	}

	for _, t := range tasks {
		s.surface.Append(t.Text, t.Completed)
	}
	s.logger.Printf("loaded %d tasks", len(tasks))
	return nil
}

// AddTask appends a task with the trimmed text of raw and saves the list.
// Blank input is ignored: added is false, nothing is rendered or written
// and the input field keeps its value.
//
// If the save fails the row stays rendered and a *StoreError is returned.
func (s *Store) AddTask(ctx context.Context, raw string) (added bool, err error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		s.logger.Printf("ignoring blank task")
		return false, nil
	}

	s.surface.Append(text, false)
	if s.input != nil {
		s.input.SetValue("")
	}
	return true, s.saveTasks(ctx)
}

// Submit adds the text currently held by the wired input field.
func (s *Store) Submit(ctx context.Context) (bool, error) {
	if s.input == nil {
		return false, nil
	}
	return s.AddTask(ctx, s.input.Value())
}

// ToggleTaskCompletion flips the completed marker of target and saves the list.
// Targets that are not a direct row of the surface are ignored.
//
// If the save fails the toggle stays rendered and a *StoreError is returned.
func (s *Store) ToggleTaskCompletion(ctx context.Context, target any) (toggled bool, err error) {
	row, ok := s.findRow(target)
	if !ok {
		s.logger.Printf("ignoring toggle outside a task row")
		return false, nil
	}

	row.SetCompleted(!row.Completed())
	return true, s.saveTasks(ctx)
}

// Tasks returns the rendered list in display order.
func (s *Store) Tasks() []Task {
	rows := s.surface.Rows()
	tasks := make([]Task, len(rows))
	for i, r := range rows {
		tasks[i] = Task{Text: r.Text(), Completed: r.Completed()}
	}
	return tasks
}

func (s *Store) findRow(target any) (Row, bool) {
	row, ok := target.(Row)
	if !ok || row == nil {
		return nil, false
	}
	for _, r := range s.surface.Rows() {
		if r == row {
			return r, true
		}
	}
	return nil, false
}

// saveTasks overwrites the stored value with a snapshot of the rendered rows.
func (s *Store) saveTasks(ctx context.Context) error {
	tasks := s.Tasks()
	value, err := Encode(tasks)
	if err != nil {
		return &StoreError{Op: "save", Err: err}
	}
	if err := s.storage.Set(ctx, StorageKey, value); err != nil {
		s.logger.Printf("save failed: %v", err)
		return &StoreError{Op: "save", Err: err}
	}
	s.logger.Printf("saved %d tasks", len(tasks))
	return nil
}
