// Package display provides the in-memory display surface and input field
// the task store renders into.
package display

import "tasklist/internal/taskstore"

// Row is one rendered task row.
type Row struct {
	text      string
	completed bool
}

// Text returns the row's text content.
func (r *Row) Text() string { return r.text }

// Completed reports whether the row carries the completed marker.
func (r *Row) Completed() bool { return r.completed }

// SetCompleted sets or clears the completed marker.
func (r *Row) SetCompleted(completed bool) { r.completed = completed }

// List is an ordered container of rows.
type List struct {
	rows []*Row
}

// NewList returns an empty list.
func NewList() *List {
	return &List{}
}

// Rows returns the direct task-row children in display order.
func (l *List) Rows() []taskstore.Row {
	rows := make([]taskstore.Row, len(l.rows))
	for i, r := range l.rows {
		rows[i] = r
	}
	return rows
}

// Append adds a row at the end of the list and returns it.
func (l *List) Append(text string, completed bool) taskstore.Row {
	r := &Row{text: text, completed: completed}
	l.rows = append(l.rows, r)
	return r
}

// Len returns the number of rows.
func (l *List) Len() int { return len(l.rows) }

// At returns the row at the 1-based position n.
func (l *List) At(n int) (*Row, bool) {
	if n < 1 || n > len(l.rows) {
		return nil, false
	}
	return l.rows[n-1], true
}

// Field is a settable text input.
type Field struct {
	value string
}

// NewField returns a field holding value.
func NewField(value string) *Field {
	return &Field{value: value}
}

// Value returns the current text.
func (f *Field) Value() string { return f.value }

// SetValue replaces the current text.
func (f *Field) SetValue(value string) { f.value = value }
