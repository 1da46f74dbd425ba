package taskstore

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Task is a single to-do entry.
type Task struct {
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// Encode serializes tasks to the stored value format:
//
//	[{"text":"...","completed":false}, ...]
//
// A nil slice encodes as "[]".
func Encode(tasks []Task) (string, error) {
	if tasks == nil {
		tasks = []Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return "", fmt.Errorf("encode tasks: %w", err)
	}
	return string(data), nil
}

// record is one stored element with its fields left undecoded.
type record struct {
	Text      json.RawMessage `json:"text"`
	Completed json.RawMessage `json:"completed"`
}

// Decode parses a stored value. Only a value that is not a JSON array is an
// error. Elements are decoded one by one and loosely, so a single odd record
// never costs the rest of the list:
//   - a non-string text keeps its JSON literal ("text":7 becomes "7"),
//     a missing or null text becomes ""
//   - completed is true for true, non-zero numbers, non-empty strings,
//     objects and arrays
//   - an element that is not an object becomes an empty, open task
func Decode(value string) ([]Task, error) {
	var elems []json.RawMessage
	if err := json.Unmarshal([]byte(value), &elems); err != nil {
		return nil, fmt.Errorf("decode tasks: %w", err)
	}
	tasks := make([]Task, 0, len(elems))
	for _, elem := range elems {
		var r record
		if err := json.Unmarshal(elem, &r); err != nil {
			tasks = append(tasks, Task{})
			continue
		}
		tasks = append(tasks, Task{
			Text:      looseText(r.Text),
			Completed: looseBool(r.Completed),
		})
	}
	return tasks, nil
}

func looseText(raw json.RawMessage) string {
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var compact bytes.Buffer
	if err := json.Compact(&compact, raw); err != nil {
		return string(raw)
	}
	return compact.String()
}

func looseBool(raw json.RawMessage) bool {
	if len(raw) == 0 {
		return false
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return false
	}
	switch v := v.(type) {
	case bool:
		return v
	case float64:
		return v != 0
	case string:
		return v != ""
	case nil:
		return false
	default:
		return true
	}
}
