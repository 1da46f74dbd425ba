// Package filestore implements storage.Storage as a single JSON file.
//
// Values that are themselves JSON (other than bare strings) are embedded in
// the file as JSON, so the file stays readable and hand-editable:
//
//	{
//	  "tasks": [
//	    {
//	      "text": "buy milk",
//	      "completed": false
//	    }
//	  ]
//	}
//
// Any other value is stored as a JSON string.
package filestore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"tasklist/internal/storage"
)

// DefaultFile is the data filename inside the config directory.
const DefaultFile = "tasks.json"

// Store keeps every key in one JSON object on disk.
// No caching: each Get reads the file, each Set rewrites it.
type Store struct {
	path string
}

// New returns a Store backed by the file at path.
// The file is created lazily on the first Set.
func New(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	return &Store{path: filepath.Clean(path)}, nil
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Get implements storage.Storage.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	if key == "" {
		return "", false, storage.ErrKeyRequired
	}
	values, err := s.read()
	if err != nil {
		return "", false, err
	}
	raw, ok := values[key]
	if !ok {
		return "", false, nil
	}
	value, err := decodeValue(raw)
	if err != nil {
		return "", false, fmt.Errorf("failed to decode %s key %q: %w", s.path, key, err)
	}
	return value, true, nil
}

// Set implements storage.Storage.
// Read all → replace key → write temp file → rename over the original.
func (s *Store) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if key == "" {
		return storage.ErrKeyRequired
	}
	values, err := s.read()
	if err != nil {
		return err
	}
	raw, err := encodeValue(value)
	if err != nil {
		return err
	}
	values[key] = raw
	return s.write(values)
}

// encodeValue embeds compact JSON values as-is and quotes everything else,
// so Get returns exactly what Set stored. A JSON string is quoted too so it
// reads back with its quotes.
func encodeValue(value string) (json.RawMessage, error) {
	if value != "" && !strings.HasPrefix(value, `"`) {
		var compact bytes.Buffer
		if err := json.Compact(&compact, []byte(value)); err == nil && compact.String() == value {
			return json.RawMessage(value), nil
		}
	}
	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("failed to encode value: %w", err)
	}
	return data, nil
}

// decodeValue reverses encodeValue. Embedded JSON comes back compacted,
// which also covers values reformatted by hand.
func decodeValue(raw json.RawMessage) (string, error) {
	if bytes.HasPrefix(raw, []byte(`"`)) {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", err
		}
		return s, nil
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// read loads the key map. A missing or empty file holds no keys.
func (s *Store) read() (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]json.RawMessage{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.path, err)
	}
	values := map[string]json.RawMessage{}
	if len(bytes.TrimSpace(data)) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", s.path, err)
	}
	return values, nil
}

func (s *Store) write(values map[string]json.RawMessage) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(values); err != nil {
		return fmt.Errorf("failed to encode values: %w", err)
	}
	data := bytes.TrimSuffix(buf.Bytes(), []byte("\n"))

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to chmod temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", s.path, err)
	}
	return nil
}
