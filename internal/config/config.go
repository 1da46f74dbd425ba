// Package config handles the XDG configuration directory, storage paths and
// environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"

	"tasklist/internal/storage"
	"tasklist/internal/storage/filestore"
	"tasklist/internal/storage/sqlitestore"
)

// AppName is the application directory name.
const AppName = "tasklist"

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path. All stored data lives here.
	Dir string

	// Backend selects the storage backend ("file" or "sqlite").
	Backend string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool
}

// Env is the set of environment overrides.
type Env struct {
	ConfigDir string `env:"TASKLIST_CONFIG_DIR"`
	Backend   string `env:"TASKLIST_BACKEND" envDefault:"file"`
	Debug     bool   `env:"TASKLIST_DEBUG"`
}

// FromEnv parses the TASKLIST_* environment variables.
func FromEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	return e, nil
}

// New creates a Config with the default or specified config directory and backend.
// If configDir is empty, uses XDG_CONFIG_HOME/tasklist or $HOME/.config/tasklist.
// If backend is empty, uses the file backend.
func New(configDir, backend string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	if backend == "" {
		backend = storage.BackendFile
	}
	if !storage.ValidBackend(backend) {
		return nil, fmt.Errorf("unknown backend: %s", backend)
	}
	return &Config{Dir: dir, Backend: backend}, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// FilePath returns the path of the JSON file backend's data file.
func (c *Config) FilePath() string {
	return filepath.Join(c.Dir, filestore.DefaultFile)
}

// DatabasePath returns the path of the SQLite backend's database.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.Dir, sqlitestore.DefaultFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}
