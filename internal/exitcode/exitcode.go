// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, blank text, bad task reference).
	UserError = 1

	// ConfigError indicates a bad flag value, environment variable or config directory.
	ConfigError = 2

	// StorageError indicates the task list could not be read or written.
	StorageError = 3
)
