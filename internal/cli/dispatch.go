// Package cli parses the command line and runs one command per invocation.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"strings"

	"tasklist/internal/commands"
	"tasklist/internal/config"
	"tasklist/internal/exitcode"
	"tasklist/internal/session"
	"tasklist/internal/storage"
)

// StorageFactory opens the storage backend for cfg.
// Used to inject the backend during dispatch.
type StorageFactory func(ctx context.Context, cfg *config.Config) (storage.Storage, error)

// EnvFunc reads environment overrides.
type EnvFunc func() (config.Env, error)

// Dispatcher handles command-line parsing and dispatch.
type Dispatcher struct {
	registry *commands.Registry
	factory  StorageFactory
	env      EnvFunc
}

// NewDispatcher creates a new dispatcher with the given registry and storage factory.
func NewDispatcher(registry *commands.Registry, factory StorageFactory) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		factory:  factory,
		env:      config.FromEnv,
	}
}

// WithEnv replaces the environment reader (for testing).
func (d *Dispatcher) WithEnv(env EnvFunc) *Dispatcher {
	d.env = env
	return d
}

// Run parses arguments and dispatches to the appropriate command.
// Returns the exit code.
func (d *Dispatcher) Run(ctx context.Context, args []string, out, errOut io.Writer) int {
	// No args -> dispatch to "list" command with no args
	if len(args) == 0 {
		return d.dispatch(ctx, "list", nil, out, errOut)
	}

	cmdName := args[0]

	// If first token starts with -, it's an error (flags require a command)
	if strings.HasPrefix(cmdName, "-") {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}

	return d.dispatch(ctx, cmdName, args[1:], out, errOut)
}

func (d *Dispatcher) dispatch(ctx context.Context, cmdName string, args []string, out, errOut io.Writer) int {
	cmd, ok := d.registry.Find(cmdName)
	if !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}
	return d.dispatchCommand(ctx, cmd, args, out, errOut)
}

func (d *Dispatcher) dispatchCommand(ctx context.Context, cmd commands.Command, args []string, out, errOut io.Writer) int {
	envCfg, err := d.env()
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.ConfigError
	}

	// Create flag set with custom error handling
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard) // We handle errors ourselves

	// Common flags, defaulting to the environment
	var configDir, backend string
	var quiet, debug bool

	fs.StringVar(&configDir, "config", envCfg.ConfigDir, "")
	fs.StringVar(&backend, "backend", envCfg.Backend, "")
	fs.BoolVar(&quiet, "quiet", false, "")
	fs.BoolVar(&debug, "debug", envCfg.Debug, "")

	// Register command-specific flags
	cmd.RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		fmt.Fprintln(errOut, flagErrorMessage(err))
		return exitcode.UserError
	}

	// Check if first positional arg starts with - (should have been parsed as flag)
	positionalArgs := fs.Args()
	if len(positionalArgs) > 0 && strings.HasPrefix(positionalArgs[0], "-") {
		fmt.Fprintf(errOut, "error: unknown flag: %s\n", positionalArgs[0])
		return exitcode.UserError
	}

	cfg, err := config.New(configDir, backend)
	if err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.ConfigError
	}
	cfg.Quiet = quiet
	cfg.Debug = debug

	logger := log.New(io.Discard, "", 0)
	if cfg.Debug {
		logger = log.New(errOut, "debug: ", 0)
	}

	if !cmd.NeedsStore() {
		return cmd.Run(ctx, cfg, nil, positionalArgs, out, errOut)
	}

	st, err := d.factory(ctx, cfg)
	if err != nil {
		fmt.Fprintf(errOut, "error: storage error: %v\n", err)
		return exitcode.StorageError
	}
	if closer, ok := st.(io.Closer); ok {
		defer closer.Close()
	}
	logger.Printf("backend %s in %s", cfg.Backend, cfg.Dir)

	sess, err := session.Open(ctx, st, logger)
	if err != nil {
		fmt.Fprintf(errOut, "error: storage error: %v\n", err)
		return exitcode.StorageError
	}

	return cmd.Run(ctx, cfg, sess, positionalArgs, out, errOut)
}

// flagErrorMessage turns a flag package error into the CLI's error line.
func flagErrorMessage(err error) string {
	if errors.Is(err, flag.ErrHelp) {
		return "error: unknown flag: -help"
	}

	errStr := err.Error()
	switch {
	case strings.HasPrefix(errStr, "flag needs an argument:"):
		flagName := strings.TrimSpace(strings.TrimPrefix(errStr, "flag needs an argument:"))
		return "error: flag needs an argument: " + flagName
	case strings.HasPrefix(errStr, "flag provided but not defined: "):
		return "error: unknown flag: " + strings.TrimPrefix(errStr, "flag provided but not defined: ")
	default:
		return "error: " + errStr
	}
}
