package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"tasklist/internal/config"
	"tasklist/internal/exitcode"
	"tasklist/internal/output"
	"tasklist/internal/session"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `tasklist` (no args) and `tasklist list`.
type ListCmd struct {
	open bool
}

// SetOpen restricts output to open tasks (for testing).
func (c *ListCmd) SetOpen(open bool) {
	c.open = open
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List tasks" }
func (c *ListCmd) Usage() string     { return "tasklist list [--open]" }
func (c *ListCmd) NeedsStore() bool  { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.open, "open", false, "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, sess *session.Session, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	printed := 0
	// Numbers stay positional even when completed tasks are hidden,
	// so `toggle <n>` always matches what was shown.
	for i, task := range sess.Store.Tasks() {
		if c.open && task.Completed {
			continue
		}
		output.FormatTask(out, i+1, task)
		printed++
	}

	if printed == 0 && !cfg.Quiet {
		fmt.Fprintln(out, output.EmptyMessage)
	}
	return exitcode.Success
}
