package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"tasklist/internal/config"
	"tasklist/internal/exitcode"
	"tasklist/internal/session"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "tasklist help" }
func (c *HelpCmd) NeedsStore() bool  { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, sess *session.Session, args []string, out, errOut io.Writer) int {
	fmt.Fprintln(out, "Usage:")
	fmt.Fprintf(out, "  %-26s %s\n", "tasklist", "List all tasks")
	for _, cmd := range DefaultRegistry.All() {
		synopsis := cmd.Synopsis()
		if aliases := cmd.Aliases(); len(aliases) > 0 {
			synopsis += " (alias: " + strings.Join(aliases, ", ") + ")"
		}
		fmt.Fprintf(out, "  %-26s %s\n", cmd.Usage(), synopsis)
	}
	fmt.Fprint(out, helpFooter)
	return exitcode.Success
}

const helpFooter = `
Common flags:
  --config <dir>      Override config directory
  --backend <name>    Storage backend: file (default) or sqlite
  --quiet             Suppress informational output
  --debug             Print debug logs to stderr

Environment:
  TASKLIST_CONFIG_DIR, TASKLIST_BACKEND, TASKLIST_DEBUG
`
