// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"tasklist/internal/taskstore"
)

// EmptyMessage is printed when the list has no tasks.
const EmptyMessage = "no tasks"

// FormatTask formats a task line.
// Format: "{N:>4}  [x] {TEXT}\n" (4-wide right-aligned number, two spaces, marker, text)
func FormatTask(w io.Writer, num int, task taskstore.Task) {
	fmt.Fprintf(w, "%4d  %s %s\n", num, marker(task.Completed), normalizeText(task.Text))
}

func marker(completed bool) string {
	if completed {
		return "[x]"
	}
	return "[ ]"
}

// normalizeText replaces newlines with spaces so each task stays on one line.
func normalizeText(text string) string {
	text = strings.ReplaceAll(text, "\r", " ")
	return strings.ReplaceAll(text, "\n", " ")
}
