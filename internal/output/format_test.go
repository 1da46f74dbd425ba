package output

import (
	"bytes"
	"testing"

	"tasklist/internal/taskstore"
)

func TestFormatTask(t *testing.T) {
	var buf bytes.Buffer
	FormatTask(&buf, 3, taskstore.Task{Text: "buy milk"})
	if buf.String() != "   3  [ ] buy milk\n" {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestFormatTask_CompletedMultiline(t *testing.T) {
	var buf bytes.Buffer
	FormatTask(&buf, 12, taskstore.Task{Text: "two\r\nlines", Completed: true})
	want := "  12  [x] two  lines\n"
	if buf.String() != want {
		t.Errorf("expected %q, got %q", want, buf.String())
	}
}
