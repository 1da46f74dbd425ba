package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// UpdateEnv is the environment variable that rewrites golden files instead of comparing.
const UpdateEnv = "TASKLIST_GOLDEN_UPDATE"

// GoldenString compares output against testdata/<name>.golden.
// If TASKLIST_GOLDEN_UPDATE is set, the golden file is rewritten with got.
func GoldenString(t *testing.T, name string, got string) {
	t.Helper()

	goldenPath := filepath.Join("testdata", name+".golden")

	if os.Getenv(UpdateEnv) != "" {
		if err := os.MkdirAll("testdata", 0755); err != nil {
			t.Fatalf("failed to create testdata dir: %v", err)
		}
		if err := os.WriteFile(goldenPath, []byte(got), 0644); err != nil {
			t.Fatalf("failed to update golden file: %v", err)
		}
		return
	}

	want, err := os.ReadFile(goldenPath)
	if err != nil {
		t.Fatalf("failed to read golden file %s: %v\nGot:\n%s", goldenPath, err, got)
	}

	if got != string(want) {
		t.Errorf("output mismatch for %s\nWant:\n%s\nGot:\n%s", name, want, got)
	}
}
