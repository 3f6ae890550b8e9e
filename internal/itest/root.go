//go:build integration

package itest

import (
	"os"
	"path/filepath"
	"testing"
)

// mustRepoRoot walks up from the test's working directory until it
// finds go.mod, so the CLI can be started with `go run ./cmd/scriptgate`
// regardless of which package the test binary runs in.
func mustRepoRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatalf("no go.mod above %s; run the integration tests from inside the scriptgate tree", dir)
		}
		dir = parent
	}
}
