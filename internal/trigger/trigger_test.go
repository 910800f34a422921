package trigger

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"syci/internal/domain"
	"syci/internal/execution"
)

// recordingRunner records every command and answers with a fixed exit code.
type recordingRunner struct {
	mu       sync.Mutex
	calls    []execution.Command
	exitCode int
}

func (r *recordingRunner) Run(ctx context.Context, c execution.Command) domain.RunResult {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, c)
	now := time.Now()
	return domain.RunResult{Script: c.Script, Args: c.Args, ExitCode: r.exitCode, Start: now, End: now}
}

func (r *recordingRunner) Calls() []execution.Command {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]execution.Command(nil), r.calls...)
}

// newMarker creates a marker file with an old modification time so later
// touches are always distinguishable regardless of timestamp granularity.
func newMarker(t *testing.T, dir string) string {
	t.Helper()
	marker := filepath.Join(dir, "ci.info")
	if err := os.WriteFile(marker, nil, 0644); err != nil {
		t.Fatalf("failed to create marker: %v", err)
	}
	old := time.Now().Add(-time.Hour).Truncate(time.Second)
	if err := os.Chtimes(marker, old, old); err != nil {
		t.Fatalf("failed to age marker: %v", err)
	}
	return marker
}

// touch sets the marker's modification time to a value offset from the
// current one.
func touch(t *testing.T, marker string, offset time.Duration) {
	t.Helper()
	info, err := os.Stat(marker)
	if err != nil {
		t.Errorf("stat marker: %v", err)
		return
	}
	next := info.ModTime().Add(offset)
	if err := os.Chtimes(marker, next, next); err != nil {
		t.Errorf("touch marker: %v", err)
	}
}

// eventually polls cond until it holds or the deadline passes.
func eventually(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met before deadline")
		}
		time.Sleep(2 * time.Millisecond)
	}
}
