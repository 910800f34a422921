package execution

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"syci/internal/discovery"
	"syci/internal/domain"
)

// PathRunner resolves and runs one path and renders the outcome as text.
// It backs the gRPC CallTest frontend.
type PathRunner struct {
	resolver *discovery.Resolver
	executor *SequentialExecutor

	// Serializes calls so units from concurrent requests never overlap
	mu sync.Mutex
}

// NewPathRunner creates a new PathRunner
func NewPathRunner(resolver *discovery.Resolver, executor *SequentialExecutor) *PathRunner {
	return &PathRunner{
		resolver: resolver,
		executor: executor,
	}
}

// RunPath resolves path, runs its units in order and returns a report.
// Resolution failures are returned as errors; unit failures are reported
// in the message only.
func (p *PathRunner) RunPath(ctx context.Context, path string, env ...string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	units, err := p.resolver.Resolve(path)
	if err != nil {
		return "", err
	}

	results, duration, err := p.executor.ExecuteWithOptions(ctx, units, Options{Env: env})
	if err != nil {
		return "", err
	}
	return FormatReport(path, results, domain.Summarize(results, duration)), nil
}

// FormatReport renders results as plain text, one line per unit followed
// by the output of failed units and a summary line.
func FormatReport(path string, results []domain.RunResult, summary domain.RunSummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "test %s\n", path)
	for _, r := range results {
		if r.Passed() {
			fmt.Fprintf(&b, "PASS %s (%s)\n", r.Unit.Name, r.Duration().Round(time.Millisecond))
			continue
		}
		fmt.Fprintf(&b, "FAIL %s (exit %d)\n", r.Unit.Name, r.ExitCode)
		if out := strings.TrimRight(r.Output, "\n"); out != "" {
			for _, line := range strings.Split(out, "\n") {
				fmt.Fprintf(&b, "    %s\n", line)
			}
		}
	}
	fmt.Fprintf(&b, "%d passed, %d failed, %d total in %s\n", summary.Passed, summary.Failed, summary.Total, summary.Duration.Round(time.Millisecond))
	return b.String()
}
