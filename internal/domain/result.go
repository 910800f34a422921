package domain

import "time"

// RunResult represents the outcome of one external script invocation
type RunResult struct {
	Unit     TestUnit  // Unit the script ran for, zero for non-unit scripts
	Script   string    // Script that was invoked
	Args     []string  // Positional arguments it was invoked with
	ExitCode int       // Process exit code, -1 if the process never started
	Output   string    // Combined stdout and stderr
	Err      error     // Error if execution failed
	Start    time.Time // When the process was spawned
	End      time.Time // When the process exited
}

// Passed reports whether the script exited cleanly.
func (r RunResult) Passed() bool {
	return r.Err == nil && r.ExitCode == 0
}

// Duration is the wall time the script took.
func (r RunResult) Duration() time.Duration {
	return r.End.Sub(r.Start)
}

// RunSummary contains aggregate counts for a batch
type RunSummary struct {
	Total    int
	Passed   int
	Failed   int
	Duration time.Duration
}

// Summarize counts passed and failed results.
func Summarize(results []RunResult, duration time.Duration) RunSummary {
	summary := RunSummary{Total: len(results), Duration: duration}
	for _, r := range results {
		if r.Passed() {
			summary.Passed++
		} else {
			summary.Failed++
		}
	}
	return summary
}
