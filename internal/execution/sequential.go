package execution

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"syci/internal/domain"
)

// TimeoutEnv carries the advisory unit timeout to the runner script.
const TimeoutEnv = "SYCI_TIMEOUT_MS"

// Options tweak a single batch
type Options struct {
	Env []string // Extra environment for every runner invocation
}

// SequentialExecutor runs units one at a time in the order given
type SequentialExecutor struct {
	runner   CommandRunner
	script   string
	progress Progress
}

// NewSequentialExecutor creates an executor that invokes script once per unit.
func NewSequentialExecutor(runner CommandRunner, script string) *SequentialExecutor {
	return &SequentialExecutor{
		runner: runner,
		script: script,
	}
}

// SetProgress sets the progress sink for the executor
func (e *SequentialExecutor) SetProgress(progress Progress) {
	e.progress = progress
}

// Execute runs every unit in order without options.
func (e *SequentialExecutor) Execute(ctx context.Context, units []domain.TestUnit) ([]domain.RunResult, time.Duration, error) {
	return e.ExecuteWithOptions(ctx, units, Options{})
}

// ExecuteWithOptions runs every unit in order, blocking on each spawn. A
// failing unit never stops the batch; only context cancellation does.
func (e *SequentialExecutor) ExecuteWithOptions(ctx context.Context, units []domain.TestUnit, opts Options) ([]domain.RunResult, time.Duration, error) {
	if len(units) == 0 {
		return nil, 0, nil
	}

	startTime := time.Now()
	results := make([]domain.RunResult, 0, len(units))
	var passed, failed int

	for _, unit := range units {
		if err := ctx.Err(); err != nil {
			e.finish()
			return results, time.Since(startTime), fmt.Errorf("batch interrupted after %d of %d units: %w", len(results), len(units), err)
		}

		env := append([]string{TimeoutEnv + "=" + strconv.FormatInt(unit.Timeout.Milliseconds(), 10)}, opts.Env...)
		result := e.runner.Run(ctx, Command{
			Script: e.script,
			Args:   unit.Args(),
			Env:    env,
		})
		result.Unit = unit
		results = append(results, result)

		if result.Passed() {
			passed++
		} else {
			failed++
		}
		if e.progress != nil {
			e.progress.Update(passed, failed)
		}
	}

	e.finish()
	return results, time.Since(startTime), nil
}

func (e *SequentialExecutor) finish() {
	if e.progress != nil {
		e.progress.Finish()
	}
}
