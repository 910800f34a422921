package execution

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"syci/internal/domain"
)

// Command describes one external script invocation
type Command struct {
	Script string   // Script path handed to the shell
	Args   []string // Positional arguments
	Env    []string // Extra KEY=VALUE pairs on top of the process environment
}

func (c Command) String() string {
	return strings.Join(append([]string{c.Script}, c.Args...), " ")
}

// CommandRunner spawns a script and waits for it to exit
type CommandRunner interface {
	Run(ctx context.Context, cmd Command) domain.RunResult
}

// ShellRunner runs scripts through a shell interpreter, e.g. "bash ./local_run.sh a.sy a.in"
type ShellRunner struct {
	shell string
	dir   string
}

// NewShellRunner creates a new ShellRunner. An empty dir runs in the current directory.
func NewShellRunner(shell, dir string) *ShellRunner {
	return &ShellRunner{shell: shell, dir: dir}
}

// Run executes the script and returns its combined output and exit code.
func (r *ShellRunner) Run(ctx context.Context, c Command) domain.RunResult {
	args := append([]string{c.Script}, c.Args...)
	cmd := exec.CommandContext(ctx, r.shell, args...)

	// Start with current environment
	cmd.Env = os.Environ()
	cmd.Env = append(cmd.Env, c.Env...)
	cmd.Dir = r.dir

	start := time.Now()
	output, err := cmd.CombinedOutput()
	end := time.Now()

	exitCode := 0
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		} else {
			exitCode = -1
		}
	}

	return domain.RunResult{
		Script:   c.Script,
		Args:     c.Args,
		ExitCode: exitCode,
		Output:   string(output),
		Err:      err,
		Start:    start,
		End:      end,
	}
}

// RunnerError reports a script that exited non-zero or failed to start.
type RunnerError struct {
	Script   string
	Args     []string
	ExitCode int
	Output   string
	Err      error
}

func (e *RunnerError) Error() string {
	return fmt.Sprintf("%s %s: exit code %d: %v", e.Script, strings.Join(e.Args, " "), e.ExitCode, e.Err)
}

func (e *RunnerError) Unwrap() error {
	return e.Err
}

// Check converts a failed result into a *RunnerError, mirroring a
// "check=true" subprocess call. Passing results return nil.
func Check(result domain.RunResult) error {
	if result.Passed() {
		return nil
	}
	err := result.Err
	if err == nil {
		err = fmt.Errorf("exit status %d", result.ExitCode)
	}
	return &RunnerError{
		Script:   result.Script,
		Args:     result.Args,
		ExitCode: result.ExitCode,
		Output:   result.Output,
		Err:      err,
	}
}
