package commands

import (
	"fmt"
	"strconv"
	"time"

	"syci/internal/config"
	"syci/internal/execution"
	"syci/internal/trigger"
	"syci/internal/ui"

	"github.com/spf13/cobra"
)

// ListenCommand handles the listen command
type ListenCommand struct {
	config *config.Config
	logger *ui.Logger
	runner execution.CommandRunner
}

// NewListenCommand creates a new ListenCommand
func NewListenCommand(cfg *config.Config, logger *ui.Logger) *ListenCommand {
	return &ListenCommand{
		config: cfg,
		logger: logger,
	}
}

// SetRunner replaces the shell runner used to start the compare script
func (lc *ListenCommand) SetRunner(runner execution.CommandRunner) {
	lc.runner = runner
}

// Execute runs the command
func (lc *ListenCommand) Execute(cmd *cobra.Command, args []string) error {
	mountDir, outPath := args[0], args[1]

	timeout := lc.config.WatchTimeout
	if len(args) > 2 {
		ms, err := strconv.Atoi(args[2])
		if err != nil || ms <= 0 {
			return fmt.Errorf("invalid timeout %q: expected a positive number of milliseconds", args[2])
		}
		timeout = time.Duration(ms) * time.Millisecond
	}

	runner := lc.runner
	if runner == nil {
		runner = execution.NewShellRunner(lc.config.Shell, "")
	}

	channel := trigger.NewLocalChannel(
		runner,
		lc.config.CompareScript,
		lc.config.MarkerPath(mountDir),
		mountDir,
		outPath,
		lc.config.LocalPollInterval,
		timeout,
	)
	channel.Watcher().OnTransition(func(from, to trigger.State) {
		lc.logger.Infof("%s -> %s", from, to)
	})

	result, err := channel.Run(cmd.Context())
	if trigger.IsTimeout(err) {
		lc.logger.Warnf("time out!")
		return nil
	}
	if err != nil {
		return err
	}

	if len(result.Output) > 0 {
		fmt.Fprint(lc.logger.Writer(), result.Output)
	}
	lc.logger.Successf("compared %s (exit %d)", outPath, result.ExitCode)
	return nil
}
