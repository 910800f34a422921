package commands

import (
	"fmt"
	"os"

	"syci/internal/config"
	"syci/internal/discovery"
	"syci/internal/domain"
	"syci/internal/execution"
	"syci/internal/ui"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// RunCommand handles the run command
type RunCommand struct {
	config    *config.Config
	filter    *discovery.Filter
	formatter *ui.Formatter
	viewer    ui.Viewer
	logger    *ui.Logger
	runner    execution.CommandRunner
}

// NewRunCommand creates a new RunCommand
func NewRunCommand(
	cfg *config.Config,
	filter *discovery.Filter,
	formatter *ui.Formatter,
	viewer ui.Viewer,
	logger *ui.Logger,
) *RunCommand {
	return &RunCommand{
		config:    cfg,
		filter:    filter,
		formatter: formatter,
		viewer:    viewer,
		logger:    logger,
	}
}

// SetRunner replaces the shell runner used to start the local run script
func (rc *RunCommand) SetRunner(runner execution.CommandRunner) {
	rc.runner = runner
}

// Execute runs the command
func (rc *RunCommand) Execute(cmd *cobra.Command, args []string) error {
	resolver := discovery.NewResolver(rc.config.PathsToIgnore, domain.SidecarOutput)
	resolver.SetUnitTimeout(rc.config.UnitTimeout)

	// Discover units
	units, err := resolver.ResolveAll(args)
	if err != nil {
		return err
	}

	// Filter units
	units = rc.filter.FilterByName(units, rc.config.Flags.NameFilter)

	if len(units) == 0 {
		color.Yellow("No units to execute")
		return nil
	}

	rc.logger.Infof("test %v", args)

	runner := rc.runner
	if runner == nil {
		runner = execution.NewShellRunner(rc.config.Shell, "")
	}
	executor := execution.NewSequentialExecutor(runner, rc.config.LocalRunScript)

	// Create and set progress bar
	progressBar := ui.NewProgressBar(len(units), os.Stderr)
	executor.SetProgress(progressBar)

	// Execute units
	ctx := cmd.Context()
	results, duration, err := executor.Execute(ctx, units)
	if err != nil && ctx.Err() == nil {
		return err
	}
	fmt.Fprintln(rc.logger.Writer())

	if rc.config.Flags.Verbose {
		rc.formatter.PrintOutputs(results)
	}
	rc.formatter.PrintFailures(results)
	rc.formatter.PrintSummary(domain.Summarize(results, duration))

	if err != nil {
		rc.logger.Warnf("interrupted after %d of %d units", len(results), len(units))
		return err
	}

	if rc.config.Flags.Inspect {
		return rc.viewer.View(results)
	}

	rc.logger.Successf("finish")
	return nil
}
