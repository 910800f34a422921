package commands

import (
	"fmt"

	"syci/internal/config"
	"syci/internal/discovery"
	"syci/internal/domain"
	"syci/internal/execution"
	"syci/internal/trigger"
	"syci/internal/ui"

	"github.com/spf13/cobra"
)

// SpyCommand handles the spy command
type SpyCommand struct {
	config *config.Config
	logger *ui.Logger
	runner execution.CommandRunner
}

// NewSpyCommand creates a new SpyCommand
func NewSpyCommand(cfg *config.Config, logger *ui.Logger) *SpyCommand {
	return &SpyCommand{
		config: cfg,
		logger: logger,
	}
}

// SetRunner replaces the shell runner used to start the remote run script
func (sc *SpyCommand) SetRunner(runner execution.CommandRunner) {
	sc.runner = runner
}

// Execute runs the command until interrupted or the runner fails
func (sc *SpyCommand) Execute(cmd *cobra.Command, args []string) error {
	runner := sc.runner
	if runner == nil {
		runner = execution.NewShellRunner(sc.config.Shell, "")
	}

	resolver := discovery.NewResolver(sc.config.PathsToIgnore, domain.SidecarAssembly)
	resolver.SetUnitTimeout(sc.config.UnitTimeout)

	watcher := trigger.NewWatcher(sc.config.RemoteMarkerPath, sc.config.RemotePollInterval, 0)
	channel := trigger.NewRemoteChannel(watcher, resolver, runner, sc.config.RemoteRunScript, sc.config.RemoteTestDir)
	channel.OnResult(func(r domain.RunResult) {
		sc.logger.Infof("test %s", r.Unit.SourcePath)
		if len(r.Output) > 0 {
			fmt.Fprint(sc.logger.Writer(), r.Output)
		}
	})

	sc.logger.Infof("watching %s", sc.config.RemoteMarkerPath)

	ctx := cmd.Context()
	err := channel.Run(ctx)
	if err != nil && ctx.Err() != nil {
		sc.logger.Warnf("stopped")
		return nil
	}
	return err
}
