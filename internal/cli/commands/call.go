package commands

import (
	"fmt"

	"syci/internal/config"
	"syci/internal/rpc"
	"syci/internal/ui"

	"github.com/spf13/cobra"
)

// CallCommand handles the call command
type CallCommand struct {
	config *config.Config
	logger *ui.Logger
}

// NewCallCommand creates a new CallCommand
func NewCallCommand(cfg *config.Config, logger *ui.Logger) *CallCommand {
	return &CallCommand{
		config: cfg,
		logger: logger,
	}
}

// Execute runs the command
func (cc *CallCommand) Execute(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if cc.config.Flags.Update {
		if err := uploadCompiler(ctx, cc.config, cc.logger); err != nil {
			return err
		}
	}

	client := rpc.NewClient(cc.config.ListenAddr)
	if err := client.Connect(ctx); err != nil {
		return err
	}
	defer client.Close()

	for _, path := range args {
		reply, err := client.CallTest(ctx, rpc.Request{
			Path:     path,
			Update:   cc.config.Flags.Update,
			FlagP:    cc.config.Flags.FlagP,
			Optimize: cc.config.Flags.Optimize,
		})
		if err != nil {
			return err
		}
		cc.logger.Infof("test %s:", path)
		fmt.Fprintln(cc.logger.Writer(), reply)
	}
	return nil
}
