package commands

import (
	"context"

	"syci/internal/config"
	"syci/internal/deploy"
	"syci/internal/ui"

	"github.com/spf13/cobra"
)

// DeployCommand handles the deploy command
type DeployCommand struct {
	config *config.Config
	logger *ui.Logger
}

// NewDeployCommand creates a new DeployCommand
func NewDeployCommand(cfg *config.Config, logger *ui.Logger) *DeployCommand {
	return &DeployCommand{
		config: cfg,
		logger: logger,
	}
}

// Execute runs the command
func (dc *DeployCommand) Execute(cmd *cobra.Command, args []string) error {
	return uploadCompiler(cmd.Context(), dc.config, dc.logger)
}

func uploadCompiler(ctx context.Context, cfg *config.Config, logger *ui.Logger) error {
	uploader, err := deploy.NewDockerUploader(cfg.Container, cfg.CompilerPath, cfg.ContainerCompilerPath)
	if err != nil {
		return err
	}
	defer uploader.Close()

	logger.Infof("update compiler %s -> %s:%s", cfg.CompilerPath, cfg.Container, uploader.Destination())
	return uploader.Upload(ctx)
}
