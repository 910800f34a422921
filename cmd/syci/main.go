package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"syci/internal/cli"
	"syci/internal/cli/commands"
	"syci/internal/config"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	// Create root command
	rootCmd := &cobra.Command{
		Use:           "syci",
		Short:         "Compiler test harness",
		Long:          `A test harness for a compiler under development. Discover .sy fixtures with their .in/.out/.s sidecars, run them through the runner scripts one at a time, react to marker-file changes and serve runs over gRPC.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Create initial config with defaults
	cfg := config.New()

	// Create flags struct (will be populated by command flags)
	var flags cli.Flags

	// Create commands with dependencies
	cmds := commands.NewCommands(cfg)

	// Register all commands
	cmds.Register(rootCmd, &flags, cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Execute root command
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
