package commands

import (
	"os"

	"syci/internal/cli"
	"syci/internal/config"
	"syci/internal/discovery"
	"syci/internal/ui"

	"github.com/spf13/cobra"
)

// Commands holds all CLI commands
type Commands struct {
	Run    *RunCommand
	List   *ListCommand
	Listen *ListenCommand
	Spy    *SpyCommand
	Serve  *ServeCommand
	Call   *CallCommand
	Deploy *DeployCommand
}

// NewCommands creates all commands with dependencies. Settings are read
// from cfg when a command executes, after flags and config files are loaded.
func NewCommands(cfg *config.Config) *Commands {
	logger := ui.NewLogger(os.Stdout)
	formatter := ui.NewFormatter(os.Stdout)
	filter := discovery.NewFilter()
	viewer := ui.NewResultViewer()

	return &Commands{
		Run:    NewRunCommand(cfg, filter, formatter, viewer, logger),
		List:   NewListCommand(cfg, filter, formatter),
		Listen: NewListenCommand(cfg, logger),
		Spy:    NewSpyCommand(cfg, logger),
		Serve:  NewServeCommand(cfg, logger),
		Call:   NewCallCommand(cfg, logger),
		Deploy: NewDeployCommand(cfg, logger),
	}
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	rootCmd.PersistentFlags().StringVar(&flags.ConfigFile, "config", "", "Path to a YAML config file (default ./syci.yaml if present)")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		// Update config with flags after parsing
		loaded, err := config.Load(flags.ToConfigFlags())
		if err != nil {
			return err
		}
		*cfg = *loaded
		return nil
	}

	// Run command
	runCmd := &cobra.Command{
		Use:   "run <path>...",
		Short: "Run test units locally",
		Long:  "Resolve .sy/.in/.out fixtures under each path and run the local runner once per unit, in order",
		Args:  cobra.MinimumNArgs(1),
		RunE:  c.Run.Execute,
	}
	runCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter units by name pattern (supports wildcards, e.g., 'functional/*' or '*while*')")
	runCmd.Flags().BoolVarP(&flags.Verbose, "verbose", "v", false, "Print the output of every unit")
	runCmd.Flags().BoolVar(&flags.Inspect, "inspect", false, "Browse the results interactively when the run finishes")
	rootCmd.AddCommand(runCmd)

	// List command
	listCmd := &cobra.Command{
		Use:   "list <path>...",
		Short: "List resolved test units",
		Long:  "Resolve and list test units with their sidecar files without executing them",
		Args:  cobra.MinimumNArgs(1),
		RunE:  c.List.Execute,
	}
	listCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter units by name pattern (supports wildcards, e.g., 'functional/*' or '*while*')")
	listCmd.Flags().BoolVar(&flags.Assembly, "asm", false, "Attach .s sidecars instead of .out")
	rootCmd.AddCommand(listCmd)

	// Listen command
	listenCmd := &cobra.Command{
		Use:   "listen <mountDir> <outPath> [timeoutMillis]",
		Short: "Wait once for the marker in a mounted directory",
		Long:  "Watch <mountDir>/ci.info; when it changes run the compare script once, or give up after the timeout",
		Args:  cobra.RangeArgs(2, 3),
		RunE:  c.Listen.Execute,
	}
	rootCmd.AddCommand(listenCmd)

	// Spy command
	spyCmd := &cobra.Command{
		Use:   "spy",
		Short: "Run the remote trigger daemon",
		Long:  "Watch the fixed marker forever; on every change run the first unit of the fixed test directory through the remote runner",
		Args:  cobra.NoArgs,
		RunE:  c.Spy.Execute,
	}
	rootCmd.AddCommand(spyCmd)

	// Serve command
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve CallTest over gRPC",
		Args:  cobra.NoArgs,
		RunE:  c.Serve.Execute,
	}
	rootCmd.AddCommand(serveCmd)

	// Call command
	callCmd := &cobra.Command{
		Use:   "call <path>...",
		Short: "Run paths on a test server",
		Long:  "Send one CallTest request per path to the gRPC test server and print each report",
		Args:  cobra.MinimumNArgs(1),
		RunE:  c.Call.Execute,
	}
	callCmd.Flags().BoolVarP(&flags.Update, "update", "u", false, "Upload the compiler into the CI container first")
	callCmd.Flags().BoolVarP(&flags.FlagP, "p", "p", false, "Pass the -p flag through to the runner")
	callCmd.Flags().BoolVarP(&flags.Optimize, "optimize", "O", false, "Pass the -O flag through to the runner")
	rootCmd.AddCommand(callCmd)

	// Deploy command
	deployCmd := &cobra.Command{
		Use:   "deploy",
		Short: "Upload the compiler into the CI container",
		Args:  cobra.NoArgs,
		RunE:  c.Deploy.Execute,
	}
	rootCmd.AddCommand(deployCmd)
}
