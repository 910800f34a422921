package commands

import (
	"fmt"
	"net"

	"syci/internal/config"
	"syci/internal/discovery"
	"syci/internal/domain"
	"syci/internal/execution"
	"syci/internal/rpc"
	"syci/internal/ui"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
)

// ServeCommand handles the serve command
type ServeCommand struct {
	config *config.Config
	logger *ui.Logger
}

// NewServeCommand creates a new ServeCommand
func NewServeCommand(cfg *config.Config, logger *ui.Logger) *ServeCommand {
	return &ServeCommand{
		config: cfg,
		logger: logger,
	}
}

// Execute serves CallTest until the command context is cancelled
func (sc *ServeCommand) Execute(cmd *cobra.Command, args []string) error {
	lis, err := net.Listen("tcp", sc.config.ListenAddr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", sc.config.ListenAddr, err)
	}

	resolver := discovery.NewResolver(sc.config.PathsToIgnore, domain.SidecarOutput)
	resolver.SetUnitTimeout(sc.config.UnitTimeout)
	executor := execution.NewSequentialExecutor(execution.NewShellRunner(sc.config.Shell, ""), sc.config.LocalRunScript)

	server := rpc.NewServer(execution.NewPathRunner(resolver, executor))
	server.OnCall(func(req rpc.Request, err error) {
		if err != nil {
			sc.logger.Errorf("test %s: %v", req.Path, err)
			return
		}
		sc.logger.Infof("test %s", req.Path)
	})

	grpcServer := grpc.NewServer()
	rpc.RegisterTestService(grpcServer, server)

	sc.logger.Infof("listening on %s", lis.Addr())

	g, ctx := errgroup.WithContext(cmd.Context())
	g.Go(func() error {
		return grpcServer.Serve(lis)
	})
	g.Go(func() error {
		<-ctx.Done()
		grpcServer.GracefulStop()
		return nil
	})

	if err := g.Wait(); err != nil && err != grpc.ErrServerStopped {
		return err
	}
	sc.logger.Warnf("stopped")
	return nil
}
