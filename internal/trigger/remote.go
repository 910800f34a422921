package trigger

import (
	"context"
	"errors"
	"fmt"

	"syci/internal/discovery"
	"syci/internal/domain"
	"syci/internal/execution"
)

// ErrNoUnits is returned when a trigger fires but the fixture directory
// holds no source file to run.
var ErrNoUnits = errors.New("no test units found")

// RemoteChannel is the unbounded daemon. On every marker change it
// re-resolves a fixed directory and runs the first unit through the remote
// runner script. A failing runner terminates the daemon.
type RemoteChannel struct {
	watcher  *Watcher
	resolver *discovery.Resolver
	runner   execution.CommandRunner
	script   string
	testDir  string
	onResult func(domain.RunResult)
}

// NewRemoteChannel creates a daemon watching w and resolving testDir.
func NewRemoteChannel(w *Watcher, resolver *discovery.Resolver, runner execution.CommandRunner, script, testDir string) *RemoteChannel {
	return &RemoteChannel{
		watcher:  w,
		resolver: resolver,
		runner:   runner,
		script:   script,
		testDir:  testDir,
	}
}

// Watcher exposes the underlying state machine.
func (c *RemoteChannel) Watcher() *Watcher {
	return c.watcher
}

// OnResult registers a callback invoked after every runner invocation.
func (c *RemoteChannel) OnResult(fn func(domain.RunResult)) {
	c.onResult = fn
}

// Run loops until ctx is cancelled or a trigger cannot be served.
func (c *RemoteChannel) Run(ctx context.Context) error {
	if err := c.watcher.Init(); err != nil {
		return err
	}

	for {
		observed, err := c.watcher.Wait(ctx)
		if err != nil {
			return err
		}

		if err := c.serve(ctx); err != nil {
			return err
		}

		c.watcher.Rearm(observed)
	}
}

// serve runs the first unit in resolver order.
func (c *RemoteChannel) serve(ctx context.Context) error {
	units, err := c.resolver.Resolve(c.testDir)
	if err != nil {
		return err
	}
	if len(units) == 0 {
		return fmt.Errorf("%w in %s", ErrNoUnits, c.testDir)
	}

	unit := units[0]
	result := c.runner.Run(ctx, execution.Command{
		Script: c.script,
		Args:   unit.Args(),
	})
	result.Unit = unit
	if c.onResult != nil {
		c.onResult(result)
	}
	return execution.Check(result)
}
