package trigger

import (
	"context"
	"errors"
	"strconv"
	"time"

	"syci/internal/domain"
	"syci/internal/execution"
)

// LocalChannel is the bounded, one-shot listener. It waits for the marker
// inside a mounted directory to change, runs the compare script once and
// stops. Without a change it gives up after the timeout.
type LocalChannel struct {
	watcher  *Watcher
	runner   execution.CommandRunner
	script   string
	mountDir string
	outPath  string
	timeout  time.Duration
}

// NewLocalChannel creates a listener for marker that reacts by running
// "script mountDir outPath timeoutMillis".
func NewLocalChannel(runner execution.CommandRunner, script, marker, mountDir, outPath string, interval, timeout time.Duration) *LocalChannel {
	return &LocalChannel{
		watcher:  NewWatcher(marker, interval, timeout),
		runner:   runner,
		script:   script,
		mountDir: mountDir,
		outPath:  outPath,
		timeout:  timeout,
	}
}

// Watcher exposes the underlying state machine.
func (c *LocalChannel) Watcher() *Watcher {
	return c.watcher
}

// Run performs the single observation cycle. It returns ErrTimeout when the
// marker never changed; the compare script's exit code is not inspected.
func (c *LocalChannel) Run(ctx context.Context) (domain.RunResult, error) {
	if err := c.watcher.Init(); err != nil {
		return domain.RunResult{}, err
	}

	if _, err := c.watcher.Wait(ctx); err != nil {
		return domain.RunResult{}, err
	}

	result := c.runner.Run(ctx, execution.Command{
		Script: c.script,
		Args:   []string{c.mountDir, c.outPath, strconv.FormatInt(c.timeout.Milliseconds(), 10)},
	})
	c.watcher.Finish()
	return result, nil
}

// IsTimeout reports whether err is the bounded channel giving up.
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}
