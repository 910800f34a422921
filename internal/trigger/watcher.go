// Package trigger implements the marker-file trigger protocol: a process
// waits for the modification time of a marker file to change and reacts.
//
// Only the timestamp is observed. Two touches within one poll interval are
// seen as a single trigger and nothing is queued.
package trigger

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"
	"time"

	"code.cloudfoundry.org/clock"
)

// State is a step of the watcher state machine.
type State int

const (
	// Waiting polls the marker for a timestamp change.
	Waiting State = iota
	// Triggered means a change was observed and the reaction is running.
	Triggered
	// Done is terminal for the bounded channel after its one reaction.
	Done
	// TimedOut is terminal for the bounded channel when nothing changed in time.
	TimedOut
)

func (s State) String() string {
	switch s {
	case Waiting:
		return "WAITING"
	case Triggered:
		return "TRIGGERED"
	case Done:
		return "DONE"
	case TimedOut:
		return "TIMED_OUT"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

var (
	// ErrMarkerNotFound is returned when the marker is missing at start.
	ErrMarkerNotFound = errors.New("marker file not found")
	// ErrTimeout is returned by a bounded watcher whose marker never changed.
	ErrTimeout = errors.New("timed out waiting for marker change")
)

// Watcher observes the modification time of a single marker file.
type Watcher struct {
	marker   string
	interval time.Duration
	timeout  time.Duration // zero waits forever
	clk      clock.Clock

	mu       sync.Mutex // guards baseline and state for observers
	baseline time.Time
	started  time.Time
	state    State

	onTransition func(from, to State)
}

// NewWatcher creates a watcher polling marker every interval. A zero
// timeout makes it unbounded.
func NewWatcher(marker string, interval, timeout time.Duration) *Watcher {
	return &Watcher{
		marker:   marker,
		interval: interval,
		timeout:  timeout,
		clk:      clock.NewClock(),
		state:    Waiting,
	}
}

// SetClock replaces the wall clock, used by tests.
func (w *Watcher) SetClock(clk clock.Clock) {
	w.clk = clk
}

// OnTransition registers a callback invoked on every state change.
func (w *Watcher) OnTransition(fn func(from, to State)) {
	w.onTransition = fn
}

// Marker returns the watched path.
func (w *Watcher) Marker() string {
	return w.marker
}

// State returns the current state.
func (w *Watcher) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Baseline returns the last accepted modification time.
func (w *Watcher) Baseline() time.Time {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.baseline
}

// Init records the marker's current modification time as the baseline and
// starts the timeout clock.
func (w *Watcher) Init() error {
	mtime, err := w.modTime()
	if err != nil {
		return err
	}
	w.mu.Lock()
	w.baseline = mtime
	w.started = w.clk.Now()
	w.state = Waiting
	w.mu.Unlock()
	return nil
}

// Wait polls until the marker's modification time differs from the
// baseline and returns the observed time. The timeout, if any, bounds the
// total wall time since Init, not the time since the last poll.
func (w *Watcher) Wait(ctx context.Context) (time.Time, error) {
	for {
		mtime, err := w.modTime()
		if err != nil {
			return time.Time{}, err
		}
		if !mtime.Equal(w.Baseline()) {
			w.transition(Triggered)
			return mtime, nil
		}
		if w.timeout > 0 && w.clk.Since(w.started) > w.timeout {
			w.transition(TimedOut)
			return time.Time{}, fmt.Errorf("%w after %s", ErrTimeout, w.timeout)
		}

		timer := w.clk.NewTimer(w.interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return time.Time{}, ctx.Err()
		case <-timer.C():
		}
	}
}

// Rearm accepts observed as the new baseline and returns to Waiting.
func (w *Watcher) Rearm(observed time.Time) {
	w.mu.Lock()
	w.baseline = observed
	w.mu.Unlock()
	w.transition(Waiting)
}

// Finish marks the one-shot reaction as complete.
func (w *Watcher) Finish() {
	w.transition(Done)
}

func (w *Watcher) transition(to State) {
	w.mu.Lock()
	from := w.state
	w.state = to
	w.mu.Unlock()
	if w.onTransition != nil && from != to {
		w.onTransition(from, to)
	}
}

func (w *Watcher) modTime() (time.Time, error) {
	info, err := os.Stat(w.marker)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return time.Time{}, fmt.Errorf("%w: %s", ErrMarkerNotFound, w.marker)
		}
		return time.Time{}, fmt.Errorf("stat marker %s: %w", w.marker, err)
	}
	return info.ModTime(), nil
}
