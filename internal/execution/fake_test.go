package execution

import (
	"context"
	"sync"
	"time"

	"syci/internal/domain"
)

// fakeRunner records invocations and returns scripted exit codes.
type fakeRunner struct {
	mu       sync.Mutex
	calls    []Command
	results  []domain.RunResult
	exitCode map[string]int // by first argument
	delay    time.Duration
	active   int
	overlap  bool
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{exitCode: make(map[string]int)}
}

func (f *fakeRunner) Run(ctx context.Context, c Command) domain.RunResult {
	f.mu.Lock()
	f.active++
	if f.active > 1 {
		f.overlap = true
	}
	f.calls = append(f.calls, c)
	f.mu.Unlock()

	start := time.Now()
	time.Sleep(f.delay)
	end := time.Now()

	f.mu.Lock()
	defer f.mu.Unlock()
	f.active--
	code := 0
	if len(c.Args) > 0 {
		code = f.exitCode[c.Args[0]]
	}
	res := domain.RunResult{
		Script:   c.Script,
		Args:     c.Args,
		ExitCode: code,
		Output:   "ran " + c.String(),
		Start:    start,
		End:      end,
	}
	f.results = append(f.results, res)
	return res
}

type countingProgress struct {
	updates  int
	passed   int
	failed   int
	finished bool
}

func (p *countingProgress) Update(successCount, failCount int) {
	p.updates++
	p.passed = successCount
	p.failed = failCount
}

func (p *countingProgress) Finish() {
	p.finished = true
}
