package domain

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestTestUnit_Args(t *testing.T) {
	unit := NewTestUnit("a", "a.sy")
	if got := unit.Args(); len(got) != 1 || got[0] != "a.sy" {
		t.Errorf("expected [a.sy], got %v", got)
	}

	unit.InputPath = "a.in"
	if got := unit.Args(); len(got) != 2 || got[1] != "a.in" {
		t.Errorf("expected [a.sy a.in], got %v", got)
	}

	if unit.Timeout != DefaultUnitTimeout {
		t.Errorf("expected default timeout %s, got %s", DefaultUnitTimeout, unit.Timeout)
	}
}

func TestTestUnit_Sidecar(t *testing.T) {
	unit := TestUnit{ExpectedOutputPath: "a.out", AssemblyPath: "a.s"}
	if unit.Sidecar(SidecarOutput) != "a.out" {
		t.Errorf("expected a.out, got %s", unit.Sidecar(SidecarOutput))
	}
	if unit.Sidecar(SidecarAssembly) != "a.s" {
		t.Errorf("expected a.s, got %s", unit.Sidecar(SidecarAssembly))
	}
	if SidecarOutput.Extension() != ".out" || SidecarAssembly.Extension() != ".s" {
		t.Error("unexpected sidecar extensions")
	}
}

func TestClassifyTarget(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.sy")
	if err := os.WriteFile(file, nil, 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	target, err := ClassifyTarget(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := target.(DirectoryTarget); !ok {
		t.Errorf("expected DirectoryTarget, got %T", target)
	}

	target, err = ClassifyTarget(file)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ft, ok := target.(FileTarget); !ok || ft.TargetPath() != file {
		t.Errorf("expected FileTarget(%s), got %#v", file, target)
	}

	if _, err := ClassifyTarget(filepath.Join(dir, "missing")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected ErrNotExist, got %v", err)
	}
}

func TestSummarize(t *testing.T) {
	results := []RunResult{
		{ExitCode: 0},
		{ExitCode: 1},
		{ExitCode: 0, Err: errors.New("spawn failed")},
		{ExitCode: 0},
	}
	summary := Summarize(results, time.Second)
	if summary.Total != 4 || summary.Passed != 2 || summary.Failed != 2 {
		t.Errorf("unexpected summary %+v", summary)
	}
	if summary.Duration != time.Second {
		t.Errorf("expected duration 1s, got %s", summary.Duration)
	}
}
