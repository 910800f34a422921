package discovery

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"syci/internal/domain"
)

// writeFixtures creates empty files under dir.
func writeFixtures(t *testing.T, dir string, files ...string) {
	t.Helper()
	for _, file := range files {
		fullPath := filepath.Join(dir, file)
		if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
			t.Fatalf("failed to create dir for %s: %v", file, err)
		}
		if err := os.WriteFile(fullPath, []byte("test"), 0644); err != nil {
			t.Fatalf("failed to create file %s: %v", file, err)
		}
	}
}

func unitNames(units []domain.TestUnit) []string {
	names := make([]string, 0, len(units))
	for _, u := range units {
		names = append(names, u.Name)
	}
	return names
}

func TestResolver_Resolve_Directory(t *testing.T) {
	dir := t.TempDir()
	writeFixtures(t, dir, "t1.sy", "t1.in", "t2.sy")

	resolver := NewResolver(nil, domain.SidecarOutput)
	units, err := resolver.Resolve(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []domain.TestUnit{
		{
			Name:       "t1",
			SourcePath: filepath.Join(dir, "t1.sy"),
			InputPath:  filepath.Join(dir, "t1.in"),
			Timeout:    domain.DefaultUnitTimeout,
		},
		{
			Name:       "t2",
			SourcePath: filepath.Join(dir, "t2.sy"),
			Timeout:    domain.DefaultUnitTimeout,
		},
	}
	if diff := cmp.Diff(want, units); diff != "" {
		t.Errorf("Resolve mismatch (-want +got):\n%s", diff)
	}
}

func TestResolver_Resolve_Grouping(t *testing.T) {
	dir := t.TempDir()
	writeFixtures(t, dir,
		"a.sy", "a.in", "a.out",
		"b.sy", "b.out",
		"c.in",  // input without source
		"d.out", // expected output without source
		"e.s",   // assembly is not the configured sidecar
		"e.sy",
		"notes.txt",
	)

	units, err := NewResolver(nil, domain.SidecarOutput).Resolve(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if diff := cmp.Diff([]string{"a", "b", "e"}, unitNames(units)); diff != "" {
		t.Fatalf("unit names mismatch (-want +got):\n%s", diff)
	}

	a, b, e := units[0], units[1], units[2]
	if a.InputPath == "" || a.ExpectedOutputPath == "" {
		t.Errorf("expected a to carry input and output sidecars, got %+v", a)
	}
	if b.InputPath != "" || b.ExpectedOutputPath != filepath.Join(dir, "b.out") {
		t.Errorf("expected b to carry only an output sidecar, got %+v", b)
	}
	if e.AssemblyPath != "" || e.ExpectedOutputPath != "" {
		t.Errorf("expected e to carry no sidecars in output mode, got %+v", e)
	}
}

func TestResolver_Resolve_AssemblyMode(t *testing.T) {
	dir := t.TempDir()
	writeFixtures(t, dir, "x.sy", "x.s", "x.out", "y.sy")

	units, err := NewResolver(nil, domain.SidecarAssembly).Resolve(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(units) != 2 {
		t.Fatalf("expected 2 units, got %d", len(units))
	}
	if units[0].AssemblyPath != filepath.Join(dir, "x.s") {
		t.Errorf("expected assembly sidecar on x, got %q", units[0].AssemblyPath)
	}
	if units[0].ExpectedOutputPath != "" {
		t.Errorf("output sidecar must not be attached in assembly mode, got %q", units[0].ExpectedOutputPath)
	}
}

func TestResolver_Resolve_Ordering(t *testing.T) {
	dir := t.TempDir()
	// Created out of order on purpose
	writeFixtures(t, dir, "b.sy", "a.sy", "c.sy", "B.sy", "a0.sy", "sub/a.sy")

	units, err := NewResolver(nil, domain.SidecarOutput).Resolve(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"B", "a", "a0", "b", "c", "sub/a"}
	if diff := cmp.Diff(want, unitNames(units)); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestResolver_Resolve_SidecarNeedsExactBasename(t *testing.T) {
	dir := t.TempDir()
	writeFixtures(t, dir, "one/t.sy", "two/t.in", "t.in")

	units, err := NewResolver(nil, domain.SidecarOutput).Resolve(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(units) != 1 || units[0].Name != "one/t" {
		t.Fatalf("expected single unit one/t, got %v", unitNames(units))
	}
	if units[0].HasInput() {
		t.Errorf("input from another directory must not attach, got %q", units[0].InputPath)
	}
}

func TestResolver_Resolve_SkipsOnlyConfiguredDirs(t *testing.T) {
	dir := t.TempDir()
	writeFixtures(t, dir, "keep.sy", "build/skip.sy", ".suite/hidden.sy", "target/k.sy", "node_modules/m.sy")

	t.Run("nothing skipped by default", func(t *testing.T) {
		units, err := NewResolver(nil, domain.SidecarOutput).Resolve(dir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := []string{".suite/hidden", "build/skip", "keep", "node_modules/m", "target/k"}
		if diff := cmp.Diff(want, unitNames(units)); diff != "" {
			t.Errorf("unit names mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("configured names skipped", func(t *testing.T) {
		units, err := NewResolver([]string{"build"}, domain.SidecarOutput).Resolve(dir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := []string{".suite/hidden", "keep", "node_modules/m", "target/k"}
		if diff := cmp.Diff(want, unitNames(units)); diff != "" {
			t.Errorf("unit names mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestResolver_Resolve_SymlinkedRoot(t *testing.T) {
	dir := t.TempDir()
	realDir := filepath.Join(dir, "real")
	writeFixtures(t, realDir, "t1.sy", "t1.in", "t2.sy")
	link := filepath.Join(dir, "link")
	if err := os.Symlink(realDir, link); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	units, err := NewResolver(nil, domain.SidecarOutput).Resolve(link)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"t1", "t2"}, unitNames(units)); diff != "" {
		t.Fatalf("unit names mismatch (-want +got):\n%s", diff)
	}
	if units[0].SourcePath != filepath.Join(link, "t1.sy") {
		t.Errorf("expected source under the given root, got %s", units[0].SourcePath)
	}
	if units[0].InputPath != filepath.Join(link, "t1.in") {
		t.Errorf("expected input under the given root, got %s", units[0].InputPath)
	}
}

func TestResolver_Resolve_SymlinkedFiles(t *testing.T) {
	dir := t.TempDir()
	writeFixtures(t, dir, "real/x.sy", "real/x.in", "real/x.out")
	for _, ext := range []string{".sy", ".in", ".out"} {
		if err := os.Symlink(filepath.Join(dir, "real", "x"+ext), filepath.Join(dir, "y"+ext)); err != nil {
			t.Skipf("symlinks not supported: %v", err)
		}
	}
	// A dangling link is not a fixture
	if err := os.Symlink(filepath.Join(dir, "missing.sy"), filepath.Join(dir, "z.sy")); err != nil {
		t.Fatalf("failed to create link: %v", err)
	}

	units, err := NewResolver(nil, domain.SidecarOutput).Resolve(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"real/x", "y"}, unitNames(units)); diff != "" {
		t.Fatalf("unit names mismatch (-want +got):\n%s", diff)
	}
	y := units[1]
	if y.InputPath != filepath.Join(dir, "y.in") || y.ExpectedOutputPath != filepath.Join(dir, "y.out") {
		t.Errorf("expected symlinked sidecars attached, got %+v", y)
	}
}

func TestResolver_Resolve_SingleFile(t *testing.T) {
	dir := t.TempDir()
	writeFixtures(t, dir, "with.sy", "with.in", "with.out", "without.sy")
	resolver := NewResolver(nil, domain.SidecarOutput)
	resolver.SetUnitTimeout(5 * time.Second)

	t.Run("input attached when it exists", func(t *testing.T) {
		units, err := resolver.Resolve(filepath.Join(dir, "with.sy"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := []domain.TestUnit{{
			Name:               "with",
			SourcePath:         filepath.Join(dir, "with.sy"),
			InputPath:          filepath.Join(dir, "with.in"),
			ExpectedOutputPath: filepath.Join(dir, "with.out"),
			Timeout:            5 * time.Second,
		}}
		if diff := cmp.Diff(want, units); diff != "" {
			t.Errorf("Resolve mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("input-less unit otherwise", func(t *testing.T) {
		units, err := resolver.Resolve(filepath.Join(dir, "without.sy"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(units) != 1 || units[0].HasInput() {
			t.Errorf("expected one input-less unit, got %+v", units)
		}
	})
}

func TestResolver_Resolve_Errors(t *testing.T) {
	resolver := NewResolver(nil, domain.SidecarOutput)

	t.Run("returns NotFound for non-existent root", func(t *testing.T) {
		units, err := resolver.Resolve("/non/existent/path")
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
		var resErr *ResolutionError
		if !errors.As(err, &resErr) {
			t.Errorf("expected *ResolutionError, got %T", err)
		}
		if units != nil {
			t.Errorf("expected no partial results, got %v", units)
		}
	})

	t.Run("returns PermissionDenied for unreadable directory", func(t *testing.T) {
		if os.Geteuid() == 0 {
			t.Skip("permissions are not enforced for root")
		}
		dir := t.TempDir()
		writeFixtures(t, dir, "a.sy", "locked/b.sy")
		locked := filepath.Join(dir, "locked")
		if err := os.Chmod(locked, 0); err != nil {
			t.Fatalf("chmod: %v", err)
		}
		defer os.Chmod(locked, 0755)

		units, err := resolver.Resolve(dir)
		if !errors.Is(err, ErrPermissionDenied) {
			t.Fatalf("expected ErrPermissionDenied, got %v", err)
		}
		if units != nil {
			t.Errorf("expected no partial results, got %v", units)
		}
	})

	t.Run("ResolveAll aborts on first failure", func(t *testing.T) {
		dir := t.TempDir()
		writeFixtures(t, dir, "a.sy")
		units, err := resolver.ResolveAll([]string{dir, "/non/existent/path"})
		if err == nil {
			t.Fatal("expected error")
		}
		if units != nil {
			t.Errorf("expected no partial results, got %v", units)
		}
	})
}

func TestResolver_ResolveAll(t *testing.T) {
	dir := t.TempDir()
	writeFixtures(t, dir, "suite/b.sy", "suite/a.sy", "single.sy")

	units, err := NewResolver(nil, domain.SidecarOutput).ResolveAll([]string{
		filepath.Join(dir, "suite"),
		filepath.Join(dir, "single.sy"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"a", "b", "single"}, unitNames(units)); diff != "" {
		t.Errorf("unit names mismatch (-want +got):\n%s", diff)
	}
}
