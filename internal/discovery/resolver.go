package discovery

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"syci/internal/domain"
)

// Resolver groups fixture files into test units
type Resolver struct {
	skipDirs map[string]bool
	sidecar  domain.SidecarKind
	timeout  time.Duration
}

// NewResolver creates a new Resolver that attaches the given sidecar kind
// and skips the given directory names.
func NewResolver(skipDirs []string, sidecar domain.SidecarKind) *Resolver {
	skipMap := make(map[string]bool)
	for _, dir := range skipDirs {
		skipMap[dir] = true
	}
	return &Resolver{
		skipDirs: skipMap,
		sidecar:  sidecar,
		timeout:  domain.DefaultUnitTimeout,
	}
}

// SetUnitTimeout sets the advisory timeout stamped on every resolved unit.
func (r *Resolver) SetUnitTimeout(d time.Duration) {
	r.timeout = d
}

// Sidecar returns the sidecar kind this resolver attaches.
func (r *Resolver) Sidecar() domain.SidecarKind {
	return r.sidecar
}

// Resolve classifies root and resolves it.
func (r *Resolver) Resolve(root string) ([]domain.TestUnit, error) {
	target, err := domain.ClassifyTarget(filepath.Clean(root))
	if err != nil {
		return nil, resolutionError(root, err)
	}
	return r.ResolveTarget(target)
}

// ResolveAll resolves several roots in order and concatenates their units.
// The first failure aborts the whole call.
func (r *Resolver) ResolveAll(roots []string) ([]domain.TestUnit, error) {
	var all []domain.TestUnit
	for _, root := range roots {
		units, err := r.Resolve(root)
		if err != nil {
			return nil, err
		}
		all = append(all, units...)
	}
	return all, nil
}

// ResolveTarget produces the ordered units for an already classified target.
func (r *Resolver) ResolveTarget(target domain.Target) ([]domain.TestUnit, error) {
	switch t := target.(type) {
	case domain.DirectoryTarget:
		return r.resolveDir(t.Path)
	case domain.FileTarget:
		return []domain.TestUnit{r.resolveFile(t.Path)}, nil
	default:
		return nil, fmt.Errorf("unsupported target %T", target)
	}
}

// resolveFile treats path as a source and attaches sidecars that exist on disk.
func (r *Resolver) resolveFile(path string) domain.TestUnit {
	base := strings.TrimSuffix(path, filepath.Ext(path))
	unit := domain.NewTestUnit(filepath.Base(base), path)
	unit.Timeout = r.timeout

	if isRegularFile(base + domain.InputExt) {
		unit.InputPath = base + domain.InputExt
	}
	if sidecar := base + r.sidecar.Extension(); isRegularFile(sidecar) {
		r.attachSidecar(&unit, sidecar)
	}
	return unit
}

func (r *Resolver) resolveDir(root string) ([]domain.TestUnit, error) {
	sources := make(map[string]bool)
	inputs := make(map[string]bool)
	sidecars := make(map[string]bool)
	sidecarExt := r.sidecar.Extension()

	// WalkDir does not descend into a symlinked root, so walk its target
	// and report paths under root.
	walkRoot, err := filepath.EvalSymlinks(root)
	if err != nil {
		return nil, resolutionError(root, err)
	}

	err = filepath.WalkDir(walkRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if path != walkRoot && r.skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}

		if !isFixtureFile(path, d) {
			return nil
		}

		rel, err := filepath.Rel(walkRoot, path)
		if err != nil {
			return err
		}
		ext := filepath.Ext(rel)
		base := filepath.Join(root, strings.TrimSuffix(rel, ext))
		switch ext {
		case domain.SourceExt:
			sources[base] = true
		case domain.InputExt:
			inputs[base] = true
		case sidecarExt:
			sidecars[base] = true
		}
		return nil
	})
	if err != nil {
		return nil, resolutionError(root, err)
	}

	byName := make(map[string]domain.TestUnit, len(sources))
	names := make([]string, 0, len(sources))
	for base := range sources {
		name := unitName(root, base)
		unit := domain.NewTestUnit(name, base+domain.SourceExt)
		unit.Timeout = r.timeout
		if inputs[base] {
			unit.InputPath = base + domain.InputExt
		}
		if sidecars[base] {
			r.attachSidecar(&unit, base+sidecarExt)
		}
		byName[name] = unit
		names = append(names, name)
	}

	// Byte-wise ascending order is the execution order
	sort.Strings(names)

	units := make([]domain.TestUnit, 0, len(names))
	for _, name := range names {
		units = append(units, byName[name])
	}
	return units, nil
}

func (r *Resolver) attachSidecar(unit *domain.TestUnit, path string) {
	if r.sidecar == domain.SidecarAssembly {
		unit.AssemblyPath = path
	} else {
		unit.ExpectedOutputPath = path
	}
}

// unitName is the basename relative to root, slash separated.
func unitName(root, base string) string {
	rel, err := filepath.Rel(root, base)
	if err != nil {
		return filepath.ToSlash(base)
	}
	return filepath.ToSlash(rel)
}

// isFixtureFile accepts regular files and symlinks to regular files.
func isFixtureFile(path string, d fs.DirEntry) bool {
	if d.Type().IsRegular() {
		return true
	}
	if d.Type()&fs.ModeSymlink != 0 {
		return isRegularFile(path)
	}
	return false
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
