package domain

import "time"

// DefaultUnitTimeout is the advisory per-unit limit handed to the local runner.
const DefaultUnitTimeout = 2000 * time.Millisecond

// Recognized fixture extensions.
const (
	SourceExt   = ".sy"
	InputExt    = ".in"
	OutputExt   = ".out"
	AssemblyExt = ".s"
)

// SidecarKind selects which expected-result sidecar the resolver attaches.
type SidecarKind int

const (
	// SidecarOutput attaches ".out" files (local test mode).
	SidecarOutput SidecarKind = iota
	// SidecarAssembly attaches ".s" files (remote test mode).
	SidecarAssembly
)

// Extension returns the file extension for the sidecar kind.
func (k SidecarKind) Extension() string {
	if k == SidecarAssembly {
		return AssemblyExt
	}
	return OutputExt
}

func (k SidecarKind) String() string {
	if k == SidecarAssembly {
		return "assembly"
	}
	return "output"
}

// TestUnit represents one test case, keyed by basename
type TestUnit struct {
	Name               string        // Basename relative to the scanned root, slash separated
	SourcePath         string        // Path to the .sy file (required)
	InputPath          string        // Path to the .in file, empty when absent
	ExpectedOutputPath string        // Path to the .out file, empty when absent
	AssemblyPath       string        // Path to the .s file, empty when absent
	Timeout            time.Duration // Advisory limit passed along to the runner
}

// NewTestUnit creates a unit for the given source with the default timeout.
func NewTestUnit(name, sourcePath string) TestUnit {
	return TestUnit{
		Name:       name,
		SourcePath: sourcePath,
		Timeout:    DefaultUnitTimeout,
	}
}

// HasInput reports whether a stdin fixture is attached.
func (u TestUnit) HasInput() bool {
	return u.InputPath != ""
}

// Args returns the positional runner arguments: source, then input if present.
func (u TestUnit) Args() []string {
	if u.HasInput() {
		return []string{u.SourcePath, u.InputPath}
	}
	return []string{u.SourcePath}
}

// Sidecar returns the path of the given sidecar kind, or "" when not attached.
func (u TestUnit) Sidecar(kind SidecarKind) string {
	if kind == SidecarAssembly {
		return u.AssemblyPath
	}
	return u.ExpectedOutputPath
}
