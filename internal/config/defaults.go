package config

import "time"

const (
	// DefaultShell interprets the external scripts
	DefaultShell = "bash"
	// DefaultLocalRunScript runs one unit on the local host
	DefaultLocalRunScript = "./ci2/shell/local_run.sh"
	// DefaultRemoteRunScript runs one unit on the remote host
	DefaultRemoteRunScript = "./remote_run.sh"
	// DefaultCompareScript moves and compares outputs after a local trigger
	DefaultCompareScript = "./mv_cmp.sh"

	// DefaultUnitTimeout is the advisory per-unit limit
	DefaultUnitTimeout = 2000 * time.Millisecond
	// DefaultWatchTimeout bounds the local listener
	DefaultWatchTimeout = 20000 * time.Millisecond
	// DefaultLocalPollInterval is the local listener poll period
	DefaultLocalPollInterval = 50 * time.Millisecond
	// DefaultRemotePollInterval is the remote spy poll period
	DefaultRemotePollInterval = 200 * time.Millisecond

	// DefaultMarkerName is the marker file placed in a mounted directory
	DefaultMarkerName = "ci.info"
	// DefaultRemoteMarkerPath is the fixed marker watched by the remote spy
	DefaultRemoteMarkerPath = "./ci.info"
	// DefaultRemoteTestDir is the fixed directory the remote spy resolves
	DefaultRemoteTestDir = "./test"

	// DefaultListenAddr is where the gRPC test server listens
	DefaultListenAddr = "localhost:50051"
	// DefaultContainer is the docker container hosting the remote side
	DefaultContainer = "ci"
	// DefaultCompilerPath is the locally built compiler binary
	DefaultCompilerPath = "./target/debug/compiler"
	// DefaultContainerCompilerPath is where the compiler lands in the container
	DefaultContainerCompilerPath = "/test/data/compiler"

	// DefaultConfigFile is the optional YAML config in the working directory
	DefaultConfigFile = "syci.yaml"
	// DefaultEnvFile is the optional dotenv file in the working directory
	DefaultEnvFile = ".env"
)

// DefaultPathsToIgnore are directory names skipped while resolving fixtures.
// Nothing is skipped unless configured.
var DefaultPathsToIgnore = []string{}
