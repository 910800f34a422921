package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

// Config holds all configuration for the application
type Config struct {
	// Script settings
	Shell           string
	LocalRunScript  string
	RemoteRunScript string
	CompareScript   string

	// Timing settings
	UnitTimeout        time.Duration
	WatchTimeout       time.Duration
	LocalPollInterval  time.Duration
	RemotePollInterval time.Duration

	// Signal channel settings
	MarkerName       string
	RemoteMarkerPath string
	RemoteTestDir    string

	// Paths to ignore when resolving
	PathsToIgnore []string

	// gRPC settings
	ListenAddr string

	// Deploy settings
	Container             string
	CompilerPath          string
	ContainerCompilerPath string

	// Command flags
	Flags Flags
}

// Flags holds command-line flags
type Flags struct {
	ConfigFile string
	NameFilter string
	Verbose    bool
	Inspect    bool
	Assembly   bool
	Update     bool
	FlagP      bool
	Optimize   bool
}

// fileConfig mirrors the YAML layout. Durations are in milliseconds.
type fileConfig struct {
	Shell                 string   `yaml:"shell"`
	LocalRunScript        string   `yaml:"local_run_script"`
	RemoteRunScript       string   `yaml:"remote_run_script"`
	CompareScript         string   `yaml:"compare_script"`
	UnitTimeoutMs         int      `yaml:"unit_timeout_ms"`
	WatchTimeoutMs        int      `yaml:"watch_timeout_ms"`
	LocalPollMs           int      `yaml:"local_poll_ms"`
	RemotePollMs          int      `yaml:"remote_poll_ms"`
	MarkerName            string   `yaml:"marker_name"`
	RemoteMarkerPath      string   `yaml:"remote_marker_path"`
	RemoteTestDir         string   `yaml:"remote_test_dir"`
	PathsToIgnore         []string `yaml:"paths_to_ignore"`
	ListenAddr            string   `yaml:"listen_addr"`
	Container             string   `yaml:"container"`
	CompilerPath          string   `yaml:"compiler_path"`
	ContainerCompilerPath string   `yaml:"container_compiler_path"`
}

// New creates a new Config with defaults
func New() *Config {
	cfg := &Config{
		Shell:                 DefaultShell,
		LocalRunScript:        DefaultLocalRunScript,
		RemoteRunScript:       DefaultRemoteRunScript,
		CompareScript:         DefaultCompareScript,
		UnitTimeout:           DefaultUnitTimeout,
		WatchTimeout:          DefaultWatchTimeout,
		LocalPollInterval:     DefaultLocalPollInterval,
		RemotePollInterval:    DefaultRemotePollInterval,
		MarkerName:            DefaultMarkerName,
		RemoteMarkerPath:      DefaultRemoteMarkerPath,
		RemoteTestDir:         DefaultRemoteTestDir,
		ListenAddr:            DefaultListenAddr,
		Container:             DefaultContainer,
		CompilerPath:          DefaultCompilerPath,
		ContainerCompilerPath: DefaultContainerCompilerPath,
	}
	// Copy default paths to ignore
	cfg.PathsToIgnore = make([]string, len(DefaultPathsToIgnore))
	copy(cfg.PathsToIgnore, DefaultPathsToIgnore)
	return cfg
}

// Load builds a config from defaults, the optional YAML file, the optional
// .env file and SYCI_* environment variables, in that order of precedence.
func Load(flags Flags) (*Config, error) {
	cfg := New()
	cfg.Flags = flags

	path := flags.ConfigFile
	if path == "" {
		path = DefaultConfigFile
	}
	if err := cfg.LoadFile(path); err != nil {
		// A missing default file is fine, an explicitly requested one is not
		if flags.ConfigFile != "" || !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	if err := godotenv.Load(DefaultEnvFile); err != nil {
		// .env file might not exist, that's okay - use environment variables
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", DefaultEnvFile, err)
		}
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile overlays settings from a YAML file.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	setString(&c.Shell, fc.Shell)
	setString(&c.LocalRunScript, fc.LocalRunScript)
	setString(&c.RemoteRunScript, fc.RemoteRunScript)
	setString(&c.CompareScript, fc.CompareScript)
	setMillis(&c.UnitTimeout, fc.UnitTimeoutMs)
	setMillis(&c.WatchTimeout, fc.WatchTimeoutMs)
	setMillis(&c.LocalPollInterval, fc.LocalPollMs)
	setMillis(&c.RemotePollInterval, fc.RemotePollMs)
	setString(&c.MarkerName, fc.MarkerName)
	setString(&c.RemoteMarkerPath, fc.RemoteMarkerPath)
	setString(&c.RemoteTestDir, fc.RemoteTestDir)
	setString(&c.ListenAddr, fc.ListenAddr)
	setString(&c.Container, fc.Container)
	setString(&c.CompilerPath, fc.CompilerPath)
	setString(&c.ContainerCompilerPath, fc.ContainerCompilerPath)
	if len(fc.PathsToIgnore) > 0 {
		c.PathsToIgnore = append([]string(nil), fc.PathsToIgnore...)
	}
	return nil
}

// ApplyEnv overlays SYCI_* environment variables.
func (c *Config) ApplyEnv() error {
	strs := map[string]*string{
		"SYCI_SHELL":              &c.Shell,
		"SYCI_LOCAL_RUN_SCRIPT":   &c.LocalRunScript,
		"SYCI_REMOTE_RUN_SCRIPT":  &c.RemoteRunScript,
		"SYCI_COMPARE_SCRIPT":     &c.CompareScript,
		"SYCI_MARKER_NAME":        &c.MarkerName,
		"SYCI_REMOTE_MARKER":      &c.RemoteMarkerPath,
		"SYCI_REMOTE_TEST_DIR":    &c.RemoteTestDir,
		"SYCI_LISTEN_ADDR":        &c.ListenAddr,
		"SYCI_CONTAINER":          &c.Container,
		"SYCI_COMPILER":           &c.CompilerPath,
		"SYCI_CONTAINER_COMPILER": &c.ContainerCompilerPath,
	}
	for key, dst := range strs {
		setString(dst, os.Getenv(key))
	}

	durations := map[string]*time.Duration{
		"SYCI_UNIT_TIMEOUT_MS":  &c.UnitTimeout,
		"SYCI_WATCH_TIMEOUT_MS": &c.WatchTimeout,
		"SYCI_LOCAL_POLL_MS":    &c.LocalPollInterval,
		"SYCI_REMOTE_POLL_MS":   &c.RemotePollInterval,
	}
	for key, dst := range durations {
		v := os.Getenv(key)
		if v == "" {
			continue
		}
		ms, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s=%q: %w", key, v, err)
		}
		*dst = time.Duration(ms) * time.Millisecond
	}

	if v := os.Getenv("SYCI_PATHS_TO_IGNORE"); v != "" {
		c.PathsToIgnore = strings.Split(v, ",")
	}
	return nil
}

// Validate rejects settings the harness cannot run with.
func (c *Config) Validate() error {
	if c.Shell == "" {
		return errors.New("shell must not be empty")
	}
	for name, script := range map[string]string{
		"local run script":  c.LocalRunScript,
		"remote run script": c.RemoteRunScript,
		"compare script":    c.CompareScript,
	} {
		if script == "" {
			return fmt.Errorf("%s must not be empty", name)
		}
	}
	for name, d := range map[string]time.Duration{
		"unit timeout":         c.UnitTimeout,
		"watch timeout":        c.WatchTimeout,
		"local poll interval":  c.LocalPollInterval,
		"remote poll interval": c.RemotePollInterval,
	} {
		if d <= 0 {
			return fmt.Errorf("%s must be positive, got %s", name, d)
		}
	}
	if c.MarkerName == "" {
		return errors.New("marker name must not be empty")
	}
	return nil
}

// MarkerPath returns the marker file inside a mounted directory
func (c *Config) MarkerPath(mountDir string) string {
	return filepath.Join(mountDir, c.MarkerName)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setMillis(dst *time.Duration, ms int) {
	if ms > 0 {
		*dst = time.Duration(ms) * time.Millisecond
	}
}
