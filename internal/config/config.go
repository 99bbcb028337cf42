// Package config provides configuration management for the Reelpack Agent.
// Configuration is loaded from environment variables with sensible defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

const (
	// Default values
	DefaultPort     = 8790
	DefaultLogLevel = "info"
	DefaultDataDir  = ".reelpack"

	// Environment variable names
	EnvPort       = "REELPACK_PORT"
	EnvLogLevel   = "REELPACK_LOG_LEVEL"
	EnvDataDir    = "REELPACK_DATA_DIR"
	EnvOutputRoot = "REELPACK_OUTPUT_ROOT"
	EnvVoiceDir   = "REELPACK_VOICE_DIR"
	EnvFFmpeg     = "REELPACK_FFMPEG"
	EnvHeadless   = "REELPACK_HEADLESS"

	// Database filename
	DBFilename = "reelpack.db"
)

// Config defines the application configuration interface
type Config interface {
	Port() int
	LogLevel() string
	DataDir() string
	DBPath() string
	OutputRoot() string
	VoiceDir() string
	FFmpegPath() string
	Headless() bool
}

// EnvConfig reads configuration from environment variables
type EnvConfig struct {
	port       int
	logLevel   string
	dataDir    string
	outputRoot string
	voiceDir   string
	ffmpegPath string
	headless   bool
}

// New creates a new EnvConfig with defaults and environment variable overrides
func New() (*EnvConfig, error) {
	cfg := &EnvConfig{
		port:     DefaultPort,
		logLevel: DefaultLogLevel,
		dataDir:  defaultDataDir(),
	}

	// Override port from environment
	if p := os.Getenv(EnvPort); p != "" {
		port, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", EnvPort, err)
		}
		if port < 1 || port > 65535 {
			return nil, fmt.Errorf("invalid %s: port must be between 1 and 65535", EnvPort)
		}
		cfg.port = port
	}

	// Override log level from environment
	if ll := os.Getenv(EnvLogLevel); ll != "" {
		cfg.logLevel = ll
	}

	// Override data directory from environment
	if dd := os.Getenv(EnvDataDir); dd != "" {
		cfg.dataDir = dd
	}

	cfg.outputRoot = os.Getenv(EnvOutputRoot)
	cfg.voiceDir = os.Getenv(EnvVoiceDir)
	cfg.ffmpegPath = os.Getenv(EnvFFmpeg)

	if h := os.Getenv(EnvHeadless); h != "" {
		headless, err := strconv.ParseBool(h)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", EnvHeadless, err)
		}
		cfg.headless = headless
	}

	return cfg, nil
}

// Port returns the HTTP server port
func (c *EnvConfig) Port() int {
	return c.port
}

// LogLevel returns the log level (debug, info, warn, error)
func (c *EnvConfig) LogLevel() string {
	return c.logLevel
}

// DataDir returns the data directory path
func (c *EnvConfig) DataDir() string {
	return c.dataDir
}

// DBPath returns the full path to the SQLite database file
func (c *EnvConfig) DBPath() string {
	return filepath.Join(c.dataDir, DBFilename)
}

// OutputRoot returns the default destination for export bundles, used when
// a request does not name its own.
func (c *EnvConfig) OutputRoot() string {
	if c.outputRoot != "" {
		return c.outputRoot
	}
	return filepath.Join(c.dataDir, "exports")
}

// VoiceDir returns the directory bare voice filenames resolve against.
func (c *EnvConfig) VoiceDir() string {
	if c.voiceDir != "" {
		return c.voiceDir
	}
	return filepath.Join(c.dataDir, "voices")
}

// FFmpegPath returns an explicit ffmpeg binary path, or empty to use PATH.
func (c *EnvConfig) FFmpegPath() string {
	return c.ffmpegPath
}

// Headless reports whether the system tray should be skipped.
func (c *EnvConfig) Headless() bool {
	return c.headless
}

// defaultDataDir returns the default data directory path
func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home is not available
		return DefaultDataDir
	}
	return filepath.Join(home, DefaultDataDir)
}

// Version information (set at build time via ldflags)
var (
	Version   = "0.1.0"
	BuildTime = "unknown"
	GitCommit = "unknown"
)
