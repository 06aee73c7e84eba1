// Package config handles configuration loading and validation for hexword.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/hexword/internal/colour"
	"github.com/jmylchreest/hexword/internal/history"
	"github.com/jmylchreest/hexword/internal/namer"
	"github.com/jmylchreest/hexword/internal/version"
)

// Environment variables that override the config file.
const (
	EnvPort         = "PORT"
	EnvGeminiAPIKey = "GEMINI_API_KEY"
	EnvGeminiLegacy = "gemini_API"
	EnvGoogleAPIKey = "GOOGLE_API_KEY"
	EnvMode         = "HEXWORD_MODE"
	EnvHistory      = "HEXWORD_HISTORY"
)

const (
	defaultPort     = 3003
	defaultShutdown = 10 * time.Second
	configDirName   = "hexword"
	configFileName  = "config.yaml"
)

// Config holds the application configuration.
type Config struct {
	Mode    string        `yaml:"mode"`
	Server  ServerConfig  `yaml:"server"`
	Namer   NamerConfig   `yaml:"namer"`
	History HistoryConfig `yaml:"history"`
}

// ServerConfig configures the frame server.
type ServerConfig struct {
	Port            int           `yaml:"port"`
	DefaultWord     string        `yaml:"default_word"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	CardCache       bool          `yaml:"card_cache"`
	CardCacheDir    string        `yaml:"card_cache_dir"` // empty selects cardcache.DefaultDir
}

// NamerConfig configures colour naming.
type NamerConfig struct {
	Backend string        `yaml:"backend"` // gemini-api or vertex-ai
	Model   string        `yaml:"model"`
	APIKey  string        `yaml:"api_key"`
	Timeout time.Duration `yaml:"timeout"`
}

// HistoryConfig configures the local history file.
type HistoryConfig struct {
	Path     string `yaml:"path"` // empty selects history.DefaultPath
	Capacity int    `yaml:"capacity"`
}

// DefaultConfig returns a Config with defaults applied.
func DefaultConfig() Config {
	return Config{
		Mode: version.BuildMode().String(),
		Server: ServerConfig{
			Port:            defaultPort,
			DefaultWord:     "Farcaster",
			ShutdownTimeout: defaultShutdown,
		},
		Namer: NamerConfig{
			Backend: namer.BackendGeminiAPI,
			Model:   namer.DefaultModel,
			Timeout: namer.DefaultTimeout,
		},
		History: HistoryConfig{
			Capacity: history.DefaultCapacity,
		},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/hexword/config.yaml (or the platform
// equivalent).
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine config directory: %w", err)
	}
	return filepath.Join(dir, configDirName, configFileName), nil
}

// Load reads configuration from configPath, then applies environment
// overrides. A missing file yields defaults.
func Load(configPath string) (*Config, error) {
	return load(configPath, os.Getenv)
}

func load(configPath string, getenv func(string) string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, fmt.Errorf("read config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	if err := cfg.applyEnv(getenv); err != nil {
		return nil, err
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyEnv overrides file values with any set environment variables.
func (c *Config) applyEnv(getenv func(string) string) error {
	if v := getenv(EnvPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %q is not a port number", EnvPort, v)
		}
		c.Server.Port = port
	}

	// First non-empty key wins.
	for _, name := range []string{EnvGeminiAPIKey, EnvGeminiLegacy, EnvGoogleAPIKey} {
		if v := getenv(name); v != "" {
			c.Namer.APIKey = v
			break
		}
	}

	if v := getenv(EnvMode); v != "" {
		c.Mode = v
	}
	if v := getenv(EnvHistory); v != "" {
		c.History.Path = v
	}

	return nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Mode == "" {
		c.Mode = defaults.Mode
	}
	if c.Server.Port == 0 {
		c.Server.Port = defaults.Server.Port
	}
	if strings.TrimSpace(c.Server.DefaultWord) == "" {
		c.Server.DefaultWord = defaults.Server.DefaultWord
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = defaults.Server.ShutdownTimeout
	}
	if c.Namer.Backend == "" {
		c.Namer.Backend = defaults.Namer.Backend
	}
	if c.Namer.Model == "" {
		c.Namer.Model = defaults.Namer.Model
	}
	if c.Namer.Timeout == 0 {
		c.Namer.Timeout = defaults.Namer.Timeout
	}
	if c.History.Capacity == 0 {
		c.History.Capacity = defaults.History.Capacity
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if _, err := colour.ParseMode(c.Mode); err != nil {
		return fmt.Errorf("mode: %w", err)
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}

	if c.Server.ShutdownTimeout < 0 {
		return fmt.Errorf("server.shutdown_timeout cannot be negative")
	}

	switch c.Namer.Backend {
	case namer.BackendGeminiAPI, namer.BackendVertexAI:
	default:
		return fmt.Errorf("namer.backend %q is not one of %s, %s", c.Namer.Backend, namer.BackendGeminiAPI, namer.BackendVertexAI)
	}

	if c.Namer.Timeout <= 0 {
		return fmt.Errorf("namer.timeout must be positive")
	}

	if c.History.Capacity < 1 {
		return fmt.Errorf("history.capacity must be at least 1")
	}

	return nil
}

// ColourMode returns the validated colour mode.
func (c *Config) ColourMode() colour.Mode {
	mode, err := colour.ParseMode(c.Mode)
	if err != nil {
		return colour.ModeBasic
	}
	return mode
}

// HistoryPath returns the configured history file, or the default location.
func (c *Config) HistoryPath() (string, error) {
	if c.History.Path != "" {
		return c.History.Path, nil
	}
	return history.DefaultPath()
}

// Addr returns the listen address for the server.
func (c *Config) Addr() string {
	return ":" + strconv.Itoa(c.Server.Port)
}
