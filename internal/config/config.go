// Package config loads csinsights settings from defaults, an optional
// YAML or TOML file, a .env file and the environment, in that order.
package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config is the full set of runtime settings.
type Config struct {
	Server    ServerConfig    `yaml:"server" toml:"server"`
	Faceit    FaceitConfig    `yaml:"faceit" toml:"faceit"`
	Cache     CacheConfig     `yaml:"cache" toml:"cache"`
	Log       LogConfig       `yaml:"log" toml:"log"`
	Anthropic AnthropicConfig `yaml:"anthropic" toml:"anthropic"`
}

// ServerConfig controls the HTTP backend.
type ServerConfig struct {
	Listen string `yaml:"listen" toml:"listen"`
	Gzip   bool   `yaml:"gzip" toml:"gzip"`
}

// FaceitConfig holds the upstream Data API settings.
type FaceitConfig struct {
	APIKey  string        `yaml:"api_key" toml:"api_key"`
	BaseURL string        `yaml:"base_url" toml:"base_url"`
	Timeout time.Duration `yaml:"timeout" toml:"timeout"`
}

// CacheConfig controls the SQLite lookup cache.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" toml:"enabled"`
	Path    string        `yaml:"path" toml:"path"`
	TTL     time.Duration `yaml:"ttl" toml:"ttl"`
}

// LogConfig selects log verbosity and output format.
type LogConfig struct {
	Level  string `yaml:"level" toml:"level"`
	Format string `yaml:"format" toml:"format"`
}

// AnthropicConfig is used by the ask command.
type AnthropicConfig struct {
	APIKey string `yaml:"api_key" toml:"api_key"`
	Model  string `yaml:"model" toml:"model"`
}

const (
	DefaultListen         = ":3000"
	DefaultFaceitBaseURL  = "https://open.faceit.com/data/v4"
	DefaultFaceitTimeout  = 15 * time.Second
	DefaultCacheTTL       = 24 * time.Hour
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "text"
	DefaultAnthropicModel = "claude-haiku-4-5-20251001"
)

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Listen: DefaultListen},
		Faceit: FaceitConfig{
			BaseURL: DefaultFaceitBaseURL,
			Timeout: DefaultFaceitTimeout,
		},
		Cache: CacheConfig{
			Enabled: true,
			Path:    filepath.Join(Dir(), "cache.db"),
			TTL:     DefaultCacheTTL,
		},
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
		Anthropic: AnthropicConfig{Model: DefaultAnthropicModel},
	}
}

// Dir returns ~/.csinsights, or .csinsights when the home directory is unknown.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".csinsights"
	}
	return filepath.Join(home, ".csinsights")
}

// DefaultPath returns the config file used when none is given.
func DefaultPath() string {
	return filepath.Join(Dir(), "config.yaml")
}
