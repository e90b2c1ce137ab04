package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvConfigPath names the variable that points at a config file.
const EnvConfigPath = "CSINSIGHTS_CONFIG"

// Load builds the effective configuration. An explicit path (argument or
// $CSINSIGHTS_CONFIG) must exist; the default path may be absent.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := true
	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path == "" {
		path = DefaultPath()
		explicit = false
	}

	if err := loadFile(cfg, path); err != nil && (explicit || !errors.Is(err, fs.ErrNotExist)) {
		return nil, err
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg.ApplyEnvOverrides()

	if cfg.Faceit.APIKey == "" {
		cfg.Faceit.APIKey = readKeyFile("faceit_api_key")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	return cfg, nil
}

// loadFile decodes path into cfg, choosing the format by extension.
func loadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("parse yaml config %s: %w", path, err)
		}
	case ".toml":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return fmt.Errorf("parse toml config %s: %w", path, err)
		}
	default:
		return fmt.Errorf("unsupported config format %q (want .yaml, .yml or .toml)", ext)
	}
	return nil
}

// ApplyEnvOverrides copies recognised environment variables over cfg.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("PORT"); v != "" {
		c.Server.Listen = ":" + v
	}
	if v := os.Getenv("FACEIT_API_KEY"); v != "" {
		c.Faceit.APIKey = v
	}
	if v := os.Getenv("FACEIT_BASE_URL"); v != "" {
		c.Faceit.BaseURL = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		c.Log.Format = v
	}
	if v := os.Getenv("CSINSIGHTS_DB"); v != "" {
		c.Cache.Path = v
	}
	if v := os.Getenv("ANTHROPIC_API_KEY"); v != "" {
		c.Anthropic.APIKey = v
	}
}

// readKeyFile returns the trimmed contents of ~/.csinsights/<name>, or "".
func readKeyFile(name string) string {
	data, err := os.ReadFile(filepath.Join(Dir(), name))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}
