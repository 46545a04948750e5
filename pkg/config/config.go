// Package config loads crates-lsp settings from a YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/crates-lsp/pkg/buildinfo"
	"github.com/matzehuels/crates-lsp/pkg/cache"
	errs "github.com/matzehuels/crates-lsp/pkg/errors"
	"github.com/matzehuels/crates-lsp/pkg/integrations"
	"github.com/matzehuels/crates-lsp/pkg/integrations/crates"
)

// FileName is the config file looked up under the user config directory.
const FileName = "config.yaml"

// Config holds all crates-lsp configuration.
type Config struct {
	Registry RegistryConfig `yaml:"registry"`
	Cache    CacheConfig    `yaml:"cache"`
	Log      LogConfig      `yaml:"log"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

// RegistryConfig points the client at a crates.io compatible API.
type RegistryConfig struct {
	URL       string        `yaml:"url"`
	UserAgent string        `yaml:"user_agent"`
	Timeout   time.Duration `yaml:"timeout"`
}

// CacheConfig controls the in-memory version cache.
type CacheConfig struct {
	Freshness time.Duration `yaml:"freshness"`
}

// LogConfig sets the stderr log level.
type LogConfig struct {
	Level string `yaml:"level"`
}

// MetricsConfig enables the debug HTTP server when Addr is set.
type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Registry: RegistryConfig{
			URL:       crates.DefaultBaseURL,
			UserAgent: buildinfo.UserAgent(),
			Timeout:   integrations.DefaultTimeout,
		},
		Cache: CacheConfig{
			Freshness: cache.DefaultFreshness,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads a YAML config file and expands environment variables.
// Fields absent from the file keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	cfg := Default()
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	return cfg, nil
}

// LoadDefault loads the file at [DefaultPath]. A missing file yields the
// defaults.
func LoadDefault() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return Default(), nil
	}
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// DefaultPath returns $XDG_CONFIG_HOME/crates-lsp/config.yaml, falling back
// to ~/.config when XDG_CONFIG_HOME is unset.
func DefaultPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, buildinfo.Name, FileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", buildinfo.Name, FileName), nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if err := errs.ValidateRegistryURL(c.Registry.URL); err != nil {
		return err
	}
	if c.Registry.Timeout <= 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "registry.timeout must be positive, got %s", c.Registry.Timeout)
	}
	if c.Cache.Freshness <= 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "cache.freshness must be positive, got %s", c.Cache.Freshness)
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	return nil
}

// LogLevel parses Log.Level.
func (c *Config) LogLevel() (log.Level, error) {
	lvl, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel, errs.Wrap(errs.ErrCodeInvalidConfig, err, "invalid log.level %q", c.Log.Level)
	}
	return lvl, nil
}
