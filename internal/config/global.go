// Package config loads jvmpack's global settings from
// ~/.jvmpack/config.yaml with environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/majorcontext/jvmpack/internal/ui"
)

// Environment overrides.
const (
	EnvCacheDir    = "JVMPACK_CACHE_DIR"
	EnvCatalog     = "JVMPACK_CATALOG"
	EnvHTTPTimeout = "JVMPACK_HTTP_TIMEOUT"
)

// GlobalConfig holds global jvmpack settings.
type GlobalConfig struct {
	// CacheDir holds downloaded indexes and runtimes.
	CacheDir string `yaml:"cache_dir"`
	// Catalog is an alternate vendor catalog file. Empty uses the built-in one.
	Catalog string      `yaml:"catalog"`
	HTTP    HTTPConfig  `yaml:"http"`
	Debug   DebugConfig `yaml:"debug"`
}

// HTTPConfig holds transport settings for fetching indexes and runtimes.
type HTTPConfig struct {
	Timeout Duration `yaml:"timeout"`
}

// DebugConfig holds debug log settings.
type DebugConfig struct {
	RetentionDays int `yaml:"retention_days"`
}

// Duration is a time.Duration written as a Go duration string ("90s").
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(n *yaml.Node) error {
	parsed, err := time.ParseDuration(n.Value)
	if err != nil {
		return err
	}
	if parsed <= 0 {
		return fmt.Errorf("line %d: duration %q must be positive", n.Line, n.Value)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// DefaultGlobalConfig returns the default global configuration.
func DefaultGlobalConfig() *GlobalConfig {
	return &GlobalConfig{
		CacheDir: filepath.Join(GlobalConfigDir(), "cache"),
		HTTP: HTTPConfig{
			Timeout: Duration(5 * time.Minute),
		},
		Debug: DebugConfig{
			RetentionDays: 14,
		},
	}
}

// LoadGlobal reads ~/.jvmpack/config.yaml and applies environment overrides.
// A missing file yields the defaults; an unparseable one is reported in the
// warning and otherwise ignored.
func LoadGlobal() (*GlobalConfig, error) {
	cfg := DefaultGlobalConfig()

	configPath := filepath.Join(GlobalConfigDir(), "config.yaml")
	if data, err := os.ReadFile(configPath); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			// Logging is not initialized yet; tell the user directly.
			ui.Warnf("ignoring %s: %v", configPath, err)
			cfg = DefaultGlobalConfig()
		}
	}

	if dir := os.Getenv(EnvCacheDir); dir != "" {
		cfg.CacheDir = dir
	}
	if path := os.Getenv(EnvCatalog); path != "" {
		cfg.Catalog = path
	}
	if s := os.Getenv(EnvHTTPTimeout); s != "" {
		if d, err := time.ParseDuration(s); err == nil && d > 0 {
			cfg.HTTP.Timeout = Duration(d)
		}
	}

	return cfg, nil
}

// GlobalConfigDir returns the path to ~/.jvmpack.
func GlobalConfigDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".jvmpack")
	}
	return filepath.Join(homeDir, ".jvmpack")
}
