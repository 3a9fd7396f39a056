package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/majorcontext/jvmpack/internal/ui"
)

// captureWarnings redirects ui output for the duration of the test.
func captureWarnings(t *testing.T) *bytes.Buffer {
	t.Helper()
	var stderr bytes.Buffer
	ui.SetOutput(&bytes.Buffer{}, &stderr)
	t.Cleanup(func() { ui.SetOutput(nil, nil) })
	return &stderr
}

func setHome(t *testing.T) string {
	t.Helper()
	tmpHome := t.TempDir()
	t.Setenv("HOME", tmpHome)
	t.Setenv(EnvCacheDir, "")
	t.Setenv(EnvCatalog, "")
	t.Setenv(EnvHTTPTimeout, "")
	return tmpHome
}

func writeConfig(t *testing.T, home, content string) {
	t.Helper()
	configDir := filepath.Join(home, ".jvmpack")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadGlobalConfig(t *testing.T) {
	home := setHome(t)
	writeConfig(t, home, `
cache_dir: /var/cache/jvmpack
catalog: /etc/jvmpack/jres.yml
http:
  timeout: 90s
debug:
  retention_days: 7
`)

	cfg, err := LoadGlobal()
	if err != nil {
		t.Fatalf("LoadGlobal: %v", err)
	}
	if cfg.CacheDir != "/var/cache/jvmpack" {
		t.Errorf("CacheDir = %q, want /var/cache/jvmpack", cfg.CacheDir)
	}
	if cfg.Catalog != "/etc/jvmpack/jres.yml" {
		t.Errorf("Catalog = %q, want /etc/jvmpack/jres.yml", cfg.Catalog)
	}
	if time.Duration(cfg.HTTP.Timeout) != 90*time.Second {
		t.Errorf("HTTP.Timeout = %v, want 90s", time.Duration(cfg.HTTP.Timeout))
	}
	if cfg.Debug.RetentionDays != 7 {
		t.Errorf("Debug.RetentionDays = %d, want 7", cfg.Debug.RetentionDays)
	}
}

func TestLoadGlobalConfigDefaults(t *testing.T) {
	home := setHome(t)

	cfg, err := LoadGlobal()
	if err != nil {
		t.Fatalf("LoadGlobal: %v", err)
	}
	if want := filepath.Join(home, ".jvmpack", "cache"); cfg.CacheDir != want {
		t.Errorf("CacheDir = %q, want %q", cfg.CacheDir, want)
	}
	if cfg.Catalog != "" {
		t.Errorf("Catalog = %q, want built-in", cfg.Catalog)
	}
	if time.Duration(cfg.HTTP.Timeout) != 5*time.Minute {
		t.Errorf("HTTP.Timeout = %v, want default 5m", time.Duration(cfg.HTTP.Timeout))
	}
	if cfg.Debug.RetentionDays != 14 {
		t.Errorf("Debug.RetentionDays = %d, want default 14", cfg.Debug.RetentionDays)
	}
}

func TestLoadGlobalConfigUnparseable(t *testing.T) {
	home := setHome(t)
	writeConfig(t, home, "http:\n  timeout: soon\n")
	stderr := captureWarnings(t)

	cfg, err := LoadGlobal()
	if err != nil {
		t.Fatalf("LoadGlobal: %v", err)
	}
	if time.Duration(cfg.HTTP.Timeout) != 5*time.Minute {
		t.Errorf("HTTP.Timeout = %v, want default after bad config", time.Duration(cfg.HTTP.Timeout))
	}
	if !strings.Contains(stderr.String(), "config.yaml") {
		t.Errorf("expected a warning naming config.yaml, got %q", stderr.String())
	}
}

func TestLoadGlobalConfigNonPositiveTimeout(t *testing.T) {
	for _, timeout := range []string{"0s", "-5s"} {
		t.Run(timeout, func(t *testing.T) {
			home := setHome(t)
			writeConfig(t, home, "http:\n  timeout: "+timeout+"\n")
			stderr := captureWarnings(t)

			cfg, err := LoadGlobal()
			if err != nil {
				t.Fatalf("LoadGlobal: %v", err)
			}
			if time.Duration(cfg.HTTP.Timeout) != 5*time.Minute {
				t.Errorf("HTTP.Timeout = %v, want default", time.Duration(cfg.HTTP.Timeout))
			}
			if !strings.Contains(stderr.String(), "must be positive") {
				t.Errorf("expected a warning about the timeout, got %q", stderr.String())
			}
		})
	}
}

func TestLoadGlobalConfigEnvOverride(t *testing.T) {
	home := setHome(t)
	writeConfig(t, home, "cache_dir: /from/file\n")

	t.Setenv(EnvCacheDir, "/from/env")
	t.Setenv(EnvCatalog, "/env/jres.yml")
	t.Setenv(EnvHTTPTimeout, "30s")

	cfg, err := LoadGlobal()
	if err != nil {
		t.Fatalf("LoadGlobal: %v", err)
	}
	if cfg.CacheDir != "/from/env" {
		t.Errorf("CacheDir = %q, want /from/env", cfg.CacheDir)
	}
	if cfg.Catalog != "/env/jres.yml" {
		t.Errorf("Catalog = %q, want /env/jres.yml", cfg.Catalog)
	}
	if time.Duration(cfg.HTTP.Timeout) != 30*time.Second {
		t.Errorf("HTTP.Timeout = %v, want 30s", time.Duration(cfg.HTTP.Timeout))
	}
}

func TestLoadGlobalConfigBadTimeoutOverrideIgnored(t *testing.T) {
	setHome(t)
	t.Setenv(EnvHTTPTimeout, "forever")

	cfg, err := LoadGlobal()
	if err != nil {
		t.Fatalf("LoadGlobal: %v", err)
	}
	if time.Duration(cfg.HTTP.Timeout) != 5*time.Minute {
		t.Errorf("HTTP.Timeout = %v, want default", time.Duration(cfg.HTTP.Timeout))
	}
}
