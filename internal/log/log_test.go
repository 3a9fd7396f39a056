package log

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestInit_FileLogging(t *testing.T) {
	tmpDir := t.TempDir()

	if err := Init(Options{DebugDir: tmpDir, Stderr: &bytes.Buffer{}}); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	Debug("cache hit", "key", "java-openjdk-1.7.0_21")
	Close()

	content, err := os.ReadFile(filepath.Join(tmpDir, FileName(time.Now())))
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if !strings.Contains(string(content), "cache hit") {
		t.Errorf("expected debug file to contain 'cache hit', got: %s", content)
	}
	if !strings.Contains(string(content), `"key":"java-openjdk-1.7.0_21"`) {
		t.Errorf("expected JSON attributes in debug file, got: %s", content)
	}
}

func TestInit_StderrLevels(t *testing.T) {
	var stderr bytes.Buffer

	if err := Init(Options{Stderr: &stderr}); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	Debug("debug message")
	Info("info message")
	Warn("warn message")
	Error("error message")

	output := stderr.String()
	if strings.Contains(output, "debug message") {
		t.Error("debug should not appear on stderr in non-verbose mode")
	}
	if strings.Contains(output, "info message") {
		t.Error("info should not appear on stderr in non-verbose mode")
	}
	if !strings.Contains(output, "warn message") {
		t.Error("warn should appear on stderr")
	}
	if !strings.Contains(output, "error message") {
		t.Error("error should appear on stderr")
	}
}

func TestInit_Verbose(t *testing.T) {
	var stderr bytes.Buffer

	if err := Init(Options{Verbose: true, Stderr: &stderr}); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	Debug("debug message")
	Info("info message")

	output := stderr.String()
	if !strings.Contains(output, "debug message") {
		t.Error("debug should appear on stderr in verbose mode")
	}
	if !strings.Contains(output, "info message") {
		t.Error("info should appear on stderr in verbose mode")
	}
}

func TestInit_JSONFormat(t *testing.T) {
	var stderr bytes.Buffer

	if err := Init(Options{JSONFormat: true, Stderr: &stderr}); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	Warn("fetch failed", "uri", "https://example.com/index.yml")

	if !strings.Contains(stderr.String(), `"msg":"fetch failed"`) {
		t.Errorf("expected JSON output, got: %s", stderr.String())
	}
}

func TestSetCommand(t *testing.T) {
	var out bytes.Buffer
	SetOutput(&out)

	SetCommand("compile")
	Info("resolved runtime")

	if !strings.Contains(out.String(), "command=compile") {
		t.Errorf("expected command attribute, got: %s", out.String())
	}
}
