package log

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestFileWriter_Write(t *testing.T) {
	tmpDir := t.TempDir()

	fw, err := NewFileWriter(tmpDir)
	if err != nil {
		t.Fatalf("NewFileWriter failed: %v", err)
	}
	defer fw.Close()

	if _, err := fw.Write([]byte(`{"msg":"test"}`)); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	content, err := os.ReadFile(filepath.Join(tmpDir, FileName(time.Now())))
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if !strings.Contains(string(content), `{"msg":"test"}`) {
		t.Errorf("expected content to contain test message, got: %s", content)
	}
}

func TestFileWriter_LatestSymlink(t *testing.T) {
	tmpDir := t.TempDir()

	fw, err := NewFileWriter(tmpDir)
	if err != nil {
		t.Fatalf("NewFileWriter failed: %v", err)
	}
	defer fw.Close()

	target, err := os.Readlink(filepath.Join(tmpDir, "latest"))
	if err != nil {
		t.Fatalf("reading symlink: %v", err)
	}
	if want := FileName(time.Now()); target != want {
		t.Errorf("expected symlink to point to %s, got %s", want, target)
	}
}

func TestFileWriter_RotatesAtMidnight(t *testing.T) {
	tmpDir := t.TempDir()

	fw, err := NewFileWriter(tmpDir)
	if err != nil {
		t.Fatalf("NewFileWriter failed: %v", err)
	}
	defer fw.Close()

	tomorrow := time.Now().AddDate(0, 0, 1)
	fw.now = func() time.Time { return tomorrow }

	if _, err := fw.Write([]byte("next day\n")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	content, err := os.ReadFile(filepath.Join(tmpDir, FileName(tomorrow)))
	if err != nil {
		t.Fatalf("reading rotated file: %v", err)
	}
	if string(content) != "next day\n" {
		t.Errorf("rotated file content = %q", content)
	}
}

func TestFileWriter_WriteAfterClose(t *testing.T) {
	fw, err := NewFileWriter(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileWriter failed: %v", err)
	}
	fw.Close()

	if _, err := fw.Write([]byte("late")); err == nil {
		t.Error("expected error writing to closed FileWriter")
	}
}

func TestCleanup(t *testing.T) {
	tmpDir := t.TempDir()

	old := FileName(time.Now().AddDate(0, 0, -20))
	recent := FileName(time.Now().AddDate(0, 0, -2))
	for _, name := range []string{old, recent, "notes.txt", "2020-01-01.jsonl"} {
		if err := os.WriteFile(filepath.Join(tmpDir, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	Cleanup(tmpDir, 14)

	if _, err := os.Stat(filepath.Join(tmpDir, old)); !os.IsNotExist(err) {
		t.Errorf("expected %s to be removed", old)
	}
	for _, name := range []string{recent, "notes.txt", "2020-01-01.jsonl"} {
		if _, err := os.Stat(filepath.Join(tmpDir, name)); err != nil {
			t.Errorf("expected %s to be kept: %v", name, err)
		}
	}
}
