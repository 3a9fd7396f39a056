package jre

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/majorcontext/jvmpack/internal/catalog"
	"github.com/majorcontext/jvmpack/internal/log"
)

// JavaHome is where the runtime is installed, relative to the app root.
const JavaHome = ".java"

// Archive extraction limits.
const (
	maxArchiveFiles     = 100000   // Maximum number of entries
	maxArchiveFileSize  = 1 << 30  // 1GB per file
	maxArchiveTotalSize = 10 << 30 // 10GB total extracted size
)

// Install fetches rt through the cache and expands it into
// <appDir>/.java, replacing any previous installation. When the archive
// holds a single top-level directory its contents become the Java home.
func Install(ctx context.Context, fetcher catalog.Fetcher, rt *Runtime, appDir string) (string, error) {
	home := filepath.Join(appDir, JavaHome)

	staging, err := os.MkdirTemp(appDir, JavaHome+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("create staging directory: %w", err)
	}
	defer os.RemoveAll(staging)

	err = fetcher.Get(ctx, rt.ID, rt.URI, func(f *os.File) error {
		return expand(f, staging)
	})
	if err != nil {
		return "", fmt.Errorf("installing %s: %w", rt.ID, err)
	}

	src, err := singleRoot(staging)
	if err != nil {
		return "", err
	}

	if err := os.RemoveAll(home); err != nil {
		return "", fmt.Errorf("remove previous %s: %w", JavaHome, err)
	}
	if err := os.Rename(src, home); err != nil {
		return "", fmt.Errorf("move runtime into place: %w", err)
	}

	log.Debug("installed runtime", "id", rt.ID, "home", home)
	return home, nil
}

// singleRoot returns dir's only subdirectory if it has exactly one entry
// and that entry is a directory, otherwise dir itself.
func singleRoot(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("read staging directory: %w", err)
	}
	if len(entries) == 1 && entries[0].IsDir() {
		return filepath.Join(dir, entries[0].Name()), nil
	}
	return dir, nil
}

// expand extracts a gzip-compressed tarball into dest. Every entry is
// checked against the real on-disk location of its parent, so links
// created by earlier entries cannot redirect a write outside dest.
func expand(r io.Reader, dest string) error {
	realDest, err := filepath.EvalSymlinks(dest)
	if err != nil {
		return fmt.Errorf("resolve destination: %w", err)
	}

	gr, err := gzip.NewReader(r)
	if err != nil {
		return fmt.Errorf("create gzip reader: %w", err)
	}
	defer gr.Close()

	tr := tar.NewReader(gr)
	fileCount := 0
	var totalWritten int64

	for {
		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("read tar header: %w", err)
		}

		fileCount++
		if fileCount > maxArchiveFiles {
			return fmt.Errorf("archive contains too many files (limit: %d)", maxArchiveFiles)
		}

		targetPath, err := within(dest, header.Name)
		if err != nil {
			return err
		}
		realParent := realDest
		if targetPath != dest {
			if realParent, err = resolveInside(realDest, filepath.Dir(targetPath)); err != nil {
				return fmt.Errorf("%s: %w", header.Name, err)
			}
		}

		switch header.Typeflag {
		case tar.TypeDir:
			//nolint:gosec // G115: Mode is masked to permission bits
			if err := os.MkdirAll(targetPath, os.FileMode(header.Mode&0o777)|0o700); err != nil {
				return fmt.Errorf("create directory %s: %w", header.Name, err)
			}

		case tar.TypeReg:
			if header.Size > maxArchiveFileSize {
				return fmt.Errorf("file %s exceeds maximum size (limit: %d bytes)", header.Name, int64(maxArchiveFileSize))
			}
			if totalWritten+header.Size > maxArchiveTotalSize {
				return fmt.Errorf("archive exceeds maximum total extracted size (limit: %d bytes)", int64(maxArchiveTotalSize))
			}
			if err := os.MkdirAll(filepath.Dir(targetPath), 0o755); err != nil {
				return fmt.Errorf("create parent directory for %s: %w", header.Name, err)
			}
			// Replace rather than write through whatever is already there.
			if err := removeNonDir(targetPath); err != nil {
				return fmt.Errorf("replace %s: %w", header.Name, err)
			}
			//nolint:gosec // G115: Mode is masked to permission bits
			f, err := os.OpenFile(targetPath, os.O_CREATE|os.O_WRONLY|os.O_EXCL, os.FileMode(header.Mode&0o777))
			if err != nil {
				return fmt.Errorf("create file %s: %w", header.Name, err)
			}
			written, copyErr := io.Copy(f, tr)
			totalWritten += written
			if copyErr != nil {
				_ = f.Close()
				return fmt.Errorf("write file %s: %w", header.Name, copyErr)
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("close file %s: %w", header.Name, err)
			}

		case tar.TypeSymlink:
			if filepath.IsAbs(header.Linkname) {
				return fmt.Errorf("invalid symlink in archive: absolute path not allowed: %s -> %s", header.Name, header.Linkname)
			}
			resolved := filepath.Join(realParent, header.Linkname)
			if !inside(realDest, resolved) {
				return fmt.Errorf("invalid symlink in archive: target escapes destination: %s -> %s", header.Name, header.Linkname)
			}
			if err := os.MkdirAll(filepath.Dir(targetPath), 0o755); err != nil {
				return fmt.Errorf("create parent directory for symlink %s: %w", header.Name, err)
			}
			if err := removeNonDir(targetPath); err != nil {
				return fmt.Errorf("replace %s: %w", header.Name, err)
			}
			if err := os.Symlink(header.Linkname, targetPath); err != nil {
				return fmt.Errorf("create symlink %s: %w", header.Name, err)
			}

		case tar.TypeLink:
			source, err := within(dest, header.Linkname)
			if err != nil {
				return err
			}
			if source, err = resolveInside(realDest, source); err != nil {
				return fmt.Errorf("%s: %w", header.Name, err)
			}
			if err := os.MkdirAll(filepath.Dir(targetPath), 0o755); err != nil {
				return fmt.Errorf("create parent directory for link %s: %w", header.Name, err)
			}
			if err := removeNonDir(targetPath); err != nil {
				return fmt.Errorf("replace %s: %w", header.Name, err)
			}
			if err := os.Link(source, targetPath); err != nil {
				return fmt.Errorf("create link %s: %w", header.Name, err)
			}

		default:
			// Devices, fifos and pax globals have no place in a runtime.
			continue
		}
	}

	return nil
}

// within joins name onto dest and rejects results outside dest.
func within(dest, name string) (string, error) {
	target := filepath.Join(dest, name) //nolint:gosec // G305: validated below
	if !inside(dest, target) {
		return "", fmt.Errorf("invalid path in archive: %s", name)
	}
	return target, nil
}

// resolveInside evaluates symlinks in path, or in its longest existing
// prefix when path does not exist yet, and fails unless the result lies
// within root. root must already be free of symlinks.
func resolveInside(root, path string) (string, error) {
	existing, rest := path, ""
	for {
		real, err := filepath.EvalSymlinks(existing)
		if err == nil {
			full := filepath.Join(real, rest)
			if !inside(root, full) {
				return "", fmt.Errorf("invalid path in archive: %s resolves outside destination", path)
			}
			return full, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", err
		}
		parent := filepath.Dir(existing)
		if parent == existing {
			return "", err
		}
		rest = filepath.Join(filepath.Base(existing), rest)
		existing = parent
	}
}

// removeNonDir removes path unless it is a directory. A missing path is
// not an error.
func removeNonDir(path string) error {
	info, err := os.Lstat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	return os.Remove(path)
}

func inside(dest, path string) bool {
	rel, err := filepath.Rel(dest, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
