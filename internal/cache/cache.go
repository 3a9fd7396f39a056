// Package cache stores downloaded artifacts on local disk and revalidates
// them against their origin with conditional GET requests.
//
// Each key owns two sibling files under the cache root: <key>.cached holds
// the content and <key>.cached.metadata holds the validators (ETag and
// Last-Modified) that came with it. Metadata is only trusted when it sits
// next to content fetched from the same URI.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/majorcontext/jvmpack/internal/log"
)

const (
	contentSuffix  = ".cached"
	metadataSuffix = ".cached.metadata"
)

// DefaultTimeout bounds a single fetch when no client is supplied.
const DefaultTimeout = 5 * time.Minute

// Metadata holds the validators returned with a cached artifact.
type Metadata struct {
	URI          string    `json:"uri"`
	ETag         string    `json:"etag,omitempty"`
	LastModified string    `json:"last_modified,omitempty"`
	FetchedAt    time.Time `json:"fetched_at"`
}

// Cache is a directory of artifacts keyed by caller-chosen names.
//
// Concurrent Get calls for the same key share one origin round trip.
// A key must always be used with the same URI; KeyFor derives one.
type Cache struct {
	root   string
	client *http.Client
	group  singleflight.Group
}

// New returns a cache rooted at dir. If client is nil, a client with
// DefaultTimeout is used.
func New(dir string, client *http.Client) *Cache {
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	return &Cache{root: dir, client: client}
}

// Root returns the cache directory.
func (c *Cache) Root() string {
	return c.root
}

// KeyFor derives a stable, filesystem-safe key from a URI.
func KeyFor(uri string) string {
	sum := sha256.Sum256([]byte(uri))
	return hex.EncodeToString(sum[:])
}

// ContentPath returns where the content for key is stored.
func (c *Cache) ContentPath(key string) string {
	return filepath.Join(c.root, key+contentSuffix)
}

// MetadataPath returns where the validators for key are stored.
func (c *Cache) MetadataPath(key string) string {
	return filepath.Join(c.root, key+metadataSuffix)
}

// Get brings the cached copy of uri up to date and calls fn with the
// content opened for reading. The file is closed when fn returns.
//
// On 200 the content and metadata are replaced; on 304 the cached copy is
// kept. Any other status or transport failure returns a *FetchError
// without calling fn and without touching the cached copy. fn's error is
// returned unchanged. If ctx ends first, Get returns ctx.Err() while a
// fetch shared with other callers runs to completion, bounded by the
// client timeout.
func (c *Cache) Get(ctx context.Context, key, uri string, fn func(f *os.File) error) error {
	if err := validateKey(key); err != nil {
		return err
	}

	// The shared fetch outlives any one caller's cancellation; each caller
	// stops waiting on its own ctx.
	ch := c.group.DoChan(key, func() (any, error) {
		return nil, c.refresh(context.WithoutCancel(ctx), key, uri)
	})
	select {
	case <-ctx.Done():
		return ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return res.Err
		}
	}

	f, err := os.Open(c.ContentPath(key))
	if err != nil {
		return fmt.Errorf("opening cached %s: %w", key, err)
	}
	defer f.Close()

	return fn(f)
}

// Metadata returns the validators stored for key, if the key is cached.
func (c *Cache) Metadata(key string) (Metadata, bool) {
	if validateKey(key) != nil {
		return Metadata{}, false
	}
	return c.loadMetadata(key)
}

func (c *Cache) refresh(ctx context.Context, key, uri string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return &FetchError{URI: uri, Err: err}
	}

	meta, cached := c.loadMetadata(key)
	if cached && meta.URI != uri {
		log.Debug("cached entry came from a different uri, ignoring validators",
			"key", key, "cached_uri", meta.URI, "uri", uri)
		cached = false
	}
	if cached {
		if meta.ETag != "" {
			req.Header.Set("If-None-Match", meta.ETag)
		}
		if meta.LastModified != "" {
			req.Header.Set("If-Modified-Since", meta.LastModified)
		}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return &FetchError{URI: uri, Err: err}
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		if err := c.store(key, uri, resp); err != nil {
			return err
		}
		log.Debug("downloaded", "key", key, "uri", uri, "etag", resp.Header.Get("Etag"))
		return nil

	case http.StatusNotModified:
		if !cached {
			return &FetchError{URI: uri, Status: resp.StatusCode,
				Err: errors.New("not modified, but nothing is cached")}
		}
		log.Debug("not modified", "key", key, "uri", uri)
		return nil

	default:
		return &FetchError{URI: uri, Status: resp.StatusCode}
	}
}

// store writes the response body and its validators to temp files and
// renames them into place. The old metadata is removed before the content
// is replaced, so metadata on disk never describes other content.
func (c *Cache) store(key, uri string, resp *http.Response) error {
	if err := os.MkdirAll(c.root, 0o755); err != nil {
		return fmt.Errorf("creating cache dir: %w", err)
	}

	contentTmp, err := c.writeTemp(key+contentSuffix, func(w io.Writer) error {
		if _, err := io.Copy(w, resp.Body); err != nil {
			return &FetchError{URI: uri, Err: err}
		}
		return nil
	})
	if err != nil {
		return err
	}

	meta := Metadata{
		URI:          uri,
		ETag:         resp.Header.Get("Etag"),
		LastModified: resp.Header.Get("Last-Modified"),
		FetchedAt:    time.Now().UTC(),
	}
	metaTmp, err := c.writeTemp(key+metadataSuffix, func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(meta)
	})
	if err != nil {
		os.Remove(contentTmp)
		return err
	}

	if err := os.Remove(c.MetadataPath(key)); err != nil && !os.IsNotExist(err) {
		os.Remove(contentTmp)
		os.Remove(metaTmp)
		return fmt.Errorf("removing stale metadata: %w", err)
	}
	if err := os.Rename(contentTmp, c.ContentPath(key)); err != nil {
		os.Remove(contentTmp)
		os.Remove(metaTmp)
		return fmt.Errorf("replacing cached content: %w", err)
	}
	if err := os.Rename(metaTmp, c.MetadataPath(key)); err != nil {
		os.Remove(metaTmp)
		return fmt.Errorf("replacing cached metadata: %w", err)
	}
	return nil
}

// writeTemp creates a temp file beside the final name, fills it with
// write and returns its path. The temp file is removed on failure.
func (c *Cache) writeTemp(name string, write func(w io.Writer) error) (string, error) {
	f, err := os.CreateTemp(c.root, name+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	path := f.Name()

	if err := write(f); err != nil {
		f.Close()
		os.Remove(path)
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("writing %s: %w", name, err)
	}
	return path, nil
}

// loadMetadata reads the validators for key. It reports false when either
// sibling file is missing or the metadata is unreadable.
func (c *Cache) loadMetadata(key string) (Metadata, bool) {
	if _, err := os.Stat(c.ContentPath(key)); err != nil {
		return Metadata{}, false
	}

	data, err := os.ReadFile(c.MetadataPath(key))
	if err != nil {
		return Metadata{}, false
	}

	var meta Metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		log.Warn("ignoring unreadable cache metadata", "key", key, "error", err)
		return Metadata{}, false
	}
	return meta, true
}

func validateKey(key string) error {
	if key == "" || key == "." || key == ".." || strings.ContainsAny(key, `/\`) {
		return fmt.Errorf("invalid cache key %q", key)
	}
	return nil
}
