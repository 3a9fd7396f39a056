package catalog

import (
	"context"
	_ "embed"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"

	"github.com/majorcontext/jvmpack/internal/cache"
	"github.com/majorcontext/jvmpack/internal/log"
)

//go:embed jres.yml
var defaultCatalog []byte

// DefaultSource names the embedded catalog in errors and logs.
const DefaultSource = "built-in jres.yml"

// Loader supplies the catalog and per-vendor indexes.
type Loader interface {
	LoadCatalog(ctx context.Context) (*Catalog, error)
	LoadIndex(ctx context.Context, root string) (Index, error)
}

// Fetcher retrieves remote documents. *cache.Cache implements it.
type Fetcher interface {
	Get(ctx context.Context, key, uri string, fn func(f *os.File) error) error
}

// Sources is the standard Loader. The catalog comes from CatalogPath, or
// the built-in catalog when empty. Indexes under http and https roots are
// fetched through Cache; file URLs and plain paths are read from disk.
type Sources struct {
	CatalogPath string
	Cache       Fetcher
}

// LoadCatalog implements Loader.
func (s *Sources) LoadCatalog(ctx context.Context) (*Catalog, error) {
	if s.CatalogPath == "" {
		return Parse(defaultCatalog, DefaultSource)
	}

	data, err := os.ReadFile(s.CatalogPath)
	if err != nil {
		return nil, &LoadError{Source: s.CatalogPath, Err: err}
	}
	return Parse(data, s.CatalogPath)
}

// LoadIndex implements Loader.
func (s *Sources) LoadIndex(ctx context.Context, root string) (Index, error) {
	uri := IndexURI(root)

	data, err := s.read(ctx, uri)
	if err != nil {
		return nil, &IndexLoadError{Root: root, Err: err}
	}

	idx, err := ParseIndex(data, root)
	if err != nil {
		return nil, err
	}
	log.Debug("loaded index", "root", root, "versions", len(idx))
	return idx, nil
}

func (s *Sources) read(ctx context.Context, uri string) ([]byte, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return nil, err
	}

	switch u.Scheme {
	case "http", "https":
		if s.Cache == nil {
			return nil, fmt.Errorf("no cache configured for remote index %s", uri)
		}
		var data []byte
		err := s.Cache.Get(ctx, cache.KeyFor(uri), uri, func(f *os.File) error {
			var err error
			data, err = io.ReadAll(f)
			return err
		})
		return data, err
	case "file":
		return os.ReadFile(filepath.FromSlash(u.Path))
	case "":
		return os.ReadFile(uri)
	default:
		return nil, fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
}
