// Package jre selects the Java runtime for an application and installs it.
//
// Selection turns the user's candidate vendor, version and stack size into
// a concrete Runtime using the vendor catalog and the chosen vendor's
// index. Any failure aborts the whole selection.
package jre

import (
	"context"
	"fmt"

	"github.com/majorcontext/jvmpack/internal/catalog"
	"github.com/majorcontext/jvmpack/internal/log"
	"github.com/majorcontext/jvmpack/internal/versions"
)

// DefaultIDPrefix prefixes runtime identifiers.
const DefaultIDPrefix = "java"

// Runtime is a fully resolved runtime selection.
type Runtime struct {
	// ID is "<prefix>-<vendor>-<version>".
	ID      string `yaml:"id" json:"id"`
	Vendor  string `yaml:"vendor" json:"vendor"`
	Version string `yaml:"version" json:"version"`
	// URI is the artifact location: repository root joined with the
	// index path.
	URI string `yaml:"uri" json:"uri"`
	// StackSize is the validated thread stack size, or empty.
	StackSize string `yaml:"stack_size,omitempty" json:"stack_size,omitempty"`
}

// Selector resolves runtimes from a catalog.
type Selector struct {
	Loader catalog.Loader
	// IDPrefix defaults to DefaultIDPrefix.
	IDPrefix string
}

// Select resolves c into a Runtime. It returns either a complete Runtime
// or an error, never a partial result.
func (s *Selector) Select(ctx context.Context, c Candidates) (*Runtime, error) {
	cat, err := s.Loader.LoadCatalog(ctx)
	if err != nil {
		return nil, err
	}

	vendor, err := catalog.ResolveVendor(c.Vendor, cat.Vendors())
	if err != nil {
		return nil, err
	}

	entry, err := cat.Entry(vendor)
	if err != nil {
		return nil, err
	}

	idx, err := s.Loader.LoadIndex(ctx, entry.RepositoryRoot)
	if err != nil {
		return nil, err
	}

	version, err := versions.Resolve(c.Version, entry.DefaultVersion, idx.Versions())
	if err != nil {
		return nil, fmt.Errorf("vendor %s: %w", vendor, err)
	}

	stackSize, err := ValidateStackSize(c.StackSize)
	if err != nil {
		return nil, err
	}

	prefix := s.IDPrefix
	if prefix == "" {
		prefix = DefaultIDPrefix
	}

	rt := &Runtime{
		ID:        fmt.Sprintf("%s-%s-%s", prefix, vendor, version),
		Vendor:    vendor,
		Version:   version,
		URI:       entry.RepositoryRoot + "/" + idx[version],
		StackSize: stackSize,
	}
	log.Debug("resolved runtime", "id", rt.ID, "uri", rt.URI, "stack_size", rt.StackSize)
	return rt, nil
}
