// Package catalog loads the vendor catalog and per-vendor version indexes.
//
// The catalog maps a vendor name to either a bare repository root or a
// mapping with repository_root and an optional default_version:
//
//	openjdk:
//	  default_version: 1.7.0_+
//	  repository_root: https://example.com/openjdk
//	zulu: https://example.com/zulu
//
// Each repository root serves an index.yml mapping concrete versions to
// artifact paths relative to the root.
package catalog

import (
	"errors"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// Catalog keys in the structured vendor form.
const (
	keyRepositoryRoot = "repository_root"
	keyDefaultVersion = "default_version"
)

// VendorEntry is a normalized catalog entry.
type VendorEntry struct {
	// RepositoryRoot is the base URI of the vendor's repository.
	RepositoryRoot string
	// DefaultVersion is used when no version is requested. Empty if the
	// catalog gives none.
	DefaultVersion string
	// Bare is true when the catalog gave only a repository root.
	Bare bool
}

// Catalog is the set of known vendors. Entries are normalized when the
// catalog is parsed; malformed entries are remembered and reported only if
// that vendor is selected.
type Catalog struct {
	entries map[string]VendorEntry
	invalid map[string]string
}

// Parse decodes a catalog document. source names the document in errors.
func Parse(data []byte, source string) (*Catalog, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &LoadError{Source: source, Err: err}
	}

	c := &Catalog{
		entries: make(map[string]VendorEntry),
		invalid: make(map[string]string),
	}

	// An empty document is an empty catalog.
	if len(doc.Content) == 0 {
		return c, nil
	}

	root := resolveAlias(doc.Content[0])
	if root.Kind != yaml.MappingNode {
		return nil, &LoadError{Source: source, Err: errors.New("expected a mapping of vendor names")}
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		name := root.Content[i].Value
		if name == "" {
			return nil, &LoadError{Source: source, Err: fmt.Errorf("line %d: empty vendor name", root.Content[i].Line)}
		}
		if c.has(name) {
			return nil, &LoadError{Source: source, Err: fmt.Errorf("line %d: duplicate vendor %q", root.Content[i].Line, name)}
		}

		entry, reason := decodeEntry(root.Content[i+1])
		if reason != "" {
			c.invalid[name] = reason
			continue
		}
		c.entries[name] = entry
	}

	return c, nil
}

// New builds a catalog directly from normalized entries.
func New(entries map[string]VendorEntry) *Catalog {
	c := &Catalog{
		entries: make(map[string]VendorEntry, len(entries)),
		invalid: make(map[string]string),
	}
	for name, e := range entries {
		c.entries[name] = e
	}
	return c
}

func (c *Catalog) has(name string) bool {
	_, ok := c.entries[name]
	_, bad := c.invalid[name]
	return ok || bad
}

// Vendors returns all vendor names, valid or not, sorted.
func (c *Catalog) Vendors() []string {
	names := make([]string, 0, len(c.entries)+len(c.invalid))
	for name := range c.entries {
		names = append(names, name)
	}
	for name := range c.invalid {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Entry returns the normalized entry for vendor. It returns
// VendorNotFoundError for unknown vendors and InvalidVendorEntryError for
// entries of an unsupported shape.
func (c *Catalog) Entry(vendor string) (VendorEntry, error) {
	if reason, ok := c.invalid[vendor]; ok {
		return VendorEntry{}, &InvalidVendorEntryError{Vendor: vendor, Reason: reason}
	}
	e, ok := c.entries[vendor]
	if !ok {
		return VendorEntry{}, &VendorNotFoundError{Vendor: vendor, Known: c.Vendors()}
	}
	return e, nil
}

// decodeEntry normalizes one vendor value. A non-empty reason means the
// entry is invalid.
func decodeEntry(n *yaml.Node) (VendorEntry, string) {
	n = resolveAlias(n)

	switch n.Kind {
	case yaml.ScalarNode:
		if n.ShortTag() == "!!null" || n.Value == "" {
			return VendorEntry{}, "missing " + keyRepositoryRoot
		}
		return VendorEntry{RepositoryRoot: n.Value, Bare: true}, ""

	case yaml.MappingNode:
		var e VendorEntry
		seen := make(map[string]bool)
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i].Value
			val := resolveAlias(n.Content[i+1])
			if seen[key] {
				return VendorEntry{}, fmt.Sprintf("duplicate key %q", key)
			}
			seen[key] = true

			switch key {
			case keyRepositoryRoot, keyDefaultVersion:
			default:
				return VendorEntry{}, fmt.Sprintf("unknown key %q", key)
			}
			if val.Kind != yaml.ScalarNode {
				return VendorEntry{}, fmt.Sprintf("%s must be a string", key)
			}
			if val.ShortTag() == "!!null" {
				continue
			}
			if key == keyRepositoryRoot {
				e.RepositoryRoot = val.Value
			} else {
				e.DefaultVersion = val.Value
			}
		}
		if e.RepositoryRoot == "" {
			return VendorEntry{}, "missing " + keyRepositoryRoot
		}
		return e, ""

	default:
		return VendorEntry{}, "expected a repository root or a mapping with " + keyRepositoryRoot
	}
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}
