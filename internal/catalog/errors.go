package catalog

// Error types for catalog and index failures. Each carries the offending
// value and, where useful, a summary of what was available.

import (
	"fmt"

	"github.com/majorcontext/jvmpack/internal/versions"
)

// VendorNotFoundError indicates the requested vendor is not in the catalog.
type VendorNotFoundError struct {
	Vendor string
	Known  []string
}

func (e *VendorNotFoundError) Error() string {
	return fmt.Sprintf("vendor %q not found (available: %s)", e.Vendor, versions.Summarize(e.Known))
}

// AmbiguousVendorError indicates no vendor was requested and the catalog
// does not contain exactly one.
type AmbiguousVendorError struct {
	Known []string
}

func (e *AmbiguousVendorError) Error() string {
	if len(e.Known) == 0 {
		return "no vendor specified and the catalog is empty"
	}
	return fmt.Sprintf("no vendor specified and the catalog offers %d (%s); set JAVA_RUNTIME_VENDOR",
		len(e.Known), versions.Summarize(e.Known))
}

// InvalidVendorEntryError indicates a catalog entry of an unsupported shape.
type InvalidVendorEntryError struct {
	Vendor string
	Reason string
}

func (e *InvalidVendorEntryError) Error() string {
	return fmt.Sprintf("invalid catalog entry for vendor %q: %s", e.Vendor, e.Reason)
}

// LoadError indicates the catalog could not be read or parsed.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading catalog %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// IndexLoadError indicates a vendor's index could not be opened or parsed.
type IndexLoadError struct {
	Root string
	Err  error
}

func (e *IndexLoadError) Error() string {
	return fmt.Sprintf("loading index for %s: %v", e.Root, e.Err)
}

func (e *IndexLoadError) Unwrap() error {
	return e.Err
}
