package versions

import (
	"fmt"
	"sort"
	"strings"
)

// maxListed caps how many known versions an error message names.
const maxListed = 10

// MalformedVersionError indicates a version string that cannot be parsed.
type MalformedVersionError struct {
	Raw    string
	Reason string
}

func (e *MalformedVersionError) Error() string {
	return fmt.Sprintf("malformed version %q: %s", e.Raw, e.Reason)
}

// NoVersionSpecifiedError indicates that neither a candidate nor a default
// version was available.
type NoVersionSpecifiedError struct{}

func (e *NoVersionSpecifiedError) Error() string {
	return "no version specified and no default version configured"
}

// VersionNotFoundError indicates that no known version satisfies a specifier.
type VersionNotFoundError struct {
	Specifier string
	Known     []string
}

func (e *VersionNotFoundError) Error() string {
	return fmt.Sprintf("no version matching %q (available: %s)", e.Specifier, Summarize(e.Known))
}

// Summarize renders a sorted, truncated list of values for error messages.
func Summarize(values []string) string {
	if len(values) == 0 {
		return "none"
	}
	sorted := make([]string, len(values))
	copy(sorted, values)
	sort.Strings(sorted)
	if len(sorted) > maxListed {
		return strings.Join(sorted[:maxListed], ", ") + fmt.Sprintf(", ... (%d more)", len(sorted)-maxListed)
	}
	return strings.Join(sorted, ", ")
}
