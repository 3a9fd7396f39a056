// Package versions parses runtime version specifiers and resolves them
// against the concrete versions a repository index offers.
//
// A specifier is either exact ("1.7.0_21") or wildcarded with a trailing
// "+" segment ("1.7.+", "+"). Wildcards select the highest matching
// concrete version.
package versions

import (
	"regexp"
	"strings"
)

// Wildcard is the trailing segment meaning "highest matching version".
const Wildcard = "+"

// segmentRegex matches a single version segment.
var segmentRegex = regexp.MustCompile(`^[0-9A-Za-z-]+$`)

// Specifier is a parsed version specifier. It is immutable once parsed.
type Specifier struct {
	raw      string
	segments []string
	wildcard bool
}

// Parse parses a raw version string such as "1.7.0_21" or "1.7.+".
// Segments are separated by "." or "_".
func Parse(raw string) (Specifier, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Specifier{}, &MalformedVersionError{Raw: raw, Reason: "empty version"}
	}

	parts := splitSegments(s)
	wildcard := false
	if parts[len(parts)-1] == Wildcard {
		wildcard = true
		parts = parts[:len(parts)-1]
	}

	for _, p := range parts {
		if p == Wildcard {
			return Specifier{}, &MalformedVersionError{Raw: raw, Reason: "wildcard must be the last segment"}
		}
		if !segmentRegex.MatchString(p) {
			if p == "" {
				return Specifier{}, &MalformedVersionError{Raw: raw, Reason: "empty segment"}
			}
			return Specifier{}, &MalformedVersionError{Raw: raw, Reason: "invalid characters in segment " + p}
		}
	}

	return Specifier{raw: s, segments: parts, wildcard: wildcard}, nil
}

// MustParse is like Parse but panics on error. Intended for tests and
// package-level values.
func MustParse(raw string) Specifier {
	s, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return s
}

// splitSegments splits on both supported delimiters, keeping empty
// segments so "1..2" is rejected rather than silently collapsed.
func splitSegments(s string) []string {
	var parts []string
	start := 0
	for i, r := range s {
		if r == '.' || r == '_' {
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	return append(parts, s[start:])
}

// String returns the specifier as it was written, minus surrounding space.
func (s Specifier) String() string {
	return s.raw
}

// Wildcard reports whether the specifier ends in "+".
func (s Specifier) Wildcard() bool {
	return s.wildcard
}

// Segments returns a copy of the non-wildcard segments.
func (s Specifier) Segments() []string {
	out := make([]string, len(s.segments))
	copy(out, s.segments)
	return out
}

// Matches reports whether a concrete version satisfies the specifier.
// Exact specifiers match only the identical string. Wildcard specifiers
// match any parseable version whose leading segments equal the prefix.
func (s Specifier) Matches(version string) bool {
	if !s.wildcard {
		return strings.TrimSpace(version) == s.raw
	}

	v, err := Parse(version)
	if err != nil || v.wildcard {
		return false
	}
	if len(v.segments) < len(s.segments) {
		return false
	}
	for i, seg := range s.segments {
		if v.segments[i] != seg {
			return false
		}
	}
	return true
}
