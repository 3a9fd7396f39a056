package versions

import "strings"

// Compare orders two parsed, non-wildcard specifiers segment by segment.
// It returns -1, 0 or +1.
//
// Numeric segments compare by value and sort before non-numeric segments
// at the same position. Non-numeric segments compare lexically. When one
// specifier is a proper prefix of the other, the shorter one is lower.
func Compare(a, b Specifier) int {
	return compareSegments(a.segments, b.segments)
}

func compareSegments(a, b []string) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if c := compareSegment(a[i], b[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}

func compareSegment(a, b string) int {
	an, bn := isNumeric(a), isNumeric(b)
	switch {
	case an && bn:
		return compareNumeric(a, b)
	case an:
		return -1
	case bn:
		return 1
	default:
		return strings.Compare(a, b)
	}
}

// compareNumeric compares decimal strings of any length without parsing
// them into a fixed-width integer.
func compareNumeric(a, b string) int {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
