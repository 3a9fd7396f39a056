package jre

import "regexp"

var stackSizeRegex = regexp.MustCompile(`^[0-9]+[kKmMgG]$`)

// ValidateStackSize checks a candidate thread stack size. An empty
// candidate means no stack size and is not an error.
func ValidateStackSize(candidate string) (string, error) {
	if candidate == "" {
		return "", nil
	}
	if !stackSizeRegex.MatchString(candidate) {
		return "", &InvalidStackSizeError{Value: candidate}
	}
	return candidate, nil
}
