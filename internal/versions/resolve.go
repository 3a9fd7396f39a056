package versions

// Resolve picks the concrete version for a candidate specifier.
//
// An empty candidate falls back to fallback (typically a vendor's default
// version). When both are empty, resolution fails with
// NoVersionSpecifiedError. Exact specifiers must appear verbatim in known.
// Wildcard specifiers select the highest matching member of known; if two
// members compare equal the first one in known wins.
func Resolve(candidate, fallback string, known []string) (string, error) {
	effective := candidate
	if effective == "" {
		effective = fallback
	}
	if effective == "" {
		return "", &NoVersionSpecifiedError{}
	}

	spec, err := Parse(effective)
	if err != nil {
		return "", err
	}
	return spec.Select(known)
}

// Select returns the member of known that satisfies the specifier.
func (s Specifier) Select(known []string) (string, error) {
	if !s.wildcard {
		for _, k := range known {
			if s.Matches(k) {
				return k, nil
			}
		}
		return "", &VersionNotFoundError{Specifier: s.raw, Known: known}
	}

	var (
		best       string
		bestParsed Specifier
		found      bool
	)
	for _, k := range known {
		v, err := Parse(k)
		if err != nil || v.wildcard || !s.Matches(k) {
			continue
		}
		if !found || Compare(v, bestParsed) > 0 {
			best, bestParsed, found = k, v, true
		}
	}
	if !found {
		return "", &VersionNotFoundError{Specifier: s.raw, Known: known}
	}
	return best, nil
}
