package catalog

// ResolveVendor picks a vendor from known. With no candidate, known must
// contain exactly one vendor. With a candidate, it must be a member of
// known; matching is exact and case-sensitive.
func ResolveVendor(candidate string, known []string) (string, error) {
	if candidate == "" {
		if len(known) == 1 {
			return known[0], nil
		}
		return "", &AmbiguousVendorError{Known: known}
	}

	for _, k := range known {
		if k == candidate {
			return k, nil
		}
	}
	return "", &VendorNotFoundError{Vendor: candidate, Known: known}
}
