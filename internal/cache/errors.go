package cache

import "fmt"

// FetchError indicates the origin could not supply the artifact. The
// cached copy, if any, is left untouched.
type FetchError struct {
	URI string
	// Status is the unexpected HTTP status, or 0 for transport failures.
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	switch {
	case e.Status != 0 && e.Err != nil:
		return fmt.Sprintf("fetching %s: status %d: %v", e.URI, e.Status, e.Err)
	case e.Status != 0:
		return fmt.Sprintf("fetching %s: unexpected status %d", e.URI, e.Status)
	default:
		return fmt.Sprintf("fetching %s: %v", e.URI, e.Err)
	}
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
