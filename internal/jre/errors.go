package jre

import "fmt"

// InvalidStackSizeError indicates a stack size that is not a single
// memory-size token such as "128k".
type InvalidStackSizeError struct {
	Value string
}

func (e *InvalidStackSizeError) Error() string {
	return fmt.Sprintf("invalid stack size %q: expected a single size such as 256k, 1m", e.Value)
}
