// File: pkg/include/errors.go
package include

import "fmt"

// ReadError reports a failure reading an include target that exists and is
// not circular. Unlike missing or circular targets, which are substituted
// textually, a read failure aborts the whole expansion for the root
// document and is surfaced to the caller.
type ReadError struct {
	Path string // Resolved path of the target that failed to read.
	Err  error  // Underlying filesystem error.
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("reading include target %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }
