package db

import "fmt"

// BackendError wraps an opaque failure from the external store: network,
// constraint, auth. It is never retried here; callers re-issue on user action.
type BackendError struct {
	Op  string
	Err error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("backend error during %s: %v", e.Op, e.Err)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

// Backend wraps err as a BackendError for the given operation.
func Backend(op string, err error) error {
	return &BackendError{Op: op, Err: err}
}
