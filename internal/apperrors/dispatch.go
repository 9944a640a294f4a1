package apperrors

import "fmt"

// DispatchError wraps a failure inside the notification engine. It never
// crosses the dispatcher boundary: it is logged there and discarded so the
// triggering operation cannot be affected.
type DispatchError struct {
	EventKind string
	Err       error
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("notification dispatch failed for %s: %v", e.EventKind, e.Err)
}

func (e *DispatchError) Unwrap() error {
	return e.Err
}
