package store

import (
	"errors"
	"fmt"
)

var (
	ErrAuthRequired       = errors.New("authentication required")
	ErrBackendUnavailable = errors.New("backend unavailable")
	ErrNotFound           = errors.New("not found")
	ErrMalformedLocalData = errors.New("malformed local data")
)

// Unavailable tags a transport failure so callers can match both
// ErrBackendUnavailable and the underlying cause.
func Unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrBackendUnavailable, op, err)
}

// NotFound reports a missing update/delete target.
func NotFound(kind, id string) error {
	return fmt.Errorf("%s %q: %w", kind, id, ErrNotFound)
}
