package store

import (
	"errors"
	"fmt"
)

// ErrUnavailable is matched by every error a Store returns when its backend
// cannot complete an operation.
var ErrUnavailable = errors.New("store: unavailable")

// UnavailableError describes a failed backend operation. The underlying cause
// is available through errors.Unwrap.
type UnavailableError struct {
	Backend string
	Op      string
	Key     string
	Err     error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("store/%s: %s %q: %v", e.Backend, e.Op, e.Key, e.Err)
}

func (e *UnavailableError) Unwrap() error {
	return e.Err
}

// Is reports ErrUnavailable as a match so callers don't need to know the
// concrete backend error.
func (e *UnavailableError) Is(target error) bool {
	return target == ErrUnavailable
}

// Unavailable wraps err in an *UnavailableError. A nil err yields nil.
func Unavailable(backend, op, key string, err error) error {
	if err == nil {
		return nil
	}
	return &UnavailableError{Backend: backend, Op: op, Key: key, Err: err}
}
