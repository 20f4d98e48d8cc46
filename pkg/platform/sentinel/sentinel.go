// Package sentinel holds error values for infrastructure facts. Caches and
// clients return them, possibly wrapped, and callers test with errors.Is.
package sentinel

import "errors"

var (
	// ErrNotFound means the key is absent or its entry has expired.
	ErrNotFound = errors.New("not found")
	// ErrUnavailable means the backing service could not be reached.
	ErrUnavailable = errors.New("unavailable")
)
