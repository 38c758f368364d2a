package docstore

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidName is returned by Create for blank or unsafe names.
	ErrInvalidName = errors.New("invalid document name")
	// ErrNotFound is returned when the named document is not in the store.
	ErrNotFound = errors.New("document not found")
	// ErrNoFreeName is returned by Duplicate when no unused name can be derived.
	ErrNoFreeName = errors.New("no free duplicate name")
)

// StorageError wraps a backend failure. It is never recovered from at the
// HTTP boundary.
type StorageError struct {
	Op   string
	Name string
	Err  error
}

func (e *StorageError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %q: %v", e.Op, e.Name, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
