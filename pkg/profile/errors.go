package profile

import (
	"errors"
	"fmt"
)

var (
	// ErrBenderNotFound indicates no bender matches the requested id or name.
	ErrBenderNotFound = errors.New("profile: bender not found")
	// ErrDieNotFound indicates the bender has no die with the requested id or name.
	ErrDieNotFound = errors.New("profile: die not found")
	// ErrUnsupportedVersion indicates a catalog schema this reader does not know.
	ErrUnsupportedVersion = errors.New("profile: unsupported catalog version")
	// ErrInvalidCatalog indicates a catalog without a benders list.
	ErrInvalidCatalog = errors.New("profile: invalid catalog")
)

// LoadError reports a catalog file that could not be read or decoded
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("profile: failed to load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }
