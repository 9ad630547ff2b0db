package domain

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("not found")

// LoadError reports that a catalog source could not be read or decoded.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load catalog from %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }
