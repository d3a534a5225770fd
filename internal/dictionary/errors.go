package dictionary

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidEntry is returned when a lemma or entry is missing or malformed.
	ErrInvalidEntry = errors.New("invalid entry")
	// ErrNotFound is returned when a lemma does not exist.
	ErrNotFound = errors.New("entry not found")
)

// ConversionError reports a failure to read or write one of the file representations.
type ConversionError struct {
	Path string
	Err  error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("convert %s: %v", e.Path, e.Err)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}
