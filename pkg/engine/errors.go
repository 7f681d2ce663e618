package engine

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions.
var (
	// ErrNotImplemented is returned by entry points a module does not support.
	ErrNotImplemented = errors.New("not implemented")

	// ErrShapeMismatch is returned when a frame does not have the expected layout.
	ErrShapeMismatch = errors.New("engine: frame shape mismatch")

	// ErrNoOutput is returned when a frame is sent without an output sink.
	ErrNoOutput = errors.New("engine: no output frame configured")

	// ErrBadMapping is returned when a video mapping cannot be parsed.
	ErrBadMapping = errors.New("engine: invalid video mapping")
)

// FatalError marks a failure after which the module must not be driven again.
type FatalError struct {
	// Module is the name of the module that failed.
	Module string

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *FatalError) Error() string {
	if e.Module == "" {
		return fmt.Sprintf("fatal: %v", e.Err)
	}
	return fmt.Sprintf("fatal [%s]: %v", e.Module, e.Err)
}

// Unwrap returns the underlying error.
func (e *FatalError) Unwrap() error {
	return e.Err
}

// Fatal wraps err as a FatalError attributed to module.
func Fatal(module string, err error) error {
	if err == nil {
		return nil
	}
	return &FatalError{Module: module, Err: err}
}

// IsFatal reports whether err, or anything it wraps, is a FatalError.
func IsFatal(err error) bool {
	var fe *FatalError
	return errors.As(err, &fe)
}
