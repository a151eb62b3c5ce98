// Package errors defines the pipeline error taxonomy. Fatal errors are
// setup-time failures (unreadable sources, invalid configuration,
// unresolvable models) that abort the run; everything else is transient,
// isolated to a game or row, logged and skipped.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel conditions recognized across the pipeline.
var (
	// ErrGameTimeout marks a game abandoned for exceeding its
	// sequencing budget.
	ErrGameTimeout = errors.New("game sequencing budget exceeded")

	// ErrNoData marks an input source that parsed to zero usable rows.
	ErrNoData = errors.New("no usable rows in source")
)

// FatalError wraps a setup-time failure that must abort the run.
type FatalError struct {
	Stage string
	Err   error
}

// Error implements the error interface.
func (e *FatalError) Error() string {
	return fmt.Sprintf("fatal %s error: %v", e.Stage, e.Err)
}

// Unwrap exposes the underlying cause.
func (e *FatalError) Unwrap() error {
	return e.Err
}

// Fatal wraps err as a fatal setup error for the named stage.
func Fatal(stage string, err error) error {
	if err == nil {
		return nil
	}
	return &FatalError{Stage: stage, Err: err}
}

// IsFatal reports whether err is (or wraps) a setup-time failure.
func IsFatal(err error) bool {
	var fe *FatalError
	return errors.As(err, &fe)
}
