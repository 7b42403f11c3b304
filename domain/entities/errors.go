package entities

import (
	"errors"
	"fmt"
)

// ValidationError marks structurally invalid user input: duplicate markets,
// invalid market parameterizations, non-complementary wincase pairings.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NewValidationErrorf builds a ValidationError from a format string
func NewValidationErrorf(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// PreconditionError marks a well-formed operation applied in the wrong state:
// wrong game status, unauthorized issuer, unknown game or account.
type PreconditionError struct {
	Message string
}

func (e *PreconditionError) Error() string { return e.Message }

// NewPreconditionErrorf builds a PreconditionError from a format string
func NewPreconditionErrorf(format string, args ...any) *PreconditionError {
	return &PreconditionError{Message: fmt.Sprintf(format, args...)}
}

// ReplayError marks reuse of an externally assigned identity, e.g. a game
// UUID already present in the UUID history.
type ReplayError struct {
	Message string
}

func (e *ReplayError) Error() string { return e.Message }

// NewReplayErrorf builds a ReplayError from a format string
func NewReplayErrorf(format string, args ...any) *ReplayError {
	return &ReplayError{Message: fmt.Sprintf(format, args...)}
}

// IsValidationError reports whether err wraps a ValidationError
func IsValidationError(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// IsPreconditionError reports whether err wraps a PreconditionError
func IsPreconditionError(err error) bool {
	var target *PreconditionError
	return errors.As(err, &target)
}

// IsReplayError reports whether err wraps a ReplayError
func IsReplayError(err error) bool {
	var target *ReplayError
	return errors.As(err, &target)
}
