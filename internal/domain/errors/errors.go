package errors

import (
	"errors"
	"fmt"
)

var (
	ErrAlreadyExists          = errors.New("already exists")
	ErrNotFound               = errors.New("not found")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrEmptyItemList          = errors.New("return must contain at least one item")
	ErrConflict               = errors.New("return was modified concurrently")
	ErrMalformedInput         = errors.New("malformed input")
	ErrCancellationNotAllowed = errors.New("cancellation not allowed at this stage")
	ErrReturnLimitReached     = errors.New("subscription return limit reached")
	ErrInvalidTransition      = errors.New("invalid status transition")
)

// InvalidTransitionError carries the offending (from, to) pair so callers can
// surface it instead of a bare failure. It unwraps to ErrInvalidTransition.
type InvalidTransitionError struct {
	From string
	To   string
}

func (e InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid status transition from %s to %s", e.From, e.To)
}

func (e InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}
