package domain

import (
	"errors"
	"fmt"
)

// ErrInvariantViolation marks a computed amount that breaks a settlement
// invariant (e.g. a negative split). These are programming faults and abort
// the operation; they are never clamped away.
var ErrInvariantViolation = errors.New("settlement invariant violation")

// ErrStateConflict is returned by conditional (compare-and-set) updates when
// the row was not in the expected starting state. Callers translate it to a
// user-facing ValidationError.
var ErrStateConflict = errors.New("record not in expected state")

// ValidationError is a user-facing precondition failure: wrong milestone
// type, record not in the expected starting state, and so on. No state was
// changed.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func NewValidationError(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// NotFoundError indicates a referenced booking/milestone/refund/wallet does
// not exist.
type NotFoundError struct {
	Resource string
	ID       int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Resource, e.ID)
}

func NewNotFoundError(resource string, id int64) error {
	return &NotFoundError{Resource: resource, ID: id}
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// PartialFailureError reports a settlement sequence that failed after some
// writes committed. It names the step that failed so an operator can
// reconcile manually; it must never be presented as a plain validation
// failure.
type PartialFailureError struct {
	Op   string
	Step string
	Err  error
}

func (e *PartialFailureError) Error() string {
	return fmt.Sprintf("%s: step %q failed, needs reconciliation: %v", e.Op, e.Step, e.Err)
}

func (e *PartialFailureError) Unwrap() error {
	return e.Err
}

func IsPartialFailure(err error) bool {
	var pf *PartialFailureError
	return errors.As(err, &pf)
}
