/*
errors.go - Centralized error types for the leave engine

PURPOSE:
  All caller-facing errors in one place. Every error here is recoverable:
  the failed operation has no effect on ledger state, and retries are the
  caller's business (a second approve yields ErrInvalidTransition, not a
  double-approval).

ERROR CATEGORIES:
  1. Input errors     - bad ranges, missing reasons
  2. Admission errors - insufficient balance at submission time
  3. Lifecycle errors - unknown ids, illegal transitions

USAGE:
  if errors.Is(err, leave.ErrInsufficientBalance) {
      var ibe *leave.InsufficientBalanceError
      errors.As(err, &ibe) // for shortfall details
  }

SEE ALSO:
  - engine.go: Returns these from submit/approve/reject/cancel
  - api/handlers.go: Maps these to HTTP status codes
*/
package leave

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidRange is returned when the end date precedes the start date,
	// or the window contains no business days.
	ErrInvalidRange = errors.New("invalid date range")

	// ErrInsufficientBalance is returned when the requested days exceed the
	// remaining allowance at submission time.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrMissingReason is returned when a submission or rejection carries a
	// blank reason.
	ErrMissingReason = errors.New("reason is required")

	// ErrNotFound is returned for an unknown application id.
	ErrNotFound = errors.New("application not found")

	// ErrInvalidTransition is returned when operating on a non-Pending
	// record, or when someone other than the owner cancels.
	ErrInvalidTransition = errors.New("invalid transition")

	// ErrUnknownType is returned for a leave type outside the closed set.
	ErrUnknownType = errors.New("unknown leave type")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// InsufficientBalanceError reports the shortfall behind an admission failure.
type InsufficientBalanceError struct {
	EmployeeID string
	Type       Type
	Requested  int
	Remaining  int
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient %s balance for %s: requested %d, remaining %d",
		e.Type, e.EmployeeID, e.Requested, e.Remaining)
}

func (e *InsufficientBalanceError) Unwrap() error {
	return ErrInsufficientBalance
}

// TransitionError reports an illegal lifecycle operation with its context.
type TransitionError struct {
	ID     string
	Status Status
	Op     string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot %s application %s in status %s", e.Op, e.ID, e.Status)
}

func (e *TransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid caller input
// rather than an engine or store failure.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidRange) ||
		errors.Is(err, ErrInsufficientBalance) ||
		errors.Is(err, ErrMissingReason) ||
		errors.Is(err, ErrUnknownType)
}

// IsNotFound returns true if the error indicates a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsConflict returns true if the error indicates a lifecycle conflict.
func IsConflict(err error) bool {
	return errors.Is(err, ErrInvalidTransition)
}
