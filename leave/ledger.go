/*
ledger.go - Ledger abstraction for leave application records

PURPOSE:
  The Ledger is the authoritative collection of leave applications.
  It is append/transition-only: records enter via Append, change status
  via UpdateStatus, and leave only via Remove of a still-Pending record
  (cancellation). There are no free-form edits to historical fields.

CRITICAL INVARIANTS:
  1. Append only creates; it never overwrites an existing id.
  2. UpdateStatus is conditional on the record's current status, so a
     lost race surfaces as ErrInvalidTransition instead of silently
     double-applying a decision.
  3. Remove refuses anything that is no longer Pending.

IMPLEMENTATIONS:
  - store.Memory:  in-memory, for tests and development
  - sqlite.Store:  durable, with the same conditional-update semantics
    enforced by the database

SEE ALSO:
  - engine.go: The only writer of the ledger
  - projector.go: Pure reads over ledger snapshots
*/
package leave

import (
	"context"
	"time"
)

// StatusChange carries the mutable decision fields applied by a transition.
type StatusChange struct {
	To              Status
	DecidedOn       time.Time
	DecidedBy       string
	RejectionReason string
}

// Ledger persists leave applications.
//
// Implementations must make each method atomic on its own, but need not
// serialize check-then-append sequences across methods; the engine holds
// per-key locks around those (see Engine).
type Ledger interface {
	// Append adds a new record. The id must not already exist.
	Append(ctx context.Context, app Application) error

	// Find returns the record with the given id, or ErrNotFound.
	Find(ctx context.Context, id string) (Application, error)

	// ListByEmployee returns all records for an employee, ordered by
	// AppliedOn then id. The returned slice is a snapshot; callers may
	// not mutate ledger state through it.
	ListByEmployee(ctx context.Context, employeeID string) ([]Application, error)

	// ListPending returns all Pending records across employees, ordered
	// by AppliedOn then id.
	ListPending(ctx context.Context) ([]Application, error)

	// ListAll returns every record in the ledger. Used for aggregate
	// reporting, not per-request paths.
	ListAll(ctx context.Context) ([]Application, error)

	// UpdateStatus applies a decision to the record with the given id,
	// provided its current status equals from. Returns the updated
	// record, ErrNotFound for an unknown id, or ErrInvalidTransition
	// when the current status does not match.
	UpdateStatus(ctx context.Context, id string, from Status, change StatusChange) (Application, error)

	// Remove deletes the record with the given id, provided it is still
	// Pending. Returns ErrNotFound or ErrInvalidTransition otherwise.
	Remove(ctx context.Context, id string) error
}
