/*
Package leave implements the leave request workflow engine.

PURPOSE:
  This package contains the core types and algorithms for managing
  time-off requests against bounded per-type allowances: the approval
  state machine, the business-day calculator, and the balance projector
  that folds a consistent "remaining allowance" view from the request
  history.

KEY CONCEPTS IN THIS FILE (types.go):
  - Type: Closed enumeration of leave types with fixed annual allotments
  - Application: One immutable-ish record per submission
  - Status: Pending / Approved / Rejected lifecycle states
  - Balance: Derived {total, used, pending, remaining} view

DESIGN PRINCIPLES:
  1. The ledger is the source of truth; balances are always derived
  2. Days are computed once at submission and never re-derived
  3. Status only moves Pending -> Approved or Pending -> Rejected
  4. Cancellation removes a still-Pending record; it is not a status

SEE ALSO:
  - calendar.go: Business-day counting
  - projector.go: Balance derivation from ledger records
  - engine.go: State transitions and admission checks
*/
package leave

import "time"

// =============================================================================
// LEAVE TYPE - Closed enumeration with fixed annual allotments
// =============================================================================

type Type string

const (
	TypeAnnual     Type = "annual"
	TypeSick       Type = "sick"
	TypePersonal   Type = "personal"
	TypeRemoteWork Type = "remote_work"
)

// Allotments fixes the annual total per leave type for every employee.
// There is no accrual schedule and no carry-over: the total is granted
// in full and consumed atomically by requests.
var Allotments = map[Type]int{
	TypeAnnual:     20,
	TypeSick:       10,
	TypePersonal:   5,
	TypeRemoteWork: 20,
}

// Types returns the known leave types in a stable order.
func Types() []Type {
	return []Type{TypeAnnual, TypeSick, TypePersonal, TypeRemoteWork}
}

// Valid reports whether t is a known leave type.
func (t Type) Valid() bool {
	_, ok := Allotments[t]
	return ok
}

// =============================================================================
// STATUS - Record lifecycle
// =============================================================================

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// =============================================================================
// APPLICATION - One record per submission
// =============================================================================

// Application is a single leave request record in the ledger.
//
// ID, EmployeeID, Type, StartDate, EndDate, Days, Reason, ContactInfo and
// AppliedOn are set at submission and never change afterwards. Status,
// DecidedOn, DecidedBy and RejectionReason change only through the engine's
// approve/reject transitions.
type Application struct {
	ID         string
	EmployeeID string
	Type       Type

	// Inclusive calendar dates, normalized to UTC midnight.
	StartDate time.Time
	EndDate   time.Time

	// Business days in [StartDate, EndDate], computed once at submission.
	// Re-deriving at approval time must not silently change the consumed
	// amount, so this is stored, not recomputed.
	Days int

	Reason      string
	ContactInfo string

	Status    Status
	AppliedOn time.Time

	// Present iff Status != Pending.
	DecidedOn time.Time
	DecidedBy string

	// Present iff Status == Rejected.
	RejectionReason string
}

// Decided reports whether the record has reached a terminal status.
func (a Application) Decided() bool {
	return a.Status == StatusApproved || a.Status == StatusRejected
}

// =============================================================================
// BALANCE - Derived view, never stored
// =============================================================================

// Balance is the projected allowance state for one employee and leave type.
// Total = Used + Pending + Remaining always holds.
type Balance struct {
	Type      Type
	Total     int
	Used      int
	Pending   int
	Remaining int
}
