/*
engine.go - Approval state machine

PURPOSE:
  Validates and applies the four lifecycle operations: submit, approve,
  reject, cancel. This is the only writer of the ledger; everything else
  in the system is a derived read.

STATE MACHINE:
  Pending -> Approved   (HR decision)
  Pending -> Rejected   (HR decision, reason required)
  Pending -> (removed)  (owner cancellation)
  No other transition is legal. Approved and Rejected are terminal.

ADMISSION-TIME CHECK:
  Submit is the sole balance gate. It projects the employee's balance
  inside a per-(employee,type) critical section and rejects the request
  if it would overdraw. Approve does NOT re-validate: approval is
  authorization, not re-allocation.

CONCURRENCY:
  - Submit serializes per (employeeID, type) so the project-then-append
    sequence is one logical unit. Different keys proceed in parallel.
  - Approve/Reject/Cancel serialize per application id, and the ledger's
    conditional UpdateStatus backs this up: a lost race surfaces as
    ErrInvalidTransition, never a double-decision.
  - Two concurrent submissions that each fit individually but jointly
    exceed the remainder race for the lock; whichever enters first wins
    and the other fails ErrInsufficientBalance.

SEE ALSO:
  - projector.go: The balance fold used by the admission check
  - ledger.go: Conditional transition semantics
*/
package leave

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// =============================================================================
// CLOCK - Injectable time source
// =============================================================================

type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

// SystemClock returns the real UTC clock.
func SystemClock() Clock { return systemClock{} }

// =============================================================================
// KEYED MUTEX - Per-key serialization
// =============================================================================

// keyedMutex hands out one mutex per string key. Keys are never evicted;
// the key space here (employees x 4 types, plus application ids) is small
// enough that this does not matter.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*sync.Mutex)}
}

func (km *keyedMutex) lock(key string) func() {
	km.mu.Lock()
	l, ok := km.locks[key]
	if !ok {
		l = &sync.Mutex{}
		km.locks[key] = l
	}
	km.mu.Unlock()

	l.Lock()
	return l.Unlock
}

// =============================================================================
// ENGINE - The approval state machine
// =============================================================================

// Engine applies lifecycle operations against an injected ledger.
// It trusts the caller's asserted identity; authentication belongs to
// the collaborator layer.
type Engine struct {
	ledger   Ledger
	clock    Clock
	notifier Notifier
	log      *zap.Logger

	submitLocks *keyedMutex // key: employeeID|type
	recordLocks *keyedMutex // key: application id
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock replaces the time source (tests).
func WithClock(c Clock) Option { return func(e *Engine) { e.clock = c } }

// WithNotifier installs a notification sink.
func WithNotifier(n Notifier) Option { return func(e *Engine) { e.notifier = n } }

// WithLogger installs a structured logger.
func WithLogger(l *zap.Logger) Option { return func(e *Engine) { e.log = l } }

// NewEngine creates an engine over the given ledger.
func NewEngine(ledger Ledger, opts ...Option) *Engine {
	e := &Engine{
		ledger:      ledger,
		clock:       SystemClock(),
		notifier:    NopNotifier{},
		log:         zap.NewNop(),
		submitLocks: newKeyedMutex(),
		recordLocks: newKeyedMutex(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SubmitInput carries the fields of a new leave request.
type SubmitInput struct {
	EmployeeID  string
	Type        Type
	StartDate   time.Time
	EndDate     time.Time
	Reason      string
	ContactInfo string // optional
}

// Submit validates and admits a new request as Pending.
//
// On success the record is immediately visible to subsequent projections;
// there is no eventual-consistency window. On error the ledger is
// untouched.
func (e *Engine) Submit(ctx context.Context, in SubmitInput) (Application, error) {
	if !in.Type.Valid() {
		return Application{}, ErrUnknownType
	}
	if strings.TrimSpace(in.Reason) == "" {
		return Application{}, ErrMissingReason
	}

	days, err := CountBusinessDays(in.StartDate, in.EndDate)
	if err != nil {
		return Application{}, err
	}
	if days < 1 {
		// Weekend-only window: no business days to consume.
		return Application{}, ErrInvalidRange
	}

	// Serialize the project-then-append sequence per (employee, type).
	unlock := e.submitLocks.lock(in.EmployeeID + "|" + string(in.Type))
	defer unlock()

	records, err := e.ledger.ListByEmployee(ctx, in.EmployeeID)
	if err != nil {
		return Application{}, err
	}

	balance := Project(records, in.EmployeeID, in.Type)
	if days > balance.Remaining {
		return Application{}, &InsufficientBalanceError{
			EmployeeID: in.EmployeeID,
			Type:       in.Type,
			Requested:  days,
			Remaining:  balance.Remaining,
		}
	}

	app := Application{
		ID:          uuid.NewString(),
		EmployeeID:  in.EmployeeID,
		Type:        in.Type,
		StartDate:   DateOnly(in.StartDate),
		EndDate:     DateOnly(in.EndDate),
		Days:        days,
		Reason:      strings.TrimSpace(in.Reason),
		ContactInfo: strings.TrimSpace(in.ContactInfo),
		Status:      StatusPending,
		AppliedOn:   DateOnly(e.clock.Now()),
	}

	if err := e.ledger.Append(ctx, app); err != nil {
		return Application{}, err
	}

	e.log.Info("leave submitted",
		zap.String("application_id", app.ID),
		zap.String("employee_id", app.EmployeeID),
		zap.String("type", string(app.Type)),
		zap.Int("days", app.Days),
	)
	e.emit(EventSubmitted, app, in.EmployeeID)
	return app, nil
}

// Approve moves a Pending record to Approved.
//
// The admission-time check in Submit is the sole balance gate; approval
// deliberately does not re-validate the remainder.
func (e *Engine) Approve(ctx context.Context, id, decidedBy string) (Application, error) {
	unlock := e.recordLocks.lock(id)
	defer unlock()

	app, err := e.ledger.UpdateStatus(ctx, id, StatusPending, StatusChange{
		To:        StatusApproved,
		DecidedOn: DateOnly(e.clock.Now()),
		DecidedBy: decidedBy,
	})
	if err != nil {
		return Application{}, err
	}

	e.log.Info("leave approved",
		zap.String("application_id", app.ID),
		zap.String("decided_by", decidedBy),
	)
	e.emit(EventApproved, app, decidedBy)
	return app, nil
}

// Reject moves a Pending record to Rejected. The rejection reason is
// mandatory and is stored on the record; the days held by the request
// return to the remainder automatically because pending no longer counts
// them.
func (e *Engine) Reject(ctx context.Context, id, decidedBy, rejectionReason string) (Application, error) {
	reason := strings.TrimSpace(rejectionReason)
	if reason == "" {
		return Application{}, ErrMissingReason
	}

	unlock := e.recordLocks.lock(id)
	defer unlock()

	app, err := e.ledger.UpdateStatus(ctx, id, StatusPending, StatusChange{
		To:              StatusRejected,
		DecidedOn:       DateOnly(e.clock.Now()),
		DecidedBy:       decidedBy,
		RejectionReason: reason,
	})
	if err != nil {
		return Application{}, err
	}

	e.log.Info("leave rejected",
		zap.String("application_id", app.ID),
		zap.String("decided_by", decidedBy),
	)
	e.emit(EventRejected, app, decidedBy)
	return app, nil
}

// Cancel removes a still-Pending record. Only the owning employee may
// cancel; an HR override is an administrative concern outside this
// engine's contract.
func (e *Engine) Cancel(ctx context.Context, id, requestedBy string) error {
	unlock := e.recordLocks.lock(id)
	defer unlock()

	app, err := e.ledger.Find(ctx, id)
	if err != nil {
		return err
	}
	if app.EmployeeID != requestedBy {
		return &TransitionError{ID: id, Status: app.Status, Op: "cancel as non-owner"}
	}
	if app.Status != StatusPending {
		return &TransitionError{ID: id, Status: app.Status, Op: "cancel"}
	}

	if err := e.ledger.Remove(ctx, id); err != nil {
		return err
	}

	e.log.Info("leave canceled",
		zap.String("application_id", app.ID),
		zap.String("employee_id", app.EmployeeID),
	)
	e.emit(EventCanceled, app, requestedBy)
	return nil
}

// emit dispatches a transition event without blocking the caller.
func (e *Engine) emit(action EventAction, app Application, actor string) {
	event := Event{Action: action, Application: app, Actor: actor, At: e.clock.Now()}
	go e.notifier.Notify(event)
}
