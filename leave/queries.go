/*
queries.go - Read-only views over the ledger

PURPOSE:
  The query facade consumed by presentation layers. Everything here is a
  derived read: no method mutates the ledger, and results are computed
  from fresh snapshots on every call.

VIEWS:
  ListActive:            employee's non-rejected requests ending today or later
  ListHistory:           employee's past or rejected requests
  ListPendingForApproval: all Pending requests across employees (HR)
  Balances:              per-type {total, used, pending, remaining}
  Summary:               HR dashboard counts and per-type utilization

SEE ALSO:
  - projector.go: Balance derivation
  - api/handlers.go: HTTP exposure of these views
*/
package leave

import (
	"context"

	"github.com/shopspring/decimal"
)

// Queries exposes the read side of the engine.
type Queries struct {
	ledger Ledger
	clock  Clock
}

// NewQueries creates a query facade over the given ledger.
func NewQueries(ledger Ledger, clock Clock) *Queries {
	if clock == nil {
		clock = SystemClock()
	}
	return &Queries{ledger: ledger, clock: clock}
}

// ListActive returns all of an employee's records that are not rejected
// and whose end date is today or later.
func (q *Queries) ListActive(ctx context.Context, employeeID string) ([]Application, error) {
	records, err := q.ledger.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	today := DateOnly(q.clock.Now())
	active := make([]Application, 0, len(records))
	for _, app := range records {
		if app.Status != StatusRejected && !app.EndDate.Before(today) {
			active = append(active, app)
		}
	}
	return active, nil
}

// ListHistory returns all of an employee's records that have ended before
// today or were rejected.
func (q *Queries) ListHistory(ctx context.Context, employeeID string) ([]Application, error) {
	records, err := q.ledger.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	today := DateOnly(q.clock.Now())
	history := make([]Application, 0, len(records))
	for _, app := range records {
		if app.EndDate.Before(today) || app.Status == StatusRejected {
			history = append(history, app)
		}
	}
	return history, nil
}

// ListPendingForApproval returns every Pending record across all
// employees, for the HR approval queue.
func (q *Queries) ListPendingForApproval(ctx context.Context) ([]Application, error) {
	return q.ledger.ListPending(ctx)
}

// Balances projects the per-type balances for one employee.
func (q *Queries) Balances(ctx context.Context, employeeID string) (map[Type]Balance, error) {
	records, err := q.ledger.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return ProjectAll(records, employeeID), nil
}

// =============================================================================
// HR SUMMARY - Aggregate dashboard view
// =============================================================================

// TypeUsage aggregates consumption of one leave type across the company.
type TypeUsage struct {
	Type         Type
	ApprovedDays int
	PendingDays  int

	// Utilization is approved days over the aggregate allotment
	// (employees with ledger records x the type's total), as an exact
	// percentage. Zero when no employee has any record.
	Utilization decimal.Decimal
}

// Summary is the aggregate view behind the HR dashboard stat cards.
type Summary struct {
	PendingCount  int
	ApprovedCount int
	RejectedCount int
	Employees     int
	Usage         []TypeUsage
}

// Summary folds the whole ledger into dashboard counts and per-type
// utilization rates.
func (q *Queries) Summary(ctx context.Context) (Summary, error) {
	records, err := q.ledger.ListAll(ctx)
	if err != nil {
		return Summary{}, err
	}

	var s Summary
	employees := make(map[string]struct{})
	approved := make(map[Type]int)
	pending := make(map[Type]int)

	for _, app := range records {
		employees[app.EmployeeID] = struct{}{}
		switch app.Status {
		case StatusPending:
			s.PendingCount++
			pending[app.Type] += app.Days
		case StatusApproved:
			s.ApprovedCount++
			approved[app.Type] += app.Days
		case StatusRejected:
			s.RejectedCount++
		}
	}
	s.Employees = len(employees)

	hundred := decimal.NewFromInt(100)
	for _, typ := range Types() {
		usage := TypeUsage{
			Type:         typ,
			ApprovedDays: approved[typ],
			PendingDays:  pending[typ],
			Utilization:  decimal.Zero,
		}
		if s.Employees > 0 {
			capacity := decimal.NewFromInt(int64(s.Employees * Allotments[typ]))
			usage.Utilization = decimal.NewFromInt(int64(approved[typ])).
				Mul(hundred).
				DivRound(capacity, 2)
		}
		s.Usage = append(s.Usage, usage)
	}

	return s, nil
}
