/*
projector.go - Balance projection from ledger records

PURPOSE:
  Derives {total, used, pending, remaining} for an employee and leave
  type by folding the ledger. The projection is never stored: every read
  recomputes it from the records passed in, so it cannot drift from the
  source of truth.

KEY INSIGHT:
  Rejection releases days automatically. A rejected record simply stops
  counting toward pending; nothing is decremented imperatively. The same
  holds for cancellation, which removes the record altogether.

PURITY:
  Project has no side effects and reads only the snapshot it is given.
  It is safe to call concurrently and repeatedly. Feeding it a snapshot
  taken inside the engine's per-key critical section is what makes the
  admission-time check sound.

SEE ALSO:
  - engine.go: Uses Project as the sole balance gate in Submit
  - queries.go: Exposes Balances to the read side
*/
package leave

// Project folds ledger records into the balance for one employee and
// leave type. Records for other employees or types are ignored, so the
// caller may pass an unfiltered employee snapshot.
func Project(records []Application, employeeID string, typ Type) Balance {
	b := Balance{Type: typ, Total: Allotments[typ]}

	for _, app := range records {
		if app.EmployeeID != employeeID || app.Type != typ {
			continue
		}
		switch app.Status {
		case StatusApproved:
			b.Used += app.Days
		case StatusPending:
			b.Pending += app.Days
		}
		// Rejected records count toward neither; their days are already
		// released by not being summed.
	}

	b.Remaining = b.Total - b.Used - b.Pending
	return b
}

// ProjectAll computes balances for every known leave type from one
// employee snapshot.
func ProjectAll(records []Application, employeeID string) map[Type]Balance {
	balances := make(map[Type]Balance, len(Allotments))
	for _, typ := range Types() {
		balances[typ] = Project(records, employeeID, typ)
	}
	return balances
}
