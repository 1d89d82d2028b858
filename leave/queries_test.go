package leave_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulsehr/leave-engine/leave"
	"github.com/pulsehr/leave-engine/store"
)

func seed(t *testing.T, ledger *store.Memory, app leave.Application) {
	t.Helper()
	require.NoError(t, ledger.Append(context.Background(), app))
}

func record(id, employeeID string, typ leave.Type, status leave.Status, days int, end time.Time) leave.Application {
	return leave.Application{
		ID:         id,
		EmployeeID: employeeID,
		Type:       typ,
		StartDate:  end.AddDate(0, 0, -(days - 1)),
		EndDate:    end,
		Days:       days,
		Reason:     "seeded",
		Status:     status,
		AppliedOn:  leave.NewDate(2025, time.January, 2),
	}
}

func TestQueries_ActiveVersusHistory(t *testing.T) {
	// Today is fixed at 2025-03-01. Active = not rejected and ending
	// today or later; history = ended before today or rejected.

	ledger := store.NewMemory()
	clock := fixedClock{now: leave.NewDate(2025, time.March, 1)}
	queries := leave.NewQueries(ledger, clock)
	ctx := context.Background()

	seed(t, ledger, record("upcoming", "emp-1", leave.TypeAnnual, leave.StatusPending, 5, leave.NewDate(2025, time.March, 21)))
	seed(t, ledger, record("ends-today", "emp-1", leave.TypeSick, leave.StatusApproved, 1, leave.NewDate(2025, time.March, 1)))
	seed(t, ledger, record("past", "emp-1", leave.TypeAnnual, leave.StatusApproved, 3, leave.NewDate(2025, time.February, 12)))
	seed(t, ledger, record("rejected-future", "emp-1", leave.TypePersonal, leave.StatusRejected, 2, leave.NewDate(2025, time.April, 4)))

	active, err := queries.ListActive(ctx, "emp-1")
	require.NoError(t, err)
	ids := make([]string, len(active))
	for i, a := range active {
		ids[i] = a.ID
	}
	assert.ElementsMatch(t, []string{"upcoming", "ends-today"}, ids)

	history, err := queries.ListHistory(ctx, "emp-1")
	require.NoError(t, err)
	ids = ids[:0]
	for _, a := range history {
		ids = append(ids, a.ID)
	}
	assert.ElementsMatch(t, []string{"past", "rejected-future"}, ids)
}

func TestQueries_Summary(t *testing.T) {
	ledger := store.NewMemory()
	queries := leave.NewQueries(ledger, fixedClock{now: leave.NewDate(2025, time.March, 1)})
	ctx := context.Background()

	seed(t, ledger, record("a1", "emp-1", leave.TypeAnnual, leave.StatusApproved, 5, leave.NewDate(2025, time.February, 7)))
	seed(t, ledger, record("a2", "emp-2", leave.TypeAnnual, leave.StatusApproved, 5, leave.NewDate(2025, time.February, 14)))
	seed(t, ledger, record("p1", "emp-1", leave.TypeSick, leave.StatusPending, 2, leave.NewDate(2025, time.March, 11)))
	seed(t, ledger, record("r1", "emp-2", leave.TypePersonal, leave.StatusRejected, 1, leave.NewDate(2025, time.March, 14)))

	summary, err := queries.Summary(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.PendingCount)
	assert.Equal(t, 2, summary.ApprovedCount)
	assert.Equal(t, 1, summary.RejectedCount)
	assert.Equal(t, 2, summary.Employees)

	byType := make(map[leave.Type]leave.TypeUsage)
	for _, u := range summary.Usage {
		byType[u.Type] = u
	}

	// 10 approved annual days over 2 employees x 20 = 25.00%
	assert.Equal(t, 10, byType[leave.TypeAnnual].ApprovedDays)
	assert.True(t, byType[leave.TypeAnnual].Utilization.Equal(decimal.NewFromInt(25)),
		"expected 25%%, got %s", byType[leave.TypeAnnual].Utilization)

	assert.Equal(t, 2, byType[leave.TypeSick].PendingDays)
	assert.True(t, byType[leave.TypeSick].Utilization.IsZero())
}

func TestQueries_Summary_EmptyLedger(t *testing.T) {
	queries := leave.NewQueries(store.NewMemory(), fixedClock{now: leave.NewDate(2025, time.March, 1)})

	summary, err := queries.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Employees)
	require.Len(t, summary.Usage, 4)
	for _, u := range summary.Usage {
		assert.True(t, u.Utilization.IsZero())
	}
}
