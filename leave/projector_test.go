package leave

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func app(employeeID string, typ Type, days int, status Status) Application {
	return Application{
		ID:         employeeID + "-" + string(typ) + "-" + string(status),
		EmployeeID: employeeID,
		Type:       typ,
		StartDate:  NewDate(2025, time.March, 3),
		EndDate:    NewDate(2025, time.March, 7),
		Days:       days,
		Reason:     "test",
		Status:     status,
		AppliedOn:  NewDate(2025, time.March, 1),
	}
}

func TestProject_EmptyLedger(t *testing.T) {
	b := Project(nil, "emp-1", TypeAnnual)

	assert.Equal(t, 20, b.Total)
	assert.Equal(t, 0, b.Used)
	assert.Equal(t, 0, b.Pending)
	assert.Equal(t, 20, b.Remaining)
}

func TestProject_FoldsByStatus(t *testing.T) {
	records := []Application{
		app("emp-1", TypeAnnual, 5, StatusApproved),
		app("emp-1", TypeAnnual, 3, StatusPending),
		app("emp-1", TypeAnnual, 4, StatusRejected), // released, counts nowhere
	}

	b := Project(records, "emp-1", TypeAnnual)

	assert.Equal(t, 5, b.Used)
	assert.Equal(t, 3, b.Pending)
	assert.Equal(t, 12, b.Remaining)
}

func TestProject_IgnoresOtherEmployeesAndTypes(t *testing.T) {
	records := []Application{
		app("emp-1", TypeAnnual, 5, StatusApproved),
		app("emp-2", TypeAnnual, 7, StatusApproved),
		app("emp-1", TypeSick, 2, StatusApproved),
	}

	b := Project(records, "emp-1", TypeAnnual)

	assert.Equal(t, 5, b.Used)
	assert.Equal(t, 15, b.Remaining)
}

func TestProject_IdentityInvariant(t *testing.T) {
	// used + pending + remaining = total must hold for any mix of records.
	mixes := [][]Application{
		nil,
		{app("emp-1", TypeSick, 2, StatusApproved)},
		{app("emp-1", TypeSick, 2, StatusApproved), app("emp-1", TypeSick, 3, StatusPending)},
		{app("emp-1", TypeSick, 10, StatusApproved)},
		{app("emp-1", TypeSick, 4, StatusRejected), app("emp-1", TypeSick, 1, StatusPending)},
	}

	for _, records := range mixes {
		b := Project(records, "emp-1", TypeSick)
		assert.Equal(t, b.Total, b.Used+b.Pending+b.Remaining,
			"identity must hold for %+v", records)
	}
}

func TestProjectAll_CoversEveryType(t *testing.T) {
	balances := ProjectAll(nil, "emp-1")

	assert.Len(t, balances, 4)
	assert.Equal(t, 20, balances[TypeAnnual].Total)
	assert.Equal(t, 10, balances[TypeSick].Total)
	assert.Equal(t, 5, balances[TypePersonal].Total)
	assert.Equal(t, 20, balances[TypeRemoteWork].Total)
}
