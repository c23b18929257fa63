package portal_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chainpay/hr-engine/attendance"
	"github.com/chainpay/hr-engine/payroll"
	"github.com/chainpay/hr-engine/portal"
	"github.com/chainpay/hr-engine/roster"
)

// Monday 2025-06-02.
func at(day, hour, minute int) time.Time {
	return time.Date(2025, time.June, day, hour, minute, 0, 0, time.UTC)
}

func testEmployee() roster.Employee {
	return roster.Employee{
		ID:        "emp-1",
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Salary:    decimal.NewFromInt(104000), // hourly rate 50
		Status:    roster.StatusActive,
		PayrollInfo: payroll.PayrollInfo{
			PayFrequency: payroll.PayWeekly,
		},
	}
}

func newState() *portal.State {
	session := portal.EmployeeSession{ID: "sess-1", EmployeeID: "emp-1", IsActive: true}
	return portal.NewState(session, testEmployee(), attendance.DefaultSettings())
}

// =============================================================================
// CLOCK IN / CLOCK OUT
// =============================================================================

func TestClockIn_CreatesOpenEntryAndZeroBalance(t *testing.T) {
	s := newState()

	entry, err := s.ClockIn(at(2, 9, 0), "office", "")
	require.NoError(t, err)

	assert.True(t, entry.Open())
	assert.Equal(t, "emp-1", entry.EmployeeID)
	assert.Equal(t, attendance.NewDate(2025, time.June, 2), entry.Date)

	// Balance recalculated at clock-in carries no earnings yet.
	balances := s.Balances()
	require.Len(t, balances, 1)
	assert.True(t, balances[0].TotalEarnings.IsZero())
}

func TestClockIn_SecondEntrySameDayRejected(t *testing.T) {
	s := newState()
	_, err := s.ClockIn(at(2, 9, 0), "", "")
	require.NoError(t, err)

	_, err = s.ClockIn(at(2, 10, 0), "", "")
	assert.ErrorIs(t, err, attendance.ErrAlreadyClockedIn)
	assert.Len(t, s.Entries(), 1, "no entry created on failure")
}

func TestClockIn_AfterClockOutSameDayKeepsEarnings(t *testing.T) {
	// GIVEN: a closed 09:00-18:00 shift worth 475
	// WHEN: clocking in again at 19:00 the same day
	// THEN: the clock-in is rejected and the day's balance is untouched

	s := newState()
	_, err := s.ClockIn(at(2, 9, 0), "", "")
	require.NoError(t, err)
	_, err = s.ClockOut(at(2, 18, 0), "")
	require.NoError(t, err)

	_, err = s.ClockIn(at(2, 19, 0), "", "")
	assert.ErrorIs(t, err, attendance.ErrAlreadyClockedIn)

	assert.Len(t, s.Entries(), 1, "no entry created on failure")
	balances := s.Balances()
	require.Len(t, balances, 1)
	assert.True(t, balances[0].TotalEarnings.Equal(decimal.NewFromInt(475)))
	assert.True(t, balances[0].RunningBalance.Equal(decimal.NewFromInt(475)))
	assert.True(t, s.Dashboard(at(2, 19, 30)).TodayHours.Equal(decimal.NewFromInt(9)))
}

func TestClockOut_DerivesAndPays(t *testing.T) {
	// GIVEN: clocked in at 09:00
	// WHEN: clocking out at 18:00
	// THEN: 9h total, 1h overtime, balance 475 at rate 50

	s := newState()
	_, err := s.ClockIn(at(2, 9, 0), "", "")
	require.NoError(t, err)

	closed, err := s.ClockOut(at(2, 18, 0), "")
	require.NoError(t, err)

	assert.True(t, closed.Closed())
	assert.True(t, closed.TotalHours.Equal(decimal.NewFromInt(9)))
	assert.True(t, closed.OvertimeHours.Equal(decimal.NewFromInt(1)))

	balances := s.Balances()
	require.Len(t, balances, 1)
	assert.True(t, balances[0].TotalEarnings.Equal(decimal.NewFromInt(475)))
	assert.True(t, balances[0].RunningBalance.Equal(decimal.NewFromInt(475)))
}

func TestClockOut_WithoutOpenEntry(t *testing.T) {
	s := newState()

	_, err := s.ClockOut(at(2, 17, 0), "")
	assert.ErrorIs(t, err, attendance.ErrNoOpenEntry)
	assert.Empty(t, s.Entries(), "state unchanged on failure")
	assert.Empty(t, s.Balances())
}

func TestClockFlow_EntriesNewestFirst(t *testing.T) {
	s := newState()

	_, err := s.ClockIn(at(2, 9, 0), "", "")
	require.NoError(t, err)
	_, err = s.ClockOut(at(2, 17, 0), "")
	require.NoError(t, err)
	_, err = s.ClockIn(at(3, 9, 0), "", "")
	require.NoError(t, err)

	entries := s.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, attendance.NewDate(2025, time.June, 3), entries[0].Date)
	assert.Equal(t, attendance.NewDate(2025, time.June, 2), entries[1].Date)
}

func TestRecalculateBalance_Idempotent(t *testing.T) {
	s := newState()
	_, err := s.ClockIn(at(2, 9, 0), "", "")
	require.NoError(t, err)
	_, err = s.ClockOut(at(2, 18, 0), "")
	require.NoError(t, err)

	day := attendance.NewDate(2025, time.June, 2)
	require.NoError(t, s.RecalculateBalance(day, at(2, 19, 0)))
	require.NoError(t, s.RecalculateBalance(day, at(2, 20, 0)))

	balances := s.Balances()
	require.Len(t, balances, 1, "recalculation replaces, never appends")
	assert.True(t, balances[0].RunningBalance.Equal(decimal.NewFromInt(475)))
}

func TestRecalculateBalance_NoEntryForDate(t *testing.T) {
	s := newState()

	err := s.RecalculateBalance(attendance.NewDate(2025, time.June, 2), at(2, 12, 0))
	assert.ErrorIs(t, err, portal.ErrNoEntryForDate)
	assert.Empty(t, s.Balances())
}

// =============================================================================
// REQUESTS
// =============================================================================

func TestSubmitAndCancelLeaveRequest(t *testing.T) {
	s := newState()

	req := s.SubmitLeaveRequest(portal.LeaveRequestForm{
		Type:      portal.LeaveVacation,
		StartDate: attendance.NewDate(2025, time.June, 9),
		EndDate:   attendance.NewDate(2025, time.June, 13),
		Reason:    "trip",
	}, at(2, 10, 0))

	assert.Equal(t, 5, req.Days, "inclusive of both endpoints")
	assert.Equal(t, portal.LeavePending, req.Status)

	require.NoError(t, s.CancelLeaveRequest(req.ID, at(2, 11, 0)))
	assert.Equal(t, portal.LeaveCancelled, s.LeaveRequests()[0].Status)

	assert.ErrorIs(t, s.CancelLeaveRequest(req.ID, at(2, 12, 0)), portal.ErrLeaveNotPending)
	assert.ErrorIs(t, s.CancelLeaveRequest("nope", at(2, 12, 0)), portal.ErrLeaveNotFound)
}

func TestSubmitComplaint(t *testing.T) {
	s := newState()

	c := s.SubmitComplaint(portal.ComplaintForm{
		Title:    "Broken chair",
		Category: portal.ComplaintWorkplace,
		Priority: portal.PriorityLow,
	}, at(2, 10, 0))

	assert.Equal(t, portal.ComplaintSubmitted, c.Status)
	assert.Len(t, s.Complaints(), 1)
}

func TestSubmitResignation_OncePerSession(t *testing.T) {
	s := newState()

	form := portal.ResignationForm{
		LastWorkingDay: attendance.NewDate(2025, time.July, 1),
		Reason:         "relocation",
	}
	r, err := s.SubmitResignation(form, at(2, 10, 0))
	require.NoError(t, err)
	assert.Equal(t, portal.ResignationSubmitted, r.Status)

	_, err = s.SubmitResignation(form, at(2, 11, 0))
	assert.ErrorIs(t, err, portal.ErrResignationFiled)
}

// =============================================================================
// DASHBOARD
// =============================================================================

func TestDashboard_Aggregation(t *testing.T) {
	s := newState()

	// Monday: 9h with 1h overtime. Tuesday: 7h40m, 20 min late.
	_, err := s.ClockIn(at(2, 9, 0), "", "")
	require.NoError(t, err)
	_, err = s.ClockOut(at(2, 18, 0), "")
	require.NoError(t, err)
	_, err = s.ClockIn(at(3, 9, 20), "", "")
	require.NoError(t, err)
	_, err = s.ClockOut(at(3, 17, 0), "")
	require.NoError(t, err)

	s.SubmitLeaveRequest(portal.LeaveRequestForm{
		Type:      portal.LeaveSick,
		StartDate: attendance.NewDate(2025, time.June, 9),
		EndDate:   attendance.NewDate(2025, time.June, 9),
	}, at(3, 18, 0))

	// Wednesday evening.
	now := at(4, 18, 0)
	stats := s.Dashboard(now)

	assert.True(t, stats.TodayHours.IsZero(), "no entry today")
	// 9 + 7h40m = 16.666..h
	assert.Equal(t, "16.67", stats.WeekHours.Round(2).String())
	assert.Equal(t, stats.WeekHours.String(), stats.MonthHours.String())

	// 475 + 373.33...
	assert.Equal(t, "848.33", stats.TotalEarnings.Round(2).String())
	assert.Equal(t, stats.TotalEarnings.String(), stats.PendingBalance.String())

	assert.True(t, stats.OvertimeHours.Equal(decimal.NewFromInt(1)))
	assert.Equal(t, 1, stats.LateCount)

	// Weekly frequency: next Friday from Wednesday.
	assert.Equal(t, attendance.NewDate(2025, time.June, 6), stats.UpcomingPayDate)

	assert.Len(t, stats.RecentTimeEntries, 2)
	assert.Equal(t, 1, stats.PendingRequests.Leaves)
	assert.Equal(t, 0, stats.PendingRequests.Complaints)
	assert.Equal(t, 20, stats.LeaveBalance.Vacation)
}

func TestDashboard_PureRead(t *testing.T) {
	s := newState()
	_, err := s.ClockIn(at(2, 9, 0), "", "")
	require.NoError(t, err)
	_, err = s.ClockOut(at(2, 17, 0), "")
	require.NoError(t, err)

	before := s.Dashboard(at(2, 18, 0))
	after := s.Dashboard(at(2, 18, 0))

	assert.Equal(t, before, after)
	assert.Len(t, s.Entries(), 1)
	assert.Len(t, s.Balances(), 1)
}

func TestDashboard_RecentEntriesCappedAtFive(t *testing.T) {
	s := newState()
	for day := 2; day <= 8; day++ {
		_, err := s.ClockIn(at(day, 9, 0), "", "")
		require.NoError(t, err)
		_, err = s.ClockOut(at(day, 17, 0), "")
		require.NoError(t, err)
	}

	stats := s.Dashboard(at(8, 18, 0))
	assert.Len(t, stats.RecentTimeEntries, 5)
	// Newest first.
	assert.Equal(t, attendance.NewDate(2025, time.June, 8), stats.RecentTimeEntries[0].Date)
}
