/*
dashboard.go - Employee dashboard aggregation

PURPOSE:
  Pure read-side projection over the session's entries, balances and
  requests. Recomputed on demand, never stored; underlying collections are
  not mutated.

WINDOWS:
  todayHours  = today's entry, if any
  weekHours   = entries dated on/after the most recent Sunday
  monthHours  = entries dated on/after the 1st of the month
*/
package portal

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/chainpay/hr-engine/attendance"
	"github.com/chainpay/hr-engine/payroll"
)

type LeaveBalance struct {
	Vacation int `json:"vacation"`
	Sick     int `json:"sick"`
	Personal int `json:"personal"`
}

type PendingRequests struct {
	Leaves     int `json:"leaves"`
	Complaints int `json:"complaints"`
}

type DashboardStats struct {
	TodayHours decimal.Decimal `json:"today_hours"`
	WeekHours  decimal.Decimal `json:"week_hours"`
	MonthHours decimal.Decimal `json:"month_hours"`

	TotalEarnings  decimal.Decimal `json:"total_earnings"`
	PendingBalance decimal.Decimal `json:"pending_balance"`

	OvertimeHours decimal.Decimal `json:"overtime_hours"`
	LateCount     int             `json:"late_count"`

	LeaveBalance    LeaveBalance    `json:"leave_balance"`
	UpcomingPayDate attendance.Date `json:"upcoming_pay_date"`

	RecentTimeEntries []attendance.TimeEntry `json:"recent_time_entries"`
	PendingRequests   PendingRequests        `json:"pending_requests"`
}

// Leave allowances are not yet tracked per employee; every account sees the
// same starting balance.
var defaultLeaveBalance = LeaveBalance{Vacation: 20, Sick: 10, Personal: 5}

// Dashboard computes the employee dashboard view as of now.
func (s *State) Dashboard(now time.Time) DashboardStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	today := attendance.DateOf(now)
	weekStart := today.WeekStart()
	monthStart := today.MonthStart()

	stats := DashboardStats{
		TodayHours:    decimal.Zero,
		WeekHours:     decimal.Zero,
		MonthHours:    decimal.Zero,
		OvertimeHours: decimal.Zero,
		LeaveBalance:  defaultLeaveBalance,
	}

	for _, e := range s.entries {
		if e.Date.Equal(today) {
			stats.TodayHours = stats.TodayHours.Add(e.TotalHours)
		}
		if e.Date.AfterOrEqual(weekStart) {
			stats.WeekHours = stats.WeekHours.Add(e.TotalHours)
		}
		if e.Date.AfterOrEqual(monthStart) {
			stats.MonthHours = stats.MonthHours.Add(e.TotalHours)
		}
		stats.OvertimeHours = stats.OvertimeHours.Add(e.OvertimeHours)
		if e.Late() {
			stats.LateCount++
		}
	}

	stats.TotalEarnings = payroll.TotalEarnings(s.balances)
	stats.PendingBalance = stats.TotalEarnings

	stats.UpcomingPayDate = payroll.NextPayDate(s.employee.PayrollInfo.PayFrequency, today)

	recent := s.entries
	if len(recent) > 5 {
		recent = recent[:5]
	}
	stats.RecentTimeEntries = append([]attendance.TimeEntry(nil), recent...)

	for _, req := range s.leaves {
		if req.Status == LeavePending {
			stats.PendingRequests.Leaves++
		}
	}
	for _, c := range s.complaints {
		if c.Status == ComplaintSubmitted {
			stats.PendingRequests.Complaints++
		}
	}

	return stats
}
