/*
Package attendance implements the attendance calculator: clock-in/clock-out
events and the derivation of worked hours, lateness and overtime.

PURPOSE:
  This package contains the time-side half of the accrual pipeline. A TimeEntry
  records one attendance interval for one employee on one calendar day. When
  the entry is closed, the package derives total / regular / overtime hours and
  late minutes from the configured working-hour rules. The money side (daily
  balances, running totals) lives in the payroll package.

KEY CONCEPTS IN THIS FILE (types.go):
  - TimeEntry: One attendance record, open (clocked-in) or closed (clocked-out)
  - EntryStatus: clocked-in / clocked-out / on-break
  - Invariant: at most one entry per employee per calendar day; derived
    hour fields are populated exactly once, at clock-out, never recomputed

DESIGN PRINCIPLES:
  1. Immutability: A closed entry is never reopened or recomputed
  2. Precision: Derived hours use decimal.Decimal, so the regular/overtime
     split always sums back to the total exactly
  3. Explicit state: Operations take the entry and settings as arguments and
     return errors; nothing reads ambient session state

SEE ALSO:
  - clock.go: Open/close operations and the derivation math
  - settings.go: Working-hour rules and defaults
  - payroll/balance.go: Monetary accrual derived from closed entries
*/
package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// ENTRY STATUS
// =============================================================================

type EntryStatus string

const (
	StatusClockedIn  EntryStatus = "clocked-in"
	StatusClockedOut EntryStatus = "clocked-out"
	StatusOnBreak    EntryStatus = "on-break"
)

// =============================================================================
// TIME ENTRY - One attendance interval
// =============================================================================

// TimeEntry is one attendance record for one employee on one calendar day.
//
// While open (StatusClockedIn) only ID, EmployeeID, Date, ClockIn and the
// free-text fields are meaningful. ClockOut and the derived hour fields are
// populated exactly once, at clock-out, and never recomputed afterward.
type TimeEntry struct {
	ID         string      `json:"id"`
	EmployeeID string      `json:"employee_id"`
	Date       Date        `json:"date"`
	ClockIn    TimeOfDay   `json:"clock_in"`
	ClockOut   *TimeOfDay  `json:"clock_out,omitempty"`
	Status     EntryStatus `json:"status"`

	// Derived at clock-out. Zero while the entry is open.
	TotalHours    decimal.Decimal `json:"total_hours"`
	RegularHours  decimal.Decimal `json:"regular_hours"`
	OvertimeHours decimal.Decimal `json:"overtime_hours"`
	LateMinutes   int             `json:"late_minutes"`

	Location string `json:"location,omitempty"`
	Notes    string `json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Open reports whether the entry is still awaiting clock-out.
func (e *TimeEntry) Open() bool {
	return e.Status == StatusClockedIn
}

// Closed reports whether derived hour fields are populated.
func (e *TimeEntry) Closed() bool {
	return e.Status == StatusClockedOut
}

// Late reports whether the entry was recorded as late, net of the
// grace threshold.
func (e *TimeEntry) Late() bool {
	return e.LateMinutes > 0
}
