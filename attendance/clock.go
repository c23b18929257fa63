/*
clock.go - Clock-in/clock-out operations and metric derivation

PURPOSE:
  Implements the two mutating operations of the attendance calculator and the
  arithmetic that turns a (clock-in, clock-out) pair into worked-hour metrics.

DERIVATION RULES:
  totalHours    = clockOut - clockIn, in hours
  lateMinutes   = whole minutes of (clockIn - workingHours.start), floored;
                  recorded as zero when at or below the grace threshold,
                  in full when above it (no partial forgiveness)
  regularHours  = min(totalHours, overtimeStart)
  overtimeHours = max(0, totalHours - overtimeStart)

  regularHours + overtimeHours == totalHours holds exactly: both are splits
  of the same decimal value.

OVERNIGHT SHIFTS:
  A clock-out reading earlier than the clock-in is treated as crossing
  midnight and 24 hours are added to the interval. Lateness is still judged
  against the clock-in day's working-hours start.

SEE ALSO:
  - types.go: TimeEntry and its open/closed invariants
  - portal/clock.go: Session-level orchestration and balance recalculation
*/
package attendance

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =============================================================================
// METRICS - Derived worked-hour figures
// =============================================================================

// Metrics is the result of closing an attendance interval.
type Metrics struct {
	TotalHours    decimal.Decimal
	RegularHours  decimal.Decimal
	OvertimeHours decimal.Decimal
	LateMinutes   int
}

// DeriveMetrics computes worked-hour metrics for a closed interval.
func DeriveMetrics(clockIn, clockOut TimeOfDay, s Settings) Metrics {
	worked := clockOut.Sub(clockIn)
	if worked < 0 {
		// Shift crossed midnight.
		worked += 24 * time.Hour
	}
	total := HoursOf(worked)

	regular := decimal.Min(total, s.OvertimeStart)
	overtime := decimal.Max(decimal.Zero, total.Sub(s.OvertimeStart))

	late := WholeMinutesOf(clockIn.Sub(s.WorkingHours.Start))
	if late <= s.LateThreshold {
		late = 0
	}

	return Metrics{
		TotalHours:    total,
		RegularHours:  regular,
		OvertimeHours: overtime,
		LateMinutes:   late,
	}
}

// =============================================================================
// OPERATIONS
// =============================================================================

// OpenEntry creates a new open entry for the calendar day containing now.
func OpenEntry(employeeID string, now time.Time, location, notes string) TimeEntry {
	return TimeEntry{
		ID:         uuid.NewString(),
		EmployeeID: employeeID,
		Date:       DateOf(now),
		ClockIn:    TimeOfDayOf(now),
		Status:     StatusClockedIn,
		Location:   location,
		Notes:      notes,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// CloseEntry records the clock-out time on an open entry and populates the
// derived hour fields. Identity is preserved; the returned entry carries the
// same ID. Closing a non-open entry fails with ErrEntryClosed.
func CloseEntry(e TimeEntry, now time.Time, notes string, s Settings) (TimeEntry, error) {
	if !e.Open() {
		return TimeEntry{}, ErrEntryClosed
	}

	out := TimeOfDayOf(now)
	m := DeriveMetrics(e.ClockIn, out, s)

	e.ClockOut = &out
	e.TotalHours = m.TotalHours
	e.RegularHours = m.RegularHours
	e.OvertimeHours = m.OvertimeHours
	e.LateMinutes = m.LateMinutes
	e.Status = StatusClockedOut
	if notes != "" {
		e.Notes = notes
	}
	e.UpdatedAt = now
	return e, nil
}
