/*
clock.go - Clock-in, clock-out and balance recalculation

PURPOSE:
  The two mutating attendance operations plus the balance recalculation they
  trigger. Preconditions fail with typed errors and leave the state untouched.

FLOW:
  ClockIn:  reject if today already has an entry, open or closed, prepend a
            new open entry, recalculate today's balance (zero until
            clock-out).
  ClockOut: find today's open entry, derive hours/lateness once, close it,
            recalculate today's balance.
  Recalculation replaces the balance for the date and rebuilds the running
  chain, so repeating it never double-counts.
*/
package portal

import (
	"time"

	"github.com/chainpay/hr-engine/attendance"
	"github.com/chainpay/hr-engine/payroll"
)

// ClockIn opens a new entry for the current calendar day. At most one entry
// exists per calendar day; a day with an entry, open or closed, rejects the
// clock-in.
func (s *State) ClockIn(now time.Time, location, notes string) (attendance.TimeEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	today := attendance.DateOf(now)
	for _, e := range s.entries {
		if e.Date.Equal(today) {
			return attendance.TimeEntry{}, attendance.ErrAlreadyClockedIn
		}
	}

	entry := attendance.OpenEntry(s.employee.ID, now, location, notes)
	s.entries = append([]attendance.TimeEntry{entry}, s.entries...)
	s.recalculateLocked(today, now)
	s.touchLocked(now)
	return entry, nil
}

// ClockOut closes today's open entry and derives its hour fields. The entry
// is immutable once closed.
func (s *State) ClockOut(now time.Time, notes string) (attendance.TimeEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	today := attendance.DateOf(now)
	for i, e := range s.entries {
		if !e.Date.Equal(today) || !e.Open() {
			continue
		}
		closed, err := attendance.CloseEntry(e, now, notes, s.settings)
		if err != nil {
			return attendance.TimeEntry{}, err
		}
		s.entries[i] = closed
		s.recalculateLocked(today, now)
		s.touchLocked(now)
		return closed, nil
	}
	return attendance.TimeEntry{}, attendance.ErrNoOpenEntry
}

// RecalculateBalance recomputes the daily balance for a date from that
// date's entry. Without an entry for the date it is a no-op; any existing
// balance for the date is left unchanged.
func (s *State) RecalculateBalance(date attendance.Date, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.recalculateLocked(date, now) {
		return ErrNoEntryForDate
	}
	return nil
}

func (s *State) recalculateLocked(date attendance.Date, now time.Time) bool {
	for _, e := range s.entries {
		if !e.Date.Equal(date) {
			continue
		}
		calc := payroll.Calculator{Settings: s.settings}
		rate := payroll.HourlyRate(s.employee.Salary)
		s.balances = payroll.Apply(s.balances, calc.BalanceFor(e, rate, now))
		return true
	}
	return false
}

// CurrentEntry returns today's open entry, if any.
func (s *State) CurrentEntry(now time.Time) (attendance.TimeEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	today := attendance.DateOf(now)
	for _, e := range s.entries {
		if e.Date.Equal(today) && e.Open() {
			return e, true
		}
	}
	return attendance.TimeEntry{}, false
}

// TodaysEntry returns today's entry regardless of status, if any.
func (s *State) TodaysEntry(now time.Time) (attendance.TimeEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	today := attendance.DateOf(now)
	for _, e := range s.entries {
		if e.Date.Equal(today) {
			return e, true
		}
	}
	return attendance.TimeEntry{}, false
}
