/*
state.go - Per-employee portal state container

PURPOSE:
  One State per logged-in employee: the session, the employee record read
  from the roster, the attendance entries (newest-first) and daily balances,
  and the employee's filed requests. Created at login, discarded at logout.

ORDERING:
  Entries and balances are newest-first. Each mutation completes under the
  state mutex before the next caller can observe it.
*/
package portal

import (
	"errors"
	"sync"
	"time"

	"github.com/chainpay/hr-engine/attendance"
	"github.com/chainpay/hr-engine/payroll"
	"github.com/chainpay/hr-engine/roster"
)

var (
	// ErrNoSession is returned by operations invoked without a live session.
	ErrNoSession = errors.New("no active session")

	// ErrNoEntryForDate is returned when recalculating a balance for a date
	// with no time entry. The existing balance for the date, if any, is left
	// unchanged.
	ErrNoEntryForDate = errors.New("no time entry for date")

	// ErrLeaveNotFound is returned when cancelling an unknown leave request.
	ErrLeaveNotFound = errors.New("leave request not found")

	// ErrLeaveNotPending is returned when cancelling a request that has
	// already been decided or cancelled.
	ErrLeaveNotPending = errors.New("leave request is not pending")

	// ErrResignationFiled is returned when a resignation letter already
	// exists for the session.
	ErrResignationFiled = errors.New("resignation letter already submitted")
)

// State is the per-employee container. The zero value is unusable; NewState
// binds it to a session and employee record.
type State struct {
	mu sync.Mutex

	session  EmployeeSession
	employee roster.Employee
	settings attendance.Settings

	entries     []attendance.TimeEntry // newest-first
	balances    []payroll.DailyBalance // newest-first
	leaves      []LeaveRequest
	complaints  []Complaint
	resignation *ResignationLetter
}

func NewState(session EmployeeSession, employee roster.Employee, settings attendance.Settings) *State {
	return &State{
		session:  session,
		employee: employee,
		settings: settings,
	}
}

func (s *State) Session() EmployeeSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}

func (s *State) Employee() roster.Employee {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.employee
}

func (s *State) Settings() attendance.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

func (s *State) Entries() []attendance.TimeEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]attendance.TimeEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

func (s *State) Balances() []payroll.DailyBalance {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]payroll.DailyBalance, len(s.balances))
	copy(out, s.balances)
	return out
}

func (s *State) LeaveRequests() []LeaveRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]LeaveRequest, len(s.leaves))
	copy(out, s.leaves)
	return out
}

func (s *State) Complaints() []Complaint {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Complaint, len(s.complaints))
	copy(out, s.complaints)
	return out
}

func (s *State) Resignation() (ResignationLetter, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.resignation == nil {
		return ResignationLetter{}, false
	}
	return *s.resignation, true
}

func (s *State) touchLocked(now time.Time) {
	s.session.LastActivity = now
}

// =============================================================================
// SNAPSHOT SUPPORT
// =============================================================================

// Snapshot copies the container for the persisted session cache.
func (s *State) Snapshot() SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := SessionSnapshot{
		Session:    s.session,
		Employee:   s.employee,
		Entries:    append([]attendance.TimeEntry(nil), s.entries...),
		Balances:   append([]payroll.DailyBalance(nil), s.balances...),
		Leaves:     append([]LeaveRequest(nil), s.leaves...),
		Complaints: append([]Complaint(nil), s.complaints...),
	}
	if s.resignation != nil {
		r := *s.resignation
		snap.Resignation = &r
	}
	return snap
}

// RestoreSnapshot replaces the collections from a persisted snapshot. The
// session identity and settings of the live state are kept.
func (s *State) RestoreSnapshot(snap SessionSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = snap.Entries
	s.balances = snap.Balances
	s.leaves = snap.Leaves
	s.complaints = snap.Complaints
	s.resignation = snap.Resignation
}
