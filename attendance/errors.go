package attendance

import "errors"

// Sentinel errors. Callers match with errors.Is; in every case the
// operation left state unchanged.
var (
	// ErrAlreadyClockedIn is returned when clocking in on a day that
	// already has an entry, open or closed, for the same employee.
	ErrAlreadyClockedIn = errors.New("already clocked in today")

	// ErrNoOpenEntry is returned when clocking out with no open entry for
	// the current day.
	ErrNoOpenEntry = errors.New("no open time entry for today")

	// ErrEntryClosed is returned when attempting to close an entry that is
	// not open. Closed entries are immutable.
	ErrEntryClosed = errors.New("time entry already closed")
)
