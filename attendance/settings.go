package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// ATTENDANCE SETTINGS - Process-wide working-hour rules
// =============================================================================

// Settings holds the working-hour configuration the calculator derives
// metrics against. One Settings value applies to every employee; it is
// initialized once at startup and read-only afterward.
type Settings struct {
	WorkingHours WorkingHours `json:"working_hours"`
	LunchBreak   LunchBreak   `json:"lunch_break"`

	// Grace period in minutes: lateness at or below this is recorded as zero.
	LateThreshold int `json:"late_threshold"`

	// Hours after which overtime accrues.
	OvertimeStart decimal.Decimal `json:"overtime_start"`

	// Currency units deducted per late minute.
	LateDeductionRate decimal.Decimal `json:"late_deduction_rate"`

	// Multiplier applied to the hourly rate for overtime hours.
	OvertimeRate decimal.Decimal `json:"overtime_rate"`

	WorkingDays []time.Weekday `json:"working_days"`
}

type WorkingHours struct {
	Start TimeOfDay `json:"start"`
	End   TimeOfDay `json:"end"`
}

type LunchBreak struct {
	Start TimeOfDay `json:"start"`
	End   TimeOfDay `json:"end"`
	// Duration in minutes. Tracked for display; not part of any derivation.
	Duration int `json:"duration"`
}

// DefaultSettings returns the fixed default configuration:
// 09:00-17:00 working day, one-hour lunch, 15 minute grace period,
// overtime past 8 hours at 1.5x, 0.5 currency units per late minute,
// Monday through Friday.
func DefaultSettings() Settings {
	return Settings{
		WorkingHours: WorkingHours{
			Start: NewTimeOfDay(9, 0, 0),
			End:   NewTimeOfDay(17, 0, 0),
		},
		LunchBreak: LunchBreak{
			Start:    NewTimeOfDay(12, 0, 0),
			End:      NewTimeOfDay(13, 0, 0),
			Duration: 60,
		},
		LateThreshold:     15,
		OvertimeStart:     decimal.NewFromInt(8),
		LateDeductionRate: decimal.NewFromFloat(0.5),
		OvertimeRate:      decimal.NewFromFloat(1.5),
		WorkingDays: []time.Weekday{
			time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday,
		},
	}
}

// IsWorkingDay reports whether d falls on a configured working day.
// Clock-in does not enforce this; it is exposed for display and reporting.
func (s Settings) IsWorkingDay(d Date) bool {
	for _, wd := range s.WorkingDays {
		if d.Weekday() == wd {
			return true
		}
	}
	return false
}
