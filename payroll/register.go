package payroll

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/chainpay/hr-engine/attendance"
)

var (
	// ErrPeriodNotFound is returned when a referenced payroll period does
	// not exist.
	ErrPeriodNotFound = errors.New("payroll period not found")

	// ErrPeriodProcessed is returned when re-processing a period that has
	// already been processed or paid.
	ErrPeriodProcessed = errors.New("payroll period already processed")

	// ErrSlipNotFound is returned when a referenced pay slip does not exist.
	ErrSlipNotFound = errors.New("pay slip not found")
)

// =============================================================================
// REGISTER - Admin-side payroll period and pay slip collection
// =============================================================================

// Register holds the payroll periods and pay slips for the admin side.
// It is the payroll half of the admin snapshot; the roster holds the other.
type Register struct {
	mu      sync.RWMutex
	periods []PayrollPeriod
	slips   []PaySlip
}

func NewRegister() *Register {
	return &Register{}
}

// AddPeriod records a new draft period and returns it.
func (r *Register) AddPeriod(start, end, payDate attendance.Date, now time.Time) PayrollPeriod {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := PayrollPeriod{
		ID:        uuid.NewString(),
		StartDate: start,
		EndDate:   end,
		PayDate:   payDate,
		Status:    PeriodDraft,
		CreatedAt: now,
	}
	r.periods = append([]PayrollPeriod{p}, r.periods...)
	return p
}

func (r *Register) Period(id string) (PayrollPeriod, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.periods {
		if p.ID == id {
			return p, true
		}
	}
	return PayrollPeriod{}, false
}

func (r *Register) Periods() []PayrollPeriod {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]PayrollPeriod, len(r.periods))
	copy(out, r.periods)
	return out
}

// DeletePeriod removes a draft period and any slips generated for it.
func (r *Register) DeletePeriod(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, p := range r.periods {
		if p.ID == id {
			r.periods = append(r.periods[:i], r.periods[i+1:]...)
			kept := r.slips[:0]
			for _, s := range r.slips {
				if s.PayPeriodID != id {
					kept = append(kept, s)
				}
			}
			r.slips = kept
			return nil
		}
	}
	return ErrPeriodNotFound
}

// Process generates one slip per employee for the period and rolls the slip
// totals up onto the period record. An already processed period is rejected.
func (r *Register) Process(periodID string, employees []EmployeeRef, entriesFor func(employeeID string) []attendance.TimeEntry, settings attendance.Settings, now time.Time) (PayrollPeriod, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := -1
	for i, p := range r.periods {
		if p.ID == periodID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return PayrollPeriod{}, ErrPeriodNotFound
	}
	if r.periods[idx].Status != PeriodDraft {
		return PayrollPeriod{}, ErrPeriodProcessed
	}

	period := r.periods[idx]
	for _, emp := range employees {
		slip := GeneratePaySlip(emp, period, entriesFor(emp.ID), settings, now)
		r.slips = append([]PaySlip{slip}, r.slips...)

		period.TotalGross = period.TotalGross.Add(slip.GrossPay)
		period.TotalNet = period.TotalNet.Add(slip.NetPay)
		period.TotalDeductions = period.TotalDeductions.Add(slip.TotalDeductions())
	}

	period.Status = PeriodProcessed
	r.periods[idx] = period
	return period, nil
}

func (r *Register) Slip(id string) (PaySlip, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.slips {
		if s.ID == id {
			return s, true
		}
	}
	return PaySlip{}, false
}

// Slips returns all pay slips, optionally filtered by period.
func (r *Register) Slips(periodID string) []PaySlip {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []PaySlip
	for _, s := range r.slips {
		if periodID == "" || s.PayPeriodID == periodID {
			out = append(out, s)
		}
	}
	return out
}

// =============================================================================
// SNAPSHOT SUPPORT
// =============================================================================

// Snapshot returns a copy of the register contents for persistence.
func (r *Register) Snapshot() ([]PayrollPeriod, []PaySlip) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	periods := make([]PayrollPeriod, len(r.periods))
	copy(periods, r.periods)
	slips := make([]PaySlip, len(r.slips))
	copy(slips, r.slips)
	return periods, slips
}

// Restore replaces the register contents from a persisted snapshot.
func (r *Register) Restore(periods []PayrollPeriod, slips []PaySlip) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.periods = periods
	r.slips = slips
}
