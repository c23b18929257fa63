/*
balance.go - Daily balance accrual and the running-balance chain

PURPOSE:
  A DailyBalance is the monetary accrual derived from exactly one TimeEntry
  for one calendar day. Each balance carries its own net earnings and a
  running cumulative total across all of the employee's balances to date.

FORMULAS (per closed entry):
  hourlyRate    = annualSalary / 2080
  regularPay    = regularHours x hourlyRate
  overtimePay   = overtimeHours x hourlyRate x overtimeRate
  lateDeduction = lateMinutes x lateDeductionRate
  totalEarnings = regularPay + overtimePay - lateDeduction
  runningBalance = cumulative totalEarnings in date order

  Entries still open contribute zero regular/overtime hours, so a balance
  recalculated at clock-in carries zero earnings until clock-out.

RECALCULATION:
  Recalculating the balance for a date REPLACES that date's record and
  rebuilds the running chain in date order. Recalculating the same date twice
  in direct succession yields an identical balance both times; historical
  records are never double-counted into the running total.

SEE ALSO:
  - attendance/clock.go: Where the hour figures come from
  - portal/clock.go: Triggers recalculation on clock-in and clock-out
*/
package payroll

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/chainpay/hr-engine/attendance"
)

// =============================================================================
// DAILY BALANCE - One day's net accrual plus running total
// =============================================================================

type DailyBalance struct {
	ID         string          `json:"id"`
	EmployeeID string          `json:"employee_id"`
	Date       attendance.Date `json:"date"`

	RegularPay          decimal.Decimal `json:"regular_pay"`
	OvertimePay         decimal.Decimal `json:"overtime_pay"`
	LateDeduction       decimal.Decimal `json:"late_deduction"`
	EarlyLeaveDeduction decimal.Decimal `json:"early_leave_deduction"`
	Bonuses             decimal.Decimal `json:"bonuses"`

	// TotalEarnings = RegularPay + OvertimePay - LateDeduction
	//               - EarlyLeaveDeduction + Bonuses
	TotalEarnings decimal.Decimal `json:"total_earnings"`

	// RunningBalance is the cumulative TotalEarnings across all balances up
	// to and including this date.
	RunningBalance decimal.Decimal `json:"running_balance"`

	CreatedAt time.Time `json:"created_at"`
}

// =============================================================================
// CALCULATOR
// =============================================================================

// Calculator derives daily balances from closed attendance entries under one
// settings configuration.
type Calculator struct {
	Settings attendance.Settings
}

// BalanceFor computes the balance record for one entry at the given hourly
// rate. The running balance is left zero; Apply sets it when the record is
// placed into a collection.
func (c Calculator) BalanceFor(e attendance.TimeEntry, hourlyRate decimal.Decimal, now time.Time) DailyBalance {
	regularPay := e.RegularHours.Mul(hourlyRate)
	overtimePay := e.OvertimeHours.Mul(hourlyRate).Mul(c.Settings.OvertimeRate)
	lateDeduction := decimal.NewFromInt(int64(e.LateMinutes)).Mul(c.Settings.LateDeductionRate)

	totalEarnings := regularPay.Add(overtimePay).Sub(lateDeduction)

	return DailyBalance{
		ID:                  uuid.NewString(),
		EmployeeID:          e.EmployeeID,
		Date:                e.Date,
		RegularPay:          regularPay,
		OvertimePay:         overtimePay,
		LateDeduction:       lateDeduction,
		EarlyLeaveDeduction: decimal.Zero,
		Bonuses:             decimal.Zero,
		TotalEarnings:       totalEarnings,
		CreatedAt:           now,
	}
}

// =============================================================================
// BALANCE COLLECTION - Newest-first, one record per date
// =============================================================================

// Apply places b into a newest-first balance collection and rebuilds the
// running chain. A record already present for the same date is replaced in
// place, keeping its identity, so recalculating a date twice yields the same
// record both times.
func Apply(balances []DailyBalance, b DailyBalance) []DailyBalance {
	replaced := false
	for i, existing := range balances {
		if existing.Date.Equal(b.Date) {
			b.ID = existing.ID
			b.CreatedAt = existing.CreatedAt
			balances[i] = b
			replaced = true
			break
		}
	}
	if !replaced {
		balances = append([]DailyBalance{b}, balances...)
	}
	Rechain(balances)
	return balances
}

// Rechain recomputes every running balance as the cumulative sum of
// TotalEarnings in date order. The slice keeps its newest-first layout;
// dates are unique within a collection.
func Rechain(balances []DailyBalance) {
	for i := range balances {
		running := balances[i].TotalEarnings
		for j := range balances {
			if i != j && balances[j].Date.Before(balances[i].Date) {
				running = running.Add(balances[j].TotalEarnings)
			}
		}
		balances[i].RunningBalance = running
	}
}

// TotalEarnings sums net earnings across a balance collection.
func TotalEarnings(balances []DailyBalance) decimal.Decimal {
	total := decimal.Zero
	for _, b := range balances {
		total = total.Add(b.TotalEarnings)
	}
	return total
}
