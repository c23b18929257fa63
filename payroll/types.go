/*
Package payroll implements the money side of the accrual pipeline.

PURPOSE:
  Turns closed attendance entries into monetary accruals: per-day balances
  with a running cumulative total, hourly-rate derivation from annual salary,
  pay-date scheduling, and period-end pay slip generation.

KEY CONCEPTS IN THIS FILE (types.go):
  - PayrollInfo: An employee's pay configuration (frequency, deductions)
  - PayrollPeriod: One pay cycle with processing status and totals
  - PaySlip: One employee's settlement for one period

DESIGN PRINCIPLES:
  1. Precision: All money is decimal.Decimal; nothing is accumulated in floats
  2. Determinism: Recomputing a balance or a slip from the same inputs yields
     the same figures
  3. Separation: This package knows hours and rates; it does not know about
     sessions, HTTP, or persistence

SEE ALSO:
  - balance.go: Daily balance accrual and the running-balance chain
  - payslip.go: Period processing and slip generation
  - attendance: The time-side inputs (closed entries)
*/
package payroll

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/chainpay/hr-engine/attendance"
)

// =============================================================================
// PAY FREQUENCY
// =============================================================================

type PayFrequency string

const (
	PayWeekly   PayFrequency = "weekly"
	PayBiweekly PayFrequency = "biweekly"
	PayMonthly  PayFrequency = "monthly"
)

// =============================================================================
// PAYROLL INFO - Per-employee pay configuration
// =============================================================================

type PayrollInfo struct {
	BankAccount   string       `json:"bank_account"`
	RoutingNumber string       `json:"routing_number"`
	TaxID         string       `json:"tax_id"`
	PayFrequency  PayFrequency `json:"pay_frequency"`
	Allowances    int          `json:"allowances"`
	Deductions    []Deduction  `json:"deductions"`
}

type DeductionType string

const (
	DeductionHealthInsurance DeductionType = "health_insurance"
	DeductionDental          DeductionType = "dental"
	DeductionRetirement      DeductionType = "401k"
	DeductionTax             DeductionType = "tax"
	DeductionOther           DeductionType = "other"
)

// Deduction is a recurring withholding from each pay slip. Amount is either
// a flat currency amount or a percentage of gross pay.
type Deduction struct {
	ID           string          `json:"id"`
	Type         DeductionType   `json:"type"`
	Name         string          `json:"name"`
	Amount       decimal.Decimal `json:"amount"`
	IsPercentage bool            `json:"is_percentage"`
	IsPreTax     bool            `json:"is_pre_tax"`
}

// =============================================================================
// PAYROLL PERIOD - One pay cycle
// =============================================================================

type PeriodStatus string

const (
	PeriodDraft     PeriodStatus = "draft"
	PeriodProcessed PeriodStatus = "processed"
	PeriodPaid      PeriodStatus = "paid"
)

type PayrollPeriod struct {
	ID        string          `json:"id"`
	StartDate attendance.Date `json:"start_date"`
	EndDate   attendance.Date `json:"end_date"`
	PayDate   attendance.Date `json:"pay_date"`
	Status    PeriodStatus    `json:"status"`

	// Populated by processing.
	TotalGross      decimal.Decimal `json:"total_gross"`
	TotalNet        decimal.Decimal `json:"total_net"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`

	CreatedAt time.Time `json:"created_at"`
}

// Contains reports whether d falls within the period [StartDate, EndDate].
func (p PayrollPeriod) Contains(d attendance.Date) bool {
	return d.AfterOrEqual(p.StartDate) && d.BeforeOrEqual(p.EndDate)
}

// =============================================================================
// PAY SLIP - One employee's settlement for one period
// =============================================================================

type SlipStatus string

const (
	SlipDraft    SlipStatus = "draft"
	SlipApproved SlipStatus = "approved"
	SlipPaid     SlipStatus = "paid"
)

type PaySlip struct {
	ID           string          `json:"id"`
	EmployeeID   string          `json:"employee_id"`
	EmployeeName string          `json:"employee_name"`
	PayPeriodID  string          `json:"pay_period_id"`

	GrossPay      decimal.Decimal `json:"gross_pay"`
	NetPay        decimal.Decimal `json:"net_pay"`
	RegularHours  decimal.Decimal `json:"regular_hours"`
	OvertimeHours decimal.Decimal `json:"overtime_hours"`
	RegularRate   decimal.Decimal `json:"regular_rate"`
	OvertimeRate  decimal.Decimal `json:"overtime_rate"`

	Deductions []SlipDeduction `json:"deductions"`
	Taxes      []SlipTax       `json:"taxes"`

	PayDate   attendance.Date `json:"pay_date"`
	Status    SlipStatus      `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
}

type SlipDeduction struct {
	ID       string          `json:"id"`
	Type     DeductionType   `json:"type"`
	Name     string          `json:"name"`
	Amount   decimal.Decimal `json:"amount"`
	IsPreTax bool            `json:"is_pre_tax"`
}

type TaxType string

const (
	TaxFederal        TaxType = "federal"
	TaxState          TaxType = "state"
	TaxSocialSecurity TaxType = "social_security"
	TaxMedicare       TaxType = "medicare"
)

type SlipTax struct {
	Type   TaxType         `json:"type"`
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
	Rate   decimal.Decimal `json:"rate"`
}

// TotalDeductions sums withholdings and taxes on the slip.
func (p PaySlip) TotalDeductions() decimal.Decimal {
	total := decimal.Zero
	for _, d := range p.Deductions {
		total = total.Add(d.Amount)
	}
	for _, t := range p.Taxes {
		total = total.Add(t.Amount)
	}
	return total
}
