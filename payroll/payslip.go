/*
payslip.go - Payroll period processing and slip generation

PURPOSE:
  Builds one PaySlip per employee for a payroll period from that employee's
  closed attendance entries in the period, and rolls slip totals up onto the
  period record.

CALCULATION:
  regularHours / overtimeHours: summed over closed entries in the period
  gross = regularHours x rate + overtimeHours x rate x overtimeRate
  withholdings: the employee's configured deductions, flat or percent-of-gross
  taxes: statutory rates applied to gross net of pre-tax withholdings
  net = gross - withholdings - taxes

SEE ALSO:
  - register.go: Period/slip collection and processing entry point
  - pdf.go: Printable slip rendering
*/
package payroll

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/chainpay/hr-engine/attendance"
)

var hundred = decimal.NewFromInt(100)

// Statutory withholding rates applied to taxable gross.
var taxTable = []struct {
	Type TaxType
	Name string
	Rate decimal.Decimal
}{
	{TaxFederal, "Federal Income Tax", decimal.NewFromFloat(0.12)},
	{TaxState, "State Income Tax", decimal.NewFromFloat(0.05)},
	{TaxSocialSecurity, "Social Security", decimal.NewFromFloat(0.062)},
	{TaxMedicare, "Medicare", decimal.NewFromFloat(0.0145)},
}

// EmployeeRef carries the payroll-relevant slice of an employee record.
// The roster package owns the full entity.
type EmployeeRef struct {
	ID           string
	Name         string
	AnnualSalary decimal.Decimal
	Info         PayrollInfo
}

// GeneratePaySlip builds the slip for one employee over one period.
// Open entries are skipped; their hours are not yet derived.
func GeneratePaySlip(emp EmployeeRef, period PayrollPeriod, entries []attendance.TimeEntry, settings attendance.Settings, now time.Time) PaySlip {
	rate := HourlyRate(emp.AnnualSalary)

	regular := decimal.Zero
	overtime := decimal.Zero
	for _, e := range entries {
		if !e.Closed() || !period.Contains(e.Date) {
			continue
		}
		regular = regular.Add(e.RegularHours)
		overtime = overtime.Add(e.OvertimeHours)
	}

	gross := regular.Mul(rate).Add(overtime.Mul(rate).Mul(settings.OvertimeRate))

	var deductions []SlipDeduction
	preTax := decimal.Zero
	postTax := decimal.Zero
	for _, d := range emp.Info.Deductions {
		amount := d.Amount
		if d.IsPercentage {
			amount = gross.Mul(d.Amount).Div(hundred)
		}
		deductions = append(deductions, SlipDeduction{
			ID:       d.ID,
			Type:     d.Type,
			Name:     d.Name,
			Amount:   amount,
			IsPreTax: d.IsPreTax,
		})
		if d.IsPreTax {
			preTax = preTax.Add(amount)
		} else {
			postTax = postTax.Add(amount)
		}
	}

	taxable := gross.Sub(preTax)
	if taxable.IsNegative() {
		taxable = decimal.Zero
	}

	var taxes []SlipTax
	taxTotal := decimal.Zero
	for _, t := range taxTable {
		amount := taxable.Mul(t.Rate)
		taxes = append(taxes, SlipTax{Type: t.Type, Name: t.Name, Amount: amount, Rate: t.Rate})
		taxTotal = taxTotal.Add(amount)
	}

	net := gross.Sub(preTax).Sub(postTax).Sub(taxTotal)

	return PaySlip{
		ID:            uuid.NewString(),
		EmployeeID:    emp.ID,
		EmployeeName:  emp.Name,
		PayPeriodID:   period.ID,
		GrossPay:      gross,
		NetPay:        net,
		RegularHours:  regular,
		OvertimeHours: overtime,
		RegularRate:   rate,
		OvertimeRate:  rate.Mul(settings.OvertimeRate),
		Deductions:    deductions,
		Taxes:         taxes,
		PayDate:       period.PayDate,
		Status:        SlipDraft,
		CreatedAt:     now,
	}
}
