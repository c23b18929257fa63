package payroll

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/chainpay/hr-engine/attendance"
)

// Annual salary is converted to an hourly rate over a 52-week,
// 40-hour-per-week year.
var hoursPerYear = decimal.NewFromInt(52 * 40)

// HourlyRate derives the hourly rate from an annual salary.
func HourlyRate(annualSalary decimal.Decimal) decimal.Decimal {
	return annualSalary.Div(hoursPerYear)
}

// NextPayDate returns the upcoming pay date for a frequency, seen from today:
// weekly pays on the coming Friday (today, if today is Friday), biweekly pays
// fourteen days out, monthly pays on the first of the next month.
func NextPayDate(freq PayFrequency, today attendance.Date) attendance.Date {
	switch freq {
	case PayWeekly:
		offset := (int(time.Friday) - int(today.Weekday()) + 7) % 7
		return today.AddDays(offset)
	case PayBiweekly:
		return today.AddDays(14)
	case PayMonthly:
		return today.MonthStart().AddMonths(1)
	default:
		return attendance.Date{}
	}
}
