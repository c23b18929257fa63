package payroll

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
)

// RenderSlipPDF writes a printable pay slip to w.
func RenderSlipPDF(slip PaySlip, period PayrollPeriod, w io.Writer) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Pay Slip")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s", slip.EmployeeName))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s to %s", period.StartDate, period.EndDate))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Pay date: %s", slip.PayDate))
	pdf.Ln(10)

	pdf.Cell(0, 8, fmt.Sprintf("Regular: %s h @ %s", slip.RegularHours.Round(2), slip.RegularRate.Round(2)))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Overtime: %s h @ %s", slip.OvertimeHours.Round(2), slip.OvertimeRate.Round(2)))
	pdf.Ln(10)

	pdf.Cell(0, 8, fmt.Sprintf("Gross: %s", slip.GrossPay.Round(2)))
	pdf.Ln(7)

	for _, d := range slip.Deductions {
		pdf.Cell(0, 8, fmt.Sprintf("%s: -%s", d.Name, d.Amount.Round(2)))
		pdf.Ln(7)
	}
	for _, t := range slip.Taxes {
		pdf.Cell(0, 8, fmt.Sprintf("%s (%s%%): -%s", t.Name, t.Rate.Mul(hundred).Round(2), t.Amount.Round(2)))
		pdf.Ln(7)
	}

	pdf.Ln(3)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Net: %s", slip.NetPay.Round(2)))

	return pdf.Output(w)
}
