package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/phpdave11/gofpdf"
)

// BuildMonthlyPDF renders the month's summary and category distribution
// as a one-page A4 document.
func BuildMonthlyPDF(month, year int, sum Summary, dist []CategorySlice) ([]byte, error) {
	monthName := time.Month(month).String()

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Monthly Expense Report", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "Monthly Expense Report")
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Report Month: %s %d", monthName, year))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 8, fmt.Sprintf("Total Spent: %.2f", sum.TotalSpent))
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, fmt.Sprintf("Expenses: %d", sum.TotalExpenses))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Average Per Day: %.2f", sum.AveragePerDay))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "Category Breakdown")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(70, 7, "Category")
	pdf.Cell(50, 7, "Amount")
	pdf.Cell(30, 7, "%")
	pdf.Ln(7)

	pdf.SetFont("Helvetica", "", 11)
	for _, s := range dist {
		percent := 0.0
		if sum.TotalSpent > 0 {
			percent = s.Amount / sum.TotalSpent * 100
		}
		pdf.Cell(70, 7, s.Category)
		pdf.Cell(50, 7, fmt.Sprintf("%.2f", s.Amount))
		pdf.Cell(30, 7, fmt.Sprintf("%.1f%%", percent))
		pdf.Ln(7)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
