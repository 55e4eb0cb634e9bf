package report

import (
	"github.com/aQ-codes/expense-tracker-backend/internal/expense"
)

// Summary totals one month of spending. AveragePerDay divides by the
// month's actual day count, not by days with expenses.
type Summary struct {
	TotalSpent    float64 `json:"totalSpent"`
	TotalExpenses int     `json:"totalExpenses"`
	AveragePerDay float64 `json:"averagePerDay"`
}

// CategorySlice is one category's share of the spending in a range.
type CategorySlice struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

// DayTotal is one day's spending, keyed by the ISO day.
type DayTotal struct {
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
}

// Breakdown is the full monthly report: summary, one page of expenses,
// and the two groupings.
type Breakdown struct {
	Month        int                `json:"month"`
	Year         int                `json:"year"`
	Summary      Summary            `json:"summary"`
	Expenses     []expense.Response `json:"expenses"`
	Distribution []CategorySlice    `json:"categoryDistribution"`
	Daily        []DayTotal         `json:"dailyBreakdown"`
}

// Dashboard is the landing-page aggregate: all-time totals, the current
// month's summary and the latest expenses.
type Dashboard struct {
	TotalSpent     float64            `json:"totalSpent"`
	TotalExpenses  int                `json:"totalExpenses"`
	CurrentMonth   Summary            `json:"currentMonth"`
	RecentExpenses []expense.Response `json:"recentExpenses"`
}
