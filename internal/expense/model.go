package expense

import (
	"time"

	"github.com/aQ-codes/expense-tracker-backend/internal/format"
)

// Expense is a persisted expense row. CategoryName is joined in from the
// category the expense belongs to.
type Expense struct {
	ID           string    `db:"id" json:"id"`
	UserID       string    `db:"user_id" json:"-"`
	CategoryID   string    `db:"category_id" json:"categoryId"`
	CategoryName string    `db:"category_name" json:"-"`
	Title        string    `db:"title" json:"title"`
	Amount       float64   `db:"amount" json:"amount"`
	SpentOn      time.Time `db:"spent_on" json:"date"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}

// CategoryRef names the category an expense belongs to.
type CategoryRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Response is the API-facing shape of an expense. Date is the ISO day the
// money was spent; DisplayDate is the same day as the UI shows it.
type Response struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Amount      float64     `json:"amount"`
	Category    CategoryRef `json:"category"`
	Date        string      `json:"date"`
	DisplayDate string      `json:"displayDate"`
	CreatedAt   string      `json:"createdAt"`
	UpdatedAt   string      `json:"updatedAt"`
}

func Format(e *Expense) Response {
	return Response{
		ID:          e.ID,
		Title:       e.Title,
		Amount:      e.Amount,
		Category:    CategoryRef{ID: e.CategoryID, Name: e.CategoryName},
		Date:        format.InputDate(e.SpentOn),
		DisplayDate: format.DisplayDate(e.SpentOn),
		CreatedAt:   e.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   e.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func FormatList(expenses []Expense) []Response {
	out := make([]Response, 0, len(expenses))
	for i := range expenses {
		out = append(out, Format(&expenses[i]))
	}
	return out
}

// Stats summarizes a filtered set of expenses.
type Stats struct {
	TotalSpent    float64 `json:"totalSpent"`
	TotalExpenses int     `json:"totalExpenses"`
	AverageAmount float64 `json:"averageAmount"`
}
