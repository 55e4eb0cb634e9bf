package report

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aQ-codes/expense-tracker-backend/internal/category"
	"github.com/aQ-codes/expense-tracker-backend/internal/expense"
)

type fixture struct {
	categories *category.MemoryRepository
	expenses   *expense.MemoryRepository
	service    *Service
}

func newFixture() *fixture {
	categories := category.NewMemoryRepository()
	expenses := expense.NewMemoryRepository(categories)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &fixture{
		categories: categories,
		expenses:   expenses,
		service:    NewService(NewMemoryGrouper(expenses), expenses, log),
	}
}

func newFixtureWith(grouper Grouper) *fixture {
	f := newFixture()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	f.service = NewService(grouper, f.expenses, log)
	return f
}

func (f *fixture) seed(t *testing.T, userID, categoryName, title string, amount float64, day string) {
	t.Helper()
	cat, err := f.categories.DefaultByName(context.Background(), categoryName)
	require.NoError(t, err)

	spentOn, err := time.Parse("2006-01-02", day)
	require.NoError(t, err)

	e := &expense.Expense{
		UserID:     userID,
		CategoryID: cat.ID,
		Title:      title,
		Amount:     amount,
		SpentOn:    spentOn.UTC(),
	}
	require.NoError(t, f.expenses.Create(context.Background(), e))
}

func sumSlices(dist []CategorySlice) float64 {
	var total float64
	for _, s := range dist {
		total += s.Amount
	}
	return total
}

func sumDays(daily []DayTotal) float64 {
	var total float64
	for _, d := range daily {
		total += d.Amount
	}
	return total
}

func TestMonthlyBreakdownMarchExample(t *testing.T) {
	f := newFixture()
	f.seed(t, "user-1", "Food", "Groceries", 10, "2024-03-01")
	f.seed(t, "user-1", "Transport", "Bus pass", 20, "2024-03-15")
	f.seed(t, "user-1", "Food", "Dinner", 30, "2024-03-31")

	b, total, err := f.service.MonthlyBreakdown(context.Background(), "user-1", 3, 2024, 1, 10)
	require.NoError(t, err)

	assert.Equal(t, 3, total)
	assert.Equal(t, 60.0, b.Summary.TotalSpent)
	assert.Equal(t, 3, b.Summary.TotalExpenses)
	assert.InDelta(t, 60.0/31.0, b.Summary.AveragePerDay, 1e-9)
	assert.InDelta(t, 60.0, sumSlices(b.Distribution), 1e-9)

	require.Len(t, b.Expenses, 3)
	assert.Equal(t, "Dinner", b.Expenses[0].Title)
	assert.Equal(t, "Groceries", b.Expenses[2].Title)
}

func TestMonthlyBreakdownSumsAgree(t *testing.T) {
	f := newFixture()
	f.seed(t, "user-1", "Food", "Groceries", 12.35, "2024-02-01")
	f.seed(t, "user-1", "Food", "Lunch", 8.4, "2024-02-01")
	f.seed(t, "user-1", "Transport", "Train", 31.07, "2024-02-10")
	f.seed(t, "user-1", "Health", "Pharmacy", 5.99, "2024-02-29")
	f.seed(t, "user-1", "Health", "Dentist", 120, "2024-02-29")
	f.seed(t, "user-2", "Food", "Not mine", 500, "2024-02-10")

	b, _, err := f.service.MonthlyBreakdown(context.Background(), "user-1", 2, 2024, 1, 10)
	require.NoError(t, err)

	assert.InDelta(t, b.Summary.TotalSpent, sumDays(b.Daily), 1e-9)
	assert.InDelta(t, b.Summary.TotalSpent, sumSlices(b.Distribution), 1e-9)
	assert.InDelta(t, b.Summary.TotalSpent/29.0, b.Summary.AveragePerDay, 1e-9)
}

func TestMonthlyBreakdownOrdering(t *testing.T) {
	f := newFixture()
	f.seed(t, "user-1", "Transport", "Taxi", 40, "2024-03-20")
	f.seed(t, "user-1", "Food", "Groceries", 25, "2024-03-05")
	f.seed(t, "user-1", "Health", "Pharmacy", 25, "2024-03-10")
	f.seed(t, "user-1", "Food", "Snacks", 5, "2024-03-05")

	b, _, err := f.service.MonthlyBreakdown(context.Background(), "user-1", 3, 2024, 1, 10)
	require.NoError(t, err)

	// Largest first; equal totals alphabetical.
	require.Len(t, b.Distribution, 3)
	assert.Equal(t, CategorySlice{Category: "Transport", Amount: 40}, b.Distribution[0])
	assert.Equal(t, CategorySlice{Category: "Food", Amount: 30}, b.Distribution[1])
	assert.Equal(t, CategorySlice{Category: "Health", Amount: 25}, b.Distribution[2])

	// Days ascending, same-day rows merged.
	require.Len(t, b.Daily, 3)
	assert.Equal(t, DayTotal{Date: "2024-03-05", Amount: 30}, b.Daily[0])
	assert.Equal(t, DayTotal{Date: "2024-03-10", Amount: 25}, b.Daily[1])
	assert.Equal(t, DayTotal{Date: "2024-03-20", Amount: 40}, b.Daily[2])
}

func TestMonthlyBreakdownBoundaries(t *testing.T) {
	f := newFixture()
	f.seed(t, "user-1", "Food", "First day", 1, "2024-02-01")
	f.seed(t, "user-1", "Food", "Leap day", 2, "2024-02-29")
	f.seed(t, "user-1", "Food", "Before", 4, "2024-01-31")
	f.seed(t, "user-1", "Food", "After", 8, "2024-03-01")

	b, total, err := f.service.MonthlyBreakdown(context.Background(), "user-1", 2, 2024, 1, 10)
	require.NoError(t, err)

	assert.Equal(t, 2, total)
	assert.Equal(t, 3.0, b.Summary.TotalSpent)
	assert.InDelta(t, 3.0/29.0, b.Summary.AveragePerDay, 1e-9)
}

func TestMonthlyBreakdownEmptyMonth(t *testing.T) {
	f := newFixture()

	b, total, err := f.service.MonthlyBreakdown(context.Background(), "user-1", 3, 2024, 1, 10)
	require.NoError(t, err)

	assert.Zero(t, total)
	assert.Zero(t, b.Summary.TotalSpent)
	assert.Zero(t, b.Summary.AveragePerDay)
	assert.Empty(t, b.Expenses)
	assert.Empty(t, b.Distribution)
	assert.Empty(t, b.Daily)
}

type failingGrouper struct {
	Grouper
}

func (g failingGrouper) GroupByCategory(context.Context, string, time.Time, time.Time) ([]CategorySlice, error) {
	return nil, errors.New("grouping unsupported")
}

func (g failingGrouper) GroupByDay(context.Context, string, time.Time, time.Time) ([]DayTotal, error) {
	return nil, errors.New("grouping unsupported")
}

type emptyGrouper struct {
	Grouper
}

func (g emptyGrouper) GroupByCategory(context.Context, string, time.Time, time.Time) ([]CategorySlice, error) {
	return []CategorySlice{}, nil
}

func (g emptyGrouper) GroupByDay(context.Context, string, time.Time, time.Time) ([]DayTotal, error) {
	return []DayTotal{}, nil
}

func TestMonthlyBreakdownFallback(t *testing.T) {
	tests := []struct {
		name string
		wrap func(Grouper) Grouper
	}{
		{"grouping queries fail", func(g Grouper) Grouper { return failingGrouper{g} }},
		{"grouping queries return nothing", func(g Grouper) Grouper { return emptyGrouper{g} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.service = NewService(
				tt.wrap(NewMemoryGrouper(f.expenses)),
				f.expenses,
				slog.New(slog.NewTextHandler(io.Discard, nil)),
			)

			f.seed(t, "user-1", "Food", "Groceries", 10, "2024-03-01")
			f.seed(t, "user-1", "Transport", "Bus pass", 20, "2024-03-15")
			f.seed(t, "user-1", "Food", "Dinner", 30, "2024-03-31")

			b, _, err := f.service.MonthlyBreakdown(context.Background(), "user-1", 3, 2024, 1, 10)
			require.NoError(t, err)

			// Recomputed from rows, matching the summary.
			require.Len(t, b.Distribution, 2)
			assert.Equal(t, CategorySlice{Category: "Food", Amount: 40}, b.Distribution[0])
			assert.Equal(t, CategorySlice{Category: "Transport", Amount: 20}, b.Distribution[1])

			require.Len(t, b.Daily, 3)
			assert.InDelta(t, b.Summary.TotalSpent, sumDays(b.Daily), 1e-9)
			assert.InDelta(t, b.Summary.TotalSpent, sumSlices(b.Distribution), 1e-9)
		})
	}
}

func TestMonthExpensesNewestFirst(t *testing.T) {
	f := newFixture()
	f.seed(t, "user-1", "Food", "Oldest", 10, "2024-03-01")
	f.seed(t, "user-1", "Food", "Newest", 20, "2024-03-20")
	f.seed(t, "user-1", "Food", "Middle", 30, "2024-03-10")

	all, err := f.service.MonthExpenses(context.Background(), "user-1", 3, 2024)
	require.NoError(t, err)

	require.Len(t, all, 3)
	assert.Equal(t, "Newest", all[0].Title)
	assert.Equal(t, "Middle", all[1].Title)
	assert.Equal(t, "Oldest", all[2].Title)
}

func TestDashboard(t *testing.T) {
	f := newFixture()
	now := time.Date(2024, time.March, 18, 12, 0, 0, 0, time.UTC)

	f.seed(t, "user-1", "Food", "Old expense", 100, "2023-11-02")
	f.seed(t, "user-1", "Food", "Groceries", 10, "2024-03-05")
	f.seed(t, "user-1", "Transport", "Bus pass", 20, "2024-03-10")

	d, err := f.service.Dashboard(context.Background(), "user-1", now)
	require.NoError(t, err)

	assert.Equal(t, 130.0, d.TotalSpent)
	assert.Equal(t, 3, d.TotalExpenses)

	assert.Equal(t, 30.0, d.CurrentMonth.TotalSpent)
	assert.Equal(t, 2, d.CurrentMonth.TotalExpenses)
	assert.InDelta(t, 30.0/31.0, d.CurrentMonth.AveragePerDay, 1e-9)

	require.Len(t, d.RecentExpenses, 3)
	assert.Equal(t, "Bus pass", d.RecentExpenses[0].Title)
	assert.Equal(t, "Old expense", d.RecentExpenses[2].Title)
}
