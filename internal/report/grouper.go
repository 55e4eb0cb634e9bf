package report

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aQ-codes/expense-tracker-backend/internal/database"
	"github.com/aQ-codes/expense-tracker-backend/internal/expense"
)

// Grouper runs the aggregation queries a breakdown is built from. The
// range is inclusive on both ends.
type Grouper interface {
	Totals(ctx context.Context, userID string, from, to time.Time) (float64, int, error)
	GroupByCategory(ctx context.Context, userID string, from, to time.Time) ([]CategorySlice, error)
	GroupByDay(ctx context.Context, userID string, from, to time.Time) ([]DayTotal, error)
}

// PostgresGrouper aggregates in the database.
type PostgresGrouper struct {
	pool *pgxpool.Pool
}

func NewPostgresGrouper(pool *pgxpool.Pool) *PostgresGrouper {
	return &PostgresGrouper{pool: pool}
}

func (g *PostgresGrouper) Totals(ctx context.Context, userID string, from, to time.Time) (float64, int, error) {
	var sum float64
	var count int
	err := g.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount), 0), COUNT(*)
		FROM expenses
		WHERE user_id = $1 AND spent_on BETWEEN $2 AND $3
	`, userID, from, to).Scan(&sum, &count)
	if err != nil {
		return 0, 0, database.Translate(err)
	}
	return sum, count, nil
}

func (g *PostgresGrouper) GroupByCategory(ctx context.Context, userID string, from, to time.Time) ([]CategorySlice, error) {
	rows, err := g.pool.Query(ctx, `
		SELECT c.name, SUM(e.amount) AS total
		FROM expenses e
		JOIN categories c ON c.id = e.category_id
		WHERE e.user_id = $1 AND e.spent_on BETWEEN $2 AND $3
		GROUP BY c.name
		ORDER BY total DESC, c.name ASC
	`, userID, from, to)
	if err != nil {
		return nil, database.Translate(err)
	}
	defer rows.Close()

	out := make([]CategorySlice, 0)
	for rows.Next() {
		var s CategorySlice
		if err := rows.Scan(&s.Category, &s.Amount); err != nil {
			return nil, database.Translate(err)
		}
		out = append(out, s)
	}
	return out, database.Translate(rows.Err())
}

func (g *PostgresGrouper) GroupByDay(ctx context.Context, userID string, from, to time.Time) ([]DayTotal, error) {
	rows, err := g.pool.Query(ctx, `
		SELECT e.spent_on::text, SUM(e.amount)
		FROM expenses e
		WHERE e.user_id = $1 AND e.spent_on BETWEEN $2 AND $3
		GROUP BY e.spent_on
		ORDER BY e.spent_on ASC
	`, userID, from, to)
	if err != nil {
		return nil, database.Translate(err)
	}
	defer rows.Close()

	out := make([]DayTotal, 0)
	for rows.Next() {
		var d DayTotal
		if err := rows.Scan(&d.Date, &d.Amount); err != nil {
			return nil, database.Translate(err)
		}
		out = append(out, d)
	}
	return out, database.Translate(rows.Err())
}

// MemoryGrouper aggregates by scanning the in-memory rows. It produces the
// same ordering as the database grouper.
type MemoryGrouper struct {
	expenses expense.Repository
}

func NewMemoryGrouper(expenses expense.Repository) *MemoryGrouper {
	return &MemoryGrouper{expenses: expenses}
}

func (g *MemoryGrouper) Totals(ctx context.Context, userID string, from, to time.Time) (float64, int, error) {
	stats, err := g.expenses.Stats(ctx, userID, expense.Filter{From: from, To: to})
	if err != nil {
		return 0, 0, err
	}
	return stats.TotalSpent, stats.TotalExpenses, nil
}

func (g *MemoryGrouper) GroupByCategory(ctx context.Context, userID string, from, to time.Time) ([]CategorySlice, error) {
	all, err := g.expenses.ListRange(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	return DistributionOf(all), nil
}

func (g *MemoryGrouper) GroupByDay(ctx context.Context, userID string, from, to time.Time) ([]DayTotal, error) {
	all, err := g.expenses.ListRange(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	return DailyOf(all), nil
}
