package expense

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aQ-codes/expense-tracker-backend/internal/database"
)

// Filter narrows expense queries. Zero values leave a dimension unbounded.
type Filter struct {
	CategoryID string
	From       time.Time
	To         time.Time
}

// Repository is the data-access surface for expenses. Every method is
// scoped to the owning user; foreign rows behave as absent.
type Repository interface {
	Create(ctx context.Context, e *Expense) error
	GetByID(ctx context.Context, userID, id string) (*Expense, error)
	List(ctx context.Context, userID string, f Filter, page, limit int) ([]Expense, int, error)
	ListRange(ctx context.Context, userID string, from, to time.Time) ([]Expense, error)
	Update(ctx context.Context, e *Expense) error
	Delete(ctx context.Context, userID, id string) error
	Stats(ctx context.Context, userID string, f Filter) (Stats, error)
	ReassignCategory(ctx context.Context, userID, fromID, toID string) error
}

// PostgresRepository implements Repository over a pgx pool.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const selectColumns = `
	e.id, e.user_id, e.category_id, c.name, e.title, e.amount,
	e.spent_on, e.created_at, e.updated_at`

// filterClause matches List, Stats and the count query. Category IDs are
// compared as text so a malformed ID filters to nothing instead of failing
// the cast.
const filterClause = `
	e.user_id = $1
	AND ($2 = '' OR e.category_id::text = $2)
	AND ($3::date IS NULL OR e.spent_on >= $3::date)
	AND ($4::date IS NULL OR e.spent_on <= $4::date)`

func nullableDate(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}

func scanExpense(row interface{ Scan(...any) error }, e *Expense) error {
	return row.Scan(
		&e.ID, &e.UserID, &e.CategoryID, &e.CategoryName, &e.Title,
		&e.Amount, &e.SpentOn, &e.CreatedAt, &e.UpdatedAt,
	)
}

func (r *PostgresRepository) Create(ctx context.Context, e *Expense) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO expenses (user_id, category_id, title, amount, spent_on)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, e.UserID, e.CategoryID, e.Title, e.Amount, e.SpentOn).
		Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	return database.Translate(err)
}

func (r *PostgresRepository) GetByID(ctx context.Context, userID, id string) (*Expense, error) {
	var e Expense
	err := scanExpense(r.pool.QueryRow(ctx, `
		SELECT`+selectColumns+`
		FROM expenses e
		JOIN categories c ON c.id = e.category_id
		WHERE e.id = $1 AND e.user_id = $2
	`, id, userID), &e)
	if err != nil {
		return nil, database.Translate(err)
	}
	return &e, nil
}

func (r *PostgresRepository) List(ctx context.Context, userID string, f Filter, page, limit int) ([]Expense, int, error) {
	args := []any{userID, f.CategoryID, nullableDate(f.From), nullableDate(f.To)}

	var total int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM expenses e WHERE`+filterClause,
		args...).Scan(&total)
	if err != nil {
		return nil, 0, database.Translate(err)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT`+selectColumns+`
		FROM expenses e
		JOIN categories c ON c.id = e.category_id
		WHERE`+filterClause+`
		ORDER BY e.spent_on DESC, e.created_at DESC, e.id DESC
		LIMIT $5 OFFSET $6
	`, append(args, limit, (page-1)*limit)...)
	if err != nil {
		return nil, 0, database.Translate(err)
	}
	defer rows.Close()

	out := make([]Expense, 0, limit)
	for rows.Next() {
		var e Expense
		if err := scanExpense(rows, &e); err != nil {
			return nil, 0, database.Translate(err)
		}
		out = append(out, e)
	}
	return out, total, database.Translate(rows.Err())
}

func (r *PostgresRepository) ListRange(ctx context.Context, userID string, from, to time.Time) ([]Expense, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT`+selectColumns+`
		FROM expenses e
		JOIN categories c ON c.id = e.category_id
		WHERE e.user_id = $1 AND e.spent_on >= $2 AND e.spent_on <= $3
		ORDER BY e.spent_on ASC, e.created_at ASC
	`, userID, from, to)
	if err != nil {
		return nil, database.Translate(err)
	}
	defer rows.Close()

	out := make([]Expense, 0)
	for rows.Next() {
		var e Expense
		if err := scanExpense(rows, &e); err != nil {
			return nil, database.Translate(err)
		}
		out = append(out, e)
	}
	return out, database.Translate(rows.Err())
}

func (r *PostgresRepository) Update(ctx context.Context, e *Expense) error {
	err := r.pool.QueryRow(ctx, `
		UPDATE expenses
		SET category_id = $1, title = $2, amount = $3, spent_on = $4, updated_at = now()
		WHERE id = $5 AND user_id = $6
		RETURNING updated_at
	`, e.CategoryID, e.Title, e.Amount, e.SpentOn, e.ID, e.UserID).
		Scan(&e.UpdatedAt)
	return database.Translate(err)
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, id string) error {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM expenses WHERE id = $1 AND user_id = $2
	`, id, userID)
	if err != nil {
		return database.Translate(err)
	}
	if tag.RowsAffected() == 0 {
		return database.ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) Stats(ctx context.Context, userID string, f Filter) (Stats, error) {
	var s Stats
	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(e.amount), 0), COUNT(*)
		FROM expenses e
		WHERE`+filterClause,
		userID, f.CategoryID, nullableDate(f.From), nullableDate(f.To)).
		Scan(&s.TotalSpent, &s.TotalExpenses)
	if err != nil {
		return Stats{}, database.Translate(err)
	}
	if s.TotalExpenses > 0 {
		s.AverageAmount = s.TotalSpent / float64(s.TotalExpenses)
	}
	return s, nil
}

func (r *PostgresRepository) ReassignCategory(ctx context.Context, userID, fromID, toID string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE expenses SET category_id = $1, updated_at = now()
		WHERE user_id = $2 AND category_id = $3
	`, toID, userID, fromID)
	return database.Translate(err)
}
