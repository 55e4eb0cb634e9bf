package category

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aQ-codes/expense-tracker-backend/internal/database"
)

// Repository is the data-access surface for categories. A category is
// visible to a user when it is a shared default or owned by that user.
type Repository interface {
	ListVisible(ctx context.Context, userID string) ([]Category, error)
	GetVisibleByID(ctx context.Context, userID, id string) (*Category, error)
	DefaultByName(ctx context.Context, name string) (*Category, error)
	NameTaken(ctx context.Context, userID, name, excludeID string) (bool, error)
	Create(ctx context.Context, c *Category) error
	Update(ctx context.Context, c *Category) error
	Delete(ctx context.Context, userID, id string) error
}

// PostgresRepository implements Repository over a pgx pool.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (r *PostgresRepository) ListVisible(ctx context.Context, userID string) ([]Category, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, is_default, user_id, created_at
		FROM categories
		WHERE is_default OR user_id = $1
		ORDER BY is_default DESC, LOWER(name) ASC
	`, userID)
	if err != nil {
		return nil, database.Translate(err)
	}
	defer rows.Close()

	out := make([]Category, 0)
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.IsDefault, &c.UserID, &c.CreatedAt); err != nil {
			return nil, database.Translate(err)
		}
		out = append(out, c)
	}
	return out, database.Translate(rows.Err())
}

func (r *PostgresRepository) GetVisibleByID(ctx context.Context, userID, id string) (*Category, error) {
	var c Category
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, is_default, user_id, created_at
		FROM categories
		WHERE id = $1 AND (is_default OR user_id = $2)
	`, id, userID).Scan(&c.ID, &c.Name, &c.IsDefault, &c.UserID, &c.CreatedAt)
	if err != nil {
		return nil, database.Translate(err)
	}
	return &c, nil
}

func (r *PostgresRepository) DefaultByName(ctx context.Context, name string) (*Category, error) {
	var c Category
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, is_default, user_id, created_at
		FROM categories
		WHERE is_default AND LOWER(name) = LOWER($1)
	`, name).Scan(&c.ID, &c.Name, &c.IsDefault, &c.UserID, &c.CreatedAt)
	if err != nil {
		return nil, database.Translate(err)
	}
	return &c, nil
}

// NameTaken reports whether the name collides, case-insensitively, with a
// default category or another category of the same user. excludeID skips
// the record being renamed; pass "" for creates.
func (r *PostgresRepository) NameTaken(ctx context.Context, userID, name, excludeID string) (bool, error) {
	var taken bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM categories
			WHERE (is_default OR user_id = $1)
			  AND LOWER(name) = LOWER($2)
			  AND id::text <> $3
		)
	`, userID, name, excludeID).Scan(&taken)
	if err != nil {
		return false, database.Translate(err)
	}
	return taken, nil
}

func (r *PostgresRepository) Create(ctx context.Context, c *Category) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO categories (name, is_default, user_id)
		VALUES ($1, FALSE, $2)
		RETURNING id, created_at
	`, c.Name, c.UserID).Scan(&c.ID, &c.CreatedAt)
	return database.Translate(err)
}

func (r *PostgresRepository) Update(ctx context.Context, c *Category) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE categories SET name = $1
		WHERE id = $2 AND user_id = $3 AND NOT is_default
	`, c.Name, c.ID, c.UserID)
	if err != nil {
		return database.Translate(err)
	}
	if tag.RowsAffected() == 0 {
		return database.ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, id string) error {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM categories
		WHERE id = $1 AND user_id = $2 AND NOT is_default
	`, id, userID)
	if err != nil {
		return database.Translate(err)
	}
	if tag.RowsAffected() == 0 {
		return database.ErrNotFound
	}
	return nil
}
