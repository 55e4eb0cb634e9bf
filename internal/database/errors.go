package database

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Storage sentinels. Repositories return these so handlers never have to
// inspect driver errors themselves.
var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

const (
	codeUniqueViolation  = "23505"
	codeForeignKeyAbsent = "23503"
	codeInvalidTextRepr  = "22P02"
)

// Translate normalizes driver errors into the storage sentinels. Unknown
// errors pass through untouched for the handler layer to log and report as
// generic failures.
func Translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			return ErrDuplicate
		case codeForeignKeyAbsent:
			// The referenced row is gone, which the API reports as not found.
			return ErrNotFound
		case codeInvalidTextRepr:
			// Malformed UUID path parameters cast-fail before matching rows.
			return ErrNotFound
		}
	}
	return err
}
