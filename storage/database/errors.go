package database

import (
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/trezcool/centro/core"
)

// Postgres error codes the repositories care about.
const (
	CodeUniqueViolation     = "23505"
	CodeForeignKeyViolation = "23503"
)

// Violation returns the code and constraint name of a Postgres integrity error,
// whichever driver (lib/pq or pgx) produced it. ok is false for any other error.
func Violation(err error) (code, constraint string, ok bool) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code), pqErr.Constraint, true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code, pgErr.ConstraintName, true
	}
	return "", "", false
}

// MapError replaces integrity errors on known constraints with their sentinel.
// Any other error is reported as a core.StoreError wrapped with msg.
func MapError(err error, msg string, constraints map[string]error) error {
	if err == nil {
		return nil
	}
	if code, constraint, ok := Violation(err); ok && (code == CodeUniqueViolation || code == CodeForeignKeyViolation) {
		if sentinel, found := constraints[constraint]; found {
			return sentinel
		}
	}
	return core.NewStoreError(err, msg)
}
