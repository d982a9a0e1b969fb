// Package sqlxrepos implements the core repositories on top of Postgres with sqlx and squirrel.
package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/centro/core"
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// columns shared by every query returning a person.Person
var personColumns = []string{
	"p.id AS persona_id",
	"p.nombre",
	"p.apellidos",
	"p.direccion",
	"p.poblacion",
	"p.dni",
	"p.fecha_nacimiento",
	"p.codigo_postal",
	"p.telefono",
}

const fullNameExpr = "p.nombre || ' ' || p.apellidos"

func hhmm(col string) string {
	return "to_char(" + col + ", 'HH24:MI')"
}

// get runs b and scans the single resulting row into dest.
// sql.ErrNoRows is replaced with notFound.
func get(ctx context.Context, q sqlx.QueryerContext, dest interface{}, b squirrel.Sqlizer, notFound error) error {
	query, args, err := b.ToSql()
	if err != nil {
		return errors.Wrap(err, "building query")
	}
	if err = sqlx.GetContext(ctx, q, dest, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) && notFound != nil {
			return notFound
		}
		return core.NewStoreError(err, "selecting row")
	}
	return nil
}

// selectAll runs b and scans every resulting row into dest (a pointer to a slice).
func selectAll(ctx context.Context, q sqlx.QueryerContext, dest interface{}, b squirrel.Sqlizer) error {
	query, args, err := b.ToSql()
	if err != nil {
		return errors.Wrap(err, "building query")
	}
	if err = sqlx.SelectContext(ctx, q, dest, query, args...); err != nil {
		return core.NewStoreError(err, "selecting rows")
	}
	return nil
}

// exec runs b and returns the number of affected rows.
func exec(ctx context.Context, e sqlx.ExecerContext, b squirrel.Sqlizer) (int64, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return 0, errors.Wrap(err, "building query")
	}
	res, err := e.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, core.NewStoreError(err, "reading affected rows")
	}
	return n, nil
}

// insert runs an INSERT ... RETURNING id and returns the new id.
func insert(ctx context.Context, q sqlx.QueryerContext, b squirrel.InsertBuilder) (int, error) {
	query, args, err := b.Suffix("RETURNING id").ToSql()
	if err != nil {
		return 0, errors.Wrap(err, "building query")
	}
	var id int
	if err = sqlx.GetContext(ctx, q, &id, query, args...); err != nil {
		return 0, err
	}
	return id, nil
}

// inTx runs fn in a transaction, committed only when fn succeeds.
func inTx(ctx context.Context, db *sqlx.DB, fn func(tx *sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return core.NewStoreError(err, "beginning transaction")
	}
	if err = fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err = tx.Commit(); err != nil {
		return core.NewStoreError(err, "committing transaction")
	}
	return nil
}
