package database

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/trezcool/goose"

	"github.com/trezcool/centro/core"
	"github.com/trezcool/centro/fs"
)

var errUnknownDriver = errors.New("unknown database driver")

func driverName(conf *core.Config) (string, error) {
	switch conf.Database.Driver {
	case "", "postgres", "pq":
		return "postgres", nil
	case "pgx":
		return "pgx", nil
	default:
		return "", errors.Wrap(errUnknownDriver, conf.Database.Driver)
	}
}

func dsn(dbName string, admin bool, conf *core.Config) string {
	user := url.UserPassword(conf.Database.User, conf.Database.Password)
	if admin && conf.Database.AdminUser != "" {
		user = url.UserPassword(conf.Database.AdminUser, conf.Database.AdminPassword)
	}

	sslMode := "require"
	if conf.Database.DisableTLS {
		sslMode = "disable"
	}
	q := make(url.Values)
	q.Set("sslmode", sslMode)
	q.Set("timezone", "utc")

	u := url.URL{
		Scheme:   "postgres",
		User:     user,
		Host:     conf.Database.Address(),
		Path:     dbName,
		RawQuery: q.Encode(),
	}
	return u.String()
}

func open(dbName string, admin bool, conf *core.Config) (*sqlx.DB, error) {
	driver, err := driverName(conf)
	if err != nil {
		return nil, err
	}
	return sqlx.Open(driver, dsn(dbName, admin, conf))
}

// Open opens the application's connection pool and waits for the database to answer.
func Open(conf *core.Config) (*sqlx.DB, error) {
	db, err := open(conf.Database.Name, false, conf)
	if err != nil {
		return nil, errors.Wrap(err, "opening database")
	}
	if conf.Database.MaxOpenConns > 0 {
		db.SetMaxOpenConns(conf.Database.MaxOpenConns)
	}
	if conf.Database.MaxIdleConns > 0 {
		db.SetMaxIdleConns(conf.Database.MaxIdleConns)
	}
	if conf.Database.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(conf.Database.ConnMaxLifetime)
	}

	if err = ping(context.Background(), db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// ping waits for the database to be ready. Waits 100ms longer between each attempt.
func ping(ctx context.Context, db *sqlx.DB) error {
	var err error
	maxAttempts := 30
	for attempts := 1; attempts <= maxAttempts; attempts++ {
		err = db.PingContext(ctx)
		if err == nil {
			break
		}
		select {
		case <-ctx.Done():
			return errors.Wrap(ctx.Err(), "DB ping cancelled")
		case <-time.After(time.Duration(attempts) * 100 * time.Millisecond):
		}
	}

	if err != nil {
		return errors.Wrap(err, "DB ping timeout")
	}
	return nil
}

func exists(ctx context.Context, db *sqlx.DB, query, name string) (bool, error) {
	var found bool
	err := db.GetContext(ctx, &found, query, name)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return false, err
	}
	return found, nil
}

func createAppUser(ctx context.Context, db *sqlx.DB, conf *core.Config) error {
	if conf.Database.User == "" {
		return nil
	}

	found, err := exists(ctx, db, "SELECT true FROM pg_roles WHERE rolname = $1", conf.Database.User)
	if err != nil {
		return errors.Wrap(err, "checking app user")
	}
	if !found {
		// identifiers and passwords cannot be bound as parameters here
		q := fmt.Sprintf(
			"CREATE USER %s CREATEDB ENCRYPTED PASSWORD %s",
			pq.QuoteIdentifier(conf.Database.User), pq.QuoteLiteral(conf.Database.Password),
		)
		if _, err = db.ExecContext(ctx, q); err != nil {
			return errors.Wrap(err, "creating app user")
		}
	}
	return nil
}

func createDB(ctx context.Context, db *sqlx.DB, conf *core.Config) error {
	found, err := exists(ctx, db, "SELECT true FROM pg_database WHERE datname = $1", conf.Database.Name)
	if err != nil {
		return errors.Wrap(err, "checking DB")
	}
	if !found {
		if _, err = db.ExecContext(ctx, "CREATE DATABASE "+pq.QuoteIdentifier(conf.Database.Name)); err != nil {
			return errors.Wrap(err, "creating database")
		}
	}
	return nil
}

// CreateIfNotExist creates the application user (as admin) then the application database.
func CreateIfNotExist(ctx context.Context, conf *core.Config) error {
	// connect as admin
	db, err := open("postgres", true, conf)
	if err != nil {
		return errors.Wrap(err, "opening database")
	}
	defer func() { _ = db.Close() }()

	if err = ping(ctx, db); err != nil {
		return errors.Wrap(err, "pinging database")
	}
	if err = createAppUser(ctx, db, conf); err != nil {
		return err
	}

	// create DB as app user
	appDB, err := open("postgres", false, conf)
	if err != nil {
		return errors.Wrap(err, "opening database")
	}
	defer func() { _ = appDB.Close() }()
	return createDB(ctx, appDB, conf)
}

// Migrate runs the embedded migrations up to the latest version.
func Migrate(db *sqlx.DB) error {
	if err := goose.RunFS("up", db.DB, appfs.FS, "migrations"); err != nil {
		return errors.Wrap(err, "migrating database")
	}
	return nil
}

// Reset truncates every application table. Used by tests.
func Reset(ctx context.Context, db *sqlx.DB) error {
	q := "TRUNCATE matricula, horario_clase, asignatura, aula, curso, alumno, profesor, persona RESTART IDENTITY CASCADE"
	if _, err := db.ExecContext(ctx, q); err != nil {
		return errors.Wrap(err, "resetting database")
	}
	return nil
}
