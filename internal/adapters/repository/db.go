package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/comitanigiacomo/habitflow/internal/core/domain"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

// Connect opens a pooled connection for driver and verifies it with a ping.
func Connect(ctx context.Context, driver, dsn string) (*sqlx.DB, error) {
	switch driver {
	case DriverPostgres:
		db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(25)
		db.SetConnMaxLifetime(5 * time.Minute)
		return db, nil

	case DriverSQLite:
		db, err := sqlx.ConnectContext(ctx, "sqlite", dsn)
		if err != nil {
			return nil, fmt.Errorf("connect sqlite: %w", err)
		}
		// One connection serializes writers and keeps in-memory databases alive.
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)
		if _, err := db.ExecContext(ctx, `PRAGMA foreign_keys = ON`); err != nil {
			db.Close()
			return nil, fmt.Errorf("enable sqlite foreign keys: %w", err)
		}
		return db, nil
	}

	return nil, fmt.Errorf("unsupported storage driver %q", driver)
}

// Open returns a ready store for driver: SQL backends are connected and
// migrated. The *sqlx.DB is nil for the memory driver.
func Open(ctx context.Context, driver, dsn string) (domain.Store, *sqlx.DB, error) {
	if driver == DriverMemory {
		return NewMemoryStore(), nil, nil
	}

	db, err := Connect(ctx, driver, dsn)
	if err != nil {
		return nil, nil, err
	}

	if _, err := Migrate(ctx, db); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("migrate %s: %w", driver, err)
	}

	return NewSQLStore(db), db, nil
}

// SQLiteDSN builds a modernc DSN for a database file, or an in-memory database for ":memory:".
func SQLiteDSN(path string) string {
	if path == "" || path == ":memory:" {
		return "file::memory:?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	}
	return "file:" + path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
}

func dialectOf(db *sqlx.DB) string {
	if db.DriverName() == "sqlite" {
		return DriverSQLite
	}
	return DriverPostgres
}
