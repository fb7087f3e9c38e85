package repository

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/comitanigiacomo/habitflow/internal/logger"
)

//go:embed migrations
var migrationFiles embed.FS

type migration struct {
	Version int
	Name    string
	SQL     string
}

func readMigrations(dialect string) ([]migration, error) {
	sub, err := fs.Sub(migrationFiles, "migrations/"+dialect)
	if err != nil {
		return nil, fmt.Errorf("migrations for %s: %w", dialect, err)
	}

	files, err := fs.ReadDir(sub, ".")
	if err != nil {
		return nil, fmt.Errorf("read migrations for %s: %w", dialect, err)
	}

	var out []migration
	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".sql") {
			continue
		}

		// 001_init.sql -> 1
		parts := strings.SplitN(file.Name(), "_", 2)
		if len(parts) < 2 {
			return nil, fmt.Errorf("invalid migration filename %s (expected NNN_name.sql)", file.Name())
		}
		version, err := strconv.Atoi(parts[0])
		if err != nil || version < 1 {
			return nil, fmt.Errorf("invalid version number in migration %s", file.Name())
		}

		content, err := fs.ReadFile(sub, file.Name())
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", file.Name(), err)
		}

		out = append(out, migration{
			Version: version,
			Name:    strings.TrimSuffix(parts[1], ".sql"),
			SQL:     string(content),
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Version < out[j].Version })
	for i := 1; i < len(out); i++ {
		if out[i].Version == out[i-1].Version {
			return nil, fmt.Errorf("duplicate migration version %d", out[i].Version)
		}
	}
	return out, nil
}

func currentSchemaVersion(ctx context.Context, db *sqlx.DB) (int, error) {
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_version (version INTEGER PRIMARY KEY)`); err != nil {
		return 0, fmt.Errorf("ensure schema_version table: %w", err)
	}

	var version int
	err := db.QueryRowxContext(ctx, `SELECT version FROM schema_version`).Scan(&version)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	return version, nil
}

// Migrate applies the embedded migrations of the database's dialect that are
// newer than the recorded schema version, each in its own transaction.
func Migrate(ctx context.Context, db *sqlx.DB) (int, error) {
	dialect := dialectOf(db)

	migrations, err := readMigrations(dialect)
	if err != nil {
		return 0, err
	}

	current, err := currentSchemaVersion(ctx, db)
	if err != nil {
		return 0, err
	}

	if len(migrations) > 0 && current > migrations[len(migrations)-1].Version {
		return 0, fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, migrations[len(migrations)-1].Version)
	}

	applied := 0
	for _, m := range migrations {
		if m.Version <= current {
			continue
		}

		tx, err := db.BeginTxx(ctx, nil)
		if err != nil {
			return applied, fmt.Errorf("begin migration %d: %w", m.Version, err)
		}
		if _, err := tx.ExecContext(ctx, m.SQL); err != nil {
			_ = tx.Rollback()
			return applied, fmt.Errorf("apply migration %d (%s): %w", m.Version, m.Name, err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM schema_version`); err != nil {
			_ = tx.Rollback()
			return applied, fmt.Errorf("clear version in migration %d: %w", m.Version, err)
		}
		if _, err := tx.ExecContext(ctx, tx.Rebind(`INSERT INTO schema_version (version) VALUES (?)`), m.Version); err != nil {
			_ = tx.Rollback()
			return applied, fmt.Errorf("set version in migration %d: %w", m.Version, err)
		}
		if err := tx.Commit(); err != nil {
			return applied, fmt.Errorf("commit migration %d: %w", m.Version, err)
		}

		applied++
		logger.Info("migration applied", "dialect", dialect, "version", m.Version, "name", m.Name)
	}

	return applied, nil
}
