package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/comitanigiacomo/habitflow/internal/core/domain"
	"github.com/comitanigiacomo/habitflow/internal/logger"
)

var _ domain.Store = (*SQLStore)(nil)

// SQLStore serves every repository from one sqlx handle. Queries are written
// with ? placeholders and rebound for the connected driver.
type SQLStore struct {
	db *sqlx.DB
}

func NewSQLStore(db *sqlx.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) DB() *sqlx.DB {
	return s.db
}

func (s *SQLStore) Repos() domain.Repositories {
	return reposFor(s.db)
}

func (s *SQLStore) WithinTx(ctx context.Context, fn func(ctx context.Context, repos domain.Repositories) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("repository: begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(ctx, reposFor(tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.Warn("transaction rollback failed", "err", rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("repository: commit transaction: %w", err)
	}
	return nil
}

func reposFor(q sqlx.ExtContext) domain.Repositories {
	return domain.Repositories{
		Users:        &SQLUserRepository{q: q},
		Habits:       &SQLHabitRepository{q: q},
		Logs:         &SQLHabitLogRepository{q: q},
		Tasks:        &SQLTaskRepository{q: q},
		Achievements: &SQLAchievementRepository{q: q},
	}
}
