package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/comitanigiacomo/habitflow/internal/core/domain"
)

type SQLUserRepository struct {
	q sqlx.ExtContext
}

type userRow struct {
	ID                string `db:"id"`
	Username          string `db:"username"`
	CurrentStreak     int    `db:"current_streak"`
	LastCompletedDate dbTime `db:"last_completed_date"`
	CreatedAt         dbTime `db:"created_at"`
}

func (r userRow) toDomain() *domain.User {
	return &domain.User{
		ID:                r.ID,
		Username:          r.Username,
		CurrentStreak:     r.CurrentStreak,
		LastCompletedDate: r.LastCompletedDate.dayPtr(),
		CreatedAt:         r.CreatedAt.Time,
	}
}

const userColumns = `id, username, current_streak, last_completed_date, created_at`

func (r *SQLUserRepository) Create(ctx context.Context, user *domain.User) error {
	query := r.q.Rebind(`
		INSERT INTO users (id, username, current_streak, last_completed_date, created_at)
		VALUES (?, ?, ?, ?, ?)
	`)

	_, err := r.q.ExecContext(ctx, query,
		user.ID,
		user.Username,
		user.CurrentStreak,
		nullDateArg(user.LastCompletedDate),
		timestampArg(user.CreatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("repository: create user failed: %w", err)
	}

	return nil
}

func (r *SQLUserRepository) get(ctx context.Context, where string, arg string) (*domain.User, error) {
	var row userRow
	err := sqlx.GetContext(ctx, r.q, &row, r.q.Rebind(`SELECT `+userColumns+` FROM users WHERE `+where), arg)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("repository: get user failed: %w", err)
	}
	return row.toDomain(), nil
}

func (r *SQLUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.get(ctx, `id = ?`, id)
}

func (r *SQLUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.get(ctx, `lower(username) = lower(?)`, username)
}

func (r *SQLUserRepository) UpdateStreak(ctx context.Context, user *domain.User) error {
	query := r.q.Rebind(`UPDATE users SET current_streak = ?, last_completed_date = ? WHERE id = ?`)

	res, err := r.q.ExecContext(ctx, query, user.CurrentStreak, nullDateArg(user.LastCompletedDate), user.ID)
	if err != nil {
		return fmt.Errorf("repository: update streak failed: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("repository: update streak failed: %w", err)
	}
	if rows == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
