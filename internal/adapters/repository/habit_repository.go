package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/comitanigiacomo/habitflow/internal/core/domain"
)

type SQLHabitRepository struct {
	q sqlx.ExtContext
}

type habitRow struct {
	ID        string         `db:"id"`
	UserID    string         `db:"user_id"`
	Text      string         `db:"text"`
	Frequency string         `db:"frequency"`
	Days      string         `db:"days"`
	Target    int            `db:"target"`
	IsShared  bool           `db:"is_shared"`
	SharedID  sql.NullString `db:"shared_id"`
	CreatedAt dbTime         `db:"created_at"`
}

func (r habitRow) toDomain() (*domain.Habit, error) {
	days, err := decodeDays(r.Days)
	if err != nil {
		return nil, err
	}

	h := &domain.Habit{
		ID:        r.ID,
		UserID:    r.UserID,
		Text:      r.Text,
		Frequency: r.Frequency,
		Days:      days,
		Target:    r.Target,
		IsShared:  r.IsShared,
		CreatedAt: r.CreatedAt.Time,
	}
	if r.SharedID.Valid {
		id := r.SharedID.String
		h.SharedID = &id
	}
	return h, nil
}

const habitColumns = `id, user_id, text, frequency, days, target, is_shared, shared_id, created_at`

func (r *SQLHabitRepository) Create(ctx context.Context, h *domain.Habit) error {
	days, err := encodeDays(h.Days)
	if err != nil {
		return err
	}

	query := r.q.Rebind(`
		INSERT INTO habits (` + habitColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)

	_, err = r.q.ExecContext(ctx, query,
		h.ID, h.UserID, h.Text, h.Frequency, days, h.Target,
		h.IsShared, nullStringArg(h.SharedID), timestampArg(h.CreatedAt),
	)
	if err != nil {
		switch {
		case isForeignKeyViolation(err):
			return domain.ErrUserNotFound
		case isUniqueViolation(err):
			return domain.ErrConflict
		}
		return fmt.Errorf("failed to insert habit: %w", err)
	}

	return nil
}

func (r *SQLHabitRepository) GetByID(ctx context.Context, id string) (*domain.Habit, error) {
	var row habitRow
	err := sqlx.GetContext(ctx, r.q, &row, r.q.Rebind(`SELECT `+habitColumns+` FROM habits WHERE id = ?`), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrHabitNotFound
		}
		return nil, fmt.Errorf("database scan error: %w", err)
	}
	return row.toDomain()
}

func (r *SQLHabitRepository) list(ctx context.Context, query string, args ...interface{}) ([]*domain.Habit, error) {
	var rows []habitRow
	if err := sqlx.SelectContext(ctx, r.q, &rows, r.q.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}

	habits := make([]*domain.Habit, 0, len(rows))
	for _, row := range rows {
		h, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		habits = append(habits, h)
	}
	return habits, nil
}

func (r *SQLHabitRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Habit, error) {
	return r.list(ctx, `
		SELECT `+habitColumns+` FROM habits
		WHERE user_id = ?
		ORDER BY created_at ASC, id ASC`, userID)
}

func (r *SQLHabitRepository) ListByFrequency(ctx context.Context, userID, frequency string) ([]*domain.Habit, error) {
	return r.list(ctx, `
		SELECT `+habitColumns+` FROM habits
		WHERE user_id = ? AND frequency = ?
		ORDER BY created_at ASC, id ASC`, userID, frequency)
}

func (r *SQLHabitRepository) CountByUserID(ctx context.Context, userID string) (int, error) {
	var count int
	if err := sqlx.GetContext(ctx, r.q, &count, r.q.Rebind(`SELECT COUNT(*) FROM habits WHERE user_id = ?`), userID); err != nil {
		return 0, fmt.Errorf("count habits: %w", err)
	}
	return count, nil
}

func (r *SQLHabitRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.q.ExecContext(ctx, r.q.Rebind(`DELETE FROM habit_logs WHERE habit_id = ?`), id); err != nil {
		return fmt.Errorf("failed to delete habit logs: %w", err)
	}

	res, err := r.q.ExecContext(ctx, r.q.Rebind(`DELETE FROM habits WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("failed to delete habit: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrHabitNotFound
	}
	return nil
}
