package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/comitanigiacomo/habitflow/internal/core/domain"
)

type SQLHabitLogRepository struct {
	q sqlx.ExtContext
}

type habitLogRow struct {
	ID        string `db:"id"`
	HabitID   string `db:"habit_id"`
	Date      dbTime `db:"log_date"`
	Value     int    `db:"value"`
	Completed bool   `db:"completed"`
}

func (r habitLogRow) toDomain() *domain.HabitLog {
	return &domain.HabitLog{
		ID:        r.ID,
		HabitID:   r.HabitID,
		Date:      r.Date.day(),
		Value:     r.Value,
		Completed: r.Completed,
	}
}

func toLogs(rows []habitLogRow) []*domain.HabitLog {
	logs := make([]*domain.HabitLog, 0, len(rows))
	for _, row := range rows {
		logs = append(logs, row.toDomain())
	}
	return logs
}

func (r *SQLHabitLogRepository) GetByHabitAndDate(ctx context.Context, habitID string, date time.Time) (*domain.HabitLog, error) {
	query := r.q.Rebind(`
		SELECT id, habit_id, log_date, value, completed
		FROM habit_logs
		WHERE habit_id = ? AND log_date = ?`)

	var row habitLogRow
	if err := sqlx.GetContext(ctx, r.q, &row, query, habitID, dateArg(date)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrLogNotFound
		}
		return nil, fmt.Errorf("failed to get habit log: %w", err)
	}
	return row.toDomain(), nil
}

func (r *SQLHabitLogRepository) Save(ctx context.Context, log *domain.HabitLog) error {
	query := r.q.Rebind(`
		INSERT INTO habit_logs (id, habit_id, log_date, value, completed)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (habit_id, log_date) DO UPDATE
		SET value = excluded.value, completed = excluded.completed
		RETURNING id`)

	var id string
	err := r.q.QueryRowxContext(ctx, query, log.ID, log.HabitID, dateArg(log.Date), log.Value, log.Completed).Scan(&id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrHabitNotFound
		}
		return fmt.Errorf("failed to save habit log: %w", err)
	}

	log.ID = id
	return nil
}

func (r *SQLHabitLogRepository) ListByHabitID(ctx context.Context, habitID string) ([]*domain.HabitLog, error) {
	query := r.q.Rebind(`
		SELECT id, habit_id, log_date, value, completed
		FROM habit_logs
		WHERE habit_id = ?
		ORDER BY log_date ASC`)

	var rows []habitLogRow
	if err := sqlx.SelectContext(ctx, r.q, &rows, query, habitID); err != nil {
		return nil, fmt.Errorf("failed to list habit logs: %w", err)
	}
	return toLogs(rows), nil
}

func (r *SQLHabitLogRepository) ListByUserIDAndDateRange(ctx context.Context, userID string, from, to time.Time) ([]*domain.HabitLog, error) {
	query := r.q.Rebind(`
		SELECT l.id, l.habit_id, l.log_date, l.value, l.completed
		FROM habit_logs l
		JOIN habits h ON h.id = l.habit_id
		WHERE h.user_id = ? AND l.log_date >= ? AND l.log_date <= ?
		ORDER BY l.log_date ASC, l.habit_id ASC`)

	var rows []habitLogRow
	if err := sqlx.SelectContext(ctx, r.q, &rows, query, userID, dateArg(from), dateArg(to)); err != nil {
		return nil, fmt.Errorf("failed to list logs by range: %w", err)
	}
	return toLogs(rows), nil
}

func (r *SQLHabitLogRepository) CountCompletedByUserID(ctx context.Context, userID string) (int, error) {
	query := r.q.Rebind(`
		SELECT COUNT(*)
		FROM habit_logs l
		JOIN habits h ON h.id = l.habit_id
		WHERE h.user_id = ? AND l.completed`)

	var count int
	if err := sqlx.GetContext(ctx, r.q, &count, query, userID); err != nil {
		return 0, fmt.Errorf("failed to count completions: %w", err)
	}
	return count, nil
}
