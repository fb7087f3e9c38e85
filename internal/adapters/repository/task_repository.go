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

type SQLTaskRepository struct {
	q sqlx.ExtContext
}

type taskRow struct {
	ID            string `db:"id"`
	UserID        string `db:"user_id"`
	Text          string `db:"text"`
	CreatedDate   dbTime `db:"created_date"`
	ScheduledDate dbTime `db:"scheduled_date"`
	Completed     bool   `db:"completed"`
	CompletedDate dbTime `db:"completed_date"`
	CreatedAt     dbTime `db:"created_at"`
}

func (r taskRow) toDomain() *domain.Task {
	return &domain.Task{
		ID:            r.ID,
		UserID:        r.UserID,
		Text:          r.Text,
		CreatedDate:   r.CreatedDate.day(),
		ScheduledDate: r.ScheduledDate.dayPtr(),
		Completed:     r.Completed,
		CompletedDate: r.CompletedDate.dayPtr(),
		CreatedAt:     r.CreatedAt.Time,
	}
}

const taskColumns = `id, user_id, text, created_date, scheduled_date, completed, completed_date, created_at`

func (r *SQLTaskRepository) Create(ctx context.Context, t *domain.Task) error {
	query := r.q.Rebind(`
		INSERT INTO tasks (` + taskColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)

	_, err := r.q.ExecContext(ctx, query,
		t.ID, t.UserID, t.Text,
		dateArg(t.CreatedDate), nullDateArg(t.ScheduledDate),
		t.Completed, nullDateArg(t.CompletedDate),
		timestampArg(t.CreatedAt),
	)
	if err != nil {
		switch {
		case isForeignKeyViolation(err):
			return domain.ErrUserNotFound
		case isUniqueViolation(err):
			return domain.ErrConflict
		}
		return fmt.Errorf("failed to insert task: %w", err)
	}
	return nil
}

func (r *SQLTaskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	var row taskRow
	err := sqlx.GetContext(ctx, r.q, &row, r.q.Rebind(`SELECT `+taskColumns+` FROM tasks WHERE id = ?`), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return row.toDomain(), nil
}

func (r *SQLTaskRepository) Update(ctx context.Context, t *domain.Task) error {
	query := r.q.Rebind(`UPDATE tasks SET completed = ?, completed_date = ? WHERE id = ?`)

	res, err := r.q.ExecContext(ctx, query, t.Completed, nullDateArg(t.CompletedDate), t.ID)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *SQLTaskRepository) ListRecent(ctx context.Context, userID string, since time.Time) ([]*domain.Task, error) {
	query := r.q.Rebind(`
		SELECT ` + taskColumns + ` FROM tasks
		WHERE user_id = ?
		  AND ((completed AND completed_date >= ?)
		    OR (NOT completed AND COALESCE(scheduled_date, created_date) >= ?))
		ORDER BY created_at ASC, id ASC`)

	var rows []taskRow
	if err := sqlx.SelectContext(ctx, r.q, &rows, query, userID, dateArg(since), dateArg(since)); err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	tasks := make([]*domain.Task, 0, len(rows))
	for _, row := range rows {
		tasks = append(tasks, row.toDomain())
	}
	return tasks, nil
}

func (r *SQLTaskRepository) CountCompletedByUserID(ctx context.Context, userID string) (int, error) {
	var count int
	if err := sqlx.GetContext(ctx, r.q, &count, r.q.Rebind(`SELECT COUNT(*) FROM tasks WHERE user_id = ? AND completed`), userID); err != nil {
		return 0, fmt.Errorf("failed to count tasks: %w", err)
	}
	return count, nil
}
