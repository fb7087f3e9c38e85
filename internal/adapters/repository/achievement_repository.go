package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/comitanigiacomo/habitflow/internal/core/domain"
)

type SQLAchievementRepository struct {
	q sqlx.ExtContext
}

type userAchievementRow struct {
	UserID        string `db:"user_id"`
	AchievementID string `db:"achievement_id"`
	DateEarned    dbTime `db:"date_earned"`
}

func (r *SQLAchievementRepository) SeedCatalog(ctx context.Context, catalog []*domain.Achievement) (int, error) {
	query := r.q.Rebind(`
		INSERT INTO achievements (id, slug, title, description, icon, condition_type, threshold)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (slug) DO NOTHING`)

	added := 0
	for _, a := range catalog {
		res, err := r.q.ExecContext(ctx, query, a.ID, a.Slug, a.Title, a.Description, a.Icon, a.ConditionType, a.Threshold)
		if err != nil {
			return added, fmt.Errorf("failed to seed achievement %s: %w", a.Slug, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return added, fmt.Errorf("failed to check rows affected: %w", err)
		}
		added += int(n)
	}
	return added, nil
}

func (r *SQLAchievementRepository) ListCatalog(ctx context.Context) ([]*domain.Achievement, error) {
	var out []*domain.Achievement
	err := sqlx.SelectContext(ctx, r.q, &out, `
		SELECT id, slug, title, description, icon, condition_type, threshold
		FROM achievements
		ORDER BY condition_type ASC, threshold ASC, slug ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list achievements: %w", err)
	}
	return out, nil
}

func (r *SQLAchievementRepository) ListEarned(ctx context.Context, userID string) ([]*domain.UserAchievement, error) {
	var rows []userAchievementRow
	err := sqlx.SelectContext(ctx, r.q, &rows, r.q.Rebind(`
		SELECT user_id, achievement_id, date_earned
		FROM user_achievements
		WHERE user_id = ?
		ORDER BY achievement_id ASC`), userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list earned achievements: %w", err)
	}

	out := make([]*domain.UserAchievement, 0, len(rows))
	for _, row := range rows {
		out = append(out, &domain.UserAchievement{
			UserID:        row.UserID,
			AchievementID: row.AchievementID,
			DateEarned:    row.DateEarned.day(),
		})
	}
	return out, nil
}

func (r *SQLAchievementRepository) Award(ctx context.Context, ua *domain.UserAchievement) (bool, error) {
	query := r.q.Rebind(`
		INSERT INTO user_achievements (user_id, achievement_id, date_earned)
		VALUES (?, ?, ?)
		ON CONFLICT (user_id, achievement_id) DO NOTHING`)

	res, err := r.q.ExecContext(ctx, query, ua.UserID, ua.AchievementID, dateArg(ua.DateEarned))
	if err != nil {
		if isForeignKeyViolation(err) {
			return false, domain.ErrUserNotFound
		}
		return false, fmt.Errorf("failed to award achievement: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check rows affected: %w", err)
	}
	return n == 1, nil
}
