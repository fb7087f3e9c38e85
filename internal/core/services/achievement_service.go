package services

import (
	"context"
	"fmt"
	"time"

	"github.com/comitanigiacomo/habitflow/internal/core/calendar"
	"github.com/comitanigiacomo/habitflow/internal/core/domain"
	"github.com/comitanigiacomo/habitflow/internal/logger"
)

type AchievementService struct {
	store domain.Store
}

func NewAchievementService(store domain.Store) *AchievementService {
	return &AchievementService{
		store: store,
	}
}

// SeedCatalog inserts the default catalog entries that are missing, keyed by slug.
func (s *AchievementService) SeedCatalog(ctx context.Context) (int, error) {
	added, err := s.store.Repos().Achievements.SeedCatalog(ctx, domain.DefaultCatalog())
	if err != nil {
		return 0, fmt.Errorf("achievement service: seed catalog: %w", err)
	}
	return added, nil
}

func (s *AchievementService) List(ctx context.Context, userID string) ([]domain.AchievementView, error) {
	repos := s.store.Repos()

	if _, err := repos.Users.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	catalog, err := repos.Achievements.ListCatalog(ctx)
	if err != nil {
		return nil, err
	}
	earned, err := repos.Achievements.ListEarned(ctx, userID)
	if err != nil {
		return nil, err
	}

	earnedAt := make(map[string]time.Time, len(earned))
	for _, ua := range earned {
		earnedAt[ua.AchievementID] = ua.DateEarned
	}

	views := make([]domain.AchievementView, 0, len(catalog))
	for _, a := range catalog {
		v := domain.AchievementView{
			Slug:        a.Slug,
			Title:       a.Title,
			Description: a.Description,
			Icon:        a.Icon,
		}
		if at, ok := earnedAt[a.ID]; ok {
			v.Earned = true
			v.DateEarned = &at
		}
		views = append(views, v)
	}
	return views, nil
}

func (s *AchievementService) Aggregates(ctx context.Context, repos domain.Repositories, userID string) (domain.Aggregates, error) {
	var agg domain.Aggregates

	user, err := repos.Users.GetByID(ctx, userID)
	if err != nil {
		return agg, err
	}
	agg.Streak = user.CurrentStreak

	if agg.HabitsCreated, err = repos.Habits.CountByUserID(ctx, userID); err != nil {
		return agg, fmt.Errorf("achievement service: count habits: %w", err)
	}
	if agg.HabitsCompleted, err = repos.Logs.CountCompletedByUserID(ctx, userID); err != nil {
		return agg, fmt.Errorf("achievement service: count completions: %w", err)
	}
	if agg.TasksCompleted, err = repos.Tasks.CountCompletedByUserID(ctx, userID); err != nil {
		return agg, fmt.Errorf("achievement service: count tasks: %w", err)
	}
	return agg, nil
}

// Evaluate awards every catalog entry whose threshold the user now meets.
// Entries already earned are never touched, so repeated calls are no-ops.
func (s *AchievementService) Evaluate(ctx context.Context, repos domain.Repositories, userID string, today time.Time) ([]*domain.Achievement, error) {
	agg, err := s.Aggregates(ctx, repos, userID)
	if err != nil {
		return nil, err
	}

	catalog, err := repos.Achievements.ListCatalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("achievement service: list catalog: %w", err)
	}
	earned, err := repos.Achievements.ListEarned(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("achievement service: list earned: %w", err)
	}

	held := make(map[string]bool, len(earned))
	for _, ua := range earned {
		held[ua.AchievementID] = true
	}

	var unlocked []*domain.Achievement
	for _, a := range domain.Unlockable(catalog, held, agg) {
		added, err := repos.Achievements.Award(ctx, &domain.UserAchievement{
			UserID:        userID,
			AchievementID: a.ID,
			DateEarned:    calendar.Day(today),
		})
		if err != nil {
			return nil, fmt.Errorf("achievement service: award %s: %w", a.Slug, err)
		}
		if added {
			logger.Info("achievement unlocked", "user_id", userID, "slug", a.Slug)
			unlocked = append(unlocked, a)
		}
	}
	return unlocked, nil
}
