package services

import (
	"context"
	"fmt"
	"time"

	"github.com/comitanigiacomo/habitflow/internal/core/calendar"
	"github.com/comitanigiacomo/habitflow/internal/core/domain"
)

type StatsService struct {
	store domain.Store
}

func NewStatsService(store domain.Store) *StatsService {
	return &StatsService{
		store: store,
	}
}

func (s *StatsService) GetHabitDetail(ctx context.Context, userID, habitID string, today time.Time) (*domain.HabitDetail, error) {
	today = calendar.Day(today)
	repos := s.store.Repos()

	habit, err := repos.Habits.GetByID(ctx, habitID)
	if err != nil {
		return nil, err
	}
	if habit.UserID != userID {
		return nil, domain.ErrUnauthorized
	}

	logs, err := repos.Logs.ListByHabitID(ctx, habitID)
	if err != nil {
		return nil, fmt.Errorf("stats service: list logs: %w", err)
	}

	progress := habit.Resolve(today, logs)

	return &domain.HabitDetail{
		ID:           habit.ID,
		Text:         habit.Text,
		Frequency:    habit.Frequency,
		Days:         habit.Days,
		Target:       habit.Target,
		Current:      progress.CurrentValue,
		Shared:       habit.IsShared,
		StreakReport: domain.AnalyzeHabit(logs, today),
	}, nil
}
