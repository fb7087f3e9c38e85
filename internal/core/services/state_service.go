package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/comitanigiacomo/habitflow/internal/core/calendar"
	"github.com/comitanigiacomo/habitflow/internal/core/domain"
	"github.com/comitanigiacomo/habitflow/internal/logger"
)

// StateService builds the current-day dashboard of a user.
type StateService struct {
	store domain.Store
	cache domain.StateCache
}

func NewStateService(store domain.Store, cache domain.StateCache) *StateService {
	return &StateService{
		store: store,
		cache: cacheOrNoop(cache),
	}
}

func (s *StateService) ComputeUserState(ctx context.Context, userID string, today time.Time) (*domain.UserState, error) {
	today = calendar.Day(today)

	cached, err := s.cache.Get(ctx, userID, today)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, domain.ErrCacheMiss) {
		logger.Warn("state cache read failed", "user_id", userID, "err", err)
	}

	state, err := s.compute(ctx, userID, today)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, userID, state); err != nil {
		logger.Warn("state cache write failed", "user_id", userID, "err", err)
	}
	return state, nil
}

func (s *StateService) compute(ctx context.Context, userID string, today time.Time) (*domain.UserState, error) {
	repos := s.store.Repos()

	user, err := repos.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	habits, err := repos.Habits.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("state service: list habits: %w", err)
	}

	logs, err := repos.Logs.ListByUserIDAndDateRange(ctx, userID, calendar.StartOfWeek(today), today)
	if err != nil {
		return nil, fmt.Errorf("state service: list logs: %w", err)
	}

	logsByHabit := make(map[string][]*domain.HabitLog)
	for _, l := range logs {
		logsByHabit[l.HabitID] = append(logsByHabit[l.HabitID], l)
	}

	state := &domain.UserState{
		Date:   calendar.Format(today),
		Habits: make([]domain.HabitView, 0, len(habits)),
		Tasks:  make([]domain.TaskView, 0),
		Streak: user.CurrentStreak,
	}

	for _, h := range habits {
		p := h.Resolve(today, logsByHabit[h.ID])
		if !p.Visible {
			continue
		}
		state.Habits = append(state.Habits, domain.NewHabitView(h, p))
	}

	tasks, err := repos.Tasks.ListRecent(ctx, userID, calendar.AddDays(today, -domain.TaskExpiryDays))
	if err != nil {
		return nil, fmt.Errorf("state service: list tasks: %w", err)
	}
	for _, t := range tasks {
		if view, ok := t.Resolve(today); ok {
			state.Tasks = append(state.Tasks, view)
		}
	}
	domain.SortTaskViews(state.Tasks)

	return state, nil
}
