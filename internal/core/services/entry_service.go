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

// EntryService applies check-ins to habit logs.
type EntryService struct {
	store        domain.Store
	tracker      *StreakTracker
	achievements *AchievementService
	hook         SharedHabitHook
	cache        domain.StateCache
}

func NewEntryService(store domain.Store, tracker *StreakTracker, achievements *AchievementService, hook SharedHabitHook, cache domain.StateCache) *EntryService {
	if hook == nil {
		hook = NoopSharedHabitHook{}
	}
	return &EntryService{
		store:        store,
		tracker:      tracker,
		achievements: achievements,
		hook:         hook,
		cache:        cacheOrNoop(cache),
	}
}

// ToggleHabit applies one toggle to today's log of the habit, then recomputes
// the global streak and achievements in the same transaction. Repeated calls
// accumulate; the operation is not idempotent.
func (s *EntryService) ToggleHabit(ctx context.Context, userID, habitID string, today time.Time) (*domain.HabitLog, error) {
	today = calendar.Day(today)

	var result *domain.HabitLog
	err := s.store.WithinTx(ctx, func(ctx context.Context, repos domain.Repositories) error {
		habit, err := repos.Habits.GetByID(ctx, habitID)
		if err != nil {
			return err
		}
		if habit.UserID != userID {
			return domain.ErrUnauthorized
		}

		user, err := repos.Users.GetByID(ctx, userID)
		if err != nil {
			return err
		}

		// Two concurrent toggles of the same habit both read the row before
		// either writes it; the later Save wins and one toggle is lost.
		entry, err := repos.Logs.GetByHabitAndDate(ctx, habit.ID, today)
		if errors.Is(err, domain.ErrLogNotFound) {
			entry = domain.NewHabitLog(habit.ID, today)
		} else if err != nil {
			return fmt.Errorf("entry service: get log: %w", err)
		}

		entry.Apply(habit)

		if err := repos.Logs.Save(ctx, entry); err != nil {
			return fmt.Errorf("entry service: save log: %w", err)
		}

		if _, err := s.tracker.Track(ctx, repos, user, today); err != nil {
			return err
		}

		if _, err := s.achievements.Evaluate(ctx, repos, userID, today); err != nil {
			return err
		}

		if habit.IsShared && habit.SharedID != nil {
			if err := s.hook.OnSharedHabitMutated(ctx, repos, *habit.SharedID); err != nil {
				return fmt.Errorf("entry service: shared habit hook: %w", err)
			}
		}

		result = entry
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Debug("habit toggled", "habit_id", habitID, "value", result.Value, "completed", result.Completed)
	invalidate(ctx, s.cache, userID)

	return result, nil
}
