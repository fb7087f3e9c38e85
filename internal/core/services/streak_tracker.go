package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/comitanigiacomo/habitflow/internal/core/calendar"
	"github.com/comitanigiacomo/habitflow/internal/core/domain"
)

// StreakTracker maintains the user's global streak over daily habits.
type StreakTracker struct{}

func NewStreakTracker() *StreakTracker {
	return &StreakTracker{}
}

// Track credits today when every daily habit of the user has a completed log.
// Missing or unfinished habits leave the streak untouched: it freezes, it never resets.
// Only habits with frequency daily take part.
func (t *StreakTracker) Track(ctx context.Context, repos domain.Repositories, user *domain.User, today time.Time) (bool, error) {
	today = calendar.Day(today)
	if user.CreditedOn(today) {
		return false, nil
	}

	habits, err := repos.Habits.ListByFrequency(ctx, user.ID, domain.HabitFreqDaily)
	if err != nil {
		return false, fmt.Errorf("streak tracker: list daily habits: %w", err)
	}
	if len(habits) == 0 {
		return false, nil
	}

	for _, h := range habits {
		entry, err := repos.Logs.GetByHabitAndDate(ctx, h.ID, today)
		if errors.Is(err, domain.ErrLogNotFound) {
			return false, nil
		}
		if err != nil {
			return false, fmt.Errorf("streak tracker: get log: %w", err)
		}
		if !entry.Completed {
			return false, nil
		}
	}

	if !user.CreditDay(today) {
		return false, nil
	}
	if err := repos.Users.UpdateStreak(ctx, user); err != nil {
		return false, fmt.Errorf("streak tracker: update user: %w", err)
	}
	return true, nil
}
