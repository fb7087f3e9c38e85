package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/comitanigiacomo/habitflow/internal/core/domain"
)

type HabitService struct {
	store        domain.Store
	achievements *AchievementService
	cache        domain.StateCache
}

func NewHabitService(store domain.Store, achievements *AchievementService, cache domain.StateCache) *HabitService {
	return &HabitService{
		store:        store,
		achievements: achievements,
		cache:        cacheOrNoop(cache),
	}
}

type CreateHabitInput struct {
	UserID    string
	Text      string
	Frequency string
	Days      []int
	Target    int
	// FriendIDs receive their own copy of the habit under one group token.
	// Friendship itself is not verified here.
	FriendIDs []string
	Today     time.Time
}

func uniqueFriends(userID string, ids []string) ([]string, error) {
	seen := make(map[string]bool, len(ids))
	var out []string
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		if id == userID {
			return nil, domain.ErrSelfShare
		}
		seen[id] = true
		out = append(out, id)
	}
	return out, nil
}

// Create stores the habit for the caller and one linked copy per friend, then
// evaluates achievements for every user that received a row. The first element
// of the result is the caller's habit.
func (s *HabitService) Create(ctx context.Context, input CreateHabitInput) ([]*domain.Habit, error) {
	habit, err := domain.NewHabit(input.UserID, input.Text, input.Frequency, input.Target, input.Days)
	if err != nil {
		return nil, err
	}

	friends, err := uniqueFriends(input.UserID, input.FriendIDs)
	if err != nil {
		return nil, err
	}
	if len(friends) > 0 {
		habit.Share(uuid.NewString())
	}

	created := []*domain.Habit{habit}
	for _, friendID := range friends {
		created = append(created, habit.CopyFor(friendID))
	}

	err = s.store.WithinTx(ctx, func(ctx context.Context, repos domain.Repositories) error {
		for _, h := range created {
			if _, err := repos.Users.GetByID(ctx, h.UserID); err != nil {
				return err
			}
			if err := repos.Habits.Create(ctx, h); err != nil {
				return fmt.Errorf("habit service: create habit: %w", err)
			}
		}

		for _, h := range created {
			if _, err := s.achievements.Evaluate(ctx, repos, h.UserID, input.Today); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	owners := make([]string, 0, len(created))
	for _, h := range created {
		owners = append(owners, h.UserID)
	}
	invalidate(ctx, s.cache, owners...)

	return created, nil
}

func (s *HabitService) ListByUserID(ctx context.Context, userID string) ([]*domain.Habit, error) {
	return s.store.Repos().Habits.ListByUserID(ctx, userID)
}

func (s *HabitService) Delete(ctx context.Context, id string, userID string) error {
	err := s.store.WithinTx(ctx, func(ctx context.Context, repos domain.Repositories) error {
		habit, err := repos.Habits.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if habit.UserID != userID {
			return domain.ErrUnauthorized
		}

		return repos.Habits.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	invalidate(ctx, s.cache, userID)
	return nil
}
