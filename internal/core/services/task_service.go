package services

import (
	"context"
	"fmt"
	"time"

	"github.com/comitanigiacomo/habitflow/internal/core/calendar"
	"github.com/comitanigiacomo/habitflow/internal/core/domain"
)

type TaskService struct {
	store        domain.Store
	achievements *AchievementService
	cache        domain.StateCache
}

func NewTaskService(store domain.Store, achievements *AchievementService, cache domain.StateCache) *TaskService {
	return &TaskService{
		store:        store,
		achievements: achievements,
		cache:        cacheOrNoop(cache),
	}
}

type CreateTaskInput struct {
	UserID    string
	Text      string
	DayOffset int
	Today     time.Time
}

func (s *TaskService) Create(ctx context.Context, input CreateTaskInput) (*domain.Task, error) {
	task, err := domain.NewTask(input.UserID, input.Text, input.Today, input.DayOffset)
	if err != nil {
		return nil, err
	}

	err = s.store.WithinTx(ctx, func(ctx context.Context, repos domain.Repositories) error {
		if _, err := repos.Users.GetByID(ctx, input.UserID); err != nil {
			return err
		}
		if err := repos.Tasks.Create(ctx, task); err != nil {
			return fmt.Errorf("task service: create task: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	invalidate(ctx, s.cache, input.UserID)
	return task, nil
}

func (s *TaskService) ToggleTask(ctx context.Context, userID, taskID string, today time.Time) (*domain.Task, error) {
	today = calendar.Day(today)

	var result *domain.Task
	err := s.store.WithinTx(ctx, func(ctx context.Context, repos domain.Repositories) error {
		task, err := repos.Tasks.GetByID(ctx, taskID)
		if err != nil {
			return err
		}
		if task.UserID != userID {
			return domain.ErrUnauthorized
		}

		task.Toggle(today)

		if err := repos.Tasks.Update(ctx, task); err != nil {
			return fmt.Errorf("task service: update task: %w", err)
		}

		if _, err := s.achievements.Evaluate(ctx, repos, userID, today); err != nil {
			return err
		}

		result = task
		return nil
	})
	if err != nil {
		return nil, err
	}

	invalidate(ctx, s.cache, userID)
	return result, nil
}
