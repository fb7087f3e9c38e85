package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/habitflow/internal/adapters/repository"
	"github.com/comitanigiacomo/habitflow/internal/core/domain"
	"github.com/comitanigiacomo/habitflow/internal/core/services"
)

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

type MockStateCache struct {
	mock.Mock
}

func (m *MockStateCache) Get(ctx context.Context, userID string, d time.Time) (*domain.UserState, error) {
	args := m.Called(ctx, userID, d)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserState), args.Error(1)
}

func (m *MockStateCache) Set(ctx context.Context, userID string, state *domain.UserState) error {
	return m.Called(ctx, userID, state).Error(0)
}

func (m *MockStateCache) Invalidate(ctx context.Context, userIDs ...string) error {
	return m.Called(ctx, userIDs).Error(0)
}

type MockSharedHabitHook struct {
	mock.Mock
}

func (m *MockSharedHabitHook) OnSharedHabitMutated(ctx context.Context, repos domain.Repositories, sharedID string) error {
	return m.Called(ctx, sharedID).Error(0)
}

type testEnv struct {
	store        *repository.MemoryStore
	achievements *services.AchievementService
	habits       *services.HabitService
	entries      *services.EntryService
	tasks        *services.TaskService
	state        *services.StateService
	stats        *services.StatsService
	users        *services.UserService
}

func newTestEnv(t *testing.T, hook services.SharedHabitHook, cache domain.StateCache) *testEnv {
	t.Helper()

	store := repository.NewMemoryStore()
	achievements := services.NewAchievementService(store)
	_, err := achievements.SeedCatalog(context.Background())
	require.NoError(t, err)

	return &testEnv{
		store:        store,
		achievements: achievements,
		habits:       services.NewHabitService(store, achievements, cache),
		entries:      services.NewEntryService(store, services.NewStreakTracker(), achievements, hook, cache),
		tasks:        services.NewTaskService(store, achievements, cache),
		state:        services.NewStateService(store, cache),
		stats:        services.NewStatsService(store),
		users:        services.NewUserService(store),
	}
}

func (e *testEnv) user(t *testing.T, name string) *domain.User {
	t.Helper()
	u, err := e.users.Provision(context.Background(), name)
	require.NoError(t, err)
	return u
}

func (e *testEnv) habit(t *testing.T, userID, frequency string, target int, days ...int) *domain.Habit {
	t.Helper()
	created, err := e.habits.Create(context.Background(), services.CreateHabitInput{
		UserID:    userID,
		Text:      "Habit " + frequency,
		Frequency: frequency,
		Days:      days,
		Target:    target,
		Today:     day("2026-10-01"),
	})
	require.NoError(t, err)
	return created[0]
}

func (e *testEnv) earnedSlugs(t *testing.T, userID string) []string {
	t.Helper()
	views, err := e.achievements.List(context.Background(), userID)
	require.NoError(t, err)

	var slugs []string
	for _, v := range views {
		if v.Earned {
			slugs = append(slugs, v.Slug)
		}
	}
	return slugs
}
