package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrLogNotFound = errors.New("habit log not found")
	ErrCacheMiss   = errors.New("cache miss")
)

type UserRepository interface {
	// Create persists a new user account.
	Create(ctx context.Context, user *User) error

	// GetByID retrieves a user by its unique identifier.
	GetByID(ctx context.Context, id string) (*User, error)

	// GetByUsername retrieves a user by its unique username.
	GetByUsername(ctx context.Context, username string) (*User, error)

	// UpdateStreak stores the global streak counter and its last credited day.
	UpdateStreak(ctx context.Context, user *User) error
}

type HabitRepository interface {
	// Create persists a new habit definition.
	Create(ctx context.Context, habit *Habit) error

	// GetByID retrieves a habit by its unique identifier.
	GetByID(ctx context.Context, id string) (*Habit, error)

	// ListByUserID retrieves all habits owned by a user, oldest first.
	ListByUserID(ctx context.Context, userID string) ([]*Habit, error)

	// ListByFrequency retrieves the user's habits with the given frequency.
	ListByFrequency(ctx context.Context, userID, frequency string) ([]*Habit, error)

	// CountByUserID returns how many habits the user currently owns.
	CountByUserID(ctx context.Context, userID string) (int, error)

	// Delete removes a habit together with all of its logs.
	Delete(ctx context.Context, id string) error
}

type HabitLogRepository interface {
	// GetByHabitAndDate returns the single log of a habit for a day, or ErrLogNotFound.
	GetByHabitAndDate(ctx context.Context, habitID string, date time.Time) (*HabitLog, error)

	// Save inserts the log or overwrites value and completion of the existing
	// (habit, date) row. Concurrent saves of the same row are last-write-wins.
	Save(ctx context.Context, log *HabitLog) error

	// ListByHabitID returns the full history of a habit, ascending by date.
	ListByHabitID(ctx context.Context, habitID string) ([]*HabitLog, error)

	// ListByUserIDAndDateRange returns the logs of all the user's habits with
	// from <= date <= to, ascending by date.
	ListByUserIDAndDateRange(ctx context.Context, userID string, from, to time.Time) ([]*HabitLog, error)

	// CountCompletedByUserID counts completed logs across all the user's habits.
	CountCompletedByUserID(ctx context.Context, userID string) (int, error)
}

type TaskRepository interface {
	// Create persists a new task.
	Create(ctx context.Context, task *Task) error

	// GetByID retrieves a task by its unique identifier.
	GetByID(ctx context.Context, id string) (*Task, error)

	// Update stores the completion state of a task.
	Update(ctx context.Context, task *Task) error

	// ListRecent returns the user's tasks that may still be visible on a day
	// no earlier than since: open tasks scheduled on or after since and tasks
	// completed on or after since. Ordered by creation.
	ListRecent(ctx context.Context, userID string, since time.Time) ([]*Task, error)

	// CountCompletedByUserID counts the user's completed tasks.
	CountCompletedByUserID(ctx context.Context, userID string) (int, error)
}

type AchievementRepository interface {
	// SeedCatalog inserts catalog entries whose slug is not stored yet and
	// returns how many rows were added.
	SeedCatalog(ctx context.Context, catalog []*Achievement) (int, error)

	// ListCatalog returns every achievement of the catalog.
	ListCatalog(ctx context.Context) ([]*Achievement, error)

	// ListEarned returns the achievements a user has unlocked.
	ListEarned(ctx context.Context, userID string) ([]*UserAchievement, error)

	// Award records an unlocked achievement. It reports false when the user
	// already held it; existing rows are never modified.
	Award(ctx context.Context, ua *UserAchievement) (bool, error)
}

// Repositories groups the repositories bound to one connection or transaction.
type Repositories struct {
	Users        UserRepository
	Habits       HabitRepository
	Logs         HabitLogRepository
	Tasks        TaskRepository
	Achievements AchievementRepository
}

type Store interface {
	// Repos returns repositories outside of any transaction, for reads.
	Repos() Repositories

	// WithinTx runs fn in a single transaction. Every write made through the
	// given repositories is committed when fn returns nil and rolled back otherwise.
	WithinTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}

type StateCache interface {
	// Get returns the cached state of a user for a day, or ErrCacheMiss.
	Get(ctx context.Context, userID string, day time.Time) (*UserState, error)

	// Set stores a computed state under its own date.
	Set(ctx context.Context, userID string, state *UserState) error

	// Invalidate drops every cached day of the given users.
	Invalidate(ctx context.Context, userIDs ...string) error
}
