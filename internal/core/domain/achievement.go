package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	ConditionStreak          = "streak"
	ConditionHabitsCreated   = "habits_created"
	ConditionHabitsCompleted = "habits_completed"
	ConditionTasksCompleted  = "tasks_completed"
)

type Achievement struct {
	ID            string `json:"id" db:"id"`
	Slug          string `json:"slug" db:"slug"`
	Title         string `json:"title" db:"title"`
	Description   string `json:"description" db:"description"`
	Icon          string `json:"icon" db:"icon"`
	ConditionType string `json:"condition_type" db:"condition_type"`
	Threshold     int    `json:"threshold" db:"threshold"`
}

type UserAchievement struct {
	UserID        string    `json:"user_id" db:"user_id"`
	AchievementID string    `json:"achievement_id" db:"achievement_id"`
	DateEarned    time.Time `json:"date_earned" db:"date_earned"`
}

// AchievementView is one catalog entry as seen by a user.
type AchievementView struct {
	Slug        string     `json:"slug"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Icon        string     `json:"icon"`
	Earned      bool       `json:"earned"`
	DateEarned  *time.Time `json:"date_earned,omitempty"`
}

// Aggregates are the cumulative statistics achievements are unlocked against.
type Aggregates struct {
	HabitsCreated   int
	HabitsCompleted int
	TasksCompleted  int
	Streak          int
}

func (a Aggregates) For(conditionType string) (int, bool) {
	switch conditionType {
	case ConditionStreak:
		return a.Streak, true
	case ConditionHabitsCreated:
		return a.HabitsCreated, true
	case ConditionHabitsCompleted:
		return a.HabitsCompleted, true
	case ConditionTasksCompleted:
		return a.TasksCompleted, true
	}
	return 0, false
}

// Unlockable returns the catalog entries that are not in earned and whose
// threshold is met by agg.
func Unlockable(catalog []*Achievement, earned map[string]bool, agg Aggregates) []*Achievement {
	var out []*Achievement
	for _, a := range catalog {
		if earned[a.ID] {
			continue
		}
		value, ok := agg.For(a.ConditionType)
		if !ok {
			continue
		}
		if value >= a.Threshold {
			out = append(out, a)
		}
	}
	return out
}

func newAchievement(slug, title, description, icon, condition string, threshold int) *Achievement {
	return &Achievement{
		ID:            uuid.NewSHA1(uuid.NameSpaceOID, []byte("habitflow/achievement/"+slug)).String(),
		Slug:          slug,
		Title:         title,
		Description:   description,
		Icon:          icon,
		ConditionType: condition,
		Threshold:     threshold,
	}
}

// DefaultCatalog is the fixed list seeded on first startup. IDs are derived
// from the slug so every store seeds identical rows.
func DefaultCatalog() []*Achievement {
	return []*Achievement{
		newAchievement("first_habit", "First Step", "Create your first habit.", "flag", ConditionHabitsCreated, 1),
		newAchievement("habit_builder", "Habit Builder", "Create 5 habits.", "construction", ConditionHabitsCreated, 5),
		newAchievement("first_check", "Checked In", "Complete a habit for the first time.", "check_circle", ConditionHabitsCompleted, 1),
		newAchievement("dedicated", "Dedicated", "Complete habits 50 times.", "military_tech", ConditionHabitsCompleted, 50),
		newAchievement("task_starter", "Getting Things Done", "Complete your first task.", "task_alt", ConditionTasksCompleted, 1),
		newAchievement("task_master", "Task Master", "Complete 25 tasks.", "workspace_premium", ConditionTasksCompleted, 25),
		newAchievement("week_streak", "On Fire", "Keep a 7 day streak.", "local_fire_department", ConditionStreak, 7),
	}
}
