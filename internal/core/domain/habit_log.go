package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/comitanigiacomo/habitflow/internal/core/calendar"
)

type HabitLog struct {
	ID        string    `json:"id" db:"id"`
	HabitID   string    `json:"habit_id" db:"habit_id"`
	Date      time.Time `json:"date" db:"date"`
	Value     int       `json:"value" db:"value"`
	Completed bool      `json:"completed" db:"completed"`
}

func NewHabitLog(habitID string, date time.Time) *HabitLog {
	return &HabitLog{
		ID:      uuid.NewString(),
		HabitID: habitID,
		Date:    calendar.Day(date),
	}
}

// Apply performs one user toggle on the log of h. Weekly habits only
// accumulate; their completion is always recomputed from the week's sum.
// Daily and specific habits reset fully when toggled while completed.
func (l *HabitLog) Apply(h *Habit) {
	if h.IsWeekly() {
		l.Value++
		return
	}

	if l.Completed {
		l.Completed = false
		l.Value = 0
		return
	}

	l.Value++
	if l.Value >= h.Target {
		l.Value = h.Target
		l.Completed = true
	}
}

// Partial is true for days with progress that did not reach the target.
func (l *HabitLog) Partial() bool {
	return l.Value > 0 && !l.Completed
}
