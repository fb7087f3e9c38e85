package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/comitanigiacomo/habitflow/internal/core/calendar"
)

const (
	MaxDayOffset   = 365
	TaskExpiryDays = 3
)

type Task struct {
	ID            string     `json:"id"`
	UserID        string     `json:"user_id"`
	Text          string     `json:"text"`
	CreatedDate   time.Time  `json:"created_date"`
	ScheduledDate *time.Time `json:"scheduled_date,omitempty"`
	Completed     bool       `json:"completed"`
	CompletedDate *time.Time `json:"completed_date,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

type TaskView struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
	Tag       string `json:"tag"`

	createdAt time.Time
}

func NewTask(userID, text string, today time.Time, dayOffset int) (*Task, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrInvalidUserID
	}

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, ErrTaskTextEmpty
	}
	if len(trimmed) > MaxTextLen {
		return nil, ErrTaskTextTooLong
	}
	if dayOffset < 0 || dayOffset > MaxDayOffset {
		return nil, ErrInvalidDayOffset
	}

	created := calendar.Day(today)
	scheduled := calendar.AddDays(created, dayOffset)

	return &Task{
		ID:            uuid.NewString(),
		UserID:        userID,
		Text:          trimmed,
		CreatedDate:   created,
		ScheduledDate: &scheduled,
		CreatedAt:     time.Now().UTC(),
	}, nil
}

func (t *Task) EffectiveDate() time.Time {
	if t.ScheduledDate != nil {
		return calendar.Day(*t.ScheduledDate)
	}
	return calendar.Day(t.CreatedDate)
}

// Toggle flips completion. CompletedDate is set iff the task is completed.
func (t *Task) Toggle(today time.Time) {
	t.Completed = !t.Completed
	if t.Completed {
		d := calendar.Day(today)
		t.CompletedDate = &d
		return
	}
	t.CompletedDate = nil
}

// Resolve reports whether the task belongs to today's list and with which tag.
// Completed tasks vanish the day after completion; open tasks show up on their
// scheduled day and expire after TaskExpiryDays overdue days.
func (t *Task) Resolve(today time.Time) (TaskView, bool) {
	today = calendar.Day(today)
	view := TaskView{
		ID:        t.ID,
		Text:      t.Text,
		Completed: t.Completed,
		createdAt: t.CreatedAt,
	}

	if t.Completed {
		if t.CompletedDate == nil || !calendar.SameDay(*t.CompletedDate, today) {
			return TaskView{}, false
		}
		return view, true
	}

	daysDiff := calendar.DaysBetween(t.EffectiveDate(), today)
	if daysDiff < 0 || daysDiff > TaskExpiryDays {
		return TaskView{}, false
	}

	view.Tag = AgeTag(daysDiff)
	return view, true
}

func AgeTag(daysAgo int) string {
	switch {
	case daysAgo <= 0:
		return "Today"
	case daysAgo == 1:
		return "Yesterday"
	default:
		return fmt.Sprintf("%d days ago", daysAgo)
	}
}

// SortTaskViews puts open tasks first, each group in creation order.
func SortTaskViews(views []TaskView) {
	sort.SliceStable(views, func(i, j int) bool {
		if views[i].Completed != views[j].Completed {
			return !views[i].Completed
		}
		if !views[i].createdAt.Equal(views[j].createdAt) {
			return views[i].createdAt.Before(views[j].createdAt)
		}
		return views[i].ID < views[j].ID
	})
}
