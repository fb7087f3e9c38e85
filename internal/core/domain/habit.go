package domain

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/comitanigiacomo/habitflow/internal/core/calendar"
)

const (
	HabitFreqDaily      = "daily"
	HabitFreqSpecific   = "specific"
	HabitFreqWeeklyFlex = "weekly_flex"
	MaxTextLen          = 200
	SharedGroupLabel    = "(group)"
)

var allWeekdays = []int{0, 1, 2, 3, 4, 5, 6}

type Habit struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Text      string    `json:"text"`
	Frequency string    `json:"frequency"`
	Days      []int     `json:"days"`
	Target    int       `json:"target"`
	IsShared  bool      `json:"is_shared"`
	SharedID  *string   `json:"shared_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// HabitProgress is what the resolver derives for one habit on one day.
type HabitProgress struct {
	Visible      bool
	Completed    bool
	CurrentValue int
	Target       int
}

func normalizeWeekdays(days []int) []int {
	if len(days) == 0 {
		return nil
	}

	uniqueMap := make(map[int]bool)
	var uniqueDays []int
	for _, d := range days {
		if !uniqueMap[d] {
			uniqueMap[d] = true
			uniqueDays = append(uniqueDays, d)
		}
	}

	sort.Ints(uniqueDays)
	return uniqueDays
}

func validateAndNormalize(text, frequency string, target int, days []int) (string, string, []int, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", "", nil, ErrHabitTextEmpty
	}
	if len(trimmed) > MaxTextLen {
		return "", "", nil, ErrHabitTextTooLong
	}

	freq := frequency
	if freq == "" {
		freq = HabitFreqDaily
	}
	switch freq {
	case HabitFreqDaily, HabitFreqSpecific, HabitFreqWeeklyFlex:
	default:
		return "", "", nil, ErrInvalidFrequency
	}

	if target < 1 {
		return "", "", nil, ErrInvalidTarget
	}

	if freq != HabitFreqSpecific {
		return trimmed, freq, append([]int(nil), allWeekdays...), nil
	}

	for _, day := range days {
		if day < 0 || day > 6 {
			return "", "", nil, ErrInvalidWeekdays
		}
	}
	safeDays := normalizeWeekdays(days)
	if len(safeDays) == 0 {
		return "", "", nil, ErrMissingWeekdays
	}

	return trimmed, freq, safeDays, nil
}

func NewHabit(userID, text, frequency string, target int, days []int) (*Habit, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrInvalidUserID
	}

	cleanText, freq, safeDays, err := validateAndNormalize(text, frequency, target, days)
	if err != nil {
		return nil, err
	}

	return &Habit{
		ID:        uuid.NewString(),
		UserID:    userID,
		Text:      cleanText,
		Frequency: freq,
		Days:      safeDays,
		Target:    target,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// CopyFor clones the habit definition into another user's account, keeping the group token.
func (h *Habit) CopyFor(userID string) *Habit {
	clone := *h
	clone.ID = uuid.NewString()
	clone.UserID = userID
	clone.Days = append([]int(nil), h.Days...)
	return &clone
}

func (h *Habit) Share(sharedID string) {
	h.IsShared = true
	h.SharedID = &sharedID
}

func (h *Habit) IsWeekly() bool {
	return h.Frequency == HabitFreqWeeklyFlex
}

// ScheduledOn reports whether the habit is due on day.
func (h *Habit) ScheduledOn(day time.Time) bool {
	switch h.Frequency {
	case HabitFreqDaily, HabitFreqWeeklyFlex:
		return true
	case HabitFreqSpecific:
		idx := calendar.WeekdayIndex(day)
		for _, d := range h.Days {
			if d == idx {
				return true
			}
		}
	}
	return false
}

// Resolve derives today's view of the habit. For weekly_flex habits logs must
// cover the current week; for the others only today's row is consulted.
func (h *Habit) Resolve(today time.Time, logs []*HabitLog) HabitProgress {
	today = calendar.Day(today)

	p := HabitProgress{
		Visible: h.ScheduledOn(today),
		Target:  h.Target,
	}

	if h.IsWeekly() {
		start := calendar.StartOfWeek(today)
		for _, l := range logs {
			d := calendar.Day(l.Date)
			if d.Before(start) || d.After(today) {
				continue
			}
			p.CurrentValue += l.Value
		}
		p.Completed = p.CurrentValue >= h.Target
		return p
	}

	for _, l := range logs {
		if calendar.SameDay(l.Date, today) {
			p.CurrentValue = l.Value
			p.Completed = l.Completed
			break
		}
	}
	return p
}
