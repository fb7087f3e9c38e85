package domain

import (
	"math"
	"sort"
	"time"

	"github.com/comitanigiacomo/habitflow/internal/core/calendar"
)

const (
	HistoryDays   = 30
	RecentEntries = 5
)

type StreakReport struct {
	CurrentStreak    int           `json:"current_streak"`
	BestStreak       int           `json:"best_streak"`
	TotalCompletions int           `json:"total_completions"`
	CompletionRate   int           `json:"completion_rate"`
	History          []HistoryDay  `json:"history"`
	Recent           []RecentEntry `json:"recent"`
}

type HistoryDay struct {
	Date      string `json:"date"`
	Value     int    `json:"value"`
	Completed bool   `json:"completed"`
	Partial   bool   `json:"partial"`
}

type RecentEntry struct {
	Date      string `json:"date"`
	Label     string `json:"label"`
	Value     int    `json:"value"`
	Completed bool   `json:"completed"`
}

// AnalyzeHabit computes streak statistics for one habit's log history.
func AnalyzeHabit(logs []*HabitLog, today time.Time) StreakReport {
	today = calendar.Day(today)

	sorted := make([]*HabitLog, 0, len(logs))
	for _, l := range logs {
		if l != nil {
			sorted = append(sorted, l)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	report := StreakReport{
		History: make([]HistoryDay, 0, HistoryDays),
		Recent:  make([]RecentEntry, 0, RecentEntries),
	}

	report.BestStreak, report.TotalCompletions = bestStreak(sorted)
	report.CurrentStreak = currentStreak(sorted, today)

	if len(sorted) > 0 {
		report.CompletionRate = int(math.Round(100 * float64(report.TotalCompletions) / float64(len(sorted))))
	}

	byDay := make(map[string]*HabitLog, len(sorted))
	for _, l := range sorted {
		byDay[calendar.Format(l.Date)] = l
	}

	for i := 0; i < HistoryDays; i++ {
		key := calendar.Format(calendar.AddDays(today, -i))
		day := HistoryDay{Date: key}
		if l, ok := byDay[key]; ok {
			day.Value = l.Value
			day.Completed = l.Completed
			day.Partial = l.Partial()
		}
		report.History = append(report.History, day)
	}

	for i := len(sorted) - 1; i >= 0 && len(report.Recent) < RecentEntries; i-- {
		l := sorted[i]
		if calendar.Day(l.Date).After(today) {
			continue
		}
		report.Recent = append(report.Recent, RecentEntry{
			Date:      calendar.Format(l.Date),
			Label:     DayLabel(l.Date, today),
			Value:     l.Value,
			Completed: l.Completed,
		})
	}

	return report
}

// bestStreak counts a completed log as a continuation whenever it falls the
// day after the previously processed log, whether or not that log was completed.
func bestStreak(sorted []*HabitLog) (int, int) {
	best, run, completions := 0, 0, 0
	var prev time.Time
	hasPrev := false

	for _, l := range sorted {
		d := calendar.Day(l.Date)
		if l.Completed {
			completions++
			if hasPrev && calendar.DaysBetween(prev, d) == 1 {
				run++
			} else {
				run = 1
			}
			if run > best {
				best = run
			}
		} else {
			run = 0
		}
		prev = d
		hasPrev = true
	}

	return best, completions
}

// currentStreak walks back from today. An unfinished or missing entry for
// today does not break the streak; the run may start yesterday.
func currentStreak(sorted []*HabitLog, today time.Time) int {
	yesterday := calendar.AddDays(today, -1)
	current := 0
	var expected time.Time

	for i := len(sorted) - 1; i >= 0; i-- {
		l := sorted[i]
		d := calendar.Day(l.Date)
		if d.After(today) {
			continue
		}

		if current == 0 {
			if d.Equal(today) && !l.Completed {
				continue
			}
			if !d.Equal(today) && !d.Equal(yesterday) {
				break
			}
			if !l.Completed {
				break
			}
			current = 1
			expected = calendar.AddDays(d, -1)
			continue
		}

		if !d.Equal(expected) || !l.Completed {
			break
		}
		current++
		expected = calendar.AddDays(d, -1)
	}

	return current
}

// DayLabel renders day relative to today for recent-activity lists.
func DayLabel(day, today time.Time) string {
	switch calendar.DaysBetween(day, today) {
	case 0:
		return "Today"
	case 1:
		return "Yesterday"
	}
	return calendar.Day(day).Format("Mon, 02 Jan")
}
