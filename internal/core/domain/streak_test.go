package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/habitflow/internal/core/domain"
)

func logsOn(start time.Time, pattern ...bool) []*domain.HabitLog {
	var logs []*domain.HabitLog
	for i, completed := range pattern {
		l := &domain.HabitLog{HabitID: "h1", Date: start.AddDate(0, 0, i), Completed: completed}
		if completed {
			l.Value = 1
		}
		logs = append(logs, l)
	}
	return logs
}

func TestAnalyzeHabit_Streaks(t *testing.T) {
	d := day("2026-10-10")
	threeDays := logsOn(d, true, true, true)

	tests := []struct {
		name        string
		logs        []*domain.HabitLog
		today       time.Time
		wantCurrent int
		wantBest    int
	}{
		{"No logs", nil, d, 0, 0},
		{"Run ending today", threeDays, d.AddDate(0, 0, 2), 3, 3},
		{"Grace day: yesterday completed, no entry today", threeDays, d.AddDate(0, 0, 3), 3, 3},
		{"Broken after a missed day", threeDays, d.AddDate(0, 0, 4), 0, 3},
		{
			name:        "Incomplete entry today keeps yesterday's run",
			logs:        append(logsOn(d, true, true), &domain.HabitLog{HabitID: "h1", Date: d.AddDate(0, 0, 2), Value: 0}),
			today:       d.AddDate(0, 0, 2),
			wantCurrent: 2,
			wantBest:    2,
		},
		{
			name:        "Incomplete entry yesterday breaks the run",
			logs:        logsOn(d, true, true, false),
			today:       d.AddDate(0, 0, 3),
			wantCurrent: 0,
			wantBest:    2,
		},
		{
			name:        "Best streak in the past",
			logs:        append(logsOn(d, true, true, true, true, false), logsOn(d.AddDate(0, 0, 8), true)...),
			today:       d.AddDate(0, 0, 8),
			wantCurrent: 1,
			wantBest:    4,
		},
		{
			name:        "Gap between logs restarts the best run",
			logs:        append(logsOn(d, true, true), logsOn(d.AddDate(0, 0, 3), true, true)...),
			today:       d.AddDate(0, 0, 4),
			wantCurrent: 2,
			wantBest:    2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := domain.AnalyzeHabit(tt.logs, tt.today)
			assert.Equal(t, tt.wantCurrent, r.CurrentStreak, "current streak")
			assert.Equal(t, tt.wantBest, r.BestStreak, "best streak")
		})
	}
}

func TestAnalyzeHabit_BestStreakCountsAdjacencyToPreviousRecord(t *testing.T) {
	d := day("2026-10-10")
	// completed, incomplete, completed, completed on consecutive days
	logs := logsOn(d, true, false, true, true)

	r := domain.AnalyzeHabit(logs, d.AddDate(0, 0, 3))

	assert.Equal(t, 2, r.BestStreak, "An incomplete day resets the run to zero before the next completed day")
	assert.Equal(t, 2, r.CurrentStreak)
}

func TestAnalyzeHabit_UnsortedInput(t *testing.T) {
	d := day("2026-10-10")
	logs := logsOn(d, true, true, true)
	logs[0], logs[2] = logs[2], logs[0]

	r := domain.AnalyzeHabit(logs, d.AddDate(0, 0, 2))

	assert.Equal(t, 3, r.BestStreak)
	assert.Equal(t, 3, r.CurrentStreak)
}

func TestAnalyzeHabit_Rates(t *testing.T) {
	d := day("2026-10-10")

	r := domain.AnalyzeHabit(logsOn(d, true, false, true), d.AddDate(0, 0, 2))
	assert.Equal(t, 2, r.TotalCompletions)
	assert.Equal(t, 67, r.CompletionRate, "round(100*2/3)")

	r = domain.AnalyzeHabit(nil, d)
	assert.Equal(t, 0, r.CompletionRate)
	assert.Equal(t, 0, r.TotalCompletions)
}

func TestAnalyzeHabit_HistoryAndRecent(t *testing.T) {
	today := day("2026-10-19")
	logs := []*domain.HabitLog{
		{HabitID: "h1", Date: today.AddDate(0, 0, -40), Value: 1, Completed: true},
		{HabitID: "h1", Date: today.AddDate(0, 0, -6), Value: 1, Completed: true},
		{HabitID: "h1", Date: today.AddDate(0, 0, -5), Value: 1, Completed: true},
		{HabitID: "h1", Date: today.AddDate(0, 0, -3), Value: 1},
		{HabitID: "h1", Date: today.AddDate(0, 0, -2), Value: 2, Completed: true},
		{HabitID: "h1", Date: today.AddDate(0, 0, -1), Value: 2, Completed: true},
		{HabitID: "h1", Date: today, Value: 0},
	}

	r := domain.AnalyzeHabit(logs, today)

	require.Len(t, r.History, domain.HistoryDays)
	assert.Equal(t, "2026-10-19", r.History[0].Date, "History is newest first")
	assert.Equal(t, "2026-09-20", r.History[29].Date)
	assert.True(t, r.History[1].Completed)
	assert.True(t, r.History[3].Partial)
	assert.False(t, r.History[4].Completed, "Days without a log are incomplete")
	assert.False(t, r.History[4].Partial, "Days without a log are not partial")

	require.Len(t, r.Recent, domain.RecentEntries)
	assert.Equal(t, "Today", r.Recent[0].Label)
	assert.Equal(t, "Yesterday", r.Recent[1].Label)
	assert.Equal(t, "2026-10-17", r.Recent[2].Date)
	assert.Equal(t, "Fri, 16 Oct", r.Recent[3].Label)
	assert.Equal(t, "2026-10-14", r.Recent[4].Date)
}
