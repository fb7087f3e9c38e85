package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/habitflow/internal/core/domain"
)

func TestNewTask(t *testing.T) {
	today := day("2026-10-19")

	t.Run("Success: Scheduled date is today plus offset", func(t *testing.T) {
		task, err := domain.NewTask("u1", " Buy milk ", today, 2)

		require.NoError(t, err)
		assert.Equal(t, "Buy milk", task.Text)
		assert.Equal(t, today, task.CreatedDate)
		require.NotNil(t, task.ScheduledDate)
		assert.Equal(t, day("2026-10-21"), *task.ScheduledDate)
		assert.False(t, task.Completed)
		assert.Nil(t, task.CompletedDate)
	})

	t.Run("Error: Empty text", func(t *testing.T) {
		_, err := domain.NewTask("u1", "  ", today, 0)
		assert.ErrorIs(t, err, domain.ErrTaskTextEmpty)
	})

	t.Run("Error: Negative offset", func(t *testing.T) {
		_, err := domain.NewTask("u1", "Call mom", today, -1)
		assert.ErrorIs(t, err, domain.ErrInvalidDayOffset)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestTask_Toggle(t *testing.T) {
	task, err := domain.NewTask("u1", "Pay rent", day("2026-10-19"), 0)
	require.NoError(t, err)

	task.Toggle(day("2026-10-20"))
	assert.True(t, task.Completed)
	require.NotNil(t, task.CompletedDate)
	assert.Equal(t, day("2026-10-20"), *task.CompletedDate)

	task.Toggle(day("2026-10-20"))
	assert.False(t, task.Completed)
	assert.Nil(t, task.CompletedDate, "completed_date is cleared when un-completed")
}

func TestTask_Resolve_Lifecycle(t *testing.T) {
	d := day("2026-10-19")
	task, err := domain.NewTask("u1", "File taxes", d, 2)
	require.NoError(t, err)

	tests := []struct {
		name        string
		today       time.Time
		wantVisible bool
		wantTag     string
	}{
		{"Hidden before due (D)", d, false, ""},
		{"Hidden before due (D+1)", d.AddDate(0, 0, 1), false, ""},
		{"Due today (D+2)", d.AddDate(0, 0, 2), true, "Today"},
		{"One day overdue (D+3)", d.AddDate(0, 0, 3), true, "Yesterday"},
		{"Two days overdue (D+4)", d.AddDate(0, 0, 4), true, "2 days ago"},
		{"Three days overdue (D+5)", d.AddDate(0, 0, 5), true, "3 days ago"},
		{"Expired (D+6)", d.AddDate(0, 0, 6), false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view, visible := task.Resolve(tt.today)
			assert.Equal(t, tt.wantVisible, visible)
			assert.Equal(t, tt.wantTag, view.Tag)
		})
	}
}

func TestTask_Resolve_Completed(t *testing.T) {
	d := day("2026-10-19")
	task, err := domain.NewTask("u1", "Old task", d.AddDate(0, 0, -10), 0)
	require.NoError(t, err)

	task.Toggle(d)

	view, visible := task.Resolve(d)
	assert.True(t, visible, "Completed tasks stay visible on their completion day")
	assert.True(t, view.Completed)
	assert.Empty(t, view.Tag)

	_, visible = task.Resolve(d.AddDate(0, 0, 1))
	assert.False(t, visible, "Completed tasks disappear the next day")
}

func TestTask_Resolve_FallsBackToCreatedDate(t *testing.T) {
	d := day("2026-10-19")
	task := &domain.Task{ID: "t1", Text: "Legacy", CreatedDate: d}

	view, visible := task.Resolve(d.AddDate(0, 0, 1))

	assert.True(t, visible)
	assert.Equal(t, "Yesterday", view.Tag)
}

func TestSortTaskViews(t *testing.T) {
	d := day("2026-10-19")
	base := time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)

	mk := func(id string, completed bool, createdAt time.Time) domain.TaskView {
		task := &domain.Task{ID: id, Text: id, CreatedDate: d, CreatedAt: createdAt, Completed: completed}
		if completed {
			task.CompletedDate = &d
		}
		view, ok := task.Resolve(d)
		require.True(t, ok)
		return view
	}

	views := []domain.TaskView{
		mk("done-early", true, base),
		mk("open-late", false, base.Add(2*time.Hour)),
		mk("done-late", true, base.Add(3*time.Hour)),
		mk("open-early", false, base.Add(time.Hour)),
	}

	domain.SortTaskViews(views)

	var ids []string
	for _, v := range views {
		ids = append(ids, v.ID)
	}
	assert.Equal(t, []string{"open-early", "open-late", "done-early", "done-late"}, ids)
}

func TestAgeTag(t *testing.T) {
	assert.Equal(t, "Today", domain.AgeTag(0))
	assert.Equal(t, "Yesterday", domain.AgeTag(1))
	assert.Equal(t, "3 days ago", domain.AgeTag(3))
}
