package domain

// UserState is the current-day view rendered by the dashboard and polled by clients.
type UserState struct {
	Date   string      `json:"date"`
	Habits []HabitView `json:"habits"`
	Tasks  []TaskView  `json:"tasks"`
	Streak int         `json:"streak"`
}

type HabitView struct {
	ID         string `json:"id"`
	Text       string `json:"text"`
	Frequency  string `json:"frequency"`
	Completed  bool   `json:"completed"`
	Current    int    `json:"current"`
	Target     int    `json:"target"`
	Shared     bool   `json:"shared"`
	SharedInfo string `json:"shared_info"`
}

type HabitDetail struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Frequency string `json:"frequency"`
	Days      []int  `json:"days"`
	Target    int    `json:"target"`
	Current   int    `json:"current"`
	Shared    bool   `json:"shared"`
	StreakReport
}

func NewHabitView(h *Habit, p HabitProgress) HabitView {
	v := HabitView{
		ID:        h.ID,
		Text:      h.Text,
		Frequency: h.Frequency,
		Completed: p.Completed,
		Current:   p.CurrentValue,
		Target:    p.Target,
		Shared:    h.IsShared,
	}
	if h.IsShared {
		v.SharedInfo = SharedGroupLabel
	}
	return v
}
