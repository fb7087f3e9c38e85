package domain

import (
	"strings"
	"time"

	"github.com/comitanigiacomo/habitflow/internal/core/calendar"
)

const MaxUsernameLen = 150

type User struct {
	ID                string     `json:"id" db:"id"`
	Username          string     `json:"username" db:"username"`
	CurrentStreak     int        `json:"current_streak" db:"current_streak"`
	LastCompletedDate *time.Time `json:"last_completed_date,omitempty" db:"last_completed_date"`
	CreatedAt         time.Time  `json:"created_at" db:"created_at"`
}

func NewUser(id, username string) (*User, error) {
	username = strings.TrimSpace(username)
	if username == "" || len(username) > MaxUsernameLen {
		return nil, ErrInvalidUsername
	}
	if strings.TrimSpace(id) == "" {
		return nil, ErrInvalidUserID
	}

	return &User{
		ID:        id,
		Username:  username,
		CreatedAt: time.Now().UTC(),
	}, nil
}

func (u *User) CreditedOn(day time.Time) bool {
	return u.LastCompletedDate != nil && calendar.SameDay(*u.LastCompletedDate, day)
}

// CreditDay extends the global streak for a day on which every daily habit was
// completed. A gap of more than one day restarts the count at 1; a missed day
// never lowers the streak by itself.
func (u *User) CreditDay(today time.Time) bool {
	today = calendar.Day(today)
	if u.CreditedOn(today) {
		return false
	}

	if u.LastCompletedDate == nil {
		u.CurrentStreak = 1
	} else {
		delta := calendar.DaysBetween(*u.LastCompletedDate, today)
		switch {
		case delta == 1:
			u.CurrentStreak++
		case delta > 1:
			u.CurrentStreak = 1
		}
	}

	u.LastCompletedDate = &today
	return true
}
