// Package calendar holds the date arithmetic shared by the resolvers and
// streak trackers. Every value it returns is a calendar day: midnight UTC.
package calendar

import (
	"fmt"
	"time"
)

const Layout = "2006-01-02"

// Day drops the clock part of t, keeping its calendar date in t's location.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today returns the current calendar day as seen from loc.
func Today(now time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return Day(now.In(loc))
}

func Parse(s string) (time.Time, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", s, err)
	}
	return t, nil
}

func Format(t time.Time) string {
	return t.Format(Layout)
}

// WeekdayIndex maps t onto 0=Monday .. 6=Sunday.
func WeekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// StartOfWeek returns the Monday of the week containing t.
func StartOfWeek(t time.Time) time.Time {
	d := Day(t)
	return d.AddDate(0, 0, -WeekdayIndex(d))
}

// DaysBetween counts whole calendar days from a to b (negative when b is before a).
func DaysBetween(a, b time.Time) int {
	return int(Day(b).Sub(Day(a)).Hours() / 24)
}

func AddDays(t time.Time, n int) time.Time {
	return Day(t).AddDate(0, 0, n)
}

func SameDay(a, b time.Time) bool {
	return Day(a).Equal(Day(b))
}
