package repository

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/comitanigiacomo/habitflow/internal/core/calendar"
)

const timestampLayout = "2006-01-02 15:04:05.000000-07:00"

var timeLayouts = []string{
	timestampLayout,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02T15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	calendar.Layout,
}

// dbTime scans DATE and TIMESTAMP columns whether the driver hands back a
// time.Time (pgx, typed sqlite columns) or raw text.
type dbTime struct {
	Time  time.Time
	Valid bool
}

func (t *dbTime) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		t.Time, t.Valid = time.Time{}, false
		return nil
	case time.Time:
		t.Time, t.Valid = v.UTC(), true
		return nil
	case string:
		return t.parse(v)
	case []byte:
		return t.parse(string(v))
	}
	return fmt.Errorf("cannot scan %T into time", src)
}

func (t *dbTime) parse(s string) error {
	for _, layout := range timeLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time, t.Valid = parsed.UTC(), true
			return nil
		}
	}
	return fmt.Errorf("cannot parse %q as time", s)
}

func (t dbTime) day() time.Time {
	return calendar.Day(t.Time)
}

func (t dbTime) dayPtr() *time.Time {
	if !t.Valid {
		return nil
	}
	d := t.day()
	return &d
}

// Timestamps are written as fixed-width UTC text so they sort the same in both dialects.
func timestampArg(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func dateArg(t time.Time) string {
	return calendar.Format(t)
}

func nullDateArg(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return calendar.Format(*t)
}

func nullStringArg(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}

func encodeDays(days []int) (string, error) {
	if days == nil {
		days = []int{}
	}
	b, err := json.Marshal(days)
	if err != nil {
		return "", fmt.Errorf("failed to marshal days: %w", err)
	}
	return string(b), nil
}

func decodeDays(raw string) ([]int, error) {
	if raw == "" {
		return nil, nil
	}
	var days []int
	if err := json.Unmarshal([]byte(raw), &days); err != nil {
		return nil, fmt.Errorf("failed to unmarshal days: %w", err)
	}
	return days, nil
}
