package textutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidDate = errors.New("invalid date")

// Layouts accepted for string dates, most specific first.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	time.DateTime,
	"2006-01-02 15:04",
	time.DateOnly,
	"2006/01/02",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
}

// ParseDate reduces a front matter date value to a calendar day at UTC
// midnight. The day is read from the value's own wall clock: an offset such
// as -05:00 never moves the date to a neighbouring day.
func ParseDate(v any) (time.Time, error) {
	switch d := v.(type) {
	case time.Time:
		if d.IsZero() {
			break
		}
		return calendarDay(d), nil
	case *time.Time:
		if d == nil || d.IsZero() {
			break
		}
		return calendarDay(*d), nil
	case string:
		s := strings.TrimSpace(d)
		if s == "" {
			break
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return calendarDay(t), nil
			}
		}
	}
	return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidDate, v)
}

// FormatDate normalizes v to YYYY-MM-DD. Feeding its output back in yields
// the same string.
func FormatDate(v any) (string, error) {
	t, err := ParseDate(v)
	if err != nil {
		return "", err
	}
	return t.Format(time.DateOnly), nil
}

func calendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
