package recurrence

import (
	"fmt"
	"time"
)

// ViewMode selects the calendar span a window covers.
type ViewMode string

const (
	ViewDay   ViewMode = "day"
	ViewWeek  ViewMode = "week"
	ViewMonth ViewMode = "month"
)

// ResolveWindow computes the closed expansion interval for a UI view mode
// around a reference date. Day and month use standard calendar boundaries;
// week alignment follows weekStart, which is locale-sensitive and therefore
// an input rather than something decided here.
func ResolveWindow(mode ViewMode, ref time.Time, weekStart time.Weekday) (time.Time, time.Time, error) {
	day := startOfDay(ref)

	switch mode {
	case ViewDay:
		return day, endOfDay(day), nil
	case ViewWeek:
		offset := (int(day.Weekday()) - int(weekStart) + 7) % 7
		start := day.AddDate(0, 0, -offset)
		return start, endOfDay(start.AddDate(0, 0, 6)), nil
	case ViewMonth:
		start := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, day.Location())
		return start, endOfDay(start.AddDate(0, 1, -1)), nil
	default:
		return time.Time{}, time.Time{}, fmt.Errorf("unknown view mode: %s", mode)
	}
}

func endOfDay(day time.Time) time.Time {
	return startOfDay(day).AddDate(0, 0, 1).Add(-time.Nanosecond)
}
