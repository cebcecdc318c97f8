package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/daybook-app/daybook/internal/auth"
	"github.com/daybook-app/daybook/internal/config"
	"github.com/daybook-app/daybook/internal/models"
	"github.com/daybook-app/daybook/internal/storage"
)

type Context struct {
	Store     storage.Provider
	Config    *config.Config
	ConfigDir string
}

// RequireSession ensures a login session exists before a mutating command
// runs.
func (c *Context) RequireSession() (auth.Session, error) {
	session, err := auth.ReadSession(c.ConfigDir)
	if err != nil {
		return auth.Session{}, fmt.Errorf("%w (run 'daybook login' first)", err)
	}
	return session, nil
}

// Location resolves the configured timezone, falling back to local time.
func (c *Context) Location() *time.Location {
	settings, err := c.Store.GetSettings()
	if err != nil {
		return time.Local
	}
	return settings.Location()
}

// ParseWeekdays parses a comma-separated list of weekdays
func ParseWeekdays(s string) ([]time.Weekday, error) {
	parts := strings.Split(s, ",")
	var weekdays []time.Weekday

	for _, part := range parts {
		wd, err := ParseWeekday(part)
		if err != nil {
			return nil, err
		}
		weekdays = append(weekdays, wd)
	}

	return weekdays, nil
}

// ParseWeekday parses a single weekday name, abbreviation, or number
// (0=Sunday, 6=Saturday).
func ParseWeekday(s string) (time.Weekday, error) {
	dayMap := map[string]time.Weekday{
		"sun":       time.Sunday,
		"sunday":    time.Sunday,
		"mon":       time.Monday,
		"monday":    time.Monday,
		"tue":       time.Tuesday,
		"tuesday":   time.Tuesday,
		"wed":       time.Wednesday,
		"wednesday": time.Wednesday,
		"thu":       time.Thursday,
		"thursday":  time.Thursday,
		"fri":       time.Friday,
		"friday":    time.Friday,
		"sat":       time.Saturday,
		"saturday":  time.Saturday,
	}

	key := strings.TrimSpace(strings.ToLower(s))
	if wd, ok := dayMap[key]; ok {
		return wd, nil
	}

	num, err := strconv.Atoi(key)
	if err == nil && num >= 0 && num <= 6 {
		return time.Weekday(num), nil
	}
	return 0, fmt.Errorf("invalid weekday: %s", s)
}

// FormatRecurrence formats a recurrence rule into a human-readable string
func FormatRecurrence(rec models.Recurrence) string {
	switch rec.Type {
	case "", "none":
		return "one-off"
	case "daily":
		return "daily"
	case "weekly":
		if len(rec.DaysOfWeek) > 0 {
			var days []string
			for _, wd := range rec.DaysOfWeek {
				days = append(days, wd.String()[:3])
			}
			return fmt.Sprintf("weekly on %s", strings.Join(days, ","))
		}
		return "weekly"
	case "monthly":
		return fmt.Sprintf("monthly on day %d", rec.DayOfMonth)
	default:
		return "unknown"
	}
}

// ParseDate parses a YYYY-MM-DD date in the given location, or returns now
// when the input is empty.
func ParseDate(s string, loc *time.Location, now time.Time) (time.Time, error) {
	if s == "" {
		return now.In(loc), nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", s, err)
	}
	return t, nil
}
