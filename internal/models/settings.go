package models

import "time"

// Settings represents application-wide settings
type Settings struct {
	WeekStart            string `json:"week_start"`            // first day of the week in calendar views: "monday" or "sunday"
	Timezone             string `json:"timezone"`              // IANA timezone name, or "Local" for the system timezone
	NotificationsEnabled bool   `json:"notifications_enabled"` // whether reminder scanning delivers notifications
	ReminderLeadMin      int    `json:"reminder_lead_min"`     // minutes before a timed occurrence to fire "starting soon"
	ReminderHorizonDays  int    `json:"reminder_horizon_days"` // how many days ahead the scanner looks (1-8)
	ScanIntervalMin      int    `json:"scan_interval_min"`     // minutes between scanner passes
}

// WeekStartDay maps the configured week start onto a weekday, defaulting to
// Monday for anything unrecognized.
func (s Settings) WeekStartDay() time.Weekday {
	if s.WeekStart == "sunday" {
		return time.Sunday
	}
	return time.Monday
}

// Location resolves the configured timezone, falling back to the system
// timezone when unset, "Local", or unknown.
func (s Settings) Location() *time.Location {
	if s.Timezone == "" || s.Timezone == "Local" {
		return time.Local
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}
