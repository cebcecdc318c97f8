package constants

import "time"

// ActivityStatus represents a kanban column an activity sits in
type ActivityStatus string

// RecurrenceType represents how an activity repeats across the calendar
type RecurrenceType string

// ReminderKind represents the type of reminder raised for an occurrence
type ReminderKind string

const (
	AppName           = "daybook"
	Version           = "v0.2.0"
	DefaultConfigPath = "~/.config/daybook/config.yaml"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// MaxExpansionSteps caps how many candidate dates a single expansion may
	// visit (roughly two years of daily steps). Expansion stops silently at
	// the cap; it must never loop past it.
	MaxExpansionSteps = 732

	// Recurrence constants
	RecurrenceNone    RecurrenceType = "none"
	RecurrenceDaily   RecurrenceType = "daily"
	RecurrenceWeekly  RecurrenceType = "weekly"
	RecurrenceMonthly RecurrenceType = "monthly"

	// Activity Status constants
	StatusTodo  ActivityStatus = "todo"
	StatusDoing ActivityStatus = "doing"
	StatusDone  ActivityStatus = "done"

	// Reminder kinds
	ReminderStartingSoon ReminderKind = "starting_soon"
	ReminderTomorrow     ReminderKind = "tomorrow"
	ReminderUpcoming     ReminderKind = "upcoming"

	// Notify constants
	NotifierLockfileName   = "daybook-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.daybook-app.daybook"

	// Defaults for the scanner
	DefaultScanInterval     = 5 * time.Minute
	DefaultReminderHorizon  = 8 // days
	DefaultReminderLeadMin  = 30
	DefaultWeekStart        = "monday"
	DefaultTimezone         = "Local"
	DefaultSessionFileName  = "session"
	DefaultKeyringUser      = "database-connection"
	MaxLoginAttempts        = 5
	LoginLockoutDuration    = 5 * time.Minute
)
