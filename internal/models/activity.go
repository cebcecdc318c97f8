package models

import (
	"fmt"
	"time"

	"github.com/daybook-app/daybook/internal/constants"
)

// Todo is a single checklist item attached to an activity.
type Todo struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// Recurrence describes how an activity repeats across the calendar.
// DaysOfWeek is only meaningful for weekly, DayOfMonth for monthly.
// EndDate (epoch millis, inclusive) bounds every recurring variant.
type Recurrence struct {
	Type       constants.RecurrenceType `json:"type"`
	DaysOfWeek []time.Weekday           `json:"days_of_week,omitempty"`
	DayOfMonth int                      `json:"day_of_month,omitempty"`
	EndDate    *int64                   `json:"end_date,omitempty"`
}

// IsRecurring reports whether the rule describes a repeating series.
// An absent/unknown type counts as non-recurring.
func (r Recurrence) IsRecurring() bool {
	switch r.Type {
	case constants.RecurrenceDaily, constants.RecurrenceWeekly, constants.RecurrenceMonthly:
		return true
	default:
		return false
	}
}

// MasterActivity is the persisted record a recurrence series is projected
// from. CreatedAt anchors the series: it is the first possible occurrence
// date and the weekday/day-of-month template for weekly/monthly rules.
//
// Completion is split by recurrence kind: a non-recurring activity uses
// Completed/CompletedAt, a recurring one uses CompletedOccurrences keyed by
// ISO date (YYYY-MM-DD). The two are never consulted together.
type MasterActivity struct {
	ID                   string                   `json:"id"`
	Title                string                   `json:"title"`
	CategoryID           string                   `json:"category_id,omitempty"`
	AssigneeID           string                   `json:"assignee_id,omitempty"`
	Notes                string                   `json:"notes,omitempty"`
	Time                 string                   `json:"time,omitempty"` // HH:MM local time-of-day
	Todos                []Todo                   `json:"todos,omitempty"`
	CreatedAt            int64                    `json:"created_at"` // epoch millis
	Recurrence           Recurrence               `json:"recurrence"`
	CompletedOccurrences map[string]bool          `json:"completed_occurrences,omitempty"`
	Completed            bool                     `json:"completed"`
	CompletedAt          *int64                   `json:"completed_at,omitempty"` // epoch millis
	Status               constants.ActivityStatus `json:"status"`
	DeletedAt            *string                  `json:"deleted_at,omitempty"` // RFC3339 timestamp
}

// Anchor returns the series anchor instant in the given location.
func (a MasterActivity) Anchor(loc *time.Location) time.Time {
	return time.UnixMilli(a.CreatedAt).In(loc)
}

func (a *MasterActivity) Validate() error {
	if a.Title == "" {
		return fmt.Errorf("activity title cannot be empty")
	}

	if a.Time != "" {
		if _, err := time.Parse(constants.TimeFormat, a.Time); err != nil {
			return fmt.Errorf("invalid time format (expected HH:MM): %w", err)
		}
	}

	switch a.Recurrence.Type {
	case "", constants.RecurrenceNone, constants.RecurrenceDaily:
	case constants.RecurrenceWeekly:
		if len(a.Recurrence.DaysOfWeek) == 0 {
			return fmt.Errorf("weekdays must be specified for weekly recurrence")
		}
		for _, wd := range a.Recurrence.DaysOfWeek {
			if wd < time.Sunday || wd > time.Saturday {
				return fmt.Errorf("invalid weekday %d for weekly recurrence", wd)
			}
		}
	case constants.RecurrenceMonthly:
		if a.Recurrence.DayOfMonth < 1 || a.Recurrence.DayOfMonth > 31 {
			return fmt.Errorf("day of month must be between 1 and 31 for monthly recurrence")
		}
	default:
		return fmt.Errorf("unknown recurrence type: %s", a.Recurrence.Type)
	}

	if a.Recurrence.EndDate != nil && !a.Recurrence.IsRecurring() {
		return fmt.Errorf("end date is only valid for recurring activities")
	}
	if a.Recurrence.EndDate != nil && *a.Recurrence.EndDate < a.CreatedAt {
		return fmt.Errorf("end date cannot be before the activity start")
	}

	switch a.Status {
	case "", constants.StatusTodo, constants.StatusDoing, constants.StatusDone:
	default:
		return fmt.Errorf("unknown activity status: %s", a.Status)
	}

	return nil
}

// CloneTodos returns an independent copy of the activity's checklist with
// every item marked not completed. Occurrence projections hand these to the
// UI; per-occurrence todo state is never persisted.
func (a MasterActivity) CloneTodos() []Todo {
	if len(a.Todos) == 0 {
		return nil
	}
	todos := make([]Todo, len(a.Todos))
	copy(todos, a.Todos)
	for i := range todos {
		todos[i].Completed = false
	}
	return todos
}
