package ics

import (
	"fmt"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/daybook-app/daybook/internal/constants"
	"github.com/daybook-app/daybook/internal/models"
	"github.com/daybook-app/daybook/internal/recurrence"
)

// Export expands each master over [windowStart, windowEnd] and renders one
// VEVENT per occurrence. Occurrences keep their engine-assigned instance ID
// as the UID, so re-exports of overlapping windows produce identical UIDs
// for the same instance. Masters without an HH:MM time become all-day
// events; timed ones get a one hour duration.
func Export(activities []models.MasterActivity, windowStart, windowEnd time.Time, calendarName string) (string, error) {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//daybook//" + constants.Version + "//EN")
	if calendarName != "" {
		cal.SetXWRCalName(calendarName)
	}

	now := time.Now().UTC()
	for _, master := range activities {
		if master.DeletedAt != nil {
			continue
		}
		for _, occ := range recurrence.Expand(master, windowStart, windowEnd) {
			event := cal.AddEvent(occ.InstanceID())
			event.SetDtStampTime(now)
			event.SetSummary(occ.Title)
			if master.Notes != "" {
				event.SetDescription(master.Notes)
			}

			start, allDay, err := occurrenceStart(occ)
			if err != nil {
				return "", err
			}
			if allDay {
				event.SetAllDayStartAt(start)
				event.SetAllDayEndAt(start.AddDate(0, 0, 1))
			} else {
				event.SetStartAt(start)
				event.SetEndAt(start.Add(time.Hour))
			}

			if occ.Completed {
				event.SetStatus(ical.ObjectStatusCompleted)
			} else {
				event.SetStatus(ical.ObjectStatusConfirmed)
			}
		}
	}

	return cal.Serialize(), nil
}

// occurrenceStart resolves the concrete start instant of an occurrence.
// The all-day flag is true when the master carries no time of day.
func occurrenceStart(occ recurrence.Occurrence) (time.Time, bool, error) {
	day := occ.InstanceDate
	if occ.Time == "" {
		return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location()), true, nil
	}
	at, err := time.ParseInLocation(constants.TimeFormat, occ.Time, day.Location())
	if err != nil {
		return time.Time{}, false, fmt.Errorf("invalid activity time %q: %w", occ.Time, err)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), at.Hour(), at.Minute(), 0, 0, day.Location()), false, nil
}
