package recurrence

import (
	"fmt"
	"time"

	"github.com/daybook-app/daybook/internal/constants"
	"github.com/daybook-app/daybook/internal/models"
)

// Occurrence is a single projected instance of a master activity within a
// window. It is derived, never persisted: completion comes from the master's
// completion state and the todo list is an independent copy with every item
// reset, so the UI can show a fresh checklist per calendar cell.
type Occurrence struct {
	MasterID     string
	Title        string
	CategoryID   string
	AssigneeID   string
	Time         string // HH:MM from the master, may be empty
	InstanceDate time.Time
	Completed    bool
	Todos        []models.Todo
}

// InstanceID returns the stable identity of this occurrence. It is
// reproducible for the same (master, date) pair across expansion calls, so
// callers can key lists and completion toggles by it.
func (o Occurrence) InstanceID() string {
	return fmt.Sprintf("%s_%d", o.MasterID, o.InstanceDate.UnixMilli())
}

// DateKey returns the ISO calendar-date key (YYYY-MM-DD) used to index
// per-occurrence completion state.
func DateKey(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// Expand projects a master activity onto concrete dated occurrences inside
// the closed interval [windowStart, windowEnd].
//
// A non-recurring master yields at most one occurrence, at its creation
// instant. A recurring master is walked one candidate date at a time from
// the later of its anchor and the window-aligned cursor, applying the
// frequency rule's validity predicate at each step. The walk stops past
// windowEnd, past the rule's end date, or after MaxExpansionSteps
// candidates, whichever comes first. Malformed rules yield no occurrences.
//
// Window containment is day-granular for recurring masters: the interval
// bounds are truncated to their calendar days and occurrences land at
// midnight of each matching day, so a mid-day windowStart instant still
// admits that day's occurrence. Callers wanting instant-precise bounds
// should pass day-aligned windows, as ResolveWindow produces.
//
// Expand is pure: it performs no I/O, never mutates master, and identical
// inputs produce identical output.
func Expand(master models.MasterActivity, windowStart, windowEnd time.Time) []Occurrence {
	if windowEnd.Before(windowStart) {
		return nil
	}

	if !master.Recurrence.IsRecurring() {
		created := master.Anchor(windowStart.Location())
		if created.Before(windowStart) || created.After(windowEnd) {
			return nil
		}
		return []Occurrence{makeOccurrence(master, created, master.Completed)}
	}

	if !validRule(master.Recurrence) {
		return nil
	}

	loc := windowStart.Location()
	anchorDay := startOfDay(master.Anchor(loc))
	wsDay := startOfDay(windowStart)
	weDay := startOfDay(windowEnd)

	var endDay time.Time
	hasEnd := master.Recurrence.EndDate != nil
	if hasEnd {
		endDay = startOfDay(time.UnixMilli(*master.Recurrence.EndDate).In(loc))
	}

	cursor := seekStart(master.Recurrence, anchorDay, wsDay)

	var out []Occurrence
	for steps := 0; steps < constants.MaxExpansionSteps; steps++ {
		if cursor.After(weDay) {
			break
		}
		if hasEnd && cursor.After(endDay) {
			break
		}

		if !cursor.Before(anchorDay) && !cursor.Before(wsDay) && matches(master.Recurrence, cursor) {
			completed := master.CompletedOccurrences[DateKey(cursor)]
			out = append(out, makeOccurrence(master, cursor, completed))
		}

		cursor = advance(master.Recurrence, cursor)
	}

	return out
}

// IsOccurrenceCompleted reports whether the occurrence of master on the
// given date is completed. Non-recurring masters use the flat Completed
// flag; recurring ones use the per-date completion set.
func IsOccurrenceCompleted(master models.MasterActivity, instanceDate time.Time) bool {
	if !master.Recurrence.IsRecurring() {
		return master.Completed
	}
	return master.CompletedOccurrences[DateKey(instanceDate)]
}

// SetOccurrenceCompletion returns a copy of master with the completion state
// of the occurrence on instanceDate set. Un-completing removes the key
// rather than storing false, keeping the map compact. Only meaningful for
// recurring masters; a non-recurring master is returned unchanged. The
// Completed/CompletedAt fields are never touched.
func SetOccurrenceCompletion(master models.MasterActivity, instanceDate time.Time, completed bool) models.MasterActivity {
	if !master.Recurrence.IsRecurring() {
		return master
	}

	occurrences := make(map[string]bool, len(master.CompletedOccurrences)+1)
	for k, v := range master.CompletedOccurrences {
		occurrences[k] = v
	}

	key := DateKey(instanceDate)
	if completed {
		occurrences[key] = true
	} else {
		delete(occurrences, key)
	}

	master.CompletedOccurrences = occurrences
	return master
}

// validRule reports whether a recurring rule carries the fields its type
// requires. Invalid rules expand to nothing rather than erroring, keeping
// downstream aggregation code total.
func validRule(r models.Recurrence) bool {
	switch r.Type {
	case constants.RecurrenceDaily:
		return true
	case constants.RecurrenceWeekly:
		return len(r.DaysOfWeek) > 0
	case constants.RecurrenceMonthly:
		return r.DayOfMonth >= 1 && r.DayOfMonth <= 31
	default:
		return false
	}
}

// matches applies the frequency rule's validity predicate to a candidate day.
func matches(r models.Recurrence, day time.Time) bool {
	switch r.Type {
	case constants.RecurrenceDaily:
		return true
	case constants.RecurrenceWeekly:
		for _, wd := range r.DaysOfWeek {
			if day.Weekday() == wd {
				return true
			}
		}
		return false
	case constants.RecurrenceMonthly:
		return day.Day() == r.DayOfMonth
	default:
		return false
	}
}

// seekStart fast-forwards the walk cursor to near the window instead of
// stepping day by day from a possibly distant anchor. Seeking only skips
// non-matching candidates; it never changes which dates are emitted.
func seekStart(r models.Recurrence, anchorDay, wsDay time.Time) time.Time {
	if !anchorDay.Before(wsDay) {
		return anchorDay
	}

	switch r.Type {
	case constants.RecurrenceDaily:
		return wsDay
	case constants.RecurrenceWeekly:
		// Start of the week containing the window start; the walk scans
		// forward a day at a time from there so every matching weekday in
		// the window is still discovered.
		start := wsDay.AddDate(0, 0, -int(wsDay.Weekday()))
		if start.Before(anchorDay) {
			return anchorDay
		}
		return start
	case constants.RecurrenceMonthly:
		// Day-of-month within the window start's month, correcting back to
		// the anchor if that lands before the series begins.
		candidate := time.Date(wsDay.Year(), wsDay.Month(), 1, 0, 0, 0, 0, wsDay.Location())
		if candidate.Before(anchorDay) {
			candidate = time.Date(anchorDay.Year(), anchorDay.Month(), 1, 0, 0, 0, 0, anchorDay.Location())
		}
		return monthCandidate(candidate, r.DayOfMonth)
	default:
		return wsDay
	}
}

// advance moves the cursor to the next candidate date. Daily and weekly
// advance one calendar day at a time so that multiple valid weekdays per
// week are all discovered; monthly jumps straight to the rule's day later in
// the current month if it has not passed yet, otherwise to that day in the
// next month, landing on the first of a month that lacks the day so the
// month is visited (and skipped) in a single step.
func advance(r models.Recurrence, cursor time.Time) time.Time {
	if r.Type != constants.RecurrenceMonthly {
		return cursor.AddDate(0, 0, 1)
	}
	first := time.Date(cursor.Year(), cursor.Month(), 1, 0, 0, 0, 0, cursor.Location())
	if cursor.Day() < r.DayOfMonth {
		if candidate := monthCandidate(first, r.DayOfMonth); candidate.After(cursor) {
			return candidate
		}
	}
	return monthCandidate(first.AddDate(0, 1, 0), r.DayOfMonth)
}

// monthCandidate returns dayOfMonth within firstOfMonth's month, or the
// first of that month when the month is too short (e.g. the 31st in
// February). The short-month placeholder never matches the predicate, so
// the month contributes no occurrence.
func monthCandidate(firstOfMonth time.Time, dayOfMonth int) time.Time {
	candidate := time.Date(firstOfMonth.Year(), firstOfMonth.Month(), dayOfMonth, 0, 0, 0, 0, firstOfMonth.Location())
	if candidate.Month() != firstOfMonth.Month() {
		return firstOfMonth
	}
	return candidate
}

func makeOccurrence(master models.MasterActivity, instanceDate time.Time, completed bool) Occurrence {
	return Occurrence{
		MasterID:     master.ID,
		Title:        master.Title,
		CategoryID:   master.CategoryID,
		AssigneeID:   master.AssigneeID,
		Time:         master.Time,
		InstanceDate: instanceDate,
		Completed:    completed,
		Todos:        master.CloneTodos(),
	}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
