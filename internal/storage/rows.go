package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/daybook-app/daybook/internal/constants"
	"github.com/daybook-app/daybook/internal/models"
)

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func recurrenceTypeOrNone(t constants.RecurrenceType) constants.RecurrenceType {
	if t == "" {
		return constants.RecurrenceNone
	}
	return t
}

// encodeActivityColumns serializes list- and map-valued activity fields into
// the JSON text columns both SQL backends share. Empty values encode as ""
// so the columns stay readable.
func encodeActivityColumns(act models.MasterActivity) (todos, weekdays, occurrences string, err error) {
	if len(act.Todos) > 0 {
		data, err := json.Marshal(act.Todos)
		if err != nil {
			return "", "", "", fmt.Errorf("failed to encode todos: %w", err)
		}
		todos = string(data)
	}

	if len(act.Recurrence.DaysOfWeek) > 0 {
		days := make([]int, len(act.Recurrence.DaysOfWeek))
		for i, wd := range act.Recurrence.DaysOfWeek {
			days[i] = int(wd)
		}
		data, err := json.Marshal(days)
		if err != nil {
			return "", "", "", fmt.Errorf("failed to encode weekdays: %w", err)
		}
		weekdays = string(data)
	}

	if len(act.CompletedOccurrences) > 0 {
		data, err := json.Marshal(act.CompletedOccurrences)
		if err != nil {
			return "", "", "", fmt.Errorf("failed to encode completed occurrences: %w", err)
		}
		occurrences = string(data)
	}

	return todos, weekdays, occurrences, nil
}

func scanActivity(row rowScanner) (models.MasterActivity, error) {
	var act models.MasterActivity
	var todos, recType, recWeekdays, occurrences, status string
	var endDate, completedAt sql.NullInt64
	var deletedAt sql.NullString

	err := row.Scan(
		&act.ID, &act.Title, &act.CategoryID, &act.AssigneeID, &act.Notes, &act.Time, &todos,
		&act.CreatedAt, &recType, &recWeekdays, &act.Recurrence.DayOfMonth,
		&endDate, &occurrences, &act.Completed, &completedAt, &status, &deletedAt,
	)
	if err != nil {
		return models.MasterActivity{}, err
	}

	act.Recurrence.Type = constants.RecurrenceType(recType)
	act.Status = constants.ActivityStatus(status)

	if endDate.Valid {
		act.Recurrence.EndDate = &endDate.Int64
	}
	if completedAt.Valid {
		act.CompletedAt = &completedAt.Int64
	}
	if deletedAt.Valid {
		act.DeletedAt = &deletedAt.String
	}

	if todos != "" {
		if err := json.Unmarshal([]byte(todos), &act.Todos); err != nil {
			return models.MasterActivity{}, fmt.Errorf("failed to decode todos: %w", err)
		}
	}
	if recWeekdays != "" {
		var days []int
		if err := json.Unmarshal([]byte(recWeekdays), &days); err != nil {
			return models.MasterActivity{}, fmt.Errorf("failed to decode weekdays: %w", err)
		}
		for _, d := range days {
			act.Recurrence.DaysOfWeek = append(act.Recurrence.DaysOfWeek, time.Weekday(d))
		}
	}
	if occurrences != "" {
		if err := json.Unmarshal([]byte(occurrences), &act.CompletedOccurrences); err != nil {
			return models.MasterActivity{}, fmt.Errorf("failed to decode completed occurrences: %w", err)
		}
	}

	return act, nil
}
