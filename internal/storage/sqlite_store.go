package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/daybook-app/daybook/internal/constants"
	"github.com/daybook-app/daybook/internal/models"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS settings (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	week_start TEXT NOT NULL,
	timezone TEXT NOT NULL,
	notifications_enabled INTEGER NOT NULL,
	reminder_lead_min INTEGER NOT NULL,
	reminder_horizon_days INTEGER NOT NULL,
	scan_interval_min INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS activities (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	category_id TEXT NOT NULL DEFAULT '',
	assignee_id TEXT NOT NULL DEFAULT '',
	notes TEXT NOT NULL DEFAULT '',
	time TEXT NOT NULL DEFAULT '',
	todos TEXT NOT NULL DEFAULT '',
	created_at INTEGER NOT NULL,
	recurrence_type TEXT NOT NULL DEFAULT 'none',
	recurrence_weekdays TEXT NOT NULL DEFAULT '',
	recurrence_day_of_month INTEGER NOT NULL DEFAULT 0,
	recurrence_end_date INTEGER,
	completed_occurrences TEXT NOT NULL DEFAULT '',
	completed INTEGER NOT NULL DEFAULT 0,
	completed_at INTEGER,
	status TEXT NOT NULL DEFAULT 'todo',
	deleted_at TEXT
);

CREATE TABLE IF NOT EXISTS categories (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	icon TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS assignees (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	username TEXT NOT NULL UNIQUE
);
`

type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{
		path: path,
	}
}

func (s *SQLiteStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if _, err := s.db.Exec(sqliteSchema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	// Initialize default settings if not present
	if _, err := s.GetSettings(); err != nil {
		if err := s.SaveSettings(DefaultSettings()); err != nil {
			return fmt.Errorf("failed to save default settings: %w", err)
		}
	}

	return nil
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'daybook init' first")
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) GetSettings() (models.Settings, error) {
	row := s.db.QueryRow(`
		SELECT week_start, timezone, notifications_enabled, reminder_lead_min,
		       reminder_horizon_days, scan_interval_min
		FROM settings WHERE id = 1`)

	var settings models.Settings
	err := row.Scan(
		&settings.WeekStart, &settings.Timezone, &settings.NotificationsEnabled,
		&settings.ReminderLeadMin, &settings.ReminderHorizonDays, &settings.ScanIntervalMin,
	)
	if err != nil {
		return models.Settings{}, err
	}

	return settings, nil
}

func (s *SQLiteStore) SaveSettings(settings models.Settings) error {
	_, err := s.db.Exec(`
		INSERT INTO settings (id, week_start, timezone, notifications_enabled,
		                      reminder_lead_min, reminder_horizon_days, scan_interval_min)
		VALUES (1, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			week_start = excluded.week_start,
			timezone = excluded.timezone,
			notifications_enabled = excluded.notifications_enabled,
			reminder_lead_min = excluded.reminder_lead_min,
			reminder_horizon_days = excluded.reminder_horizon_days,
			scan_interval_min = excluded.scan_interval_min`,
		settings.WeekStart, settings.Timezone, settings.NotificationsEnabled,
		settings.ReminderLeadMin, settings.ReminderHorizonDays, settings.ScanIntervalMin,
	)
	return err
}

func (s *SQLiteStore) AddActivity(act models.MasterActivity) error {
	return s.upsertActivity(act)
}

func (s *SQLiteStore) upsertActivity(act models.MasterActivity) error {
	todos, weekdays, occurrences, err := encodeActivityColumns(act)
	if err != nil {
		return err
	}

	var endDate, completedAt sql.NullInt64
	if act.Recurrence.EndDate != nil {
		endDate = sql.NullInt64{Int64: *act.Recurrence.EndDate, Valid: true}
	}
	if act.CompletedAt != nil {
		completedAt = sql.NullInt64{Int64: *act.CompletedAt, Valid: true}
	}
	var deletedAt sql.NullString
	if act.DeletedAt != nil {
		deletedAt = sql.NullString{String: *act.DeletedAt, Valid: true}
	}

	status := act.Status
	if status == "" {
		status = constants.StatusTodo
	}

	_, err = s.db.Exec(`
		INSERT INTO activities (id, title, category_id, assignee_id, notes, time, todos,
		                        created_at, recurrence_type, recurrence_weekdays,
		                        recurrence_day_of_month, recurrence_end_date,
		                        completed_occurrences, completed, completed_at, status, deleted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			category_id = excluded.category_id,
			assignee_id = excluded.assignee_id,
			notes = excluded.notes,
			time = excluded.time,
			todos = excluded.todos,
			created_at = excluded.created_at,
			recurrence_type = excluded.recurrence_type,
			recurrence_weekdays = excluded.recurrence_weekdays,
			recurrence_day_of_month = excluded.recurrence_day_of_month,
			recurrence_end_date = excluded.recurrence_end_date,
			completed_occurrences = excluded.completed_occurrences,
			completed = excluded.completed,
			completed_at = excluded.completed_at,
			status = excluded.status,
			deleted_at = excluded.deleted_at`,
		act.ID, act.Title, act.CategoryID, act.AssigneeID, act.Notes, act.Time, todos,
		act.CreatedAt, string(recurrenceTypeOrNone(act.Recurrence.Type)), weekdays,
		act.Recurrence.DayOfMonth, endDate,
		occurrences, act.Completed, completedAt, string(status), deletedAt,
	)
	return err
}

const activityColumns = `id, title, category_id, assignee_id, notes, time, todos,
	created_at, recurrence_type, recurrence_weekdays, recurrence_day_of_month,
	recurrence_end_date, completed_occurrences, completed, completed_at, status, deleted_at`

func (s *SQLiteStore) GetActivity(id string) (models.MasterActivity, error) {
	row := s.db.QueryRow(`SELECT `+activityColumns+` FROM activities WHERE id = ? AND deleted_at IS NULL`, id)
	act, err := scanActivity(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.MasterActivity{}, fmt.Errorf("activity not found: %s", id)
		}
		return models.MasterActivity{}, err
	}
	return act, nil
}

func (s *SQLiteStore) GetAllActivities() ([]models.MasterActivity, error) {
	return s.queryActivities(`SELECT ` + activityColumns + ` FROM activities WHERE deleted_at IS NULL`)
}

func (s *SQLiteStore) GetAllActivitiesIncludingDeleted() ([]models.MasterActivity, error) {
	return s.queryActivities(`SELECT ` + activityColumns + ` FROM activities`)
}

func (s *SQLiteStore) queryActivities(query string) ([]models.MasterActivity, error) {
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var activities []models.MasterActivity
	for rows.Next() {
		act, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		activities = append(activities, act)
	}

	return activities, rows.Err()
}

func (s *SQLiteStore) UpdateActivity(act models.MasterActivity) error {
	var exists int
	if err := s.db.QueryRow(`SELECT COUNT(1) FROM activities WHERE id = ?`, act.ID).Scan(&exists); err != nil {
		return err
	}
	if exists == 0 {
		return fmt.Errorf("activity not found: %s", act.ID)
	}
	return s.upsertActivity(act)
}

func (s *SQLiteStore) DeleteActivity(id string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.Exec(`UPDATE activities SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL`, now, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("activity not found: %s", id)
	}
	return nil
}

func (s *SQLiteStore) RestoreActivity(id string) error {
	res, err := s.db.Exec(`UPDATE activities SET deleted_at = NULL WHERE id = ? AND deleted_at IS NOT NULL`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("cannot restore an activity that is not deleted: %s", id)
	}
	return nil
}

func (s *SQLiteStore) AddCategory(cat models.Category) error {
	_, err := s.db.Exec(`
		INSERT INTO categories (id, name, icon) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, icon = excluded.icon`,
		cat.ID, cat.Name, cat.Icon,
	)
	return err
}

func (s *SQLiteStore) GetCategory(id string) (models.Category, error) {
	var cat models.Category
	err := s.db.QueryRow(`SELECT id, name, icon FROM categories WHERE id = ?`, id).
		Scan(&cat.ID, &cat.Name, &cat.Icon)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Category{}, fmt.Errorf("category not found: %s", id)
		}
		return models.Category{}, err
	}
	return cat, nil
}

func (s *SQLiteStore) GetAllCategories() ([]models.Category, error) {
	rows, err := s.db.Query(`SELECT id, name, icon FROM categories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var cat models.Category
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.Icon); err != nil {
			return nil, err
		}
		categories = append(categories, cat)
	}

	return categories, rows.Err()
}

func (s *SQLiteStore) UpdateCategory(cat models.Category) error {
	res, err := s.db.Exec(`UPDATE categories SET name = ?, icon = ? WHERE id = ?`, cat.Name, cat.Icon, cat.ID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("category not found: %s", cat.ID)
	}
	return nil
}

func (s *SQLiteStore) DeleteCategory(id string) error {
	res, err := s.db.Exec(`DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("category not found: %s", id)
	}
	return nil
}

func (s *SQLiteStore) AddAssignee(a models.Assignee) error {
	_, err := s.db.Exec(`
		INSERT INTO assignees (id, name, username) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, username = excluded.username`,
		a.ID, a.Name, a.Username,
	)
	return err
}

func (s *SQLiteStore) GetAssignee(id string) (models.Assignee, error) {
	var a models.Assignee
	err := s.db.QueryRow(`SELECT id, name, username FROM assignees WHERE id = ?`, id).
		Scan(&a.ID, &a.Name, &a.Username)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Assignee{}, fmt.Errorf("assignee not found: %s", id)
		}
		return models.Assignee{}, err
	}
	return a, nil
}

func (s *SQLiteStore) GetAssigneeByUsername(username string) (models.Assignee, error) {
	var a models.Assignee
	err := s.db.QueryRow(`SELECT id, name, username FROM assignees WHERE username = ?`, username).
		Scan(&a.ID, &a.Name, &a.Username)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Assignee{}, fmt.Errorf("assignee not found: %s", username)
		}
		return models.Assignee{}, err
	}
	return a, nil
}

func (s *SQLiteStore) GetAllAssignees() ([]models.Assignee, error) {
	rows, err := s.db.Query(`SELECT id, name, username FROM assignees ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assignees []models.Assignee
	for rows.Next() {
		var a models.Assignee
		if err := rows.Scan(&a.ID, &a.Name, &a.Username); err != nil {
			return nil, err
		}
		assignees = append(assignees, a)
	}

	return assignees, rows.Err()
}

func (s *SQLiteStore) UpdateAssignee(a models.Assignee) error {
	res, err := s.db.Exec(`UPDATE assignees SET name = ?, username = ? WHERE id = ?`, a.Name, a.Username, a.ID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("assignee not found: %s", a.ID)
	}
	return nil
}

func (s *SQLiteStore) DeleteAssignee(id string) error {
	res, err := s.db.Exec(`DELETE FROM assignees WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("assignee not found: %s", id)
	}
	return nil
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}
