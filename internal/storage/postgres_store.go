package storage

import (
	"database/sql"
	"fmt"
	"net/url"
	"time"

	_ "github.com/lib/pq"

	"github.com/daybook-app/daybook/internal/constants"
	"github.com/daybook-app/daybook/internal/models"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS settings (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	week_start TEXT NOT NULL,
	timezone TEXT NOT NULL,
	notifications_enabled BOOLEAN NOT NULL,
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
	created_at BIGINT NOT NULL,
	recurrence_type TEXT NOT NULL DEFAULT 'none',
	recurrence_weekdays TEXT NOT NULL DEFAULT '',
	recurrence_day_of_month INTEGER NOT NULL DEFAULT 0,
	recurrence_end_date BIGINT,
	completed_occurrences TEXT NOT NULL DEFAULT '',
	completed BOOLEAN NOT NULL DEFAULT FALSE,
	completed_at BIGINT,
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

type PostgresStore struct {
	connStr string
	db      *sql.DB
}

func NewPostgresStore(connStr string) *PostgresStore {
	return &PostgresStore{
		connStr: connStr,
	}
}

// HasEmbeddedCredentials reports whether a PostgreSQL connection string
// carries a password inline. Credentials belong in the OS keyring,
// environment, or .pgpass, never on the command line.
func HasEmbeddedCredentials(connStr string) bool {
	u, err := url.Parse(connStr)
	if err != nil {
		return false
	}
	if u.User == nil {
		return false
	}
	_, hasPassword := u.User.Password()
	return hasPassword
}

func (s *PostgresStore) Init() error {
	db, err := sql.Open("postgres", s.connStr)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if err := s.db.Ping(); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if _, err := s.db.Exec(postgresSchema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	if _, err := s.GetSettings(); err != nil {
		if err := s.SaveSettings(DefaultSettings()); err != nil {
			return fmt.Errorf("failed to save default settings: %w", err)
		}
	}

	return nil
}

func (s *PostgresStore) Load() error {
	if s.db != nil {
		return nil
	}

	db, err := sql.Open("postgres", s.connStr)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if err := s.db.Ping(); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	return nil
}

func (s *PostgresStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *PostgresStore) GetSettings() (models.Settings, error) {
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

func (s *PostgresStore) SaveSettings(settings models.Settings) error {
	_, err := s.db.Exec(`
		INSERT INTO settings (id, week_start, timezone, notifications_enabled,
		                      reminder_lead_min, reminder_horizon_days, scan_interval_min)
		VALUES (1, $1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			week_start = EXCLUDED.week_start,
			timezone = EXCLUDED.timezone,
			notifications_enabled = EXCLUDED.notifications_enabled,
			reminder_lead_min = EXCLUDED.reminder_lead_min,
			reminder_horizon_days = EXCLUDED.reminder_horizon_days,
			scan_interval_min = EXCLUDED.scan_interval_min`,
		settings.WeekStart, settings.Timezone, settings.NotificationsEnabled,
		settings.ReminderLeadMin, settings.ReminderHorizonDays, settings.ScanIntervalMin,
	)
	return err
}

func (s *PostgresStore) AddActivity(act models.MasterActivity) error {
	return s.upsertActivity(act)
}

func (s *PostgresStore) upsertActivity(act models.MasterActivity) error {
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
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			category_id = EXCLUDED.category_id,
			assignee_id = EXCLUDED.assignee_id,
			notes = EXCLUDED.notes,
			time = EXCLUDED.time,
			todos = EXCLUDED.todos,
			created_at = EXCLUDED.created_at,
			recurrence_type = EXCLUDED.recurrence_type,
			recurrence_weekdays = EXCLUDED.recurrence_weekdays,
			recurrence_day_of_month = EXCLUDED.recurrence_day_of_month,
			recurrence_end_date = EXCLUDED.recurrence_end_date,
			completed_occurrences = EXCLUDED.completed_occurrences,
			completed = EXCLUDED.completed,
			completed_at = EXCLUDED.completed_at,
			status = EXCLUDED.status,
			deleted_at = EXCLUDED.deleted_at`,
		act.ID, act.Title, act.CategoryID, act.AssigneeID, act.Notes, act.Time, todos,
		act.CreatedAt, string(recurrenceTypeOrNone(act.Recurrence.Type)), weekdays,
		act.Recurrence.DayOfMonth, endDate,
		occurrences, act.Completed, completedAt, string(status), deletedAt,
	)
	return err
}

func (s *PostgresStore) GetActivity(id string) (models.MasterActivity, error) {
	row := s.db.QueryRow(`SELECT `+activityColumns+` FROM activities WHERE id = $1 AND deleted_at IS NULL`, id)
	act, err := scanActivity(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.MasterActivity{}, fmt.Errorf("activity not found: %s", id)
		}
		return models.MasterActivity{}, err
	}
	return act, nil
}

func (s *PostgresStore) GetAllActivities() ([]models.MasterActivity, error) {
	return s.queryActivities(`SELECT ` + activityColumns + ` FROM activities WHERE deleted_at IS NULL`)
}

func (s *PostgresStore) GetAllActivitiesIncludingDeleted() ([]models.MasterActivity, error) {
	return s.queryActivities(`SELECT ` + activityColumns + ` FROM activities`)
}

func (s *PostgresStore) queryActivities(query string) ([]models.MasterActivity, error) {
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

func (s *PostgresStore) UpdateActivity(act models.MasterActivity) error {
	var exists int
	if err := s.db.QueryRow(`SELECT COUNT(1) FROM activities WHERE id = $1`, act.ID).Scan(&exists); err != nil {
		return err
	}
	if exists == 0 {
		return fmt.Errorf("activity not found: %s", act.ID)
	}
	return s.upsertActivity(act)
}

func (s *PostgresStore) DeleteActivity(id string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.Exec(`UPDATE activities SET deleted_at = $1 WHERE id = $2 AND deleted_at IS NULL`, now, id)
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

func (s *PostgresStore) RestoreActivity(id string) error {
	res, err := s.db.Exec(`UPDATE activities SET deleted_at = NULL WHERE id = $1 AND deleted_at IS NOT NULL`, id)
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

func (s *PostgresStore) AddCategory(cat models.Category) error {
	_, err := s.db.Exec(`
		INSERT INTO categories (id, name, icon) VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, icon = EXCLUDED.icon`,
		cat.ID, cat.Name, cat.Icon,
	)
	return err
}

func (s *PostgresStore) GetCategory(id string) (models.Category, error) {
	var cat models.Category
	err := s.db.QueryRow(`SELECT id, name, icon FROM categories WHERE id = $1`, id).
		Scan(&cat.ID, &cat.Name, &cat.Icon)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Category{}, fmt.Errorf("category not found: %s", id)
		}
		return models.Category{}, err
	}
	return cat, nil
}

func (s *PostgresStore) GetAllCategories() ([]models.Category, error) {
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

func (s *PostgresStore) UpdateCategory(cat models.Category) error {
	res, err := s.db.Exec(`UPDATE categories SET name = $1, icon = $2 WHERE id = $3`, cat.Name, cat.Icon, cat.ID)
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

func (s *PostgresStore) DeleteCategory(id string) error {
	res, err := s.db.Exec(`DELETE FROM categories WHERE id = $1`, id)
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

func (s *PostgresStore) AddAssignee(a models.Assignee) error {
	_, err := s.db.Exec(`
		INSERT INTO assignees (id, name, username) VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, username = EXCLUDED.username`,
		a.ID, a.Name, a.Username,
	)
	return err
}

func (s *PostgresStore) GetAssignee(id string) (models.Assignee, error) {
	var a models.Assignee
	err := s.db.QueryRow(`SELECT id, name, username FROM assignees WHERE id = $1`, id).
		Scan(&a.ID, &a.Name, &a.Username)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Assignee{}, fmt.Errorf("assignee not found: %s", id)
		}
		return models.Assignee{}, err
	}
	return a, nil
}

func (s *PostgresStore) GetAssigneeByUsername(username string) (models.Assignee, error) {
	var a models.Assignee
	err := s.db.QueryRow(`SELECT id, name, username FROM assignees WHERE username = $1`, username).
		Scan(&a.ID, &a.Name, &a.Username)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Assignee{}, fmt.Errorf("assignee not found: %s", username)
		}
		return models.Assignee{}, err
	}
	return a, nil
}

func (s *PostgresStore) GetAllAssignees() ([]models.Assignee, error) {
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

func (s *PostgresStore) UpdateAssignee(a models.Assignee) error {
	res, err := s.db.Exec(`UPDATE assignees SET name = $1, username = $2 WHERE id = $3`, a.Name, a.Username, a.ID)
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

func (s *PostgresStore) DeleteAssignee(id string) error {
	res, err := s.db.Exec(`DELETE FROM assignees WHERE id = $1`, id)
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

func (s *PostgresStore) GetConfigPath() string {
	return s.connStr
}
