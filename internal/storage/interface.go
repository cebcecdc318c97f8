package storage

import "github.com/daybook-app/daybook/internal/models"

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Activities
	AddActivity(models.MasterActivity) error
	GetActivity(id string) (models.MasterActivity, error)
	GetAllActivities() ([]models.MasterActivity, error)
	GetAllActivitiesIncludingDeleted() ([]models.MasterActivity, error)
	UpdateActivity(models.MasterActivity) error
	DeleteActivity(id string) error
	RestoreActivity(id string) error

	// Categories
	AddCategory(models.Category) error
	GetCategory(id string) (models.Category, error)
	GetAllCategories() ([]models.Category, error)
	UpdateCategory(models.Category) error
	DeleteCategory(id string) error

	// Assignees
	AddAssignee(models.Assignee) error
	GetAssignee(id string) (models.Assignee, error)
	GetAssigneeByUsername(username string) (models.Assignee, error)
	GetAllAssignees() ([]models.Assignee, error)
	UpdateAssignee(models.Assignee) error
	DeleteAssignee(id string) error

	// Utils
	GetConfigPath() string
}

// DefaultSettings returns the settings a freshly initialized store carries.
func DefaultSettings() models.Settings {
	return models.Settings{
		WeekStart:            "monday",
		Timezone:             "Local",
		NotificationsEnabled: true,
		ReminderLeadMin:      30,
		ReminderHorizonDays:  8,
		ScanIntervalMin:      5,
	}
}
