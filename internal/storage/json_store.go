package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/daybook-app/daybook/internal/models"
)

type Store struct {
	Version    int                              `json:"version"`
	Settings   models.Settings                  `json:"settings"`
	Activities map[string]models.MasterActivity `json:"activities"`
	Categories map[string]models.Category       `json:"categories"`
	Assignees  map[string]models.Assignee       `json:"assignees"`
}

type JSONStore struct {
	path  string
	store *Store
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.store = &Store{
		Version:    1,
		Settings:   DefaultSettings(),
		Activities: make(map[string]models.MasterActivity),
		Categories: make(map[string]models.Category),
		Assignees:  make(map[string]models.Assignee),
	}

	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'daybook init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.store = &Store{}
	if err := json.Unmarshal(data, s.store); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}

	// Ensure maps are initialized
	if s.store.Activities == nil {
		s.store.Activities = make(map[string]models.MasterActivity)
	}
	if s.store.Categories == nil {
		s.store.Categories = make(map[string]models.Category)
	}
	if s.store.Assignees == nil {
		s.store.Assignees = make(map[string]models.Assignee)
	}

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) GetSettings() (models.Settings, error) {
	if s.store == nil {
		return models.Settings{}, fmt.Errorf("storage not loaded")
	}
	return s.store.Settings, nil
}

func (s *JSONStore) SaveSettings(settings models.Settings) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.store.Settings = settings
	return s.save()
}

func (s *JSONStore) AddActivity(act models.MasterActivity) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	s.store.Activities[act.ID] = act
	return s.save()
}

func (s *JSONStore) GetActivity(id string) (models.MasterActivity, error) {
	if s.store == nil {
		return models.MasterActivity{}, fmt.Errorf("storage not loaded")
	}

	act, ok := s.store.Activities[id]
	if !ok || act.DeletedAt != nil {
		return models.MasterActivity{}, fmt.Errorf("activity not found: %s", id)
	}

	return act, nil
}

func (s *JSONStore) GetAllActivities() ([]models.MasterActivity, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	activities := make([]models.MasterActivity, 0, len(s.store.Activities))
	for _, act := range s.store.Activities {
		if act.DeletedAt == nil {
			activities = append(activities, act)
		}
	}

	return activities, nil
}

func (s *JSONStore) GetAllActivitiesIncludingDeleted() ([]models.MasterActivity, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	activities := make([]models.MasterActivity, 0, len(s.store.Activities))
	for _, act := range s.store.Activities {
		activities = append(activities, act)
	}

	return activities, nil
}

func (s *JSONStore) UpdateActivity(act models.MasterActivity) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	if _, ok := s.store.Activities[act.ID]; !ok {
		return fmt.Errorf("activity not found: %s", act.ID)
	}

	// Last write wins on concurrent updates to the same record
	s.store.Activities[act.ID] = act
	return s.save()
}

func (s *JSONStore) DeleteActivity(id string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	act, ok := s.store.Activities[id]
	if !ok {
		return fmt.Errorf("activity not found: %s", id)
	}

	// Soft delete: set deleted_at timestamp
	now := time.Now().UTC().Format(time.RFC3339)
	act.DeletedAt = &now
	s.store.Activities[id] = act
	return s.save()
}

func (s *JSONStore) RestoreActivity(id string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	act, ok := s.store.Activities[id]
	if !ok {
		return fmt.Errorf("activity not found: %s", id)
	}

	if act.DeletedAt == nil {
		return fmt.Errorf("cannot restore an activity that is not deleted: %s", id)
	}

	act.DeletedAt = nil
	s.store.Activities[id] = act
	return s.save()
}

func (s *JSONStore) AddCategory(cat models.Category) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	s.store.Categories[cat.ID] = cat
	return s.save()
}

func (s *JSONStore) GetCategory(id string) (models.Category, error) {
	if s.store == nil {
		return models.Category{}, fmt.Errorf("storage not loaded")
	}

	cat, ok := s.store.Categories[id]
	if !ok {
		return models.Category{}, fmt.Errorf("category not found: %s", id)
	}

	return cat, nil
}

func (s *JSONStore) GetAllCategories() ([]models.Category, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	categories := make([]models.Category, 0, len(s.store.Categories))
	for _, cat := range s.store.Categories {
		categories = append(categories, cat)
	}

	return categories, nil
}

func (s *JSONStore) UpdateCategory(cat models.Category) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	if _, ok := s.store.Categories[cat.ID]; !ok {
		return fmt.Errorf("category not found: %s", cat.ID)
	}

	s.store.Categories[cat.ID] = cat
	return s.save()
}

func (s *JSONStore) DeleteCategory(id string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	if _, ok := s.store.Categories[id]; !ok {
		return fmt.Errorf("category not found: %s", id)
	}

	delete(s.store.Categories, id)
	return s.save()
}

func (s *JSONStore) AddAssignee(a models.Assignee) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	s.store.Assignees[a.ID] = a
	return s.save()
}

func (s *JSONStore) GetAssignee(id string) (models.Assignee, error) {
	if s.store == nil {
		return models.Assignee{}, fmt.Errorf("storage not loaded")
	}

	a, ok := s.store.Assignees[id]
	if !ok {
		return models.Assignee{}, fmt.Errorf("assignee not found: %s", id)
	}

	return a, nil
}

func (s *JSONStore) GetAssigneeByUsername(username string) (models.Assignee, error) {
	if s.store == nil {
		return models.Assignee{}, fmt.Errorf("storage not loaded")
	}

	for _, a := range s.store.Assignees {
		if a.Username == username {
			return a, nil
		}
	}

	return models.Assignee{}, fmt.Errorf("assignee not found: %s", username)
}

func (s *JSONStore) GetAllAssignees() ([]models.Assignee, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	assignees := make([]models.Assignee, 0, len(s.store.Assignees))
	for _, a := range s.store.Assignees {
		assignees = append(assignees, a)
	}

	return assignees, nil
}

func (s *JSONStore) UpdateAssignee(a models.Assignee) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	if _, ok := s.store.Assignees[a.ID]; !ok {
		return fmt.Errorf("assignee not found: %s", a.ID)
	}

	s.store.Assignees[a.ID] = a
	return s.save()
}

func (s *JSONStore) DeleteAssignee(id string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	if _, ok := s.store.Assignees[id]; !ok {
		return fmt.Errorf("assignee not found: %s", id)
	}

	delete(s.store.Assignees, id)
	return s.save()
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
