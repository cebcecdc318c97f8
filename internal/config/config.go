package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/daybook-app/daybook/internal/constants"
)

// Config is the top-level application configuration. Store credentials are
// deliberately absent: a PostgreSQL DSN lives in the OS keyring and only
// the store kind/path is recorded here.
type Config struct {
	// Store selects the persistence backend: "json", "sqlite" or "postgres".
	Store string `yaml:"store"`

	// StorePath is the data file location for the json and sqlite backends.
	// Ignored for postgres.
	StorePath string `yaml:"store_path,omitempty"`

	// Timezone is the IANA timezone used for calendar math, or "Local".
	Timezone string `yaml:"timezone"`

	// WeekStart controls which weekday starts the week in calendar views.
	// Supported values: "monday" (default) and "sunday".
	WeekStart string `yaml:"week_start"`

	// NotificationsEnabled toggles the reminder scanner.
	NotificationsEnabled bool `yaml:"notifications"`

	// ReminderLeadMin is how many minutes before a timed activity the
	// starting-soon reminder fires.
	ReminderLeadMin int `yaml:"reminder_lead_min"`

	// ReminderHorizonDays is how far ahead the scanner looks.
	ReminderHorizonDays int `yaml:"reminder_horizon_days"`

	// ScanIntervalMin is the minutes between reminder scans.
	ScanIntervalMin int `yaml:"scan_interval_min"`

	// Debug enables verbose logging mirrored to stderr.
	Debug bool `yaml:"debug"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		Store:                "sqlite",
		Timezone:             constants.DefaultTimezone,
		WeekStart:            constants.DefaultWeekStart,
		NotificationsEnabled: true,
		ReminderLeadMin:      constants.DefaultReminderLeadMin,
		ReminderHorizonDays:  constants.DefaultReminderHorizon,
		ScanIntervalMin:      int(constants.DefaultScanInterval.Minutes()),
	}
}

// Normalize fills missing or invalid values with defaults so partially
// filled configs from older versions still behave.
func (c *Config) Normalize() {
	switch c.Store {
	case "json", "sqlite", "postgres":
	default:
		c.Store = "sqlite"
	}
	if c.Timezone == "" {
		c.Timezone = constants.DefaultTimezone
	}
	switch c.WeekStart {
	case "monday", "sunday":
	default:
		c.WeekStart = constants.DefaultWeekStart
	}
	if c.ReminderLeadMin <= 0 {
		c.ReminderLeadMin = constants.DefaultReminderLeadMin
	}
	if c.ReminderHorizonDays <= 0 {
		c.ReminderHorizonDays = constants.DefaultReminderHorizon
	}
	if c.ScanIntervalMin <= 0 {
		c.ScanIntervalMin = int(constants.DefaultScanInterval.Minutes())
	}
}

// Load reads configuration from a YAML file. A missing file is a first run:
// the default config is written with 0600 permissions and returned.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()

	return &cfg, nil
}

// Save writes the configuration atomically via a temp file and rename,
// with 0600 permissions on the result.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".daybook-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
