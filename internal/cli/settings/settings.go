package settings

import (
	"fmt"

	"github.com/daybook-app/daybook/internal/cli"
	"github.com/daybook-app/daybook/internal/errors"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	WeekStart            *string `help:"First day of the week (monday|sunday)."`
	Timezone             *string `help:"IANA timezone name, or 'Local'."`
	NotificationsEnabled *bool   `help:"Enable or disable reminder notifications."`
	ReminderLeadMin      *int    `help:"Minutes before a timed activity to remind."`
	ReminderHorizonDays  *int    `help:"How many days ahead the reminder scan looks (1-8)."`
	ScanIntervalMin      *int    `help:"Minutes between reminder scans."`
}

func (c *SettingsCmd) Validate() error {
	if c.WeekStart != nil && *c.WeekStart != "monday" && *c.WeekStart != "sunday" {
		return fmt.Errorf("week start must be 'monday' or 'sunday'")
	}
	if c.ReminderLeadMin != nil && *c.ReminderLeadMin <= 0 {
		return fmt.Errorf("reminder lead must be positive")
	}
	if c.ReminderHorizonDays != nil && (*c.ReminderHorizonDays < 1 || *c.ReminderHorizonDays > 8) {
		return fmt.Errorf("reminder horizon must be between 1 and 8 days")
	}
	if c.ScanIntervalMin != nil && *c.ScanIntervalMin <= 0 {
		return fmt.Errorf("scan interval must be positive")
	}
	return nil
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return errors.Wrap(err, "failed to get settings")
	}

	if c.List {
		fmt.Println("Current Settings:")
		fmt.Printf("  Week Start:            %s\n", settings.WeekStart)
		fmt.Printf("  Timezone:              %s\n", settings.Timezone)
		fmt.Println("\nNotification Settings:")
		fmt.Printf("  Notifications Enabled: %v\n", settings.NotificationsEnabled)
		fmt.Printf("  Reminder Lead:         %d min\n", settings.ReminderLeadMin)
		fmt.Printf("  Reminder Horizon:      %d days\n", settings.ReminderHorizonDays)
		fmt.Printf("  Scan Interval:         %d min\n", settings.ScanIntervalMin)
		return nil
	}

	updated := false
	if c.WeekStart != nil {
		settings.WeekStart = *c.WeekStart
		updated = true
	}
	if c.Timezone != nil {
		settings.Timezone = *c.Timezone
		updated = true
	}
	if c.NotificationsEnabled != nil {
		settings.NotificationsEnabled = *c.NotificationsEnabled
		updated = true
	}
	if c.ReminderLeadMin != nil {
		settings.ReminderLeadMin = *c.ReminderLeadMin
		updated = true
	}
	if c.ReminderHorizonDays != nil {
		settings.ReminderHorizonDays = *c.ReminderHorizonDays
		updated = true
	}
	if c.ScanIntervalMin != nil {
		settings.ScanIntervalMin = *c.ScanIntervalMin
		updated = true
	}

	if updated {
		if _, err := ctx.RequireSession(); err != nil {
			return err
		}
		if err := ctx.Store.SaveSettings(settings); err != nil {
			return errors.Wrap(err, "failed to save settings")
		}
		fmt.Println("Settings updated successfully.")
	} else {
		fmt.Println("No changes specified. Use --list to view settings or flags to update them.")
	}

	return nil
}
