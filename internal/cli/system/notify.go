package system

import (
	"fmt"

	"github.com/daybook-app/daybook/internal/cli"
	"github.com/daybook-app/daybook/internal/notifier"
)

// NotifyCmd sends a one-off notification through the tray app. Used to
// verify the delivery path.
type NotifyCmd struct {
	Text   string `arg:"" help:"Notification text."`
	DryRun bool   `help:"Print the notification to stdout instead of sending it."`
}

func (c *NotifyCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	if !settings.NotificationsEnabled {
		fmt.Println("Notifications are disabled in settings.")
		return nil
	}

	if c.DryRun {
		fmt.Println("[DryRun] " + c.Text)
		return nil
	}

	if err := notifier.New().Notify(c.Text); err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}
	return nil
}
