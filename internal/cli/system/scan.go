package system

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/daybook-app/daybook/internal/cli"
	"github.com/daybook-app/daybook/internal/notifier"
	"github.com/daybook-app/daybook/internal/scanner"
)

type ScanCmd struct {
	Once bool `help:"Run a single scan pass and exit."`
	Log  bool `help:"Write reminders to the log instead of the tray app."`
}

func (c *ScanCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return err
	}
	if !settings.NotificationsEnabled {
		fmt.Println("Notifications are disabled in settings")
		return nil
	}

	var deliverer scanner.Deliverer
	if c.Log {
		deliverer = notifier.LogDeliverer{}
	} else {
		deliverer = notifier.New()
	}

	s := scanner.New(ctx.Store, deliverer, scanner.Options{
		LeadMinutes: settings.ReminderLeadMin,
		HorizonDays: settings.ReminderHorizonDays,
		Interval:    time.Duration(settings.ScanIntervalMin) * time.Minute,
		Location:    settings.Location(),
	})

	if c.Once {
		s.ScanOnce(time.Now().In(settings.Location()))
		return nil
	}

	runCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Scanning every %dm, Ctrl-C to stop\n", settings.ScanIntervalMin)
	if err := s.Run(runCtx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
