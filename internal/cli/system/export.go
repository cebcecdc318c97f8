package system

import (
	"fmt"
	"os"
	"time"

	"github.com/daybook-app/daybook/internal/cli"
	"github.com/daybook-app/daybook/internal/ics"
	"github.com/daybook-app/daybook/internal/recurrence"
)

type ExportCmd struct {
	Mode   string `arg:"" optional:"" enum:"day,week,month" default:"month" help:"Export window (day|week|month)."`
	Date   string `short:"d" help:"Reference date (YYYY-MM-DD). Defaults to today."`
	Output string `short:"o" help:"Write to a file instead of stdout."`
	Name   string `help:"Calendar name embedded in the export." default:"daybook"`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return err
	}
	loc := settings.Location()

	ref, err := cli.ParseDate(c.Date, loc, time.Now())
	if err != nil {
		return err
	}

	windowStart, windowEnd, err := recurrence.ResolveWindow(recurrence.ViewMode(c.Mode), ref, settings.WeekStartDay())
	if err != nil {
		return err
	}

	activities, err := ctx.Store.GetAllActivities()
	if err != nil {
		return err
	}

	serialized, err := ics.Export(activities, windowStart, windowEnd, c.Name)
	if err != nil {
		return err
	}

	if c.Output == "" {
		fmt.Print(serialized)
		return nil
	}

	if err := os.WriteFile(c.Output, []byte(serialized), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", c.Output, err)
	}
	fmt.Printf("Exported %s window to %s\n", c.Mode, c.Output)
	return nil
}
