package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/daybook-app/daybook/internal/cli"
	"github.com/daybook-app/daybook/internal/dashboard"
	"github.com/daybook-app/daybook/internal/models"
	"github.com/daybook-app/daybook/internal/recurrence"
)

type DashboardCmd struct {
	Mode string `arg:"" optional:"" enum:"day,week,month" default:"week" help:"Reporting window (day|week|month)."`
	Date string `short:"d" help:"Reference date (YYYY-MM-DD). Defaults to today."`
}

func (c *DashboardCmd) Run(ctx *cli.Context) error {
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
	categories, err := ctx.Store.GetAllCategories()
	if err != nil {
		return err
	}
	names := make(map[string]string, len(categories))
	for _, cat := range categories {
		names[cat.ID] = fmt.Sprintf("%s %s", models.ResolveIcon(cat.Icon), cat.Name)
	}

	report := dashboard.Aggregate(activities, windowStart, windowEnd)

	fmt.Println(headerStyle.Render(fmt.Sprintf("Dashboard %s - %s",
		windowStart.Format("Jan 2"), windowEnd.Format("Jan 2 2006"))))

	if report.Occurred == 0 {
		fmt.Println(mutedStyle.Render("Nothing scheduled in this window"))
		return nil
	}

	fmt.Printf("%s %d/%d (%.0f%%)\n", progressBar(report.Completion()), report.Completed, report.Occurred, report.Completion()*100)

	for _, stats := range report.Categories {
		label := names[stats.CategoryID]
		if label == "" {
			label = fmt.Sprintf("%s uncategorized", models.ResolveIcon(""))
		}
		fmt.Printf("  %s %s %d/%d\n", progressBar(stats.Completion()), label, stats.Completed, stats.Occurred)
	}
	return nil
}

// progressBar renders a fixed-width completion gauge.
func progressBar(fraction float64) string {
	const width = 20
	filled := int(fraction*width + 0.5)
	if filled > width {
		filled = width
	}
	return barFilledStyle.Render(strings.Repeat("█", filled)) +
		barEmptyStyle.Render(strings.Repeat("░", width-filled))
}
