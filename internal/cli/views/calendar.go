package views

import (
	"fmt"
	"sort"
	"time"

	"github.com/daybook-app/daybook/internal/cli"
	"github.com/daybook-app/daybook/internal/models"
	"github.com/daybook-app/daybook/internal/recurrence"
)

type CalendarCmd struct {
	Mode string `arg:"" optional:"" enum:"day,week,month" default:"week" help:"View mode (day|week|month)."`
	Date string `short:"d" help:"Reference date (YYYY-MM-DD). Defaults to today."`
}

func (c *CalendarCmd) Run(ctx *cli.Context) error {
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
	icons := make(map[string]string, len(categories))
	for _, cat := range categories {
		icons[cat.ID] = models.ResolveIcon(cat.Icon)
	}

	byDay := make(map[string][]recurrence.Occurrence)
	for _, master := range activities {
		for _, occ := range recurrence.Expand(master, windowStart, windowEnd) {
			key := recurrence.DateKey(occ.InstanceDate)
			byDay[key] = append(byDay[key], occ)
		}
	}

	fmt.Println(headerStyle.Render(fmt.Sprintf("%s - %s",
		windowStart.Format("Mon Jan 2 2006"), windowEnd.Format("Mon Jan 2 2006"))))

	empty := true
	for day := windowStart; !day.After(windowEnd); day = day.AddDate(0, 0, 1) {
		occurrences := byDay[recurrence.DateKey(day)]
		if len(occurrences) == 0 {
			continue
		}
		empty = false

		sort.SliceStable(occurrences, func(i, j int) bool {
			return occurrences[i].Time < occurrences[j].Time
		})

		fmt.Println(dayStyle.Render(day.Format("Mon Jan 2")))
		for _, occ := range occurrences {
			icon := icons[occ.CategoryID]
			if icon == "" {
				icon = models.ResolveIcon("")
			}

			timeStr := "     "
			if occ.Time != "" {
				timeStr = occ.Time
			}

			line := fmt.Sprintf("  %s %s %s", mutedStyle.Render(timeStr), icon, occ.Title)
			if occ.Completed {
				line = doneStyle.Render(line)
			}
			fmt.Println(line)

			for _, todo := range occ.Todos {
				fmt.Println(mutedStyle.Render(fmt.Sprintf("        - %s", todo.Text)))
			}
		}
	}

	if empty {
		fmt.Println(mutedStyle.Render("Nothing scheduled"))
	}
	return nil
}
