package activities

import (
	"fmt"

	"github.com/daybook-app/daybook/internal/cli"
	"github.com/daybook-app/daybook/internal/models"
)

type ActivityListCmd struct {
	Category string `short:"c" help:"Only show activities in this category."`
	Assignee string `short:"a" help:"Only show activities with this assignee."`
	ShowIDs  bool   `help:"Show activity IDs." name:"show-ids"`
}

func (c *ActivityListCmd) Run(ctx *cli.Context) error {
	activities, err := ctx.Store.GetAllActivities()
	if err != nil {
		return fmt.Errorf("failed to get activities: %w", err)
	}

	categories, err := ctx.Store.GetAllCategories()
	if err != nil {
		return fmt.Errorf("failed to get categories: %w", err)
	}
	icons := make(map[string]string, len(categories))
	for _, cat := range categories {
		icons[cat.ID] = models.ResolveIcon(cat.Icon)
	}

	shown := 0
	for _, activity := range activities {
		if c.Category != "" && activity.CategoryID != c.Category {
			continue
		}
		if c.Assignee != "" && activity.AssigneeID != c.Assignee {
			continue
		}
		shown++

		icon := icons[activity.CategoryID]
		if icon == "" {
			icon = models.ResolveIcon("")
		}

		idStr := ""
		if c.ShowIDs {
			idStr = fmt.Sprintf(" (ID: %s)", activity.ID)
		}

		timeStr := ""
		if activity.Time != "" {
			timeStr = " at " + activity.Time
		}

		fmt.Printf("  %s %s%s - %s%s [%s]\n",
			icon, activity.Title, idStr, cli.FormatRecurrence(activity.Recurrence), timeStr, activity.Status)

		for _, todo := range activity.Todos {
			fmt.Printf("      - %s\n", todo.Text)
		}
	}

	if shown == 0 {
		fmt.Println("No activities found")
	}
	return nil
}
