package views

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/daybook-app/daybook/internal/cli"
	"github.com/daybook-app/daybook/internal/constants"
	"github.com/daybook-app/daybook/internal/models"
)

type BoardCmd struct {
	ShowIDs bool `help:"Show activity IDs." name:"show-ids"`
}

func (c *BoardCmd) Run(ctx *cli.Context) error {
	activities, err := ctx.Store.GetAllActivities()
	if err != nil {
		return err
	}

	columns := []constants.ActivityStatus{
		constants.StatusTodo,
		constants.StatusDoing,
		constants.StatusDone,
	}
	titles := map[constants.ActivityStatus]string{
		constants.StatusTodo:  "To do",
		constants.StatusDoing: "Doing",
		constants.StatusDone:  "Done",
	}

	grouped := make(map[constants.ActivityStatus][]models.MasterActivity)
	for _, activity := range activities {
		status := activity.Status
		if status == "" {
			status = constants.StatusTodo
		}
		grouped[status] = append(grouped[status], activity)
	}

	rendered := make([]string, 0, len(columns))
	for _, status := range columns {
		body := headerStyle.Render(fmt.Sprintf("%s (%d)", titles[status], len(grouped[status]))) + "\n"
		if len(grouped[status]) == 0 {
			body += mutedStyle.Render("empty")
		}
		for _, activity := range grouped[status] {
			line := activity.Title
			if c.ShowIDs {
				line += mutedStyle.Render(fmt.Sprintf(" %s", activity.ID))
			}
			body += line + "\n"
		}
		rendered = append(rendered, columnStyle.Render(body))
	}

	fmt.Println(lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
	return nil
}

type BoardMoveCmd struct {
	ID     string `arg:"" help:"Activity ID."`
	Status string `arg:"" enum:"todo,doing,done" help:"Target column (todo|doing|done)."`
}

func (c *BoardMoveCmd) Run(ctx *cli.Context) error {
	if _, err := ctx.RequireSession(); err != nil {
		return err
	}

	activity, err := ctx.Store.GetActivity(c.ID)
	if err != nil {
		return err
	}

	activity.Status = constants.ActivityStatus(c.Status)
	if err := ctx.Store.UpdateActivity(activity); err != nil {
		return err
	}

	fmt.Printf("Moved %s to %s\n", activity.Title, c.Status)
	return nil
}
