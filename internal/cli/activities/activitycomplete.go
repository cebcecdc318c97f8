package activities

import (
	"fmt"
	"time"

	"github.com/daybook-app/daybook/internal/cli"
	"github.com/daybook-app/daybook/internal/recurrence"
)

type ActivityCompleteCmd struct {
	ID   string `arg:"" help:"Activity ID."`
	Date string `short:"d" help:"Occurrence date (YYYY-MM-DD) for recurring activities. Defaults to today."`
	Undo bool   `help:"Mark the occurrence as not completed."`
}

func (c *ActivityCompleteCmd) Run(ctx *cli.Context) error {
	if _, err := ctx.RequireSession(); err != nil {
		return err
	}

	activity, err := ctx.Store.GetActivity(c.ID)
	if err != nil {
		return err
	}

	completed := !c.Undo

	if activity.Recurrence.IsRecurring() {
		date, err := cli.ParseDate(c.Date, ctx.Location(), time.Now())
		if err != nil {
			return err
		}
		activity = recurrence.SetOccurrenceCompletion(activity, date, completed)
		if err := ctx.Store.UpdateActivity(activity); err != nil {
			return err
		}
		if completed {
			fmt.Printf("Completed %s on %s\n", activity.Title, recurrence.DateKey(date))
		} else {
			fmt.Printf("Reopened %s on %s\n", activity.Title, recurrence.DateKey(date))
		}
		return nil
	}

	if c.Date != "" {
		return fmt.Errorf("--date only applies to recurring activities")
	}

	activity.Completed = completed
	if completed {
		now := time.Now().UnixMilli()
		activity.CompletedAt = &now
	} else {
		activity.CompletedAt = nil
	}

	if err := ctx.Store.UpdateActivity(activity); err != nil {
		return err
	}

	if completed {
		fmt.Printf("Completed %s\n", activity.Title)
	} else {
		fmt.Printf("Reopened %s\n", activity.Title)
	}
	return nil
}
