package activities

import (
	"fmt"
	"time"

	"github.com/daybook-app/daybook/internal/cli"
	"github.com/daybook-app/daybook/internal/constants"
	"github.com/daybook-app/daybook/internal/models"
)

type ActivityEditCmd struct {
	ID         string  `arg:"" help:"Activity ID."`
	Title      *string `help:"New title."`
	Category   *string `help:"New category ID."`
	Assignee   *string `help:"New assignee ID."`
	Notes      *string `help:"New notes."`
	Time       *string `help:"New time of day (HH:MM), empty to clear."`
	Recurrence *string `help:"New recurrence type (none|daily|weekly|monthly)."`
	Weekdays   *string `help:"New comma-separated weekdays for weekly recurrence."`
	DayOfMonth *int    `help:"New day of month for monthly recurrence."`
	EndDate    *string `help:"New series end date (YYYY-MM-DD), empty to clear."`
	Status     *string `help:"New board status (todo|doing|done)."`
}

func (c *ActivityEditCmd) Run(ctx *cli.Context) error {
	if _, err := ctx.RequireSession(); err != nil {
		return err
	}

	activity, err := ctx.Store.GetActivity(c.ID)
	if err != nil {
		return err
	}

	if c.Title != nil {
		activity.Title = *c.Title
	}
	if c.Category != nil {
		activity.CategoryID = *c.Category
	}
	if c.Assignee != nil {
		activity.AssigneeID = *c.Assignee
	}
	if c.Notes != nil {
		activity.Notes = *c.Notes
	}
	if c.Time != nil {
		activity.Time = *c.Time
	}
	if c.Status != nil {
		activity.Status = constants.ActivityStatus(*c.Status)
	}

	if err := c.applyRecurrence(ctx, &activity); err != nil {
		return err
	}

	if err := activity.Validate(); err != nil {
		return fmt.Errorf("invalid activity: %w", err)
	}

	if err := ctx.Store.UpdateActivity(activity); err != nil {
		return err
	}

	fmt.Printf("Updated activity: %s\n", activity.Title)
	return nil
}

func (c *ActivityEditCmd) applyRecurrence(ctx *cli.Context, activity *models.MasterActivity) error {
	if c.Recurrence != nil {
		newType := constants.RecurrenceType(*c.Recurrence)
		if newType != activity.Recurrence.Type {
			// Changing the repeat shape invalidates rule fields and the
			// per-date completion log.
			activity.Recurrence = models.Recurrence{Type: newType}
			activity.CompletedOccurrences = nil
		}
	}

	if c.Weekdays != nil {
		wds, err := cli.ParseWeekdays(*c.Weekdays)
		if err != nil {
			return err
		}
		activity.Recurrence.DaysOfWeek = wds
	}
	if c.DayOfMonth != nil {
		activity.Recurrence.DayOfMonth = *c.DayOfMonth
	}

	if c.EndDate != nil {
		if *c.EndDate == "" {
			activity.Recurrence.EndDate = nil
			return nil
		}
		end, err := cli.ParseDate(*c.EndDate, ctx.Location(), time.Now())
		if err != nil {
			return err
		}
		millis := end.UnixMilli()
		activity.Recurrence.EndDate = &millis
	}

	return nil
}
