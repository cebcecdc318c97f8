package activities

import (
	"fmt"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"github.com/daybook-app/daybook/internal/cli"
	"github.com/daybook-app/daybook/internal/constants"
	"github.com/daybook-app/daybook/internal/errors"
	"github.com/daybook-app/daybook/internal/models"
)

type ActivityAddCmd struct {
	Title       string   `arg:"" optional:"" help:"Activity title. Omit for an interactive form."`
	Category    string   `short:"c" help:"Category ID."`
	Assignee    string   `short:"a" help:"Assignee ID."`
	Notes       string   `short:"n" help:"Free-form notes."`
	Time        string   `short:"t" help:"Time of day (HH:MM)."`
	Recurrence  string   `short:"r" help:"Recurrence type (none|daily|weekly|monthly)." default:"none"`
	Weekdays    string   `short:"w" help:"Comma-separated weekdays for weekly recurrence."`
	DayOfMonth  int      `help:"Day of month (1-31) for monthly recurrence."`
	EndDate     string   `help:"Last date of the series (YYYY-MM-DD), recurring only."`
	Todos       []string `help:"Checklist items."`
	Interactive bool     `short:"i" help:"Fill in the activity via an interactive form."`
}

func (c *ActivityAddCmd) Validate() error {
	switch c.Recurrence {
	case "none", "daily", "weekly", "monthly":
	default:
		return fmt.Errorf("invalid recurrence type: %s", c.Recurrence)
	}
	if c.Recurrence == "weekly" && !c.Interactive && c.Title != "" && c.Weekdays == "" {
		return fmt.Errorf("weekdays must be specified for weekly recurrence")
	}
	if c.Recurrence == "monthly" && !c.Interactive && c.Title != "" {
		if c.DayOfMonth < 1 || c.DayOfMonth > 31 {
			return fmt.Errorf("--day-of-month must be between 1 and 31 for monthly recurrence")
		}
	}
	return nil
}

func (c *ActivityAddCmd) Run(ctx *cli.Context) error {
	if _, err := ctx.RequireSession(); err != nil {
		return err
	}

	if c.Title == "" || c.Interactive {
		if err := c.promptForm(); err != nil {
			return err
		}
	}

	recurrence, err := c.buildRecurrence(ctx)
	if err != nil {
		return err
	}

	var todos []models.Todo
	for _, text := range c.Todos {
		todos = append(todos, models.Todo{ID: uuid.New().String(), Text: text})
	}

	activity := models.MasterActivity{
		ID:         uuid.New().String(),
		Title:      c.Title,
		CategoryID: c.Category,
		AssigneeID: c.Assignee,
		Notes:      c.Notes,
		Time:       c.Time,
		Todos:      todos,
		CreatedAt:  time.Now().UnixMilli(),
		Recurrence: recurrence,
		Status:     constants.StatusTodo,
	}

	if err := activity.Validate(); err != nil {
		return errors.Wrap(err, "invalid activity")
	}

	if err := ctx.Store.AddActivity(activity); err != nil {
		return err
	}

	fmt.Printf("Added activity: %s (ID: %s)\n", activity.Title, activity.ID)
	return nil
}

func (c *ActivityAddCmd) buildRecurrence(ctx *cli.Context) (models.Recurrence, error) {
	rec := models.Recurrence{Type: constants.RecurrenceType(c.Recurrence)}

	switch rec.Type {
	case constants.RecurrenceWeekly:
		wds, err := cli.ParseWeekdays(c.Weekdays)
		if err != nil {
			return models.Recurrence{}, err
		}
		rec.DaysOfWeek = wds
	case constants.RecurrenceMonthly:
		rec.DayOfMonth = c.DayOfMonth
	}

	if c.EndDate != "" {
		if !rec.IsRecurring() {
			return models.Recurrence{}, fmt.Errorf("--end-date is only valid for recurring activities")
		}
		end, err := cli.ParseDate(c.EndDate, ctx.Location(), time.Now())
		if err != nil {
			return models.Recurrence{}, err
		}
		millis := end.UnixMilli()
		rec.EndDate = &millis
	}

	return rec, nil
}

func (c *ActivityAddCmd) promptForm() error {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&c.Title).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("title cannot be empty")
					}
					return nil
				}),
			huh.NewInput().
				Title("Time of day (HH:MM, optional)").
				Value(&c.Time),
			huh.NewSelect[string]().
				Title("Repeats").
				Options(
					huh.NewOption("Never", "none"),
					huh.NewOption("Daily", "daily"),
					huh.NewOption("Weekly", "weekly"),
					huh.NewOption("Monthly", "monthly"),
				).
				Value(&c.Recurrence),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Weekdays (e.g. mon,wed,fri)").
				Value(&c.Weekdays),
		).WithHideFunc(func() bool { return c.Recurrence != "weekly" }),
		huh.NewGroup(
			huh.NewInput().
				Title("Day of month (1-31)").
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("day of month is required")
					}
					var day int
					if _, err := fmt.Sscanf(s, "%d", &day); err != nil || day < 1 || day > 31 {
						return fmt.Errorf("must be a number between 1 and 31")
					}
					c.DayOfMonth = day
					return nil
				}),
		).WithHideFunc(func() bool { return c.Recurrence != "monthly" }),
	)

	if err := form.Run(); err != nil {
		return errors.Wrap(err, "interactive form error")
	}
	return nil
}
