package activities

import (
	"fmt"

	"github.com/daybook-app/daybook/internal/cli"
)

type ActivityDeleteCmd struct {
	ID string `arg:"" help:"Activity ID."`
}

func (c *ActivityDeleteCmd) Run(ctx *cli.Context) error {
	if _, err := ctx.RequireSession(); err != nil {
		return err
	}

	activity, err := ctx.Store.GetActivity(c.ID)
	if err != nil {
		return err
	}

	if err := ctx.Store.DeleteActivity(c.ID); err != nil {
		return err
	}

	fmt.Printf("Deleted activity: %s (restorable with 'daybook restore activity %s')\n", activity.Title, c.ID)
	return nil
}

type ActivityRestoreCmd struct {
	ID string `arg:"" help:"Activity ID."`
}

func (c *ActivityRestoreCmd) Run(ctx *cli.Context) error {
	if _, err := ctx.RequireSession(); err != nil {
		return err
	}

	if err := ctx.Store.RestoreActivity(c.ID); err != nil {
		return err
	}

	activity, err := ctx.Store.GetActivity(c.ID)
	if err != nil {
		return err
	}

	fmt.Printf("Restored activity: %s\n", activity.Title)
	return nil
}
