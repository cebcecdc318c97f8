package assignees

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/daybook-app/daybook/internal/auth"
	"github.com/daybook-app/daybook/internal/cli"
	"github.com/daybook-app/daybook/internal/keyring"
	"github.com/daybook-app/daybook/internal/models"
)

type AssigneeAddCmd struct {
	Name     string `arg:"" help:"Display name."`
	Username string `short:"u" required:"" help:"Login username."`
	Password string `short:"p" help:"Initial password, stored in the OS keyring."`
}

func (c *AssigneeAddCmd) Run(ctx *cli.Context) error {
	if _, err := ctx.RequireSession(); err != nil {
		return err
	}

	if _, err := ctx.Store.GetAssigneeByUsername(c.Username); err == nil {
		return fmt.Errorf("username %q is already taken", c.Username)
	}

	assignee := models.Assignee{
		ID:       uuid.New().String(),
		Name:     c.Name,
		Username: c.Username,
	}
	if err := assignee.Validate(); err != nil {
		return fmt.Errorf("invalid assignee: %w", err)
	}

	if err := ctx.Store.AddAssignee(assignee); err != nil {
		return err
	}

	if c.Password != "" {
		if err := auth.Register(c.Username, c.Password); err != nil {
			return fmt.Errorf("assignee added but password could not be stored: %w", err)
		}
	}

	fmt.Printf("Added assignee: %s (@%s, ID: %s)\n", assignee.Name, assignee.Username, assignee.ID)
	return nil
}

type AssigneeListCmd struct{}

func (c *AssigneeListCmd) Run(ctx *cli.Context) error {
	assignees, err := ctx.Store.GetAllAssignees()
	if err != nil {
		return fmt.Errorf("failed to get assignees: %w", err)
	}
	if len(assignees) == 0 {
		fmt.Println("No assignees found")
		return nil
	}

	for _, assignee := range assignees {
		fmt.Printf("  %s (@%s, ID: %s)\n", assignee.Name, assignee.Username, assignee.ID)
	}
	return nil
}

type AssigneeDeleteCmd struct {
	ID string `arg:"" help:"Assignee ID."`
}

func (c *AssigneeDeleteCmd) Run(ctx *cli.Context) error {
	if _, err := ctx.RequireSession(); err != nil {
		return err
	}

	assignee, err := ctx.Store.GetAssignee(c.ID)
	if err != nil {
		return err
	}

	if err := ctx.Store.DeleteAssignee(c.ID); err != nil {
		return err
	}

	// Best effort: stale keyring entries are harmless but untidy.
	_ = keyring.DeletePassword(assignee.Username)

	fmt.Printf("Deleted assignee: %s\n", assignee.Name)
	return nil
}
