package categories

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/daybook-app/daybook/internal/cli"
	"github.com/daybook-app/daybook/internal/models"
)

type CategoryAddCmd struct {
	Name string `arg:"" help:"Category name."`
	Icon string `short:"i" help:"Icon identifier."`
}

func (c *CategoryAddCmd) Validate() error {
	if c.Icon == "" {
		return nil
	}
	for _, name := range models.IconNames() {
		if name == c.Icon {
			return nil
		}
	}
	known := models.IconNames()
	sort.Strings(known)
	return fmt.Errorf("unknown icon %q (known: %s)", c.Icon, strings.Join(known, ", "))
}

func (c *CategoryAddCmd) Run(ctx *cli.Context) error {
	if _, err := ctx.RequireSession(); err != nil {
		return err
	}

	category := models.Category{
		ID:   uuid.New().String(),
		Name: c.Name,
		Icon: c.Icon,
	}
	if err := category.Validate(); err != nil {
		return fmt.Errorf("invalid category: %w", err)
	}

	if err := ctx.Store.AddCategory(category); err != nil {
		return err
	}

	fmt.Printf("Added category: %s %s (ID: %s)\n", models.ResolveIcon(category.Icon), category.Name, category.ID)
	return nil
}

type CategoryListCmd struct{}

func (c *CategoryListCmd) Run(ctx *cli.Context) error {
	categories, err := ctx.Store.GetAllCategories()
	if err != nil {
		return fmt.Errorf("failed to get categories: %w", err)
	}
	if len(categories) == 0 {
		fmt.Println("No categories found")
		return nil
	}

	for _, category := range categories {
		fmt.Printf("  %s %s (ID: %s)\n", models.ResolveIcon(category.Icon), category.Name, category.ID)
	}
	return nil
}

type CategoryEditCmd struct {
	ID   string  `arg:"" help:"Category ID."`
	Name *string `help:"New name."`
	Icon *string `help:"New icon identifier."`
}

func (c *CategoryEditCmd) Run(ctx *cli.Context) error {
	if _, err := ctx.RequireSession(); err != nil {
		return err
	}

	category, err := ctx.Store.GetCategory(c.ID)
	if err != nil {
		return err
	}
	if c.Name != nil {
		category.Name = *c.Name
	}
	if c.Icon != nil {
		category.Icon = *c.Icon
	}
	if err := category.Validate(); err != nil {
		return fmt.Errorf("invalid category: %w", err)
	}

	if err := ctx.Store.UpdateCategory(category); err != nil {
		return err
	}

	fmt.Printf("Updated category: %s\n", category.Name)
	return nil
}

type CategoryDeleteCmd struct {
	ID string `arg:"" help:"Category ID."`
}

func (c *CategoryDeleteCmd) Run(ctx *cli.Context) error {
	if _, err := ctx.RequireSession(); err != nil {
		return err
	}

	category, err := ctx.Store.GetCategory(c.ID)
	if err != nil {
		return err
	}

	if err := ctx.Store.DeleteCategory(c.ID); err != nil {
		return err
	}

	fmt.Printf("Deleted category: %s\n", category.Name)
	return nil
}
