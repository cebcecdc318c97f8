package system

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/daybook-app/daybook/internal/auth"
	"github.com/daybook-app/daybook/internal/cli"
)

type LoginCmd struct {
	Username string `arg:"" optional:"" help:"Login username. Omit for a prompt."`
}

func (c *LoginCmd) Run(ctx *cli.Context) error {
	gate := auth.NewGate()
	username, err := login(gate, c.prompt)
	if err != nil {
		return err
	}

	session, err := auth.WriteSession(ctx.ConfigDir, username)
	if err != nil {
		return err
	}

	fmt.Printf("Logged in as %s\n", session.Username)
	return nil
}

// login drives credential attempts against a single gate so consecutive
// failures accumulate toward the lockout. Bad credentials re-prompt; once
// the lockout engages the countdown is reported and the loop ends.
func login(gate *auth.Gate, prompt func() (string, string, error)) (string, error) {
	for {
		username, password, err := prompt()
		if err != nil {
			return "", err
		}

		err = gate.Login(username, password)
		if err == nil {
			return username, nil
		}
		if !errors.Is(err, auth.ErrInvalidCredentials) {
			return "", err
		}
		if remaining := gate.RemainingLockout(username, time.Now()); remaining > 0 {
			return "", fmt.Errorf("%w: try again in %s", auth.ErrLocked, remaining)
		}
		fmt.Println("Invalid username or password, try again")
	}
}

func (c *LoginCmd) prompt() (string, string, error) {
	username := c.Username
	var password string

	fields := []huh.Field{}
	if username == "" {
		fields = append(fields, huh.NewInput().
			Title("Username").
			Value(&username).
			Validate(func(s string) error {
				if s == "" {
					return fmt.Errorf("username cannot be empty")
				}
				return nil
			}))
	}
	fields = append(fields, huh.NewInput().
		Title("Password").
		EchoMode(huh.EchoModePassword).
		Value(&password))

	if err := huh.NewForm(huh.NewGroup(fields...)).Run(); err != nil {
		return "", "", fmt.Errorf("interactive form error: %w", err)
	}
	return username, password, nil
}

type LogoutCmd struct{}

func (c *LogoutCmd) Run(ctx *cli.Context) error {
	if err := auth.ClearSession(ctx.ConfigDir); err != nil {
		return err
	}
	fmt.Println("Logged out")
	return nil
}

type PasswdCmd struct{}

func (c *PasswdCmd) Run(ctx *cli.Context) error {
	session, err := ctx.RequireSession()
	if err != nil {
		return err
	}

	var current, next, confirm string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Current password").
				EchoMode(huh.EchoModePassword).
				Value(&current),
			huh.NewInput().
				Title("New password").
				EchoMode(huh.EchoModePassword).
				Value(&next).
				Validate(func(s string) error {
					if len(s) < 8 {
						return fmt.Errorf("password must be at least 8 characters")
					}
					return nil
				}),
			huh.NewInput().
				Title("Confirm new password").
				EchoMode(huh.EchoModePassword).
				Value(&confirm),
		),
	)
	if err := form.Run(); err != nil {
		return fmt.Errorf("interactive form error: %w", err)
	}

	if next != confirm {
		return fmt.Errorf("passwords do not match")
	}

	gate := auth.NewGate()
	if err := gate.ChangePassword(session.Username, current, next); err != nil {
		return err
	}

	fmt.Println("Password changed")
	return nil
}
