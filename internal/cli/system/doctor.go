package system

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/daybook-app/daybook/internal/cli"
	"github.com/daybook-app/daybook/internal/constants"
	"github.com/daybook-app/daybook/internal/keyring"
	"github.com/daybook-app/daybook/internal/notifier"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false

	// Check 1: store reachable
	if err := checkStoreReachable(ctx); err != nil {
		fmt.Printf("❌ Store reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Store reachable: OK\n")
	}

	// Check 2: configured timezone resolves
	if err := checkTimezone(ctx); err != nil {
		fmt.Printf("❌ Timezone: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Timezone: OK\n")
	}

	// Check 3: OS keyring available (warning only, json/sqlite work without it)
	if keyring.IsAvailable() {
		fmt.Printf("✓ OS keyring: OK\n")
	} else {
		fmt.Printf("⚠ OS keyring: WARNING\n")
		fmt.Printf("   The keyring is unavailable; logins and PostgreSQL credentials will not work\n")
	}

	// Check 4: tray app running (warning only, reminders fall back to the log)
	if err := checkTrayApp(); err != nil {
		fmt.Printf("⚠ Tray app: WARNING\n")
		fmt.Printf("   %v\n", err)
	} else {
		fmt.Printf("✓ Tray app: OK\n")
	}

	// Check 5: session file
	if _, err := ctx.RequireSession(); err != nil {
		fmt.Printf("ℹ Session: not logged in\n")
	} else {
		fmt.Printf("✓ Session: OK\n")
	}

	fmt.Println()
	if hasError {
		return errors.New("diagnostics found problems")
	}
	fmt.Println("All checks passed")
	return nil
}

func checkStoreReachable(ctx *cli.Context) error {
	if _, err := ctx.Store.GetSettings(); err != nil {
		return err
	}
	return nil
}

func checkTimezone(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return err
	}
	if settings.Timezone == "" || settings.Timezone == "Local" {
		return nil
	}
	if _, err := time.LoadLocation(settings.Timezone); err != nil {
		return fmt.Errorf("configured timezone %q does not resolve: %w", settings.Timezone, err)
	}
	return nil
}

func checkTrayApp() error {
	dir, err := notifier.GetTrayAppConfigDir()
	if err != nil {
		return err
	}
	if _, err := os.Stat(filepath.Join(dir, constants.NotifierLockfileName)); err != nil {
		return errors.New("daybook-tray is not running; reminders will only reach the log")
	}
	return nil
}
