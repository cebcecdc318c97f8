package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/daybook-app/daybook/internal/cli"
	"github.com/daybook-app/daybook/internal/cli/activities"
	"github.com/daybook-app/daybook/internal/cli/assignees"
	"github.com/daybook-app/daybook/internal/cli/categories"
	"github.com/daybook-app/daybook/internal/cli/settings"
	"github.com/daybook-app/daybook/internal/cli/system"
	"github.com/daybook-app/daybook/internal/cli/views"
	"github.com/daybook-app/daybook/internal/config"
	"github.com/daybook-app/daybook/internal/constants"
	apperrors "github.com/daybook-app/daybook/internal/errors"
	"github.com/daybook-app/daybook/internal/keyring"
	"github.com/daybook-app/daybook/internal/logger"
	"github.com/daybook-app/daybook/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Config file path." type:"path" default:"~/.config/daybook/config.yaml"`
	Debug   bool   `help:"Enable verbose logging."`

	Init     system.InitCmd      `cmd:"" help:"Initialize daybook storage."`
	Calendar views.CalendarCmd   `cmd:"" help:"Show occurrences for a day, week, or month." default:"1"`
	Board    struct {
		Show views.BoardCmd     `cmd:"" help:"Show the kanban board." default:"1"`
		Move views.BoardMoveCmd `cmd:"" help:"Move an activity to another column."`
	} `cmd:"" help:"Kanban board of activities."`
	Dashboard views.DashboardCmd `cmd:"" help:"Completion totals per category."`
	Activity  struct {
		Add      activities.ActivityAddCmd      `cmd:"" help:"Add a new activity."`
		Edit     activities.ActivityEditCmd     `cmd:"" help:"Edit an existing activity."`
		Delete   activities.ActivityDeleteCmd   `cmd:"" help:"Delete an activity."`
		List     activities.ActivityListCmd     `cmd:"" help:"List all activities."`
		Complete activities.ActivityCompleteCmd `cmd:"" help:"Complete or reopen an occurrence."`
	} `cmd:"" help:"Manage activities."`
	Category struct {
		Add    categories.CategoryAddCmd    `cmd:"" help:"Add a category."`
		Edit   categories.CategoryEditCmd   `cmd:"" help:"Edit a category."`
		Delete categories.CategoryDeleteCmd `cmd:"" help:"Delete a category."`
		List   categories.CategoryListCmd   `cmd:"" help:"List categories." default:"1"`
	} `cmd:"" help:"Manage categories."`
	Assignee struct {
		Add    assignees.AssigneeAddCmd    `cmd:"" help:"Add an assignee."`
		Delete assignees.AssigneeDeleteCmd `cmd:"" help:"Delete an assignee."`
		List   assignees.AssigneeListCmd   `cmd:"" help:"List assignees." default:"1"`
	} `cmd:"" help:"Manage assignees."`
	Restore struct {
		Activity activities.ActivityRestoreCmd `cmd:"" help:"Restore a deleted activity."`
	} `cmd:"" help:"Restore deleted items."`
	Export  system.ExportCmd `cmd:"" help:"Export occurrences as an ICS calendar."`
	Scan    system.ScanCmd   `cmd:"" help:"Run the reminder scanner."`
	Doctor  system.DoctorCmd `cmd:"" help:"Run health checks and diagnostics."`
	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store a PostgreSQL connection string in the OS keyring."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Show the stored connection string (password masked)."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
		Status system.KeyringStatusCmd `cmd:"" help:"Check OS keyring availability."`
	} `cmd:"" help:"Manage keyring credentials."`
	Notify   system.NotifyCmd     `cmd:"" hidden:"" help:"Send a notification (used internally)."`
	Pomo     system.PomoCmd       `cmd:"" help:"Run a pomodoro timer."`
	Login    system.LoginCmd      `cmd:"" help:"Log in and create a session."`
	Logout   system.LogoutCmd     `cmd:"" help:"Discard the current session."`
	Passwd   system.PasswdCmd     `cmd:"" help:"Change the current user's password."`
	Settings settings.SettingsCmd `cmd:"" help:"Manage application settings."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("daybook"),
		kong.Description("Recurring activity planner and todo companion"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		apperrors.Fatal(apperrors.Wrap(err, "failed to load config"))
	}

	configDir := filepath.Dir(CLI.Config)
	if err := logger.Init(logger.Config{Debug: CLI.Debug || cfg.Debug, ConfigDir: configDir}); err != nil {
		apperrors.Fatal(apperrors.Wrap(err, "failed to initialize logger"))
	}

	store, err := openStore(cfg, configDir)
	if err != nil {
		apperrors.Fatal(err)
	}

	appCtx := &cli.Context{
		Store:     store,
		Config:    cfg,
		ConfigDir: configDir,
	}

	// The init command handles its own loading
	if ctx.Selected() != nil && ctx.Selected().Name != "init" {
		if err := store.Load(); err != nil {
			apperrors.Fatalf("%v (run 'daybook init' first)", err)
		}
	}

	apperrors.Fatal(ctx.Run(appCtx))
}

// openStore picks the persistence backend from config. PostgreSQL pulls its
// DSN from the OS keyring unless the configured path is itself a DSN, which
// must then not embed credentials.
func openStore(cfg *config.Config, configDir string) (storage.Provider, error) {
	switch cfg.Store {
	case "postgres":
		connStr := cfg.StorePath
		if !strings.HasPrefix(connStr, "postgres://") && !strings.HasPrefix(connStr, "postgresql://") {
			stored, err := keyring.GetConnectionString()
			if err != nil {
				if errors.Is(err, keyring.ErrNotFound) {
					return nil, fmt.Errorf("no PostgreSQL connection string in the OS keyring; store one or set store_path to a credential-free DSN")
				}
				return nil, err
			}
			connStr = stored
		} else if storage.HasEmbeddedCredentials(connStr) {
			return nil, fmt.Errorf("PostgreSQL connection strings with embedded credentials are not allowed; use the OS keyring, environment variables, or .pgpass")
		}
		return storage.NewPostgresStore(connStr), nil
	case "json":
		path := cfg.StorePath
		if path == "" {
			path = filepath.Join(configDir, "daybook.json")
		}
		return storage.NewJSONStore(path), nil
	default:
		path := cfg.StorePath
		if path == "" {
			path = filepath.Join(configDir, "daybook.db")
		}
		return storage.NewSQLiteStore(path), nil
	}
}
