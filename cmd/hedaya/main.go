package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/hedaya/internal/cli"
	"github.com/julianstephens/hedaya/internal/config"
	"github.com/julianstephens/hedaya/internal/constants"
	herrors "github.com/julianstephens/hedaya/internal/errors"
	"github.com/julianstephens/hedaya/internal/keyring"
	"github.com/julianstephens/hedaya/internal/logger"
	"github.com/julianstephens/hedaya/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Store location: SQLite path, *.json file, :memory:, or a PostgreSQL URL without a password (use the keyring or HEDAYA_DB_CONNECTION for credentials)." default:"${config}"`
	Debug   bool   `help:"Log debug output to stderr." default:"${debug}"`

	Init       cli.InitCmd       `cmd:"" help:"Initialize hedaya storage."`
	Status     cli.StatusCmd     `cmd:"" help:"Show streak, level and mercy days." default:"1"`
	Tui        cli.TuiCmd        `cmd:"" help:"Launch the interactive worship tree."`
	Today      cli.TodayCmd      `cmd:"" help:"Show today's log."`
	Mark       cli.MarkCmd       `cmd:"" help:"Record worship for today."`
	Tap        cli.TapCmd        `cmd:"" help:"Tap an element of the worship tree."`
	Grace      cli.GraceCmd      `cmd:"" help:"Use a mercy (grace) day."`
	History    cli.HistoryCmd    `cmd:"" help:"Show recent days."`
	Profile    cli.ProfileCmd    `cmd:"" help:"Manage the worship profile."`
	Essentials cli.EssentialsCmd `cmd:"" help:"Show today's essentials and bonuses."`
	Times      cli.TimesCmd      `cmd:"" help:"Show prayer times."`
	Settings   cli.SettingsCmd   `cmd:"" help:"Manage application settings."`
	Backup     cli.BackupCmd     `cmd:"" help:"Manage database backups."`
	Keyring    cli.KeyringCmd    `cmd:"" help:"Manage the PostgreSQL connection string in the OS keyring."`
	Watch      cli.WatchCmd      `cmd:"" help:"Stay running: midnight rollover and prayer reminders."`
	Reset      cli.ResetCmd      `cmd:"" help:"Delete all tracking data."`
	Doctor     cli.DoctorCmd     `cmd:"" help:"Run health checks and diagnostics."`
	DebugCmd   cli.DebugCmd      `cmd:"" name:"debug" help:"Debug commands for troubleshooting."`
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		herrors.Fatal(err)
	}

	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Daily prayer and worship tracker with streaks and mercy days"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version": constants.Version,
			"config":  cfg.Config,
			"debug":   fmt.Sprint(cfg.Debug),
		},
	)

	store, location, err := openStore(cfg)
	if err != nil {
		herrors.Fatal(err)
	}
	defer store.Close()

	logDir, err := config.Dir(location)
	if err != nil {
		herrors.Fatal(err)
	}
	if err := logger.Init(logger.Config{Debug: CLI.Debug, Level: cfg.LogLevel, ConfigDir: logDir}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}
	logger.Debug("Starting", "command", ctx.Command(), "store", store.GetConfigPath())

	appCtx := &cli.Context{
		Store:  store,
		Config: cfg,
	}
	if err := ctx.Run(appCtx); err != nil {
		herrors.Fatal(err)
	}
}

// openStore picks the backend. An explicit --config/HEDAYA_CONFIG wins;
// with the default location, a connection string from HEDAYA_DB_CONNECTION
// or the keyring selects PostgreSQL. The second return value is the
// location used to place logs.
func openStore(cfg *config.Config) (storage.Provider, string, error) {
	location := CLI.Config

	if config.IsPostgres(location) {
		if err := storage.ValidateConnString(location); err != nil {
			if errors.Is(err, storage.ErrEmbeddedCredentials) {
				return nil, "", fmt.Errorf("%w: use 'hedaya keyring set' or %s_DB_CONNECTION instead", err, config.Prefix)
			}
			return nil, "", err
		}
		return storage.NewPostgresStore(location), location, nil
	}

	if location == constants.DefaultConfigPath {
		connStr, src := keyring.ResolveConnectionString("", cfg.DBConnection)
		if src != keyring.SourceNone {
			if err := storage.ValidateConnString(connStr); err != nil && !errors.Is(err, storage.ErrEmbeddedCredentials) {
				return nil, "", fmt.Errorf("connection string from %s: %w", src, err)
			}
			logger.Debug("Using PostgreSQL connection string", "source", src)
			return storage.NewPostgresStore(connStr), constants.DefaultConfigPath, nil
		}
	}

	path, err := config.ExpandPath(location)
	if err != nil {
		return nil, "", err
	}
	return storage.New(path), path, nil
}
