package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/noor/internal/cache"
	"github.com/julianstephens/noor/internal/cli"
	"github.com/julianstephens/noor/internal/cli/backups"
	"github.com/julianstephens/noor/internal/cli/calendar"
	"github.com/julianstephens/noor/internal/cli/habits"
	"github.com/julianstephens/noor/internal/cli/journal"
	"github.com/julianstephens/noor/internal/cli/prayers"
	"github.com/julianstephens/noor/internal/cli/settings"
	"github.com/julianstephens/noor/internal/cli/system"
	"github.com/julianstephens/noor/internal/cli/verses"
	"github.com/julianstephens/noor/internal/config"
	"github.com/julianstephens/noor/internal/constants"
	"github.com/julianstephens/noor/internal/errors"
	"github.com/julianstephens/noor/internal/logger"
	"github.com/julianstephens/noor/internal/notifier"
	"github.com/julianstephens/noor/internal/utils"
)

var CLI struct {
	Version kong.VersionFlag
	DB      string `name:"db" help:"SQLite database path or PostgreSQL connection string. PostgreSQL credentials must NOT be embedded; use NOOR_DB_CONNECTION, the OS keyring or .pgpass instead." env:"NOOR_DB"`
	Config  string `help:"Config file path." env:"NOOR_CONFIG" default:"${config_path}"`
	Debug   bool   `help:"Log debug output to stderr."`

	Init      system.InitCmd       `cmd:"" help:"Initialize noor storage."`
	Migrate   system.MigrateCmd    `cmd:"" help:"Run database migrations."`
	Tui       system.TuiCmd        `cmd:"" help:"Launch the interactive dashboard." default:"1"`
	Verse     verses.VerseCmd      `cmd:"" help:"Read the verse of the minute or a random verse."`
	Surah     verses.SurahCmd      `cmd:"" help:"Browse and read surahs."`
	Fav       verses.FavCmd        `cmd:"" help:"Manage saved verses."`
	Prayer    prayers.PrayerCmd    `cmd:"" help:"Prayer times and reminders."`
	Calendar  calendar.CalendarCmd `cmd:"" help:"Hijri date and upcoming milestones."`
	Habit     habits.HabitCmd      `cmd:"" help:"Manage habits and habit tracking."`
	Stats     habits.StatsCmd      `cmd:"" help:"Show habit completion statistics."`
	Gratitude journal.GratitudeCmd `cmd:"" help:"Keep a gratitude journal."`
	Chat      journal.ChatCmd      `cmd:"" help:"Private notes that reset every day."`
	Settings  settings.SettingsCmd `cmd:"" help:"Manage application settings."`
	Backup    backups.BackupCmd    `cmd:"" help:"Manage database backups."`
	Keyring   system.KeyringCmd    `cmd:"" help:"Manage the PostgreSQL connection string in the OS keyring."`
	Conf      system.ConfigCmd     `cmd:"" name:"config" help:"Inspect or create the config file."`
	Notify    system.NotifyCmd     `cmd:"" hidden:"" help:"Deliver due reminders (run from cron every minute)."`
}

// storeless commands open the database themselves or never touch it.
var storeless = map[string]bool{
	"init":    true,
	"migrate": true,
	"keyring": true,
	"config":  true,
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Verses, prayer reminders, habits and a Hijri calendar in your terminal"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":     constants.Version,
			"config_path": config.DefaultPath,
		},
	)

	configPath, err := utils.ExpandPath(CLI.Config)
	if err != nil {
		errors.Fatal(fmt.Errorf("invalid config path: %w", err))
	}
	envErr := config.LoadEnvFile(filepath.Dir(configPath))
	cfg, err := config.Load(configPath)
	if err != nil {
		errors.Fatal(err)
	}
	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: filepath.Dir(configPath), Level: cfg.LogLevel}); err != nil {
		fmt.Fprintln(os.Stderr, errors.Warnf("failed to initialize logger: %v", err))
	}
	if envErr != nil {
		logger.Warn("Ignoring unreadable .env file", "error", envErr)
	}
	responseCache := cache.New(cfg.Cache)
	defer responseCache.Close()

	store, err := cli.OpenStore(CLI.DB)
	if err != nil {
		errors.Fatal(err)
	}

	appCtx := &cli.Context{
		Store:      store,
		Config:     cfg,
		ConfigPath: configPath,
		Cache:      responseCache,
		Prompter:   notifier.TerminalPrompter(),
	}

	command := strings.Fields(ctx.Command())
	if len(command) > 0 && !storeless[command[0]] {
		if err := store.Load(); err != nil {
			errors.Fatal(err)
		}
		defer store.Close()
	}

	logger.Debug("Running command", "command", ctx.Command(), "backend", store.GetConfigPath())
	if err := ctx.Run(appCtx); err != nil {
		store.Close()
		responseCache.Close()
		errors.Fatal(err)
	}
}
