package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/noor/internal/aladhan"
	"github.com/julianstephens/noor/internal/backup"
	"github.com/julianstephens/noor/internal/cache"
	"github.com/julianstephens/noor/internal/config"
	"github.com/julianstephens/noor/internal/constants"
	"github.com/julianstephens/noor/internal/hijri"
	"github.com/julianstephens/noor/internal/keyring"
	"github.com/julianstephens/noor/internal/logger"
	"github.com/julianstephens/noor/internal/models"
	"github.com/julianstephens/noor/internal/notifier"
	"github.com/julianstephens/noor/internal/prayer"
	"github.com/julianstephens/noor/internal/quran"
	"github.com/julianstephens/noor/internal/storage"
	"github.com/julianstephens/noor/internal/storage/postgres"
	"github.com/julianstephens/noor/internal/storage/sqlite"
	"github.com/julianstephens/noor/internal/utils"
)

// Context carries the dependencies shared by every command.
type Context struct {
	Store  storage.Provider
	Config *config.Config
	// ConfigPath is where Config was loaded from.
	ConfigPath string
	Cache      cache.Cache
	// Now is the wall clock; tests replace it.
	Now func() time.Time
	// Prompter asks for notification permission. Nil means the user cannot be asked.
	Prompter notifier.Prompter
}

// OpenStore picks the storage backend. An explicit --db value wins. Otherwise a connection
// string from NOOR_DB_CONNECTION or the keyring selects PostgreSQL, and the default SQLite
// database is used when neither is set.
func OpenStore(db string) (storage.Provider, error) {
	if db == "" {
		connStr, src, err := keyring.ResolveConnectionString()
		switch {
		case err == nil:
			logger.Debug("Using PostgreSQL connection string", "source", src)
			return postgres.New(connStr), nil
		case errors.Is(err, keyring.ErrNotFound), errors.Is(err, keyring.ErrKeyringUnavailable):
			db = constants.DefaultConfigPath
		default:
			return nil, err
		}
	}

	if storage.IsPostgresURL(db) || strings.Contains(db, "host=") {
		if storage.HasEmbeddedCredentials(db) {
			return nil, fmt.Errorf("PostgreSQL connection strings with embedded credentials are not allowed; " +
				"store the connection string with 'noor keyring set', export " + keyring.EnvConnectionString +
				", or use a .pgpass file")
		}
		return postgres.New(db), nil
	}

	path, err := utils.ExpandPath(db)
	if err != nil {
		return nil, fmt.Errorf("invalid database path %q: %w", db, err)
	}
	return sqlite.NewStore(path), nil
}

func (c *Context) clock() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

func (c *Context) config() *config.Config {
	if c.Config == nil {
		c.Config = config.DefaultConfig()
	}
	return c.Config
}

func (c *Context) cache() cache.Cache {
	if c.Cache == nil {
		c.Cache = cache.Nop{}
	}
	return c.Cache
}

// GetSettings returns the stored settings with defaults filled in and the configured location applied.
func (c *Context) GetSettings() (models.Settings, error) {
	settings, err := c.Store.GetSettings()
	if err != nil {
		return models.Settings{}, fmt.Errorf("failed to get settings: %w", err)
	}
	models.ApplyDefaultSettings(&settings)
	c.config().ApplyLocation(&settings)
	return settings, nil
}

// LocalNow returns the current time in the configured timezone.
func (c *Context) LocalNow() (time.Time, error) {
	settings, err := c.GetSettings()
	if err != nil {
		return time.Time{}, err
	}
	loc, err := utils.LoadLocation(settings.Timezone)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timezone %q: %w", settings.Timezone, err)
	}
	return c.clock().In(loc), nil
}

// Today returns the current date as YYYY-MM-DD in the configured timezone.
func (c *Context) Today() (string, error) {
	now, err := c.LocalNow()
	if err != nil {
		return "", err
	}
	return utils.DateString(now), nil
}

func (c *Context) Aladhan() *aladhan.Client {
	cfg := c.config()
	return aladhan.New(cfg.API.AladhanBaseURL, cfg.HTTPTimeout(), c.cache())
}

func (c *Context) Quran() *quran.Client {
	cfg := c.config()
	return quran.New(cfg.API.QuranBaseURL, cfg.HTTPTimeout(), c.cache())
}

func (c *Context) Calendar() *hijri.Calendar {
	return hijri.New(c.Aladhan())
}

func (c *Context) Scheduler() *notifier.LocalScheduler {
	opts := []notifier.Option{notifier.WithClock(c.clock)}
	if c.Prompter != nil {
		opts = append(opts, notifier.WithPrompter(c.Prompter))
	}
	return notifier.NewLocal(c.Store, opts...)
}

func (c *Context) Reconciler() *prayer.Reconciler {
	return prayer.NewReconciler(c.Aladhan(), c.Scheduler(), c.Store, c, prayer.WithClock(c.clock))
}

// PerformAutomaticBackup snapshots the SQLite database and only logs failures.
func (c *Context) PerformAutomaticBackup() {
	if _, ok := c.Store.(*sqlite.Store); !ok {
		return
	}
	if _, err := backup.NewManager(c.Store.GetConfigPath()).Create(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// FormatEmoji returns "emoji " or "" for display prefixes.
func FormatEmoji(emoji *string) string {
	if emoji == nil || *emoji == "" {
		return ""
	}
	return *emoji + " "
}
