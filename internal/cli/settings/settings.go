package settings

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/julianstephens/noor/internal/cli"
	"github.com/julianstephens/noor/internal/constants"
	noorerrors "github.com/julianstephens/noor/internal/errors"
	"github.com/julianstephens/noor/internal/logger"
	"github.com/julianstephens/noor/internal/models"
	"github.com/julianstephens/noor/internal/utils"
)

// maxMethod is the highest calculation method id the Aladhan API accepts.
const maxMethod = 23

type SettingsCmd struct {
	Show SettingsShowCmd `cmd:"" help:"Show current settings." default:"1"`
	Set  SettingsSetCmd  `cmd:"" help:"Change settings."`
}

type SettingsShowCmd struct{}

func (c *SettingsShowCmd) Run(ctx *cli.Context) error {
	stored, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	models.ApplyDefaultSettings(&stored)
	effective, err := ctx.GetSettings()
	if err != nil {
		return err
	}

	row := func(name, value, stored string) {
		line := fmt.Sprintf("  %-14s %s", name, value)
		if value != stored {
			line += cli.MutedStyle.Render(fmt.Sprintf("  (config overrides %s)", stored))
		}
		fmt.Println(line)
	}
	fmt.Println(cli.HeaderStyle.Render("Settings"))
	row("city", effective.City, stored.City)
	row("country", effective.Country, stored.Country)
	row("method", fmt.Sprint(effective.Method), fmt.Sprint(stored.Method))
	row("timezone", effective.Timezone, stored.Timezone)
	row("language", effective.Language, stored.Language)
	row("notifications", onOff(effective.NotificationsEnabled), onOff(stored.NotificationsEnabled))
	row("permission", effective.NotificationPermission, stored.NotificationPermission)
	return nil
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

type SettingsSetCmd struct {
	City          *string `help:"City used for prayer times."`
	Country       *string `help:"Country used for prayer times."`
	Method        *int    `help:"Aladhan calculation method id (1-23)."`
	Timezone      *string `help:"IANA timezone name, or Local."`
	Language      *string `help:"Surah reading language: ar or en."`
	Notifications *bool   `help:"Deliver due reminders when 'noor notify' runs." negatable:""`
	Permission    *string `help:"Notification permission: granted, denied or undetermined."`
}

func (c *SettingsSetCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	models.ApplyDefaultSettings(&settings)

	locationChanged, err := c.apply(&settings)
	if err != nil {
		return err
	}
	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	fmt.Println("✓ Settings updated")

	if locationChanged {
		c.reschedule(ctx)
	}
	return nil
}

// apply validates the flags and copies them into s. It reports whether prayer times may have moved.
func (c *SettingsSetCmd) apply(s *models.Settings) (bool, error) {
	changed := false
	if c.City != nil {
		city := strings.TrimSpace(*c.City)
		if city == "" {
			return false, fmt.Errorf("city cannot be empty")
		}
		s.City, changed = city, true
	}
	if c.Country != nil {
		country := strings.TrimSpace(*c.Country)
		if country == "" {
			return false, fmt.Errorf("country cannot be empty")
		}
		s.Country, changed = country, true
	}
	if c.Method != nil {
		if *c.Method < 1 || *c.Method > maxMethod {
			return false, fmt.Errorf("method must be between 1 and %d", maxMethod)
		}
		s.Method, changed = *c.Method, true
	}
	if c.Timezone != nil {
		if _, err := utils.LoadLocation(*c.Timezone); err != nil {
			return false, fmt.Errorf("invalid timezone %q: %w", *c.Timezone, err)
		}
		s.Timezone, changed = *c.Timezone, true
	}
	if c.Language != nil {
		if *c.Language != "ar" && *c.Language != "en" {
			return false, fmt.Errorf("language must be ar or en")
		}
		s.Language = *c.Language
	}
	if c.Notifications != nil {
		s.NotificationsEnabled = *c.Notifications
	}
	if c.Permission != nil {
		switch *c.Permission {
		case constants.PermissionGranted, constants.PermissionDenied, constants.PermissionUndetermined:
			s.NotificationPermission = *c.Permission
		default:
			return false, fmt.Errorf("invalid permission %q", *c.Permission)
		}
	}
	return changed, nil
}

// reschedule moves enabled reminders to the new location's times.
func (c *SettingsSetCmd) reschedule(ctx *cli.Context) {
	r := ctx.Reconciler()
	ids, err := r.AlarmIDs()
	if err != nil || len(ids) == 0 {
		return
	}
	if err := r.Reconcile(context.Background()); err != nil {
		logger.Warn("Failed to reschedule reminders after settings change", "error", err)
		fmt.Fprintln(os.Stderr, noorerrors.Warnf("reminders still use the previous times; run 'noor prayer resume' when online"))
		return
	}
	fmt.Printf("Rescheduled %d reminder(s)\n", len(ids))
}
