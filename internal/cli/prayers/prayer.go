package prayers

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/julianstephens/noor/internal/cli"
	"github.com/julianstephens/noor/internal/constants"
	noorerrors "github.com/julianstephens/noor/internal/errors"
	"github.com/julianstephens/noor/internal/logger"
	"github.com/julianstephens/noor/internal/models"
	"github.com/julianstephens/noor/internal/prayer"
)

type PrayerCmd struct {
	Times   PrayerTimesCmd   `cmd:"" help:"Show today's prayer times." default:"1"`
	Status  PrayerStatusCmd  `cmd:"" help:"Show which prayer reminders are enabled."`
	Toggle  PrayerToggleCmd  `cmd:"" help:"Turn a prayer reminder on or off."`
	Enable  PrayerEnableCmd  `cmd:"" help:"Turn a prayer reminder on."`
	Disable PrayerDisableCmd `cmd:"" help:"Turn a prayer reminder off."`
	Resume  PrayerResumeCmd  `cmd:"" help:"Reschedule enabled reminders against freshly fetched times."`
}

// PrayerArg is a prayer name, matched case-insensitively
type PrayerArg struct {
	Prayer string `arg:"" help:"Fajr, Dhuhr, Asr, Maghrib or Isha."`
}

func (a PrayerArg) key() (string, error) {
	for _, p := range constants.DailyPrayers {
		if strings.EqualFold(p, a.Prayer) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %q", prayer.ErrUnknownPrayer, a.Prayer)
}

// explain turns expected failures into guidance for the user.
func explain(err error) error {
	switch {
	case errors.Is(err, prayer.ErrPermissionDenied):
		return fmt.Errorf("notifications are not allowed; run 'noor settings set --permission granted' to allow them")
	case errors.Is(err, prayer.ErrTimesNotLoaded):
		return fmt.Errorf("prayer times are not available yet, try again when online")
	}
	return err
}

type PrayerTimesCmd struct{}

func (c *PrayerTimesCmd) Run(ctx *cli.Context) error {
	r := ctx.Reconciler()
	times, err := r.LoadTimes(context.Background())
	if err != nil {
		return err
	}
	now, err := ctx.LocalNow()
	if err != nil {
		return err
	}
	settings, err := ctx.GetSettings()
	if err != nil {
		return err
	}

	nextKey, nextAt, err := prayer.NextPrayer(times, now)
	if err != nil {
		logger.Debug("Could not determine the next prayer", "error", err)
	}
	fmt.Println(cli.HeaderStyle.Render(fmt.Sprintf("Prayer times for %s, %s", settings.City, settings.Country)))
	for _, key := range []string{"Fajr", "Sunrise", "Dhuhr", "Asr", "Maghrib", "Isha"} {
		line := fmt.Sprintf("  %-8s %s", key, times[key])
		if key == nextKey {
			line = cli.NextStyle.Render(line + "  ← next")
		}
		fmt.Println(line)
	}
	if nextKey != "" {
		fmt.Printf("\n%s in %s\n", nextKey, formatDuration(nextAt.Sub(now)))
	}
	return nil
}

type PrayerStatusCmd struct{}

func (c *PrayerStatusCmd) Run(ctx *cli.Context) error {
	r := ctx.Reconciler()
	if _, err := r.LoadTimes(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, noorerrors.Warnf("could not fetch prayer times: %v", err))
	}
	status, err := r.Status()
	if err != nil {
		return err
	}
	printStatus(status)
	return nil
}

func printStatus(status []models.AlarmStatus) {
	for _, s := range status {
		state := cli.MutedStyle.Render("off")
		if s.Enabled {
			state = cli.DoneStyle.Render("on ")
		}
		line := fmt.Sprintf("  %-8s %-5s %s", s.Prayer, s.Time, state)
		if s.NextAt != nil {
			line += "  next " + s.NextAt.Format("Mon 15:04")
		}
		if s.IsNext {
			line = cli.NextStyle.Render(line)
		}
		fmt.Println(line)
	}
}

type PrayerToggleCmd struct {
	PrayerArg
}

func (c *PrayerToggleCmd) Run(ctx *cli.Context) error {
	key, err := c.key()
	if err != nil {
		return err
	}
	r := ctx.Reconciler()
	bg := context.Background()

	ids, err := r.AlarmIDs()
	if err != nil {
		return err
	}
	if _, enabled := ids[key]; !enabled {
		if _, err := r.LoadTimes(bg); err != nil {
			return err
		}
	}
	enabled, err := r.Toggle(bg, key)
	if err != nil {
		return explain(err)
	}
	if enabled {
		fmt.Printf("✓ %s reminder on\n", key)
	} else {
		fmt.Printf("%s reminder off\n", key)
	}
	return nil
}

type PrayerEnableCmd struct {
	PrayerArg
}

func (c *PrayerEnableCmd) Run(ctx *cli.Context) error {
	key, err := c.key()
	if err != nil {
		return err
	}
	r := ctx.Reconciler()
	bg := context.Background()
	if _, err := r.LoadTimes(bg); err != nil {
		return err
	}
	at, err := r.Enable(bg, key)
	if err != nil {
		return explain(err)
	}
	fmt.Printf("✓ %s reminder set for %s\n", key, at.Format("Mon Jan 2 15:04"))
	return nil
}

type PrayerDisableCmd struct {
	PrayerArg
}

func (c *PrayerDisableCmd) Run(ctx *cli.Context) error {
	key, err := c.key()
	if err != nil {
		return err
	}
	if err := ctx.Reconciler().Disable(context.Background(), key); err != nil {
		return err
	}
	fmt.Printf("%s reminder off\n", key)
	return nil
}

// PrayerResumeCmd delivers a foreground event, e.g. from a login hook or after waking from sleep.
type PrayerResumeCmd struct{}

func (c *PrayerResumeCmd) Run(ctx *cli.Context) error {
	r := ctx.Reconciler()
	if err := r.Reconcile(context.Background()); err != nil {
		return fmt.Errorf("reminders left unchanged: %w", err)
	}
	status, err := r.Status()
	if err != nil {
		return err
	}
	printStatus(status)
	return nil
}
