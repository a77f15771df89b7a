package calendar

import (
	"context"
	"fmt"

	"github.com/charmbracelet/glamour"

	"github.com/julianstephens/noor/internal/cli"
	"github.com/julianstephens/noor/internal/hijri"
	"github.com/julianstephens/noor/internal/logger"
)

type CalendarCmd struct {
	Today      CalendarTodayCmd      `cmd:"" help:"Show today's Hijri date." default:"1"`
	Milestones CalendarMilestonesCmd `cmd:"" help:"List upcoming Islamic milestones."`
	Event      CalendarEventCmd      `cmd:"" help:"Describe a milestone."`
}

type CalendarTodayCmd struct{}

func (c *CalendarTodayCmd) Run(ctx *cli.Context) error {
	now, err := ctx.LocalNow()
	if err != nil {
		return err
	}
	info, err := ctx.Calendar().Today(context.Background(), now)
	if err != nil {
		return err
	}
	fmt.Printf("%s %s\n", hijri.MoonEmoji(hijri.MoonPhase(now)), cli.HeaderStyle.Render(info.HijriLabel))
	fmt.Println(cli.MutedStyle.Render(info.GregorianLabel))
	return nil
}

type CalendarMilestonesCmd struct{}

func (c *CalendarMilestonesCmd) Run(ctx *cli.Context) error {
	now, err := ctx.LocalNow()
	if err != nil {
		return err
	}
	milestones, err := ctx.Calendar().UpcomingMilestones(context.Background(), now)
	if err != nil {
		return err
	}
	if len(milestones) == 0 {
		fmt.Println("No milestones in the next twelve months.")
		return nil
	}
	for _, m := range milestones {
		icon := ""
		if e, ok := hijri.EventInfo(m.Slug); ok {
			icon = e.Icon + " "
		}
		fmt.Printf("%s%-18s %-10s %s\n", icon, m.Title, hijri.Countdown(m.InDays), cli.MutedStyle.Render(m.DateLabel))
	}
	return nil
}

type CalendarEventCmd struct {
	Slug string `arg:"" help:"ramadan, dhulhijjah, arafah, eidadha or newyear."`
}

func (c *CalendarEventCmd) Run(ctx *cli.Context) error {
	e, ok := hijri.EventInfo(c.Slug)
	if !ok {
		return fmt.Errorf("unknown milestone %q", c.Slug)
	}
	fmt.Print(renderEvent(e))
	return nil
}

// renderEvent formats an event as markdown, falling back to plain styled text.
func renderEvent(e hijri.Event) string {
	md := fmt.Sprintf("# %s %s\n\n%s\n", e.Icon, e.Title, e.Description)
	renderer, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(72))
	if err == nil {
		if out, err := renderer.Render(md); err == nil {
			return out
		}
	}
	logger.Debug("Markdown rendering failed, printing plain text", "error", err)
	return fmt.Sprintf("%s %s\n\n%s\n", e.Icon, cli.HeaderStyle.Render(e.Title), e.Description)
}
