package habits

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"

	"github.com/julianstephens/noor/internal/cli"
	"github.com/julianstephens/noor/internal/habits"
	"github.com/julianstephens/noor/internal/models"
	"github.com/julianstephens/noor/internal/stats"
	"github.com/julianstephens/noor/internal/storage"
)

type HabitCmd struct {
	Add    HabitAddCmd    `cmd:"" help:"Add a new habit."`
	Edit   HabitEditCmd   `cmd:"" help:"Rename a habit or change its emoji."`
	Delete HabitDeleteCmd `cmd:"" help:"Delete a habit and its history."`
	List   HabitListCmd   `cmd:"" help:"List habits."`
	Show   HabitShowCmd   `cmd:"" help:"Show one habit and its recent completions."`
	Today  HabitTodayCmd  `cmd:"" help:"Show today's habit status." default:"1"`
	Toggle HabitToggleCmd `cmd:"" help:"Mark or unmark a habit for a day."`
	Seed   HabitSeedCmd   `cmd:"" help:"Insert the default habits into an empty list."`
}

// resolveHabit accepts a numeric id or a case-insensitive habit name.
func resolveHabit(t *habits.Tracker, ref string) (models.Habit, error) {
	if id, err := strconv.ParseInt(ref, 10, 64); err == nil {
		h, err := t.Get(id)
		if errors.Is(err, storage.ErrNotFound) {
			return models.Habit{}, fmt.Errorf("habit %d not found", id)
		}
		return h, err
	}

	list, err := t.List()
	if err != nil {
		return models.Habit{}, err
	}
	for _, h := range list {
		if strings.EqualFold(h.Name, strings.TrimSpace(ref)) {
			return h, nil
		}
	}
	return models.Habit{}, fmt.Errorf("habit %q not found", ref)
}

type HabitAddCmd struct {
	Name  string `arg:"" optional:"" help:"Habit name. Omit it to fill in a form."`
	Emoji string `help:"Optional emoji shown before the name."`
}

func (c *HabitAddCmd) Run(ctx *cli.Context) error {
	if c.Name == "" {
		if err := c.ask(); err != nil {
			return err
		}
	}
	id, ok, err := habits.New(ctx.Store).Create(c.Name, c.Emoji)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("Habit name is empty, nothing added.")
		return nil
	}
	fmt.Printf("Added habit #%d: %s\n", id, strings.TrimSpace(c.Name))
	return nil
}

type HabitEditCmd struct {
	Habit string  `arg:"" help:"Habit id or name."`
	Name  *string `help:"New name."`
	Emoji *string `help:"New emoji. Pass an empty value to remove it."`
}

func (c *HabitEditCmd) Run(ctx *cli.Context) error {
	t := habits.New(ctx.Store)
	h, err := resolveHabit(t, c.Habit)
	if err != nil {
		return err
	}

	name := h.Name
	if c.Name != nil {
		name = *c.Name
	}
	emoji := h.DisplayEmoji()
	if c.Emoji != nil {
		emoji = *c.Emoji
	}

	ok, err := t.Update(h.ID, name, emoji)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("Habit name is empty, nothing changed.")
		return nil
	}
	fmt.Printf("Updated habit #%d\n", h.ID)
	return nil
}

type HabitDeleteCmd struct {
	Habit string `arg:"" help:"Habit id or name."`
}

func (c *HabitDeleteCmd) Run(ctx *cli.Context) error {
	t := habits.New(ctx.Store)
	h, err := resolveHabit(t, c.Habit)
	if err != nil {
		return err
	}
	if err := t.Delete(h.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted habit: %s\n", h.Name)
	return nil
}

type HabitListCmd struct{}

func (c *HabitListCmd) Run(ctx *cli.Context) error {
	list, err := habits.New(ctx.Store).List()
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Println("No habits found. Run 'noor habit seed' to add the defaults.")
		return nil
	}
	for _, h := range list {
		status := ""
		if !h.IsActive {
			status = cli.MutedStyle.Render(" [inactive]")
		}
		fmt.Printf("%4d  %s%s%s\n", h.ID, cli.FormatEmoji(h.Emoji), h.Name, status)
	}
	return nil
}

type HabitShowCmd struct {
	Habit string `arg:"" help:"Habit id or name."`
	Days  int    `help:"Number of days of history to show." default:"30"`
	Date  string `help:"Last day of the history in YYYY-MM-DD format (default: today)."`
}

func (c *HabitShowCmd) Run(ctx *cli.Context) error {
	if c.Days < 1 {
		return fmt.Errorf("--days must be at least 1, got %d", c.Days)
	}
	t := habits.New(ctx.Store)
	h, err := resolveHabit(t, c.Habit)
	if err != nil {
		return err
	}
	end, err := dateOrToday(ctx, c.Date)
	if err != nil {
		return err
	}
	start, err := stats.AddDays(end, 1-c.Days)
	if err != nil {
		return err
	}
	history, err := t.History(h.ID, start, end)
	if err != nil {
		return err
	}

	status := ""
	if !h.IsActive {
		status = cli.MutedStyle.Render(" [inactive]")
	}
	fmt.Println(cli.HeaderStyle.Render(fmt.Sprintf("#%d %s%s", h.ID, cli.FormatEmoji(h.Emoji), h.Name)) + status)
	fmt.Printf("  Done %d of the last %d days (%s to %s)\n", len(history), c.Days, start, end)
	for _, done := range history {
		fmt.Printf("  %s %s\n", cli.Check(true), done.Date)
	}
	return nil
}

type HabitTodayCmd struct {
	Date string `help:"Date in YYYY-MM-DD format (default: today)."`
}

func (c *HabitTodayCmd) Run(ctx *cli.Context) error {
	date, err := dateOrToday(ctx, c.Date)
	if err != nil {
		return err
	}
	list, err := habits.New(ctx.Store).Today(date)
	if err != nil {
		return err
	}

	done := 0
	for _, h := range list {
		if h.DoneToday {
			done++
		}
	}
	fmt.Println(cli.HeaderStyle.Render(fmt.Sprintf("Habits for %s (%d/%d)", date, done, len(list))))
	for _, h := range list {
		fmt.Printf("  %s %s%s\n", cli.Check(h.DoneToday), cli.FormatEmoji(h.Emoji), h.Name)
	}
	return nil
}

type HabitToggleCmd struct {
	Habit string `arg:"" help:"Habit id or name."`
	Date  string `help:"Date in YYYY-MM-DD format (default: today)."`
}

func (c *HabitToggleCmd) Run(ctx *cli.Context) error {
	t := habits.New(ctx.Store)
	h, err := resolveHabit(t, c.Habit)
	if err != nil {
		return err
	}
	date, err := dateOrToday(ctx, c.Date)
	if err != nil {
		return err
	}
	done, err := t.Toggle(h.ID, date)
	if err != nil {
		return err
	}
	if done {
		fmt.Printf("Marked %q done for %s\n", h.Name, date)
	} else {
		fmt.Printf("Unmarked %q for %s\n", h.Name, date)
	}
	return nil
}

type HabitSeedCmd struct{}

func (c *HabitSeedCmd) Run(ctx *cli.Context) error {
	seeded, err := habits.New(ctx.Store).SeedIfEmpty()
	if err != nil {
		return err
	}
	if seeded {
		fmt.Println("Added the default habits.")
	} else {
		fmt.Println("Habits already exist, nothing seeded.")
	}
	return nil
}

func dateOrToday(ctx *cli.Context, date string) (string, error) {
	if date == "" {
		return ctx.Today()
	}
	if err := habits.ValidateDate(date); err != nil {
		return "", fmt.Errorf("%w: %s (expected YYYY-MM-DD)", err, date)
	}
	return date, nil
}

func (c *HabitAddCmd) ask() error {
	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return fmt.Errorf("habit name is required when not running in a terminal")
	}
	err := huh.NewForm(huh.NewGroup(
		huh.NewInput().Title("Name").Value(&c.Name).Validate(func(s string) error {
			if strings.TrimSpace(s) == "" {
				return errors.New("name cannot be empty")
			}
			return nil
		}),
		huh.NewInput().Title("Emoji").Description("Optional").Value(&c.Emoji),
	)).Run()
	if errors.Is(err, huh.ErrUserAborted) {
		c.Name = ""
		return nil
	}
	return err
}
