package verses

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/noor/internal/cli"
	"github.com/julianstephens/noor/internal/favorites"
	"github.com/julianstephens/noor/internal/models"
	"github.com/julianstephens/noor/internal/quran"
)

var (
	arabicStyle = lipgloss.NewStyle().Bold(true).Width(72).Align(lipgloss.Right)
	textStyle   = lipgloss.NewStyle().Width(72)
)

type VerseCmd struct {
	Now    VerseNowCmd    `cmd:"" help:"Show the verse of the current minute." default:"1"`
	Random VerseRandomCmd `cmd:"" help:"Show a random verse."`
	Show   VerseShowCmd   `cmd:"" help:"Show a verse by its index (1-6236)."`
}

// verseOpts are the flags shared by every verse subcommand.
type verseOpts struct {
	Save bool `help:"Toggle the verse in favorites." short:"s"`
}

func (o verseOpts) show(ctx *cli.Context, globalAyah int) error {
	verse, err := ctx.Quran().Verse(context.Background(), globalAyah)
	if err != nil {
		return fmt.Errorf("failed to fetch verse %d: %w", globalAyah, err)
	}

	favs := favorites.New(ctx.Store)
	saved, err := favs.Contains(verse.Ref())
	if err != nil {
		return err
	}
	if o.Save {
		now, err := ctx.LocalNow()
		if err != nil {
			return err
		}
		if saved, err = favs.Toggle(verse, now); err != nil {
			return fmt.Errorf("failed to update favorites: %w", err)
		}
	}

	printVerse(verse, saved)
	return nil
}

func printVerse(v models.VerseData, saved bool) {
	fmt.Println(arabicStyle.Render(v.ArabicAyah))
	fmt.Println()
	fmt.Println(textStyle.Render(v.EnglishAyah))
	ref := fmt.Sprintf("%s %s", v.SurahEnglish, v.Ref())
	if saved {
		ref += " ★"
	}
	fmt.Println(cli.MutedStyle.Render(ref))
}

type VerseNowCmd struct {
	verseOpts
}

func (c *VerseNowCmd) Run(ctx *cli.Context) error {
	now, err := ctx.LocalNow()
	if err != nil {
		return err
	}
	return c.show(ctx, quran.GlobalAyahForTime(now))
}

type VerseRandomCmd struct {
	verseOpts
}

func (c *VerseRandomCmd) Run(ctx *cli.Context) error {
	return c.show(ctx, quran.RandomGlobalAyah())
}

type VerseShowCmd struct {
	verseOpts
	Ayah int `arg:"" help:"Global verse index."`
}

func (c *VerseShowCmd) Run(ctx *cli.Context) error {
	return c.show(ctx, c.Ayah)
}
