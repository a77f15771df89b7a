package verses

import (
	"context"
	"fmt"
	"strings"

	"github.com/julianstephens/noor/internal/cli"
	"github.com/julianstephens/noor/internal/favorites"
	"github.com/julianstephens/noor/internal/quran"
)

type FavCmd struct {
	List   FavListCmd   `cmd:"" help:"List saved verses." default:"1"`
	Add    FavAddCmd    `cmd:"" help:"Save a verse."`
	Remove FavRemoveCmd `cmd:"" help:"Remove a saved verse by reference (surah:ayah)."`
	Clear  FavClearCmd  `cmd:"" help:"Remove all saved verses."`
}

type FavListCmd struct {
	Search string `help:"Filter by surah name, translation text or reference." short:"q"`
}

func (c *FavListCmd) Run(ctx *cli.Context) error {
	items, err := favorites.New(ctx.Store).Search(c.Search)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Println("No saved verses.")
		return nil
	}
	for _, f := range items {
		fmt.Printf("%s %s\n", cli.NextStyle.Render(f.ID), cli.MutedStyle.Render(f.SurahEnglish))
		fmt.Printf("  %s\n", textStyle.Render(f.EnglishAyah))
	}
	return nil
}

type FavAddCmd struct {
	Ayah int `arg:"" optional:"" help:"Global verse index; defaults to the verse of the current minute."`
}

func (c *FavAddCmd) Run(ctx *cli.Context) error {
	now, err := ctx.LocalNow()
	if err != nil {
		return err
	}
	ayah := c.Ayah
	if ayah == 0 {
		ayah = quran.GlobalAyahForTime(now)
	}

	verse, err := ctx.Quran().Verse(context.Background(), ayah)
	if err != nil {
		return fmt.Errorf("failed to fetch verse %d: %w", ayah, err)
	}

	favs := favorites.New(ctx.Store)
	saved, err := favs.Contains(verse.Ref())
	if err != nil {
		return err
	}
	if saved {
		fmt.Printf("%s is already saved\n", verse.Ref())
		return nil
	}
	if _, err := favs.Toggle(verse, now); err != nil {
		return err
	}
	fmt.Printf("✓ Saved %s %s\n", verse.SurahEnglish, verse.Ref())
	return nil
}

type FavRemoveCmd struct {
	Ref string `arg:"" help:"Reference such as 2:255."`
}

func (c *FavRemoveCmd) Run(ctx *cli.Context) error {
	ref := strings.TrimSpace(c.Ref)
	favs := favorites.New(ctx.Store)
	saved, err := favs.Contains(ref)
	if err != nil {
		return err
	}
	if !saved {
		return fmt.Errorf("verse %s is not saved", ref)
	}
	if err := favs.Remove(ref); err != nil {
		return err
	}
	fmt.Printf("Removed %s\n", ref)
	return nil
}

type FavClearCmd struct {
	Yes bool `help:"Do not ask for confirmation." short:"y"`
}

func (c *FavClearCmd) Run(ctx *cli.Context) error {
	if !c.Yes {
		ok, err := cli.Confirm("Remove all saved verses?")
		if err != nil || !ok {
			return err
		}
	}
	if err := favorites.New(ctx.Store).Clear(); err != nil {
		return err
	}
	fmt.Println("Cleared saved verses.")
	return nil
}
