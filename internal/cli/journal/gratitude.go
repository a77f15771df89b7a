package journal

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/noor/internal/cli"
	"github.com/julianstephens/noor/internal/gratitude"
)

const shortIDLen = 8

func shortID(id string) string {
	if len(id) > shortIDLen {
		return id[:shortIDLen]
	}
	return id
}

type GratitudeCmd struct {
	List   GratitudeListCmd   `cmd:"" help:"List gratitude entries, newest first." default:"1"`
	Add    GratitudeAddCmd    `cmd:"" help:"Write down something you are grateful for."`
	Remove GratitudeRemoveCmd `cmd:"" help:"Remove an entry by id or id prefix."`
	Clear  GratitudeClearCmd  `cmd:"" help:"Remove every entry."`
}

type GratitudeListCmd struct{}

func (c *GratitudeListCmd) Run(ctx *cli.Context) error {
	items, err := gratitude.New(ctx.Store).List()
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Println("Nothing here yet. Add one with 'noor gratitude add'.")
		return nil
	}
	for _, it := range items {
		when := time.UnixMilli(it.CreatedAt).Format("Jan 2")
		fmt.Printf("%s %s  %s\n", cli.MutedStyle.Render(shortID(it.ID)), cli.MutedStyle.Render(when), it.Text)
	}
	return nil
}

type GratitudeAddCmd struct {
	Text []string `arg:"" help:"Entry text."`
}

func (c *GratitudeAddCmd) Run(ctx *cli.Context) error {
	now, err := ctx.LocalNow()
	if err != nil {
		return err
	}
	item, ok, err := gratitude.New(ctx.Store).Add(strings.Join(c.Text, " "), now)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("entry text cannot be empty")
	}
	fmt.Printf("✓ Added %s\n", shortID(item.ID))
	return nil
}

type GratitudeRemoveCmd struct {
	ID string `arg:"" help:"Entry id or unique prefix."`
}

func (c *GratitudeRemoveCmd) Run(ctx *cli.Context) error {
	j := gratitude.New(ctx.Store)
	items, err := j.List()
	if err != nil {
		return err
	}
	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}
	id, err := resolveID(ids, c.ID)
	if err != nil {
		return err
	}
	if _, err := j.Remove(id); err != nil {
		return err
	}
	fmt.Printf("Removed %s\n", shortID(id))
	return nil
}

type GratitudeClearCmd struct {
	Yes bool `help:"Do not ask for confirmation." short:"y"`
}

func (c *GratitudeClearCmd) Run(ctx *cli.Context) error {
	if !c.Yes {
		ok, err := cli.Confirm("Remove every gratitude entry?")
		if err != nil || !ok {
			return err
		}
	}
	if err := gratitude.New(ctx.Store).Clear(); err != nil {
		return err
	}
	fmt.Println("Cleared gratitude entries.")
	return nil
}

// resolveID matches an exact id or a unique prefix of one.
func resolveID(ids []string, prefix string) (string, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return "", fmt.Errorf("id cannot be empty")
	}
	var match string
	for _, id := range ids {
		if id == prefix {
			return id, nil
		}
		if strings.HasPrefix(id, prefix) {
			if match != "" {
				return "", fmt.Errorf("id prefix %q is ambiguous", prefix)
			}
			match = id
		}
	}
	if match == "" {
		return "", fmt.Errorf("no entry with id %q", prefix)
	}
	return match, nil
}
