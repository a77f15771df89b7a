package verses

import (
	"context"
	"fmt"

	"github.com/julianstephens/noor/internal/cli"
	"github.com/julianstephens/noor/internal/constants"
	"github.com/julianstephens/noor/internal/kv"
	"github.com/julianstephens/noor/internal/logger"
)

type SurahCmd struct {
	List SurahListCmd `cmd:"" help:"List all surahs." default:"1"`
	Show SurahShowCmd `cmd:"" help:"Read a surah."`
}

type SurahListCmd struct{}

func (c *SurahListCmd) Run(ctx *cli.Context) error {
	surahs, err := ctx.Quran().Surahs(context.Background())
	if err != nil {
		return fmt.Errorf("failed to fetch surahs: %w", err)
	}
	for _, s := range surahs {
		fmt.Printf("%3d  %-18s %-26s %3d ayahs  %s\n",
			s.Number, s.EnglishName, s.EnglishNameTranslation, s.NumberOfAyahs, cli.MutedStyle.Render(s.RevelationType))
	}
	return nil
}

type SurahShowCmd struct {
	Number int    `arg:"" help:"Surah number (1-114)."`
	Lang   string `help:"ar or en; defaults to the last language used, then the language setting." enum:",ar,en" default:""`
}

func (c *SurahShowCmd) Run(ctx *cli.Context) error {
	lang, err := c.language(ctx)
	if err != nil {
		return err
	}

	s, err := ctx.Quran().Surah(context.Background(), c.Number, lang)
	if err != nil {
		return err
	}

	if c.Lang != "" {
		if err := ctx.Store.SetValue(constants.KeySurahLanguage, c.Lang); err != nil {
			logger.Warn("Failed to remember surah language", "error", err)
		}
	}

	fmt.Println(cli.HeaderStyle.Render(fmt.Sprintf("%d. %s (%s)", s.Number, s.EnglishName, s.Name)))
	for _, a := range s.Ayahs {
		if lang == "ar" {
			fmt.Println(arabicStyle.Render(fmt.Sprintf("%s (%d)", a.Text, a.NumberInSurah)))
			continue
		}
		fmt.Println(textStyle.Render(fmt.Sprintf("%3d  %s", a.NumberInSurah, a.Text)))
	}
	return nil
}

func (c *SurahShowCmd) language(ctx *cli.Context) (string, error) {
	if c.Lang != "" {
		return c.Lang, nil
	}
	settings, err := ctx.GetSettings()
	if err != nil {
		return "", err
	}
	return kv.GetString(ctx.Store, constants.KeySurahLanguage, settings.Language)
}
