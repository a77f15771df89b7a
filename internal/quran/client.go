// Package quran is a client for the alquran.cloud API.
package quran

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/julianstephens/noor/internal/cache"
	"github.com/julianstephens/noor/internal/constants"
	"github.com/julianstephens/noor/internal/httpclient"
	"github.com/julianstephens/noor/internal/models"
)

const totalSurahs = 114

type envelope struct {
	Code   int             `json:"code"`
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
}

type ayahData struct {
	Number        int              `json:"number"`
	Text          string           `json:"text"`
	NumberInSurah int              `json:"numberInSurah"`
	Surah         models.SurahMeta `json:"surah"`
}

type Client struct {
	api *httpclient.Client
}

func New(baseURL string, timeout time.Duration, c cache.Cache) *Client {
	return &Client{api: httpclient.New(baseURL, timeout, c)}
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	var env envelope
	if err := c.api.GetJSON(ctx, path, constants.SurahCacheTTL, &env); err != nil {
		return err
	}
	if env.Status != "OK" {
		return fmt.Errorf("alquran %s: status %q", path, env.Status)
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("alquran %s: failed to decode data: %w", path, err)
	}
	return nil
}

// Verse fetches the Arabic text and the English translation of one verse concurrently.
func (c *Client) Verse(ctx context.Context, globalAyah int) (models.VerseData, error) {
	if globalAyah < 1 || globalAyah > constants.TotalAyahs {
		return models.VerseData{}, fmt.Errorf("ayah %d out of range 1..%d", globalAyah, constants.TotalAyahs)
	}

	var ar, en ayahData
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := c.get(gctx, fmt.Sprintf("ayah/%d", globalAyah), &ar); err != nil {
			return fmt.Errorf("failed to fetch Arabic verse: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		if err := c.get(gctx, fmt.Sprintf("ayah/%d/%s", globalAyah, constants.DefaultTranslation), &en); err != nil {
			return fmt.Errorf("failed to fetch English translation: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return models.VerseData{}, err
	}

	return models.VerseData{
		GlobalAyah:   globalAyah,
		ArabicAyah:   ar.Text,
		EnglishAyah:  en.Text,
		SurahArabic:  ar.Surah.Name,
		SurahEnglish: ar.Surah.EnglishName,
		AyahInSurah:  ar.NumberInSurah,
		SurahNumber:  ar.Surah.Number,
	}, nil
}

// Surahs returns the index of all surahs.
func (c *Client) Surahs(ctx context.Context) ([]models.SurahMeta, error) {
	var list []models.SurahMeta
	if err := c.get(ctx, "surah", &list); err != nil {
		return nil, err
	}
	return list, nil
}

// Surah returns one surah in Arabic ("ar") or in the default English translation ("en").
func (c *Client) Surah(ctx context.Context, number int, lang string) (models.Surah, error) {
	if number < 1 || number > totalSurahs {
		return models.Surah{}, fmt.Errorf("surah %d out of range 1..%d", number, totalSurahs)
	}

	path := fmt.Sprintf("surah/%d", number)
	switch lang {
	case "ar":
	case "en":
		path += "/" + constants.DefaultTranslation
	default:
		return models.Surah{}, fmt.Errorf("unsupported language %q, use ar or en", lang)
	}

	var s models.Surah
	if err := c.get(ctx, path, &s); err != nil {
		return models.Surah{}, err
	}
	return s, nil
}
