// Package aladhan is a client for the Aladhan prayer-times and Hijri calendar API.
package aladhan

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/noor/internal/cache"
	"github.com/julianstephens/noor/internal/constants"
	"github.com/julianstephens/noor/internal/httpclient"
	"github.com/julianstephens/noor/internal/models"
)

// keptTimings are the entries of data.timings that callers use.
var keptTimings = append([]string{"Sunrise"}, constants.DailyPrayers...)

// Int decodes numbers the API sends either as JSON numbers or as strings.
type Int int

func (i *Int) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*i = 0
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("invalid integer %s: %w", b, err)
	}
	*i = Int(n)
	return nil
}

type Month struct {
	Number Int    `json:"number"`
	En     string `json:"en"`
	Ar     string `json:"ar"`
}

type HijriDate struct {
	Date  string `json:"date"`
	Day   Int    `json:"day"`
	Month Month  `json:"month"`
	Year  Int    `json:"year"`
}

type GregorianDate struct {
	Date  string `json:"date"` // DD-MM-YYYY
	Day   Int    `json:"day"`
	Month Month  `json:"month"`
	Year  Int    `json:"year"`
}

// Time returns the Gregorian day at midnight in loc.
func (g GregorianDate) Time(loc *time.Location) time.Time {
	return time.Date(int(g.Year), time.Month(g.Month.Number), int(g.Day), 0, 0, 0, 0, loc)
}

// DateInfo pairs a Gregorian day with its Hijri equivalent
type DateInfo struct {
	Hijri     HijriDate     `json:"hijri"`
	Gregorian GregorianDate `json:"gregorian"`
}

type envelope struct {
	Code   int             `json:"code"`
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
}

type Client struct {
	api *httpclient.Client
}

func New(baseURL string, timeout time.Duration, c cache.Cache) *Client {
	return &Client{api: httpclient.New(baseURL, timeout, c)}
}

func (c *Client) get(ctx context.Context, path string, ttl time.Duration, out any) error {
	return c.decode(ctx, path, ttl, false, out)
}

func (c *Client) decode(ctx context.Context, path string, ttl time.Duration, fresh bool, out any) error {
	var env envelope
	fetch := c.api.GetJSON
	if fresh {
		fetch = c.api.RefreshJSON
	}
	if err := fetch(ctx, path, ttl, &env); err != nil {
		return err
	}
	if env.Code != 200 {
		return fmt.Errorf("aladhan %s: code %d (%s)", path, env.Code, env.Status)
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("aladhan %s: failed to decode data: %w", path, err)
	}
	return nil
}

// TimingsQuery selects one day's timetable for a city.
type TimingsQuery struct {
	City    string
	Country string
	Method  int
	// Date is the local calendar day; zero lets the server pick its own today.
	Date time.Time
	// Fresh skips the cache lookup; the fetched table still replaces the cached one.
	Fresh bool
}

func (q TimingsQuery) path() string {
	v := url.Values{}
	v.Set("city", q.City)
	v.Set("country", q.Country)
	v.Set("method", strconv.Itoa(q.Method))
	if q.Date.IsZero() {
		return "timingsByCity?" + v.Encode()
	}
	return "timingsByCity/" + q.Date.Format(constants.AladhanDateFormat) + "?" + v.Encode()
}

// TimingsByCity fetches one day's prayer times for a city. Only the five daily prayers and Sunrise are kept.
// Cached entries are keyed by date, so a day rollover always reaches the network.
func (c *Client) TimingsByCity(ctx context.Context, q TimingsQuery) (models.PrayerTimes, error) {
	var data struct {
		Timings map[string]string `json:"timings"`
	}
	if err := c.decode(ctx, q.path(), constants.TimingsCacheTTL, q.Fresh, &data); err != nil {
		return nil, err
	}

	times := make(models.PrayerTimes, len(keptTimings))
	for _, key := range keptTimings {
		if v, ok := data.Timings[key]; ok {
			times[key] = v
		}
	}
	for _, p := range constants.DailyPrayers {
		if _, ok := times[p]; !ok {
			return nil, fmt.Errorf("aladhan timings missing %s", p)
		}
	}
	return times, nil
}

// GToH converts one Gregorian date to the Hijri calendar.
func (c *Client) GToH(ctx context.Context, date time.Time) (DateInfo, error) {
	var info DateInfo
	path := "gToH?date=" + date.Format(constants.AladhanDateFormat)
	if err := c.get(ctx, path, constants.CalendarCacheTTL, &info); err != nil {
		return DateInfo{}, err
	}
	return info, nil
}

// GToHCalendar returns every day of a Gregorian month with its Hijri date.
func (c *Client) GToHCalendar(ctx context.Context, month time.Month, year int) ([]DateInfo, error) {
	var days []DateInfo
	path := fmt.Sprintf("gToHCalendar/%d/%d", int(month), year)
	if err := c.get(ctx, path, constants.CalendarCacheTTL, &days); err != nil {
		return nil, err
	}
	return days, nil
}
