// Package hijri builds Hijri calendar views on top of the Aladhan conversion API.
package hijri

import (
	"context"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/julianstephens/noor/internal/aladhan"
	"github.com/julianstephens/noor/internal/logger"
	"github.com/julianstephens/noor/internal/models"
)

const (
	monthsAhead      = 12
	maxParallelFetch = 4
	maxMilestones    = 3
)

// Source converts Gregorian dates to Hijri dates.
type Source interface {
	GToH(ctx context.Context, date time.Time) (aladhan.DateInfo, error)
	GToHCalendar(ctx context.Context, month time.Month, year int) ([]aladhan.DateInfo, error)
}

type milestoneRule struct {
	title string
	slug  string
	month int
	day   int
}

var milestoneRules = []milestoneRule{
	{"Ramadan", SlugRamadan, 9, 1},
	{"Dhul Hijjah", SlugDhulHijjah, 12, 1},
	{"Day of Arafah", SlugArafah, 12, 9},
	{"Eid al-Adha", SlugEidAdha, 12, 10},
	{"Islamic New Year", SlugNewYear, 1, 1},
}

type Calendar struct {
	src Source
}

func New(src Source) *Calendar {
	return &Calendar{src: src}
}

// Today returns display labels for now's date in both calendars.
func (c *Calendar) Today(ctx context.Context, now time.Time) (models.HijriInfo, error) {
	info, err := c.src.GToH(ctx, now)
	if err != nil {
		return models.HijriInfo{}, fmt.Errorf("failed to convert today's date: %w", err)
	}
	return models.HijriInfo{
		HijriLabel:     fmt.Sprintf("%d %s %d", info.Hijri.Day, info.Hijri.Month.En, info.Hijri.Year),
		GregorianLabel: fmt.Sprintf("%d %s %d", info.Gregorian.Day, info.Gregorian.Month.En, info.Gregorian.Year),
	}, nil
}

// UpcomingMilestones scans the current and the next eleven Gregorian months and returns the
// three soonest milestones, each at its first upcoming date. Dates before today are skipped.
func (c *Calendar) UpcomingMilestones(ctx context.Context, now time.Time) ([]models.Milestone, error) {
	loc := now.Location()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)

	months := make([][]aladhan.DateInfo, monthsAhead)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelFetch)
	for i := 0; i < monthsAhead; i++ {
		m := first.AddDate(0, i, 0)
		g.Go(func() error {
			days, err := c.src.GToHCalendar(gctx, m.Month(), m.Year())
			if err != nil {
				return fmt.Errorf("failed to fetch calendar for %s: %w", m.Format("2006-01"), err)
			}
			months[i] = days
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	found := make(map[string]models.Milestone)
	for _, days := range months {
		for _, d := range days {
			gDate := d.Gregorian.Time(loc)
			if gDate.Before(today) {
				continue
			}
			for _, rule := range milestoneRules {
				if int(d.Hijri.Month.Number) != rule.month || int(d.Hijri.Day) != rule.day {
					continue
				}
				if prev, ok := found[rule.slug]; ok && !gDate.Before(prev.Date) {
					continue
				}
				found[rule.slug] = models.Milestone{
					Title:     rule.title,
					Slug:      rule.slug,
					Date:      gDate,
					DateLabel: fmt.Sprintf("%s • %d %s %d", d.Gregorian.Date, d.Hijri.Day, d.Hijri.Month.En, d.Hijri.Year),
					InDays:    daysBetween(today, gDate),
				}
			}
		}
	}

	out := make([]models.Milestone, 0, len(found))
	for _, m := range found {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	if len(out) > maxMilestones {
		out = out[:maxMilestones]
	}

	logger.Debug("Computed upcoming milestones", "count", len(out))
	return out, nil
}

// daysBetween counts calendar days, so DST shifts do not change the result.
func daysBetween(from, to time.Time) int {
	a := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}
