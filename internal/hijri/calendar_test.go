package hijri

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/noor/internal/aladhan"
)

type hijriDay struct{ month, day int }

// fakeSource returns whole Gregorian months; days listed in marks get the given Hijri date,
// every other day maps to 15 Jumada al-Awwal.
type fakeSource struct {
	marks map[string]hijriDay
	fail  map[string]error

	mu        sync.Mutex
	requested []string
}

func (f *fakeSource) GToH(_ context.Context, date time.Time) (aladhan.DateInfo, error) {
	return aladhan.DateInfo{
		Hijri: aladhan.HijriDate{Day: 29, Month: aladhan.Month{Number: 8, En: "Shaʿbān"}, Year: 1445},
		Gregorian: aladhan.GregorianDate{
			Day:   aladhan.Int(date.Day()),
			Month: aladhan.Month{Number: aladhan.Int(date.Month()), En: date.Month().String()},
			Year:  aladhan.Int(date.Year()),
		},
	}, nil
}

func (f *fakeSource) GToHCalendar(_ context.Context, month time.Month, year int) ([]aladhan.DateInfo, error) {
	key := fmt.Sprintf("%d-%02d", year, int(month))
	f.mu.Lock()
	f.requested = append(f.requested, key)
	f.mu.Unlock()

	if err := f.fail[key]; err != nil {
		return nil, err
	}

	var out []aladhan.DateInfo
	for d := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC); d.Month() == month; d = d.AddDate(0, 0, 1) {
		h := hijriDay{5, 15}
		if m, ok := f.marks[d.Format("2006-01-02")]; ok {
			h = m
		}
		out = append(out, aladhan.DateInfo{
			Hijri: aladhan.HijriDate{Day: aladhan.Int(h.day), Month: aladhan.Month{Number: aladhan.Int(h.month), En: "M"}, Year: 1445},
			Gregorian: aladhan.GregorianDate{
				Date:  d.Format("02-01-2006"),
				Day:   aladhan.Int(d.Day()),
				Month: aladhan.Month{Number: aladhan.Int(d.Month())},
				Year:  aladhan.Int(d.Year()),
			},
		})
	}
	return out, nil
}

func TestUpcomingMilestones(t *testing.T) {
	src := &fakeSource{marks: map[string]hijriDay{
		"2024-03-01": {1, 1}, // before today
		"2024-03-11": {9, 1},
		"2024-06-07": {12, 1},
		"2024-06-15": {12, 9},
		"2024-06-16": {12, 10},
		"2024-07-07": {1, 1},
		"2025-02-28": {9, 1}, // a later Ramadan must not replace the first
	}}
	now := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)

	got, err := New(src).UpcomingMilestones(context.Background(), now)
	require.NoError(t, err)
	require.Len(t, got, maxMilestones)

	var titles []string
	for _, m := range got {
		titles = append(titles, m.Title)
	}
	assert.Equal(t, []string{"Ramadan", "Dhul Hijjah", "Day of Arafah"}, titles)

	assert.Equal(t, SlugRamadan, got[0].Slug)
	assert.Equal(t, 6, got[0].InDays)
	assert.Equal(t, time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC), got[0].Date)
	assert.Equal(t, "11-03-2024 • 1 M 1445", got[0].DateLabel)
	assert.Equal(t, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), got[2].Date)

	assert.Len(t, src.requested, monthsAhead)
	assert.ElementsMatch(t, []string{
		"2024-03", "2024-04", "2024-05", "2024-06", "2024-07", "2024-08",
		"2024-09", "2024-10", "2024-11", "2024-12", "2025-01", "2025-02",
	}, src.requested)
}

func TestUpcomingMilestonesKeepsSoonest(t *testing.T) {
	src := &fakeSource{marks: map[string]hijriDay{
		"2024-07-07": {1, 1},
		"2024-06-16": {12, 10},
		"2024-03-11": {9, 1},
		"2024-06-15": {12, 9},
	}}
	now := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)

	got, err := New(src).UpcomingMilestones(context.Background(), now)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, SlugRamadan, got[0].Slug)
	assert.Equal(t, SlugArafah, got[1].Slug)
	assert.Equal(t, SlugEidAdha, got[2].Slug)
}

func TestUpcomingMilestonesIncludesToday(t *testing.T) {
	src := &fakeSource{marks: map[string]hijriDay{"2024-03-11": {9, 1}}}
	now := time.Date(2024, 3, 11, 23, 0, 0, 0, time.UTC)

	got, err := New(src).UpcomingMilestones(context.Background(), now)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 0, got[0].InDays)
}

func TestUpcomingMilestonesFetchError(t *testing.T) {
	boom := errors.New("boom")
	src := &fakeSource{fail: map[string]error{"2024-08": boom}}

	_, err := New(src).UpcomingMilestones(context.Background(), time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, boom)
}

func TestToday(t *testing.T) {
	info, err := New(&fakeSource{}).Today(context.Background(), time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "29 Shaʿbān 1445", info.HijriLabel)
	assert.Equal(t, "10 March 2024", info.GregorianLabel)
}

func TestDaysBetween(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Tirane")
	require.NoError(t, err)
	// spans the March DST change
	from := time.Date(2024, 3, 30, 0, 0, 0, 0, loc)
	to := time.Date(2024, 4, 2, 0, 0, 0, 0, loc)
	assert.Equal(t, 3, daysBetween(from, to))
}
