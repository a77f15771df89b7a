package stats

import (
	"fmt"
	"time"

	"github.com/julianstephens/noor/internal/constants"
	"github.com/julianstephens/noor/internal/models"
	"github.com/julianstephens/noor/internal/utils"
)

// Source provides the completion aggregates a summary is built from.
type Source interface {
	CountForDate(date string) (int, error)
	CountBetween(start, end string) (int, error)
	DailyCounts(start, end string) ([]models.DailyCount, error)
}

// Summary is the completion overview shown on the stats screen
type Summary struct {
	Date       string              `json:"date"`
	Today      int                 `json:"today"`
	MonthStart string              `json:"month_start"`
	Month      int                 `json:"month"`
	Days       []models.DailyCount `json:"days"` // newest first, one row per day
}

// AddDays shifts a YYYY-MM-DD date by delta calendar days.
func AddDays(date string, delta int) (string, error) {
	t, err := utils.ParseDate(date)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, delta).Format(constants.DateFormat), nil
}

// MonthStart returns the first day of date's month.
func MonthStart(date string) (string, error) {
	t, err := utils.ParseDate(date)
	if err != nil {
		return "", err
	}
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC).Format(constants.DateFormat), nil
}

// Build computes today's count, the month-to-date count and the last
// StatsWindowDays days ending at today, filling days without completions with zero.
func Build(src Source, today string) (Summary, error) {
	monthStart, err := MonthStart(today)
	if err != nil {
		return Summary{}, err
	}
	windowStart, err := AddDays(today, -(constants.StatsWindowDays - 1))
	if err != nil {
		return Summary{}, err
	}

	todayCount, err := src.CountForDate(today)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to count today's completions: %w", err)
	}
	monthCount, err := src.CountBetween(monthStart, today)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to count month completions: %w", err)
	}
	counts, err := src.DailyCounts(windowStart, today)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to load daily counts: %w", err)
	}

	byDate := make(map[string]int, len(counts))
	for _, c := range counts {
		byDate[c.Date] = c.Count
	}

	days := make([]models.DailyCount, 0, constants.StatsWindowDays)
	for i := 0; i < constants.StatsWindowDays; i++ {
		d, err := AddDays(today, -i)
		if err != nil {
			return Summary{}, err
		}
		days = append(days, models.DailyCount{Date: d, Count: byDate[d]})
	}

	return Summary{
		Date:       today,
		Today:      todayCount,
		MonthStart: monthStart,
		Month:      monthCount,
		Days:       days,
	}, nil
}
