// Package prayer keeps local prayer reminders in sync with the fetched prayer-time table.
package prayer

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/julianstephens/noor/internal/constants"
	"github.com/julianstephens/noor/internal/models"
)

// ParseClock parses an "HH:MM" time of day. Trailing annotations such as " (EET)" are ignored.
func ParseClock(hhmm string) (hour, minute int, err error) {
	fields := strings.Fields(hhmm)
	if len(fields) == 0 {
		return 0, 0, fmt.Errorf("empty prayer time")
	}
	t, err := time.Parse(constants.TimeFormat, fields[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid prayer time %q: %w", hhmm, err)
	}
	return t.Hour(), t.Minute(), nil
}

// NextOccurrence returns the next instant strictly after now at the given time of day, in now's location.
func NextOccurrence(hhmm string, now time.Time) (time.Time, error) {
	hour, minute, err := ParseClock(hhmm)
	if err != nil {
		return time.Time{}, err
	}
	y, m, d := now.Date()
	candidate := time.Date(y, m, d, hour, minute, 0, 0, now.Location())
	if !candidate.After(now) {
		candidate = time.Date(y, m, d+1, hour, minute, 0, 0, now.Location())
	}
	return candidate, nil
}

// NextPrayer returns the first daily prayer still ahead of now today, or tomorrow's Fajr when none remain.
func NextPrayer(times models.PrayerTimes, now time.Time) (string, time.Time, error) {
	y, m, d := now.Date()
	for _, key := range constants.DailyPrayers {
		hhmm, ok := times[key]
		if !ok {
			continue
		}
		hour, minute, err := ParseClock(hhmm)
		if err != nil {
			return "", time.Time{}, fmt.Errorf("%s: %w", key, err)
		}
		at := time.Date(y, m, d, hour, minute, 0, 0, now.Location())
		if at.After(now) {
			return key, at, nil
		}
	}

	fajr, ok := times[constants.DailyPrayers[0]]
	if !ok {
		return "", time.Time{}, ErrTimesNotLoaded
	}
	at, err := NextOccurrence(fajr, now)
	if err != nil {
		return "", time.Time{}, err
	}
	return constants.DailyPrayers[0], at, nil
}

// IsPrayer reports whether key is one of the five daily prayers.
func IsPrayer(key string) bool {
	return slices.Contains(constants.DailyPrayers, key)
}
