package hijri

import (
	"math"
	"time"
)

const synodicMonthDays = 29.530588853

// referenceNewMoon is a known new moon used as the phase origin.
var referenceNewMoon = time.Date(2000, time.January, 6, 18, 14, 0, 0, time.UTC)

var moonEmojis = []string{"🌑", "🌒", "🌓", "🌔", "🌕", "🌖", "🌗", "🌘"}

// MoonPhase approximates the lunar phase at t as an index 0..7, where 0 is new moon and 4 is full moon.
func MoonPhase(t time.Time) int {
	days := t.Sub(referenceNewMoon).Hours() / 24
	phase := math.Mod(days, synodicMonthDays)
	if phase < 0 {
		phase += synodicMonthDays
	}
	return int(math.Floor(phase/synodicMonthDays*8)) % 8
}

// MoonEmoji returns the emoji for a phase index, or a crescent for anything out of range.
func MoonEmoji(idx int) string {
	if idx < 0 || idx >= len(moonEmojis) {
		return "🌙"
	}
	return moonEmojis[idx]
}
