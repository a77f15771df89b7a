package quran

import (
	"math/rand/v2"
	"time"

	"github.com/julianstephens/noor/internal/constants"
)

// GlobalAyahForTime maps a wall-clock minute to a verse index in 1..TotalAyahs.
// Every caller sees the same verse during the same local minute.
func GlobalAyahForTime(t time.Time) int {
	dayNumber := t.Year()*10000 + int(t.Month())*100 + t.Day() // YYYYMMDD
	minutesToday := t.Hour()*60 + t.Minute()
	seed := dayNumber*1440 + minutesToday
	return seed%constants.TotalAyahs + 1
}

// RandomGlobalAyah returns a uniformly random verse index in 1..TotalAyahs.
func RandomGlobalAyah() int {
	return rand.IntN(constants.TotalAyahs) + 1
}
