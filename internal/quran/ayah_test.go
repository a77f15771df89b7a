package quran

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/julianstephens/noor/internal/constants"
)

func TestGlobalAyahForTime(t *testing.T) {
	loc := time.FixedZone("CET", 3600)

	t.Run("known value", func(t *testing.T) {
		// 20240310*1440 + 510 = 29146046910, which is 5614 mod 6236
		at := time.Date(2024, 3, 10, 8, 30, 0, 0, loc)
		assert.Equal(t, 5615, GlobalAyahForTime(at))
	})

	t.Run("stable within a minute", func(t *testing.T) {
		a := time.Date(2024, 3, 10, 8, 30, 0, 0, loc)
		b := time.Date(2024, 3, 10, 8, 30, 59, 999, loc)
		assert.Equal(t, GlobalAyahForTime(a), GlobalAyahForTime(b))
	})

	t.Run("changes with the minute", func(t *testing.T) {
		a := time.Date(2024, 3, 10, 8, 30, 0, 0, loc)
		assert.NotEqual(t, GlobalAyahForTime(a), GlobalAyahForTime(a.Add(time.Minute)))
	})

	t.Run("always in range", func(t *testing.T) {
		start := time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)
		for i := 0; i < 3*24*60; i += 7 {
			n := GlobalAyahForTime(start.Add(time.Duration(i) * time.Minute))
			if n < 1 || n > constants.TotalAyahs {
				t.Fatalf("GlobalAyahForTime() = %d, out of range", n)
			}
		}
	})
}

func TestRandomGlobalAyahInRange(t *testing.T) {
	for i := 0; i < 1000; i++ {
		n := RandomGlobalAyah()
		if n < 1 || n > constants.TotalAyahs {
			t.Fatalf("RandomGlobalAyah() = %d, out of range", n)
		}
	}
}
