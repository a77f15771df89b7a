package prayer

import (
	"testing"
	"time"

	"github.com/julianstephens/noor/internal/models"
)

func TestNextOccurrence(t *testing.T) {
	day := func(h, m int) time.Time {
		return time.Date(2024, 3, 10, h, m, 0, 0, time.UTC)
	}
	tomorrow := func(h, m int) time.Time {
		return time.Date(2024, 3, 11, h, m, 0, 0, time.UTC)
	}

	tests := []struct {
		name string
		hhmm string
		now  time.Time
		want time.Time
	}{
		{"later today", "13:00", day(10, 0), day(13, 0)},
		{"already passed", "13:00", day(14, 0), tomorrow(13, 0)},
		{"exactly now rolls over", "05:30", day(5, 30), tomorrow(5, 30)},
		{"one second before", "05:30", day(5, 30).Add(-time.Second), day(5, 30)},
		{"timezone suffix", "04:50 (EET)", day(4, 0), day(4, 50)},
		{"midnight", "00:00", day(0, 0), tomorrow(0, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NextOccurrence(tt.hhmm, tt.now)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("NextOccurrence(%q, %v) = %v, want %v", tt.hhmm, tt.now, got, tt.want)
			}
		})
	}
}

func TestNextOccurrenceKeepsLocation(t *testing.T) {
	loc := time.FixedZone("EET", 2*60*60)
	now := time.Date(2024, 12, 31, 23, 0, 0, 0, loc)

	got, err := NextOccurrence("05:30", now)
	if err != nil {
		t.Fatal(err)
	}
	want := time.Date(2025, 1, 1, 5, 30, 0, 0, loc)
	if !got.Equal(want) || got.Location() != loc {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestNextOccurrenceInvalid(t *testing.T) {
	for _, in := range []string{"", "  ", "25:00", "noon", "5"} {
		if _, err := NextOccurrence(in, time.Now()); err == nil {
			t.Errorf("expected error for %q", in)
		}
	}
}

func TestNextPrayer(t *testing.T) {
	times := models.PrayerTimes{
		"Fajr":    "04:50",
		"Sunrise": "06:20",
		"Dhuhr":   "12:05",
		"Asr":     "15:30",
		"Maghrib": "18:10",
		"Isha":    "19:40",
	}

	tests := []struct {
		name    string
		now     time.Time
		wantKey string
		wantAt  time.Time
	}{
		{"before fajr", time.Date(2024, 3, 10, 4, 0, 0, 0, time.UTC), "Fajr", time.Date(2024, 3, 10, 4, 50, 0, 0, time.UTC)},
		{"after fajr", time.Date(2024, 3, 10, 5, 0, 0, 0, time.UTC), "Dhuhr", time.Date(2024, 3, 10, 12, 5, 0, 0, time.UTC)},
		{"at asr", time.Date(2024, 3, 10, 15, 30, 0, 0, time.UTC), "Maghrib", time.Date(2024, 3, 10, 18, 10, 0, 0, time.UTC)},
		{"after isha", time.Date(2024, 3, 10, 22, 0, 0, 0, time.UTC), "Fajr", time.Date(2024, 3, 11, 4, 50, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, at, err := NextPrayer(times, tt.now)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if key != tt.wantKey || !at.Equal(tt.wantAt) {
				t.Errorf("got %s at %v, want %s at %v", key, at, tt.wantKey, tt.wantAt)
			}
		})
	}

	if _, _, err := NextPrayer(models.PrayerTimes{}, time.Now()); err != ErrTimesNotLoaded {
		t.Errorf("expected ErrTimesNotLoaded, got %v", err)
	}
}

func TestLifecycleTransition(t *testing.T) {
	var l Lifecycle
	steps := []struct {
		state State
		want  bool
	}{
		{StateActive, true},
		{StateActive, false},
		{StateInactive, false},
		{StateActive, true},
		{StateBackground, false},
		{StateInactive, false},
		{StateActive, true},
	}
	for i, s := range steps {
		if got := l.Transition(s.state); got != s.want {
			t.Errorf("step %d (%s): got %v, want %v", i, s.state, got, s.want)
		}
	}
	if l.State() != StateActive {
		t.Errorf("expected active, got %s", l.State())
	}

	var background Lifecycle
	if !background.Transition(StateBackground) {
		t.Error("first delivery should count as the initial mount")
	}
}
