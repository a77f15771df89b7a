package stats

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/noor/internal/constants"
	"github.com/julianstephens/noor/internal/habits"
	"github.com/julianstephens/noor/internal/models"
	"github.com/julianstephens/noor/internal/storage/sqlite"
)

func TestAddDays(t *testing.T) {
	tests := []struct {
		date  string
		delta int
		want  string
	}{
		{"2024-03-01", -1, "2024-02-29"},
		{"2023-03-01", -1, "2023-02-28"},
		{"2024-12-31", 1, "2025-01-01"},
		{"2024-03-10", 0, "2024-03-10"},
		{"2024-03-10", -13, "2024-02-26"},
	}
	for _, tt := range tests {
		got, err := AddDays(tt.date, tt.delta)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "AddDays(%s, %d)", tt.date, tt.delta)
	}

	_, err := AddDays("not-a-date", 1)
	assert.Error(t, err)
}

func TestMonthStart(t *testing.T) {
	got, err := MonthStart("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-01", got)

	got, err = MonthStart("2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", got)
}

func TestBuild(t *testing.T) {
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "noor.db"))
	require.NoError(t, store.Init())
	defer store.Close()
	tr := habits.New(store)

	a, _, err := tr.Create("a", "")
	require.NoError(t, err)
	b, _, err := tr.Create("b", "")
	require.NoError(t, err)

	marks := []struct {
		id   int64
		date string
	}{
		{a, "2024-03-05"},
		{b, "2024-03-05"},
		{a, "2024-03-01"},
		{a, "2024-02-28"}, // previous month, inside the 14-day window
		{a, "2024-02-01"}, // outside the window
	}
	for _, m := range marks {
		_, err := tr.Toggle(m.id, m.date)
		require.NoError(t, err)
	}

	summary, err := Build(tr, "2024-03-05")
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Today)
	assert.Equal(t, "2024-03-01", summary.MonthStart)
	assert.Equal(t, 3, summary.Month)
	require.Len(t, summary.Days, constants.StatsWindowDays)
	assert.Equal(t, "2024-03-05", summary.Days[0].Date)
	assert.Equal(t, "2024-02-21", summary.Days[len(summary.Days)-1].Date)

	byDate := map[string]int{}
	for _, d := range summary.Days {
		byDate[d.Date] = d.Count
	}
	assert.Equal(t, 2, byDate["2024-03-05"])
	assert.Equal(t, 1, byDate["2024-03-01"])
	assert.Equal(t, 1, byDate["2024-02-28"])
	assert.Equal(t, 0, byDate["2024-03-04"])
	_, ok := byDate["2024-02-01"]
	assert.False(t, ok)

	head := []models.DailyCount{
		{Date: "2024-03-05", Count: 2},
		{Date: "2024-03-04", Count: 0},
		{Date: "2024-03-03", Count: 0},
		{Date: "2024-03-02", Count: 0},
		{Date: "2024-03-01", Count: 1},
		{Date: "2024-02-29", Count: 0},
		{Date: "2024-02-28", Count: 1},
	}
	if diff := cmp.Diff(head, summary.Days[:len(head)]); diff != "" {
		t.Errorf("first week mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildEmpty(t *testing.T) {
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "noor.db"))
	require.NoError(t, store.Init())
	defer store.Close()

	summary, err := Build(habits.New(store), "2024-01-01")
	require.NoError(t, err)
	assert.Zero(t, summary.Today)
	assert.Zero(t, summary.Month)
	require.Len(t, summary.Days, constants.StatsWindowDays)
	for _, d := range summary.Days {
		assert.Zero(t, d.Count)
	}
	assert.Equal(t, "2023-12-19", summary.Days[len(summary.Days)-1].Date)
}
