package habits

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/noor/internal/cli"
	"github.com/julianstephens/noor/internal/storage/sqlite"
)

func setupTestDB(t *testing.T) *cli.Context {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "noor.db"))
	require.NoError(t, store.Init())
	t.Cleanup(func() { store.Close() })

	settings, err := store.GetSettings()
	require.NoError(t, err)
	settings.Timezone = "UTC"
	require.NoError(t, store.SaveSettings(settings))

	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	return &cli.Context{Store: store, Now: func() time.Time { return now }}
}

func TestHabitAddEditDelete(t *testing.T) {
	ctx := setupTestDB(t)

	require.NoError(t, (&HabitAddCmd{Name: "  Walk  ", Emoji: "🚶"}).Run(ctx))
	require.NoError(t, (&HabitAddCmd{Name: "   "}).Run(ctx))

	list, err := ctx.Store.ListHabits()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Walk", list[0].Name)

	newName := "Evening walk"
	empty := ""
	require.NoError(t, (&HabitEditCmd{Habit: "walk", Name: &newName, Emoji: &empty}).Run(ctx))

	h, err := ctx.Store.GetHabit(list[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Evening walk", h.Name)
	assert.Nil(t, h.Emoji)

	blank := " "
	require.NoError(t, (&HabitEditCmd{Habit: "Evening walk", Name: &blank}).Run(ctx))
	h, err = ctx.Store.GetHabit(list[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Evening walk", h.Name)

	require.NoError(t, (&HabitDeleteCmd{Habit: "Evening walk"}).Run(ctx))
	list, err = ctx.Store.ListHabits()
	require.NoError(t, err)
	assert.Empty(t, list)

	assert.Error(t, (&HabitDeleteCmd{Habit: "999"}).Run(ctx))
	assert.Error(t, (&HabitDeleteCmd{Habit: "nope"}).Run(ctx))
}

func TestHabitToggleUsesConfiguredToday(t *testing.T) {
	ctx := setupTestDB(t)
	require.NoError(t, (&HabitSeedCmd{}).Run(ctx))

	require.NoError(t, (&HabitToggleCmd{Habit: "fajr"}).Run(ctx))
	n, err := ctx.Store.CountCompletionsForDate("2024-03-10")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.NoError(t, (&HabitToggleCmd{Habit: "Fajr", Date: "2024-03-09"}).Run(ctx))
	require.NoError(t, (&HabitToggleCmd{Habit: "Fajr"}).Run(ctx))
	n, err = ctx.Store.CountCompletionsForDate("2024-03-10")
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	assert.Error(t, (&HabitToggleCmd{Habit: "Fajr", Date: "2024-02-30"}).Run(ctx))
	require.NoError(t, (&HabitTodayCmd{}).Run(ctx))
	require.NoError(t, (&HabitListCmd{}).Run(ctx))
}

func TestHabitShow(t *testing.T) {
	ctx := setupTestDB(t)
	require.NoError(t, (&HabitSeedCmd{}).Run(ctx))
	require.NoError(t, (&HabitToggleCmd{Habit: "Fajr"}).Run(ctx))
	require.NoError(t, (&HabitToggleCmd{Habit: "Fajr", Date: "2024-03-04"}).Run(ctx))

	require.NoError(t, (&HabitShowCmd{Habit: "fajr", Days: 7}).Run(ctx))
	require.NoError(t, (&HabitShowCmd{Habit: "Fajr", Days: 1, Date: "2024-03-04"}).Run(ctx))

	assert.Error(t, (&HabitShowCmd{Habit: "Fajr", Days: 0}).Run(ctx))
	assert.Error(t, (&HabitShowCmd{Habit: "Fajr", Days: 7, Date: "2024-13-01"}).Run(ctx))
	assert.Error(t, (&HabitShowCmd{Habit: "nope", Days: 7}).Run(ctx))
}

func TestStatsCmd(t *testing.T) {
	ctx := setupTestDB(t)
	require.NoError(t, (&HabitSeedCmd{}).Run(ctx))
	require.NoError(t, (&HabitToggleCmd{Habit: "Asr"}).Run(ctx))

	require.NoError(t, (&StatsCmd{}).Run(ctx))
	assert.Error(t, (&StatsCmd{Date: "yesterday"}).Run(ctx))
}

func TestBar(t *testing.T) {
	assert.Empty(t, bar(0, 5))
	assert.Empty(t, bar(3, 0))
	assert.NotEmpty(t, bar(1, 100))
}

func TestHabitAddWithoutNameNeedsTerminal(t *testing.T) {
	ctx := setupTestDB(t)
	// go test does not attach a terminal to stdin
	assert.Error(t, (&HabitAddCmd{}).Run(ctx))

	list, err := ctx.Store.ListHabits()
	require.NoError(t, err)
	assert.Empty(t, list)
}
