package sqlite

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/noor/internal/constants"
	"github.com/julianstephens/noor/internal/models"
	"github.com/julianstephens/noor/internal/storage"
)

var _ storage.Provider = (*Store)(nil)

// setupTestStore creates an initialized SQLite store in a temp directory
func setupTestStore(t *testing.T) *Store {
	t.Helper()
	store := NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func strPtr(s string) *string { return &s }

func TestInitWritesDefaultSettings(t *testing.T) {
	store := setupTestStore(t)

	settings, err := store.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings() error: %v", err)
	}
	if settings.City != constants.DefaultCity || settings.Country != constants.DefaultCountry {
		t.Errorf("settings location = %s/%s, want %s/%s", settings.City, settings.Country, constants.DefaultCity, constants.DefaultCountry)
	}
	if settings.Method != constants.DefaultMethod {
		t.Errorf("settings.Method = %d, want %d", settings.Method, constants.DefaultMethod)
	}
	if settings.NotificationPermission != constants.PermissionUndetermined {
		t.Errorf("settings.NotificationPermission = %q, want %q", settings.NotificationPermission, constants.PermissionUndetermined)
	}

	for _, table := range []string{"settings", "habits", "completions", "kv", "scheduled_notifications", "schema_version"} {
		exists, err := store.tableExists(table)
		if err != nil {
			t.Fatalf("tableExists(%s) error: %v", table, err)
		}
		if !exists {
			t.Errorf("table %s missing after Init", table)
		}
	}
}

func TestInitIsIdempotent(t *testing.T) {
	store := setupTestStore(t)

	settings, _ := store.GetSettings()
	settings.City = "Cairo"
	if err := store.SaveSettings(settings); err != nil {
		t.Fatalf("SaveSettings() error: %v", err)
	}
	if err := store.Init(); err != nil {
		t.Fatalf("second Init() error: %v", err)
	}
	got, _ := store.GetSettings()
	if got.City != "Cairo" {
		t.Errorf("Init overwrote settings: City = %q", got.City)
	}
}

func TestLoad(t *testing.T) {
	t.Run("missing database", func(t *testing.T) {
		store := NewStore(filepath.Join(t.TempDir(), "missing.db"))
		if err := store.Load(); err == nil {
			t.Fatal("Load() on missing file should fail")
		}
	})

	t.Run("initialized database", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "noor.db")
		first := NewStore(path)
		if err := first.Init(); err != nil {
			t.Fatalf("Init() error: %v", err)
		}
		first.Close()

		second := NewStore(path)
		defer second.Close()
		if err := second.Load(); err != nil {
			t.Fatalf("Load() error: %v", err)
		}
		if second.GetDB() == nil {
			t.Error("GetDB() = nil after Load")
		}
	})
}

func TestHabitCRUD(t *testing.T) {
	store := setupTestStore(t)

	id, err := store.InsertHabit("Read", strPtr("📚"))
	if err != nil {
		t.Fatalf("InsertHabit() error: %v", err)
	}

	h, err := store.GetHabit(id)
	if err != nil {
		t.Fatalf("GetHabit() error: %v", err)
	}
	if h.Name != "Read" || h.DisplayEmoji() != "📚" {
		t.Errorf("habit = %+v", h)
	}
	if h.ScheduleType != models.ScheduleDaily || h.ScheduleValue != models.DefaultScheduleValue {
		t.Errorf("schedule = %s/%s, want daily/{}", h.ScheduleType, h.ScheduleValue)
	}
	if !h.IsActive {
		t.Error("new habit should be active")
	}
	if h.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}

	if err := store.UpdateHabit(id, "Read Qur’an", nil); err != nil {
		t.Fatalf("UpdateHabit() error: %v", err)
	}
	h, _ = store.GetHabit(id)
	if h.Name != "Read Qur’an" || h.Emoji != nil {
		t.Errorf("updated habit = %+v, want name replaced and emoji cleared", h)
	}
	if h.ID != id {
		t.Errorf("habit id changed on update: %d -> %d", id, h.ID)
	}

	if err := store.DeleteHabit(id); err != nil {
		t.Fatalf("DeleteHabit() error: %v", err)
	}
	if _, err := store.GetHabit(id); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("GetHabit() after delete error = %v, want ErrNotFound", err)
	}
}

func TestListHabitsOrder(t *testing.T) {
	store := setupTestStore(t)

	var ids []int64
	for _, name := range []string{"a", "b", "c"} {
		id, err := store.InsertHabit(name, nil)
		if err != nil {
			t.Fatalf("InsertHabit() error: %v", err)
		}
		ids = append(ids, id)
	}

	habits, err := store.ListHabits()
	if err != nil {
		t.Fatalf("ListHabits() error: %v", err)
	}
	if len(habits) != 3 {
		t.Fatalf("len(habits) = %d, want 3", len(habits))
	}
	for i, h := range habits {
		if want := ids[len(ids)-1-i]; h.ID != want {
			t.Errorf("habits[%d].ID = %d, want %d (newest first)", i, h.ID, want)
		}
	}
}

func TestListHabitsWithToday(t *testing.T) {
	store := setupTestStore(t)

	a, _ := store.InsertHabit("a", nil)
	b, _ := store.InsertHabit("b", nil)
	inactive, _ := store.InsertHabit("inactive", nil)
	if _, err := store.db.Exec(`UPDATE habits SET is_active = 0 WHERE id = ?`, inactive); err != nil {
		t.Fatalf("failed to deactivate habit: %v", err)
	}

	if _, err := store.ToggleCompletion(a, "2024-03-10"); err != nil {
		t.Fatalf("ToggleCompletion() error: %v", err)
	}
	if _, err := store.ToggleCompletion(b, "2024-03-09"); err != nil {
		t.Fatalf("ToggleCompletion() error: %v", err)
	}

	habits, err := store.ListHabitsWithToday("2024-03-10")
	if err != nil {
		t.Fatalf("ListHabitsWithToday() error: %v", err)
	}
	if len(habits) != 2 {
		t.Fatalf("len(habits) = %d, want 2 active habits", len(habits))
	}
	done := map[int64]bool{}
	for _, h := range habits {
		done[h.ID] = h.DoneToday
	}
	if !done[a] {
		t.Error("habit a should be done on 2024-03-10")
	}
	if done[b] {
		t.Error("habit b completion on another day must not count")
	}
}

func TestToggleCompletionRoundTrip(t *testing.T) {
	store := setupTestStore(t)
	id, _ := store.InsertHabit("Fajr", nil)
	date := "2024-03-10"

	done, err := store.ToggleCompletion(id, date)
	if err != nil || !done {
		t.Fatalf("first toggle = %v, %v; want true, nil", done, err)
	}
	n, _ := store.CountCompletionsForDate(date)
	if n != 1 {
		t.Errorf("count after first toggle = %d, want 1", n)
	}

	done, err = store.ToggleCompletion(id, date)
	if err != nil || done {
		t.Fatalf("second toggle = %v, %v; want false, nil", done, err)
	}
	n, _ = store.CountCompletionsForDate(date)
	if n != 0 {
		t.Errorf("count after second toggle = %d, want 0", n)
	}
}

func TestToggleCompletionUnknownHabit(t *testing.T) {
	store := setupTestStore(t)
	if _, err := store.ToggleCompletion(999, "2024-03-10"); err == nil {
		t.Error("ToggleCompletion() on unknown habit should violate the foreign key")
	}
}

func TestCountsAndDailyCounts(t *testing.T) {
	store := setupTestStore(t)

	var ids []int64
	for _, name := range []string{"a", "b", "c"} {
		id, _ := store.InsertHabit(name, nil)
		ids = append(ids, id)
	}

	marks := map[string][]int64{
		"2024-02-28": {ids[0]},
		"2024-03-01": {ids[0], ids[1], ids[2]},
		"2024-03-02": {ids[1]},
		"2024-03-05": {ids[0], ids[2]},
		"2024-03-06": {ids[2]},
	}
	for date, habitIDs := range marks {
		for _, id := range habitIDs {
			if _, err := store.ToggleCompletion(id, date); err != nil {
				t.Fatalf("ToggleCompletion() error: %v", err)
			}
		}
	}

	for date, habitIDs := range marks {
		n, err := store.CountCompletionsForDate(date)
		if err != nil {
			t.Fatalf("CountCompletionsForDate() error: %v", err)
		}
		if n != len(habitIDs) {
			t.Errorf("CountCompletionsForDate(%s) = %d, want %d", date, n, len(habitIDs))
		}
	}

	start, end := "2024-03-01", "2024-03-05"
	total, err := store.CountCompletionsBetween(start, end)
	if err != nil {
		t.Fatalf("CountCompletionsBetween() error: %v", err)
	}
	if total != 6 {
		t.Errorf("CountCompletionsBetween() = %d, want 6 (inclusive)", total)
	}

	counts, err := store.DailyCountsBetween(start, end)
	if err != nil {
		t.Fatalf("DailyCountsBetween() error: %v", err)
	}
	sum := 0
	prev := "9999-12-31"
	for _, dc := range counts {
		if dc.Date < start || dc.Date > end {
			t.Errorf("DailyCountsBetween() returned %s outside [%s, %s]", dc.Date, start, end)
		}
		if dc.Date >= prev {
			t.Errorf("DailyCountsBetween() not descending: %s after %s", dc.Date, prev)
		}
		prev = dc.Date
		sum += dc.Count
	}
	if sum != total {
		t.Errorf("sum of daily counts = %d, want %d", sum, total)
	}
	if len(counts) != 3 {
		t.Errorf("len(counts) = %d, want 3 days with completions", len(counts))
	}
}

func TestDeleteHabitCascades(t *testing.T) {
	store := setupTestStore(t)
	id, _ := store.InsertHabit("a", nil)
	other, _ := store.InsertHabit("b", nil)

	for _, date := range []string{"2024-03-01", "2024-03-02", "2024-03-03"} {
		store.ToggleCompletion(id, date)
	}
	store.ToggleCompletion(other, "2024-03-01")

	if err := store.DeleteHabit(id); err != nil {
		t.Fatalf("DeleteHabit() error: %v", err)
	}

	var orphans int
	if err := store.db.QueryRow(`SELECT COUNT(*) FROM completions WHERE habit_id = ?`, id).Scan(&orphans); err != nil {
		t.Fatalf("count orphans: %v", err)
	}
	if orphans != 0 {
		t.Errorf("found %d orphan completions after delete", orphans)
	}
	n, _ := store.CountCompletionsBetween("2024-03-01", "2024-03-03")
	if n != 1 {
		t.Errorf("remaining completions = %d, want 1", n)
	}
}

func TestGetCompletionsForHabit(t *testing.T) {
	store := setupTestStore(t)
	id, _ := store.InsertHabit("a", nil)
	for _, date := range []string{"2024-03-01", "2024-03-04", "2024-03-09"} {
		store.ToggleCompletion(id, date)
	}

	completions, err := store.GetCompletionsForHabit(id, "2024-03-01", "2024-03-05")
	if err != nil {
		t.Fatalf("GetCompletionsForHabit() error: %v", err)
	}
	if len(completions) != 2 {
		t.Fatalf("len(completions) = %d, want 2", len(completions))
	}
	if completions[0].Date != "2024-03-04" || completions[0].Count != 1 {
		t.Errorf("completions[0] = %+v", completions[0])
	}
}

func TestSeedIfEmpty(t *testing.T) {
	store := setupTestStore(t)

	seeded, err := store.SeedIfEmpty(storage.DefaultHabits)
	if err != nil || !seeded {
		t.Fatalf("SeedIfEmpty() = %v, %v; want true, nil", seeded, err)
	}
	habits, _ := store.ListHabits()
	if len(habits) != len(storage.DefaultHabits) {
		t.Fatalf("len(habits) = %d, want %d", len(habits), len(storage.DefaultHabits))
	}
	// newest first, so the last seed is listed first
	if habits[0].Name != "Dhikr" || habits[len(habits)-1].Name != "Fajr" {
		t.Errorf("seed order = %s..%s", habits[0].Name, habits[len(habits)-1].Name)
	}

	seeded, err = store.SeedIfEmpty(storage.DefaultHabits)
	if err != nil || seeded {
		t.Fatalf("second SeedIfEmpty() = %v, %v; want false, nil", seeded, err)
	}
	habits, _ = store.ListHabits()
	if len(habits) != len(storage.DefaultHabits) {
		t.Errorf("second seed changed habit count to %d", len(habits))
	}
}

func TestKeyValue(t *testing.T) {
	store := setupTestStore(t)

	if _, ok, err := store.GetValue("missing"); err != nil || ok {
		t.Fatalf("GetValue(missing) = %v, %v; want false, nil", ok, err)
	}
	if err := store.SetValue("k", "v1"); err != nil {
		t.Fatalf("SetValue() error: %v", err)
	}
	if err := store.SetValue("k", "v2"); err != nil {
		t.Fatalf("SetValue() overwrite error: %v", err)
	}
	v, ok, err := store.GetValue("k")
	if err != nil || !ok || v != "v2" {
		t.Fatalf("GetValue() = %q, %v, %v; want v2", v, ok, err)
	}
	if err := store.DeleteValue("k"); err != nil {
		t.Fatalf("DeleteValue() error: %v", err)
	}
	if _, ok, _ := store.GetValue("k"); ok {
		t.Error("value still present after DeleteValue")
	}
}

func TestNotifications(t *testing.T) {
	store := setupTestStore(t)
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	past := models.ScheduledNotification{ID: "past", Title: "t", Body: "b", Channel: constants.PrayerChannel, FireAt: now.Add(-time.Hour)}
	future := models.ScheduledNotification{ID: "future", Title: "t", Body: "b", FireAt: now.Add(time.Hour)}
	for _, n := range []models.ScheduledNotification{future, past} {
		if err := store.SaveNotification(n); err != nil {
			t.Fatalf("SaveNotification() error: %v", err)
		}
	}

	got, err := store.GetNotification("past")
	if err != nil {
		t.Fatalf("GetNotification() error: %v", err)
	}
	if !got.FireAt.Equal(past.FireAt) || got.Channel != constants.PrayerChannel {
		t.Errorf("GetNotification() = %+v", got)
	}

	pending, _ := store.ListPendingNotifications()
	if len(pending) != 2 || pending[0].ID != "past" {
		t.Fatalf("ListPendingNotifications() = %+v, want past first", pending)
	}

	due, err := store.DueNotifications(now)
	if err != nil {
		t.Fatalf("DueNotifications() error: %v", err)
	}
	if len(due) != 1 || due[0].ID != "past" {
		t.Fatalf("DueNotifications() = %+v, want only past", due)
	}

	if err := store.MarkNotificationDelivered("past", now); err != nil {
		t.Fatalf("MarkNotificationDelivered() error: %v", err)
	}
	due, _ = store.DueNotifications(now.Add(2 * time.Hour))
	if len(due) != 1 || due[0].ID != "future" {
		t.Fatalf("DueNotifications() after delivery = %+v, want only future", due)
	}

	if deleted, _ := store.DeletePendingNotification("past"); deleted {
		t.Error("delivered notification should not be deletable")
	}
	if deleted, _ := store.DeletePendingNotification("future"); !deleted {
		t.Error("pending notification should be deletable")
	}
	if deleted, _ := store.DeletePendingNotification("future"); deleted {
		t.Error("second delete should report nothing removed")
	}

	if err := store.MarkNotificationDelivered("missing", now); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("MarkNotificationDelivered(missing) error = %v, want ErrNotFound", err)
	}
	if _, err := store.GetNotification("missing"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("GetNotification(missing) error = %v, want ErrNotFound", err)
	}
}

func TestTableExists(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "raw.db"))
	db, err := sql.Open("sqlite", store.path)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	store.db = db
	defer store.Close()

	if _, err := store.db.Exec("CREATE TABLE lowercase_table (id INTEGER PRIMARY KEY)"); err != nil {
		t.Fatalf("failed to create table: %v", err)
	}

	tests := []struct {
		name string
		want bool
	}{
		{"lowercase_table", true},
		{"LOWERCASE_TABLE", true},
		{"nonexistent_table", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.tableExists(tt.name)
			if err != nil {
				t.Fatalf("tableExists() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("tableExists(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestEnsureSettingsRestoresEmptyTable(t *testing.T) {
	store := setupTestStore(t)
	if _, err := store.db.Exec("DELETE FROM settings"); err != nil {
		t.Fatal(err)
	}
	if _, err := store.GetSettings(); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("GetSettings() on empty table error = %v, want ErrNotFound", err)
	}

	if err := storage.EnsureSettings(store); err != nil {
		t.Fatalf("EnsureSettings() error: %v", err)
	}
	settings, err := store.GetSettings()
	if err != nil {
		t.Fatal(err)
	}
	if settings != models.DefaultSettings() {
		t.Errorf("settings = %+v, want defaults", settings)
	}
}
