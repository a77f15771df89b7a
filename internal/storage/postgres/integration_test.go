package postgres

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/julianstephens/noor/internal/constants"
	"github.com/julianstephens/noor/internal/models"
	"github.com/julianstephens/noor/internal/storage"
)

// TestStore_Integration runs against a real database.
// Example: NOOR_TEST_POSTGRES="postgres://noor@localhost:5432/noor_test?sslmode=disable"
func TestStore_Integration(t *testing.T) {
	connStr := os.Getenv("NOOR_TEST_POSTGRES")
	if connStr == "" {
		t.Skip("NOOR_TEST_POSTGRES not set, skipping PostgreSQL integration test")
	}

	store := New(connStr)
	if err := store.Init(); err != nil {
		t.Fatalf("Failed to initialize store: %v", err)
	}
	defer store.Close()

	for _, table := range []string{"completions", "habits", "kv", "scheduled_notifications"} {
		if _, err := store.db.Exec("DELETE FROM " + table); err != nil {
			t.Fatalf("Failed to reset %s: %v", table, err)
		}
	}

	t.Run("Settings", func(t *testing.T) {
		settings, err := store.GetSettings()
		if err != nil {
			t.Fatalf("Failed to get settings: %v", err)
		}
		if settings.City == "" {
			t.Fatalf("expected default city, got empty")
		}

		settings.City = "Sarajevo"
		if err := store.SaveSettings(settings); err != nil {
			t.Fatalf("Failed to save settings: %v", err)
		}
		updated, err := store.GetSettings()
		if err != nil {
			t.Fatalf("Failed to get updated settings: %v", err)
		}
		if updated.City != "Sarajevo" {
			t.Errorf("City = %q, want Sarajevo", updated.City)
		}
	})

	t.Run("Habits and completions", func(t *testing.T) {
		seeded, err := store.SeedIfEmpty(storage.DefaultHabits)
		if err != nil || !seeded {
			t.Fatalf("SeedIfEmpty() = %v, %v; want true, nil", seeded, err)
		}
		seeded, err = store.SeedIfEmpty(storage.DefaultHabits)
		if err != nil || seeded {
			t.Fatalf("second SeedIfEmpty() = %v, %v; want false, nil", seeded, err)
		}

		habits, err := store.ListHabits()
		if err != nil {
			t.Fatalf("ListHabits() error: %v", err)
		}
		if len(habits) != len(storage.DefaultHabits) {
			t.Fatalf("ListHabits() returned %d habits, want %d", len(habits), len(storage.DefaultHabits))
		}

		id := habits[0].ID
		done, err := store.ToggleCompletion(id, "2024-03-10")
		if err != nil || !done {
			t.Fatalf("ToggleCompletion() = %v, %v; want true, nil", done, err)
		}
		n, err := store.CountCompletionsForDate("2024-03-10")
		if err != nil || n != 1 {
			t.Fatalf("CountCompletionsForDate() = %d, %v; want 1", n, err)
		}

		if err := store.DeleteHabit(id); err != nil {
			t.Fatalf("DeleteHabit() error: %v", err)
		}
		n, err = store.CountCompletionsBetween("2024-01-01", "2024-12-31")
		if err != nil || n != 0 {
			t.Fatalf("completions after delete = %d, %v; want 0 (cascade)", n, err)
		}
	})

	t.Run("KV", func(t *testing.T) {
		if err := store.SetValue(constants.KeyAlarmIDs, `{"Fajr":"a"}`); err != nil {
			t.Fatalf("SetValue() error: %v", err)
		}
		v, ok, err := store.GetValue(constants.KeyAlarmIDs)
		if err != nil || !ok || v != `{"Fajr":"a"}` {
			t.Fatalf("GetValue() = %q, %v, %v", v, ok, err)
		}
	})

	t.Run("Notifications", func(t *testing.T) {
		_, err := store.GetNotification("missing")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Fatalf("GetNotification(missing) error = %v, want ErrNotFound", err)
		}

		fireAt := time.Now().Add(-time.Minute).UTC().Truncate(time.Second)
		n := models.ScheduledNotification{ID: "n1", Title: "Prayer time", Body: "It’s time for Fajr.", FireAt: fireAt}
		if err := store.SaveNotification(n); err != nil {
			t.Fatalf("SaveNotification() error: %v", err)
		}
		due, err := store.DueNotifications(time.Now())
		if err != nil || len(due) != 1 {
			t.Fatalf("DueNotifications() = %d, %v; want 1", len(due), err)
		}
		if err := store.MarkNotificationDelivered("n1", time.Now()); err != nil {
			t.Fatalf("MarkNotificationDelivered() error: %v", err)
		}
		deleted, err := store.DeletePendingNotification("n1")
		if err != nil || deleted {
			t.Fatalf("DeletePendingNotification(delivered) = %v, %v; want false", deleted, err)
		}
	})
}
