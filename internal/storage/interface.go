package storage

import (
	"errors"
	"time"

	"github.com/julianstephens/noor/internal/models"
)

// ErrNotFound is returned when a requested row does not exist
var ErrNotFound = errors.New("not found")

// HabitSeed is a default habit inserted on first run
type HabitSeed struct {
	Name  string
	Emoji string
}

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Habits
	InsertHabit(name string, emoji *string) (int64, error)
	UpdateHabit(id int64, name string, emoji *string) error
	DeleteHabit(id int64) error
	GetHabit(id int64) (models.Habit, error)
	ListHabits() ([]models.Habit, error)
	ListHabitsWithToday(date string) ([]models.HabitWithToday, error)
	// SeedIfEmpty inserts seeds only when the habits table is empty and reports whether it did.
	SeedIfEmpty(seeds []HabitSeed) (bool, error)

	// Completions
	// ToggleCompletion deletes the (habit, date) completion if present, otherwise inserts one
	// with count 1. It returns whether the habit is done on date afterwards.
	ToggleCompletion(habitID int64, date string) (bool, error)
	GetCompletionsForHabit(habitID int64, startDate, endDate string) ([]models.Completion, error)
	CountCompletionsForDate(date string) (int, error)
	CountCompletionsBetween(startDate, endDate string) (int, error)
	DailyCountsBetween(startDate, endDate string) ([]models.DailyCount, error)

	// Key-value
	GetValue(key string) (string, bool, error)
	SetValue(key, value string) error
	DeleteValue(key string) error

	// Scheduled notifications
	SaveNotification(models.ScheduledNotification) error
	GetNotification(id string) (models.ScheduledNotification, error)
	// DeletePendingNotification removes an undelivered notification and reports whether one existed.
	DeletePendingNotification(id string) (bool, error)
	ListPendingNotifications() ([]models.ScheduledNotification, error)
	DueNotifications(now time.Time) ([]models.ScheduledNotification, error)
	MarkNotificationDelivered(id string, at time.Time) error

	// Utils
	GetConfigPath() string
}
