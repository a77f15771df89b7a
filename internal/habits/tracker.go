// Package habits validates user input for the habit tracker and forwards it to storage.
package habits

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/noor/internal/logger"
	"github.com/julianstephens/noor/internal/models"
	"github.com/julianstephens/noor/internal/storage"
	"github.com/julianstephens/noor/internal/utils"
)

// ErrInvalidDate is returned for dates not in YYYY-MM-DD form.
var ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")

// Store is the subset of storage.Provider the tracker needs.
type Store interface {
	InsertHabit(name string, emoji *string) (int64, error)
	UpdateHabit(id int64, name string, emoji *string) error
	DeleteHabit(id int64) error
	GetHabit(id int64) (models.Habit, error)
	ListHabits() ([]models.Habit, error)
	ListHabitsWithToday(date string) ([]models.HabitWithToday, error)
	SeedIfEmpty(seeds []storage.HabitSeed) (bool, error)
	ToggleCompletion(habitID int64, date string) (bool, error)
	GetCompletionsForHabit(habitID int64, startDate, endDate string) ([]models.Completion, error)
	CountCompletionsForDate(date string) (int, error)
	CountCompletionsBetween(startDate, endDate string) (int, error)
	DailyCountsBetween(startDate, endDate string) ([]models.DailyCount, error)
}

type Tracker struct {
	store Store
}

func New(store Store) *Tracker {
	return &Tracker{store: store}
}

// ValidateDate checks that date is a real calendar day in YYYY-MM-DD form.
func ValidateDate(date string) error {
	t, err := utils.ParseDate(date)
	if err != nil || utils.DateString(t) != date {
		return fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	return nil
}

func normalizeEmoji(emoji string) *string {
	emoji = strings.TrimSpace(emoji)
	if emoji == "" {
		return nil
	}
	return &emoji
}

// Create inserts an active daily habit. A blank name is ignored and reports ok=false.
func (t *Tracker) Create(name, emoji string) (id int64, ok bool, err error) {
	name = strings.TrimSpace(name)
	if name == "" {
		logger.Debug("Ignoring habit with empty name")
		return 0, false, nil
	}
	id, err = t.store.InsertHabit(name, normalizeEmoji(emoji))
	if err != nil {
		return 0, false, fmt.Errorf("failed to create habit: %w", err)
	}
	logger.Debug("Created habit", "id", id, "name", name)
	return id, true, nil
}

// Update overwrites the name and emoji of an existing habit. A blank name is ignored.
func (t *Tracker) Update(id int64, name, emoji string) (bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		logger.Debug("Ignoring habit update with empty name", "id", id)
		return false, nil
	}
	if err := t.store.UpdateHabit(id, name, normalizeEmoji(emoji)); err != nil {
		return false, fmt.Errorf("failed to update habit %d: %w", id, err)
	}
	return true, nil
}

// Delete removes the habit and, through the foreign key, all of its completions.
func (t *Tracker) Delete(id int64) error {
	if err := t.store.DeleteHabit(id); err != nil {
		return fmt.Errorf("failed to delete habit %d: %w", id, err)
	}
	return nil
}

func (t *Tracker) Get(id int64) (models.Habit, error) {
	return t.store.GetHabit(id)
}

// List returns every habit, newest first.
func (t *Tracker) List() ([]models.Habit, error) {
	habits, err := t.store.ListHabits()
	if err != nil {
		return nil, fmt.Errorf("failed to list habits: %w", err)
	}
	return habits, nil
}

// Today returns the active habits with their completion state on date.
func (t *Tracker) Today(date string) ([]models.HabitWithToday, error) {
	if err := ValidateDate(date); err != nil {
		return nil, err
	}
	habits, err := t.store.ListHabitsWithToday(date)
	if err != nil {
		return nil, fmt.Errorf("failed to list habits for %s: %w", date, err)
	}
	return habits, nil
}

// Toggle flips the completion of habitID on date and reports the new state.
func (t *Tracker) Toggle(habitID int64, date string) (bool, error) {
	if err := ValidateDate(date); err != nil {
		return false, err
	}
	done, err := t.store.ToggleCompletion(habitID, date)
	if err != nil {
		return false, fmt.Errorf("failed to toggle habit %d on %s: %w", habitID, date, err)
	}
	return done, nil
}

// SeedIfEmpty inserts the default prayer and worship habits on an empty database.
func (t *Tracker) SeedIfEmpty() (bool, error) {
	seeded, err := t.store.SeedIfEmpty(storage.DefaultHabits)
	if err != nil {
		return false, fmt.Errorf("failed to seed habits: %w", err)
	}
	if seeded {
		logger.Info("Seeded default habits", "count", len(storage.DefaultHabits))
	}
	return seeded, nil
}

// History returns habitID's completions in [start, end], newest first.
func (t *Tracker) History(habitID int64, start, end string) ([]models.Completion, error) {
	if err := validateRange(start, end); err != nil {
		return nil, err
	}
	completions, err := t.store.GetCompletionsForHabit(habitID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to load history for habit %d: %w", habitID, err)
	}
	return completions, nil
}

func (t *Tracker) CountForDate(date string) (int, error) {
	if err := ValidateDate(date); err != nil {
		return 0, err
	}
	return t.store.CountCompletionsForDate(date)
}

// CountBetween counts completions over the inclusive range [start, end].
func (t *Tracker) CountBetween(start, end string) (int, error) {
	if err := validateRange(start, end); err != nil {
		return 0, err
	}
	return t.store.CountCompletionsBetween(start, end)
}

// DailyCounts returns per-day completion counts in [start, end], newest first.
func (t *Tracker) DailyCounts(start, end string) ([]models.DailyCount, error) {
	if err := validateRange(start, end); err != nil {
		return nil, err
	}
	return t.store.DailyCountsBetween(start, end)
}

func validateRange(start, end string) error {
	if err := ValidateDate(start); err != nil {
		return err
	}
	return ValidateDate(end)
}
