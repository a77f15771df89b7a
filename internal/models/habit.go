package models

import "time"

// ScheduleType is stored with every habit but not yet interpreted; all habits behave as daily.
type ScheduleType string

const (
	ScheduleDaily        ScheduleType = "daily"
	ScheduleWeeklyDays   ScheduleType = "weekly_days"
	ScheduleTimesPerWeek ScheduleType = "times_per_week"

	// DefaultScheduleValue is the opaque JSON payload written alongside ScheduleDaily.
	DefaultScheduleValue = "{}"
)

// Habit represents a recurring activity tracked once per calendar day
type Habit struct {
	ID            int64        `json:"id"`
	Name          string       `json:"name"`
	Emoji         *string      `json:"emoji,omitempty"`
	ScheduleType  ScheduleType `json:"schedule_type"`
	ScheduleValue string       `json:"schedule_value"` // JSON string
	IsActive      bool         `json:"is_active"`
	CreatedAt     time.Time    `json:"created_at"`
}

// DisplayEmoji returns the emoji or an empty string when unset
func (h Habit) DisplayEmoji() string {
	if h.Emoji == nil {
		return ""
	}
	return *h.Emoji
}

// HabitWithToday is a habit joined with whether it was completed on the queried day
type HabitWithToday struct {
	Habit
	DoneToday bool `json:"done_today"`
}

// Completion records that a habit was done on a given day
type Completion struct {
	ID        int64     `json:"id"`
	HabitID   int64     `json:"habit_id"`
	Date      string    `json:"date"` // YYYY-MM-DD format
	Count     int       `json:"count"`
	Note      *string   `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// DailyCount is the number of completions recorded on a single day
type DailyCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}
