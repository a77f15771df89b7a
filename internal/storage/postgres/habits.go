package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/julianstephens/noor/internal/models"
	"github.com/julianstephens/noor/internal/storage"
)

const habitColumns = "id, name, emoji, schedule_type, schedule_value, is_active, created_at"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanHabit(row rowScanner, extra ...any) (models.Habit, error) {
	var h models.Habit
	var emoji sql.NullString
	var scheduleType string

	dest := append([]any{&h.ID, &h.Name, &emoji, &scheduleType, &h.ScheduleValue, &h.IsActive, &h.CreatedAt}, extra...)
	if err := row.Scan(dest...); err != nil {
		return models.Habit{}, err
	}
	if emoji.Valid {
		e := emoji.String
		h.Emoji = &e
	}
	h.ScheduleType = models.ScheduleType(scheduleType)
	return h, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func (s *Store) InsertHabit(name string, emoji *string) (int64, error) {
	var id int64
	err := s.db.QueryRow(`
		INSERT INTO habits (name, emoji, schedule_type, schedule_value, is_active)
		VALUES ($1, $2, $3, $4, TRUE)
		RETURNING id`,
		name, nullString(emoji), string(models.ScheduleDaily), models.DefaultScheduleValue).Scan(&id)
	return id, err
}

func (s *Store) UpdateHabit(id int64, name string, emoji *string) error {
	_, err := s.db.Exec(`UPDATE habits SET name = $1, emoji = $2 WHERE id = $3`, name, nullString(emoji), id)
	return err
}

func (s *Store) DeleteHabit(id int64) error {
	_, err := s.db.Exec(`DELETE FROM habits WHERE id = $1`, id)
	return err
}

func (s *Store) GetHabit(id int64) (models.Habit, error) {
	row := s.db.QueryRow(`SELECT `+habitColumns+` FROM habits WHERE id = $1`, id)
	h, err := scanHabit(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Habit{}, fmt.Errorf("habit %d: %w", id, storage.ErrNotFound)
	}
	return h, err
}

func (s *Store) ListHabits() ([]models.Habit, error) {
	rows, err := s.db.Query(`SELECT ` + habitColumns + ` FROM habits ORDER BY id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	habits := []models.Habit{}
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, err
		}
		habits = append(habits, h)
	}
	return habits, rows.Err()
}

func (s *Store) ListHabitsWithToday(date string) ([]models.HabitWithToday, error) {
	rows, err := s.db.Query(`
		SELECT h.id, h.name, h.emoji, h.schedule_type, h.schedule_value, h.is_active, h.created_at,
			c.id IS NOT NULL AS done_today
		FROM habits h
		LEFT JOIN completions c ON c.habit_id = h.id AND c.date = $1
		WHERE h.is_active
		ORDER BY h.id DESC`, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	habits := []models.HabitWithToday{}
	for rows.Next() {
		var done bool
		h, err := scanHabit(rows, &done)
		if err != nil {
			return nil, err
		}
		habits = append(habits, models.HabitWithToday{Habit: h, DoneToday: done})
	}
	return habits, rows.Err()
}

func (s *Store) SeedIfEmpty(seeds []storage.HabitSeed) (bool, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	// Serialize concurrent first runs
	if _, err := tx.Exec(`LOCK TABLE habits IN SHARE ROW EXCLUSIVE MODE`); err != nil {
		return false, err
	}

	var count int
	if err := tx.QueryRow(`SELECT COUNT(*) FROM habits`).Scan(&count); err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	for _, seed := range seeds {
		emoji := seed.Emoji
		if _, err := tx.Exec(`
			INSERT INTO habits (name, emoji, schedule_type, schedule_value, is_active)
			VALUES ($1, $2, $3, $4, TRUE)`,
			seed.Name, nullString(&emoji), string(models.ScheduleDaily), models.DefaultScheduleValue); err != nil {
			return false, fmt.Errorf("seeding habit %q: %w", seed.Name, err)
		}
	}

	return true, tx.Commit()
}
