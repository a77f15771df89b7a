package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

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
	var scheduleType, createdAt string
	var isActive int

	dest := append([]any{&h.ID, &h.Name, &emoji, &scheduleType, &h.ScheduleValue, &isActive, &createdAt}, extra...)
	if err := row.Scan(dest...); err != nil {
		return models.Habit{}, err
	}

	if emoji.Valid {
		e := emoji.String
		h.Emoji = &e
	}
	h.ScheduleType = models.ScheduleType(scheduleType)
	h.IsActive = isActive == 1

	t, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return models.Habit{}, fmt.Errorf("failed to parse created_at for habit %d: %w", h.ID, err)
	}
	h.CreatedAt = t

	return h, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func (s *Store) InsertHabit(name string, emoji *string) (int64, error) {
	result, err := s.db.Exec(`
		INSERT INTO habits (name, emoji, schedule_type, schedule_value, is_active, created_at)
		VALUES (?, ?, ?, ?, 1, ?)`,
		name, nullString(emoji), string(models.ScheduleDaily), models.DefaultScheduleValue,
		time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

func (s *Store) UpdateHabit(id int64, name string, emoji *string) error {
	_, err := s.db.Exec(`UPDATE habits SET name = ?, emoji = ? WHERE id = ?`, name, nullString(emoji), id)
	return err
}

func (s *Store) DeleteHabit(id int64) error {
	_, err := s.db.Exec(`DELETE FROM habits WHERE id = ?`, id)
	return err
}

func (s *Store) GetHabit(id int64) (models.Habit, error) {
	row := s.db.QueryRow(`SELECT `+habitColumns+` FROM habits WHERE id = ?`, id)
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
			CASE WHEN c.id IS NULL THEN 0 ELSE 1 END AS done_today
		FROM habits h
		LEFT JOIN completions c ON c.habit_id = h.id AND c.date = ?
		WHERE h.is_active = 1
		ORDER BY h.id DESC`, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	habits := []models.HabitWithToday{}
	for rows.Next() {
		var done int
		h, err := scanHabit(rows, &done)
		if err != nil {
			return nil, err
		}
		habits = append(habits, models.HabitWithToday{Habit: h, DoneToday: done == 1})
	}
	return habits, rows.Err()
}

func (s *Store) SeedIfEmpty(seeds []storage.HabitSeed) (bool, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	var count int
	if err := tx.QueryRow(`SELECT COUNT(*) FROM habits`).Scan(&count); err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	stmt, err := tx.Prepare(`
		INSERT INTO habits (name, emoji, schedule_type, schedule_value, is_active, created_at)
		VALUES (?, ?, ?, ?, 1, ?)`)
	if err != nil {
		return false, err
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339)
	for _, seed := range seeds {
		emoji := seed.Emoji
		if _, err := stmt.Exec(seed.Name, nullString(&emoji), string(models.ScheduleDaily), models.DefaultScheduleValue, now); err != nil {
			return false, fmt.Errorf("seeding habit %q: %w", seed.Name, err)
		}
	}

	return true, tx.Commit()
}
