package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/julianstephens/noor/internal/models"
)

func (s *Store) ToggleCompletion(habitID int64, date string) (bool, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	var id int64
	err = tx.QueryRow(`SELECT id FROM completions WHERE habit_id = $1 AND date = $2 FOR UPDATE`, habitID, date).Scan(&id)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		if _, err := tx.Exec(`INSERT INTO completions (habit_id, date, count) VALUES ($1, $2, 1)`, habitID, date); err != nil {
			return false, fmt.Errorf("failed to insert completion: %w", err)
		}
		return true, tx.Commit()
	case err != nil:
		return false, err
	}

	if _, err := tx.Exec(`DELETE FROM completions WHERE id = $1`, id); err != nil {
		return false, fmt.Errorf("failed to delete completion: %w", err)
	}
	return false, tx.Commit()
}

func (s *Store) GetCompletionsForHabit(habitID int64, startDate, endDate string) ([]models.Completion, error) {
	rows, err := s.db.Query(`
		SELECT id, habit_id, date, count, note, created_at
		FROM completions
		WHERE habit_id = $1 AND date >= $2 AND date <= $3
		ORDER BY date DESC`, habitID, startDate, endDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	completions := []models.Completion{}
	for rows.Next() {
		var c models.Completion
		var note sql.NullString
		if err := rows.Scan(&c.ID, &c.HabitID, &c.Date, &c.Count, &note, &c.CreatedAt); err != nil {
			return nil, err
		}
		if note.Valid {
			n := note.String
			c.Note = &n
		}
		completions = append(completions, c)
	}
	return completions, rows.Err()
}

func (s *Store) CountCompletionsForDate(date string) (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM completions WHERE date = $1`, date).Scan(&n)
	return n, err
}

func (s *Store) CountCompletionsBetween(startDate, endDate string) (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM completions WHERE date >= $1 AND date <= $2`, startDate, endDate).Scan(&n)
	return n, err
}

func (s *Store) DailyCountsBetween(startDate, endDate string) ([]models.DailyCount, error) {
	rows, err := s.db.Query(`
		SELECT date, COUNT(*)
		FROM completions
		WHERE date >= $1 AND date <= $2
		GROUP BY date
		ORDER BY date DESC`, startDate, endDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := []models.DailyCount{}
	for rows.Next() {
		var dc models.DailyCount
		if err := rows.Scan(&dc.Date, &dc.Count); err != nil {
			return nil, err
		}
		counts = append(counts, dc)
	}
	return counts, rows.Err()
}
