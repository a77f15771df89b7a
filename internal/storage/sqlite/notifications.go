package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/noor/internal/models"
	"github.com/julianstephens/noor/internal/storage"
)

const notificationColumns = "id, title, body, channel, fire_at, delivered_at, created_at"

// fire_at is stored as RFC3339 UTC so string comparison matches time order.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func scanNotification(row rowScanner) (models.ScheduledNotification, error) {
	var n models.ScheduledNotification
	var fireAt, createdAt string
	var deliveredAt sql.NullString

	if err := row.Scan(&n.ID, &n.Title, &n.Body, &n.Channel, &fireAt, &deliveredAt, &createdAt); err != nil {
		return models.ScheduledNotification{}, err
	}

	var err error
	if n.FireAt, err = time.Parse(time.RFC3339, fireAt); err != nil {
		return models.ScheduledNotification{}, fmt.Errorf("failed to parse fire_at for %s: %w", n.ID, err)
	}
	if n.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return models.ScheduledNotification{}, fmt.Errorf("failed to parse created_at for %s: %w", n.ID, err)
	}
	if deliveredAt.Valid {
		t, err := time.Parse(time.RFC3339, deliveredAt.String)
		if err != nil {
			return models.ScheduledNotification{}, fmt.Errorf("failed to parse delivered_at for %s: %w", n.ID, err)
		}
		n.DeliveredAt = &t
	}
	return n, nil
}

func (s *Store) SaveNotification(n models.ScheduledNotification) error {
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	var delivered sql.NullString
	if n.DeliveredAt != nil {
		delivered = sql.NullString{String: formatTime(*n.DeliveredAt), Valid: true}
	}

	_, err := s.db.Exec(`
		INSERT INTO scheduled_notifications (id, title, body, channel, fire_at, delivered_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			body = excluded.body,
			channel = excluded.channel,
			fire_at = excluded.fire_at,
			delivered_at = excluded.delivered_at`,
		n.ID, n.Title, n.Body, n.Channel, formatTime(n.FireAt), delivered, formatTime(n.CreatedAt))
	return err
}

func (s *Store) GetNotification(id string) (models.ScheduledNotification, error) {
	row := s.db.QueryRow(`SELECT `+notificationColumns+` FROM scheduled_notifications WHERE id = ?`, id)
	n, err := scanNotification(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ScheduledNotification{}, fmt.Errorf("notification %s: %w", id, storage.ErrNotFound)
	}
	return n, err
}

func (s *Store) DeletePendingNotification(id string) (bool, error) {
	result, err := s.db.Exec(`DELETE FROM scheduled_notifications WHERE id = ? AND delivered_at IS NULL`, id)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (s *Store) queryNotifications(query string, args ...any) ([]models.ScheduledNotification, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.ScheduledNotification{}
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (s *Store) ListPendingNotifications() ([]models.ScheduledNotification, error) {
	return s.queryNotifications(`
		SELECT ` + notificationColumns + `
		FROM scheduled_notifications
		WHERE delivered_at IS NULL
		ORDER BY fire_at ASC`)
}

func (s *Store) DueNotifications(now time.Time) ([]models.ScheduledNotification, error) {
	return s.queryNotifications(`
		SELECT `+notificationColumns+`
		FROM scheduled_notifications
		WHERE delivered_at IS NULL AND fire_at <= ?
		ORDER BY fire_at ASC`, formatTime(now))
}

func (s *Store) MarkNotificationDelivered(id string, at time.Time) error {
	result, err := s.db.Exec(`UPDATE scheduled_notifications SET delivered_at = ? WHERE id = ?`, formatTime(at), id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("notification %s: %w", id, storage.ErrNotFound)
	}
	return nil
}
