package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/noor/internal/models"
	"github.com/julianstephens/noor/internal/storage"
)

const notificationColumns = "id, title, body, channel, fire_at, delivered_at, created_at"

func scanNotification(row rowScanner) (models.ScheduledNotification, error) {
	var n models.ScheduledNotification
	var deliveredAt sql.NullTime
	if err := row.Scan(&n.ID, &n.Title, &n.Body, &n.Channel, &n.FireAt, &deliveredAt, &n.CreatedAt); err != nil {
		return models.ScheduledNotification{}, err
	}
	if deliveredAt.Valid {
		t := deliveredAt.Time
		n.DeliveredAt = &t
	}
	return n, nil
}

func (s *Store) SaveNotification(n models.ScheduledNotification) error {
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	var delivered sql.NullTime
	if n.DeliveredAt != nil {
		delivered = sql.NullTime{Time: *n.DeliveredAt, Valid: true}
	}

	_, err := s.db.Exec(`
		INSERT INTO scheduled_notifications (id, title, body, channel, fire_at, delivered_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			body = EXCLUDED.body,
			channel = EXCLUDED.channel,
			fire_at = EXCLUDED.fire_at,
			delivered_at = EXCLUDED.delivered_at`,
		n.ID, n.Title, n.Body, n.Channel, n.FireAt, delivered, n.CreatedAt)
	return err
}

func (s *Store) GetNotification(id string) (models.ScheduledNotification, error) {
	row := s.db.QueryRow(`SELECT `+notificationColumns+` FROM scheduled_notifications WHERE id = $1`, id)
	n, err := scanNotification(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ScheduledNotification{}, fmt.Errorf("notification %s: %w", id, storage.ErrNotFound)
	}
	return n, err
}

func (s *Store) DeletePendingNotification(id string) (bool, error) {
	result, err := s.db.Exec(`DELETE FROM scheduled_notifications WHERE id = $1 AND delivered_at IS NULL`, id)
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
		WHERE delivered_at IS NULL AND fire_at <= $1
		ORDER BY fire_at ASC`, now)
}

func (s *Store) MarkNotificationDelivered(id string, at time.Time) error {
	result, err := s.db.Exec(`UPDATE scheduled_notifications SET delivered_at = $1 WHERE id = $2`, at, id)
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
