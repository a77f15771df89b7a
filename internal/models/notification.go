package models

import "time"

// ScheduledNotification is a one-shot local notification
type ScheduledNotification struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Body        string     `json:"body"`
	Channel     string     `json:"channel,omitempty"`
	FireAt      time.Time  `json:"fire_at"`
	DeliveredAt *time.Time `json:"delivered_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// IsDue reports whether the notification should be delivered at now
func (n ScheduledNotification) IsDue(now time.Time) bool {
	return n.DeliveredAt == nil && !n.FireAt.After(now)
}
