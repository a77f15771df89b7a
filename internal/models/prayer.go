package models

import "time"

// PrayerTimes maps a prayer name to its "HH:MM" time of day
type PrayerTimes map[string]string

// AlarmIDs maps a prayer name to the identifier of its scheduled notification.
// Presence of a key means reminders are enabled for that prayer.
type AlarmIDs map[string]string

// Clone returns an independent copy of the map
func (a AlarmIDs) Clone() AlarmIDs {
	out := make(AlarmIDs, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// AlarmStatus describes one prayer row as shown to the user
type AlarmStatus struct {
	Prayer  string     `json:"prayer"`
	Time    string     `json:"time"`
	Enabled bool       `json:"enabled"`
	NextAt  *time.Time `json:"next_at,omitempty"`
	IsNext  bool       `json:"is_next"`
}
