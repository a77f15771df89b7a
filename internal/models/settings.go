package models

// Settings represents application-wide settings
type Settings struct {
	City                   string `json:"city"`                    // city used for prayer times, e.g. "Tirana"
	Country                string `json:"country"`                 // country used for prayer times, e.g. "Albania"
	Method                 int    `json:"method"`                  // aladhan calculation method id
	Timezone               string `json:"timezone"`                // IANA timezone name or "Local"
	Language               string `json:"language"`                // surah reading language, "ar" or "en"
	NotificationsEnabled   bool   `json:"notifications_enabled"`   // whether due notifications are dispatched
	NotificationPermission string `json:"notification_permission"` // undetermined, granted or denied
}
