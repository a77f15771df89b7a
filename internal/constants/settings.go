package constants

const (
	// General Settings
	SettingCity                   = "city"
	SettingCountry                = "country"
	SettingMethod                 = "method"
	SettingTimezone               = "timezone"
	SettingLanguage               = "language"
	SettingNotificationsEnabled   = "notifications_enabled"
	SettingNotificationPermission = "notification_permission"

	// Default Settings Values
	DefaultCity                 = "Tirana"
	DefaultCountry              = "Albania"
	DefaultMethod               = 2
	DefaultTimezone             = "Local" // Use system local timezone by default
	DefaultLanguage             = "en"
	DefaultNotificationsEnabled = true

	// Notification permission states
	PermissionUndetermined = "undetermined"
	PermissionGranted      = "granted"
	PermissionDenied       = "denied"
)
