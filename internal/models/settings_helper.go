package models

import (
	"fmt"

	"github.com/julianstephens/noor/internal/constants"
)

// MapToSettings converts a map of key-value pairs to a Settings struct.
func MapToSettings(data map[string]string) (Settings, error) {
	settings := Settings{}

	for key, value := range data {
		switch key {
		case constants.SettingCity:
			settings.City = value
		case constants.SettingCountry:
			settings.Country = value
		case constants.SettingMethod:
			if _, err := fmt.Sscanf(value, "%d", &settings.Method); err != nil {
				return Settings{}, fmt.Errorf("parsing method: %w", err)
			}
		case constants.SettingTimezone:
			settings.Timezone = value
		case constants.SettingLanguage:
			settings.Language = value
		case constants.SettingNotificationsEnabled:
			settings.NotificationsEnabled = value == "true"
		case constants.SettingNotificationPermission:
			settings.NotificationPermission = value
		}
	}
	return settings, nil
}

// SettingsToMap converts a Settings struct to a map of key-value pairs.
func SettingsToMap(settings Settings) map[string]string {
	return map[string]string{
		constants.SettingCity:                   settings.City,
		constants.SettingCountry:                settings.Country,
		constants.SettingMethod:                 fmt.Sprintf("%d", settings.Method),
		constants.SettingTimezone:               settings.Timezone,
		constants.SettingLanguage:               settings.Language,
		constants.SettingNotificationsEnabled:   fmt.Sprintf("%v", settings.NotificationsEnabled),
		constants.SettingNotificationPermission: settings.NotificationPermission,
	}
}

// DefaultSettings returns the settings written on first initialization.
func DefaultSettings() Settings {
	return Settings{
		City:                   constants.DefaultCity,
		Country:                constants.DefaultCountry,
		Method:                 constants.DefaultMethod,
		Timezone:               constants.DefaultTimezone,
		Language:               constants.DefaultLanguage,
		NotificationsEnabled:   constants.DefaultNotificationsEnabled,
		NotificationPermission: constants.PermissionUndetermined,
	}
}

// ApplyDefaultSettings applies default values to missing settings.
func ApplyDefaultSettings(settings *Settings) {
	if settings.City == "" {
		settings.City = constants.DefaultCity
	}
	if settings.Country == "" {
		settings.Country = constants.DefaultCountry
	}
	if settings.Method == 0 {
		settings.Method = constants.DefaultMethod
	}
	if settings.Timezone == "" {
		settings.Timezone = constants.DefaultTimezone
	}
	if settings.Language != "ar" && settings.Language != "en" {
		settings.Language = constants.DefaultLanguage
	}
	if settings.NotificationPermission == "" {
		settings.NotificationPermission = constants.PermissionUndetermined
	}
}
