package constants

import "time"

const (
	AppName            = "noor"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/noor/noor.db"
	Version            = "v0.1.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// AladhanDateFormat is the DD-MM-YYYY format expected by the Hijri conversion API
	AladhanDateFormat = "02-01-2006"

	// Log rotation
	LogMaxSizeMB  = 10
	LogMaxBackups = 3
	LogMaxAgeDays = 28

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "noor-"
	BackupFileSuffix = ".db"

	// Notify constants
	NotifierLockfileName   = "noor-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.julianstephens.noor"
	TrayExecutablePrefix   = "noor-tray"
	NotificationGraceMin   = 30
	PrayerChannel          = "prayers"

	// Key-value storage keys
	KeyAlarmIDs      = "prayer_alarm_ids_v1"
	KeyFavorites     = "favorite_ayahs_v1"
	KeyGratitude     = "gratitude_items_v1"
	KeyChatMessages  = "god_chat_messages_v1"
	KeyChatLastDay   = "god_chat_last_day_v1"
	KeySurahLanguage = "surah_lang_v1"

	// Qur'an constants
	TotalAyahs         = 6236
	DefaultTranslation = "en.sahih"

	// Stats constants
	StatsWindowDays = 14

	// Remote API defaults
	DefaultQuranBaseURL   = "https://api.alquran.cloud/v1"
	DefaultAladhanBaseURL = "https://api.aladhan.com/v1"
	DefaultHTTPTimeout    = 15 * time.Second
	APIRequestsPerSecond  = 10
	APIRequestBurst       = 6

	// Cache TTLs
	TimingsCacheTTL  = time.Hour
	CalendarCacheTTL = 24 * time.Hour
	SurahCacheTTL    = 7 * 24 * time.Hour
)

// DailyPrayers lists the five daily prayer keys in chronological order.
var DailyPrayers = []string{"Fajr", "Dhuhr", "Asr", "Maghrib", "Isha"}
