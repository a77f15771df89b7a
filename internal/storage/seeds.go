package storage

// DefaultHabits are inserted the first time the habit list is opened on an empty database
var DefaultHabits = []HabitSeed{
	{Name: "Fajr", Emoji: "🌙"},
	{Name: "Dhuhr", Emoji: "☀️"},
	{Name: "Asr", Emoji: "🕒"},
	{Name: "Maghrib", Emoji: "🌅"},
	{Name: "Isha", Emoji: "🌌"},
	{Name: "Qur’an", Emoji: "📖"},
	{Name: "Dhikr", Emoji: "🧿"},
}
