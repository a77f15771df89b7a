package models

import (
	"fmt"
	"time"
)

// FavoriteAyah is a saved verse
type FavoriteAyah struct {
	VerseData
	ID      string `json:"id"` // "surah:ayah"
	SavedAt int64  `json:"savedAt"`
}

// FormatRef builds a "surah:ayah" reference
func FormatRef(surah, ayah int) string {
	return fmt.Sprintf("%d:%d", surah, ayah)
}

// GratitudeItem is one entry of the gratitude journal
type GratitudeItem struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	CreatedAt int64  `json:"createdAt"` // unix milliseconds
}

// ChatMessage is a message in the day-scoped chat log
type ChatMessage struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}
