package favorites

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/noor/internal/constants"
	"github.com/julianstephens/noor/internal/kv"
	"github.com/julianstephens/noor/internal/models"
)

// List holds the saved verses, newest first, deduplicated by "surah:ayah".
type List struct {
	store kv.Store
}

func New(store kv.Store) *List {
	return &List{store: store}
}

func (l *List) All() ([]models.FavoriteAyah, error) {
	items := []models.FavoriteAyah{}
	if _, err := kv.LoadJSON(l.store, constants.KeyFavorites, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (l *List) save(items []models.FavoriteAyah) error {
	return kv.SaveJSON(l.store, constants.KeyFavorites, items)
}

// Contains reports whether the verse with the given reference is saved.
func (l *List) Contains(ref string) (bool, error) {
	items, err := l.All()
	if err != nil {
		return false, err
	}
	for _, f := range items {
		if f.ID == ref {
			return true, nil
		}
	}
	return false, nil
}

// Toggle removes the verse if it is saved, otherwise prepends it. It reports whether the verse is saved afterwards.
func (l *List) Toggle(verse models.VerseData, now time.Time) (bool, error) {
	if verse.SurahNumber <= 0 || verse.AyahInSurah <= 0 {
		return false, fmt.Errorf("verse has no reference")
	}
	items, err := l.All()
	if err != nil {
		return false, err
	}

	id := verse.Ref()
	for i, f := range items {
		if f.ID == id {
			next := append(items[:i:i], items[i+1:]...)
			return false, l.save(next)
		}
	}

	fav := models.FavoriteAyah{VerseData: verse, ID: id, SavedAt: now.UnixMilli()}
	return true, l.save(append([]models.FavoriteAyah{fav}, items...))
}

// Remove deletes the favorite with the given id; unknown ids are ignored.
func (l *List) Remove(id string) error {
	items, err := l.All()
	if err != nil {
		return err
	}
	next := make([]models.FavoriteAyah, 0, len(items))
	for _, f := range items {
		if f.ID != id {
			next = append(next, f)
		}
	}
	return l.save(next)
}

func (l *List) Clear() error {
	return l.save([]models.FavoriteAyah{})
}

// Search matches query case-insensitively against the surah name, the English text and the reference.
func (l *List) Search(query string) ([]models.FavoriteAyah, error) {
	items, err := l.All()
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return items, nil
	}

	out := []models.FavoriteAyah{}
	for _, f := range items {
		if strings.Contains(strings.ToLower(f.SurahEnglish), q) ||
			strings.Contains(strings.ToLower(f.EnglishAyah), q) ||
			strings.Contains(f.Ref(), q) {
			out = append(out, f)
		}
	}
	return out, nil
}
