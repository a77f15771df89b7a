package gratitude

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/noor/internal/constants"
	"github.com/julianstephens/noor/internal/kv"
	"github.com/julianstephens/noor/internal/models"
)

// Journal is the gratitude list, newest entry first.
type Journal struct {
	store kv.Store
}

func New(store kv.Store) *Journal {
	return &Journal{store: store}
}

func (j *Journal) List() ([]models.GratitudeItem, error) {
	items := []models.GratitudeItem{}
	if _, err := kv.LoadJSON(j.store, constants.KeyGratitude, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Add prepends a trimmed entry. Blank text is ignored and returns ok=false.
func (j *Journal) Add(text string, now time.Time) (models.GratitudeItem, bool, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.GratitudeItem{}, false, nil
	}
	items, err := j.List()
	if err != nil {
		return models.GratitudeItem{}, false, err
	}
	item := models.GratitudeItem{
		ID:        uuid.NewString(),
		Text:      text,
		CreatedAt: now.UnixMilli(),
	}
	if err := kv.SaveJSON(j.store, constants.KeyGratitude, append([]models.GratitudeItem{item}, items...)); err != nil {
		return models.GratitudeItem{}, false, err
	}
	return item, true, nil
}

// Remove deletes the entry with id and reports whether it existed.
func (j *Journal) Remove(id string) (bool, error) {
	items, err := j.List()
	if err != nil {
		return false, err
	}
	next := make([]models.GratitudeItem, 0, len(items))
	for _, it := range items {
		if it.ID != id {
			next = append(next, it)
		}
	}
	if len(next) == len(items) {
		return false, nil
	}
	return true, kv.SaveJSON(j.store, constants.KeyGratitude, next)
}

func (j *Journal) Clear() error {
	return kv.SaveJSON(j.store, constants.KeyGratitude, []models.GratitudeItem{})
}
