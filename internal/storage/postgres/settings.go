package postgres

import (
	"github.com/julianstephens/noor/internal/models"
	"github.com/julianstephens/noor/internal/storage"
)

const upsertSetting = `INSERT INTO settings (key, value) VALUES ($1, $2)
	ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`

func (s *Store) GetSettings() (models.Settings, error) {
	return storage.LoadSettings(s.db)
}

func (s *Store) SaveSettings(settings models.Settings) error {
	return storage.StoreSettings(s.db, upsertSetting, settings)
}
