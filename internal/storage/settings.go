package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/julianstephens/noor/internal/models"
)

// LoadSettings reads the settings key/value table shared by both backends.
// An empty table reports ErrNotFound.
func LoadSettings(db *sql.DB) (models.Settings, error) {
	rows, err := db.Query("SELECT key, value FROM settings")
	if err != nil {
		return models.Settings{}, fmt.Errorf("failed to read settings: %w", err)
	}
	defer rows.Close()

	data := map[string]string{}
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return models.Settings{}, fmt.Errorf("failed to scan setting: %w", err)
		}
		data[key] = value
	}
	if err := rows.Err(); err != nil {
		return models.Settings{}, err
	}
	if len(data) == 0 {
		return models.Settings{}, fmt.Errorf("settings: %w", ErrNotFound)
	}
	return models.MapToSettings(data)
}

// StoreSettings writes every setting in one transaction. upsert takes (key, value) in the
// backend's placeholder syntax.
func StoreSettings(db *sql.DB, upsert string, settings models.Settings) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	values := models.SettingsToMap(settings)
	for _, key := range slices.Sorted(maps.Keys(values)) {
		if _, err := tx.Exec(upsert, key, values[key]); err != nil {
			return fmt.Errorf("failed to save setting %s: %w", key, err)
		}
	}
	return tx.Commit()
}

// SettingsStore reads and writes the settings table.
type SettingsStore interface {
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error
}

// EnsureSettings writes the defaults into an empty settings table. Existing values are kept.
func EnsureSettings(s SettingsStore) error {
	_, err := s.GetSettings()
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrNotFound) {
		return err
	}
	if err := s.SaveSettings(models.DefaultSettings()); err != nil {
		return fmt.Errorf("failed to save default settings: %w", err)
	}
	return nil
}
