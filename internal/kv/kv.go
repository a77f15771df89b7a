// Package kv stores JSON documents in the key-value table.
package kv

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/noor/internal/logger"
)

// Store is the key-value subset of storage.Provider.
type Store interface {
	GetValue(key string) (string, bool, error)
	SetValue(key, value string) error
	DeleteValue(key string) error
}

// LoadJSON decodes the value under key into out and reports whether it was present.
// A corrupt value is logged and treated as missing.
func LoadJSON(s Store, key string, out any) (bool, error) {
	raw, ok, err := s.GetValue(key)
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	if !ok || raw == "" {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		logger.Warn("Discarding corrupt stored value", "key", key, "error", err)
		return false, nil
	}
	return true, nil
}

// SaveJSON encodes v and stores it under key.
func SaveJSON(s Store, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := s.SetValue(key, string(data)); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// GetString returns the raw string under key, or def when unset.
func GetString(s Store, key, def string) (string, error) {
	v, ok, err := s.GetValue(key)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", key, err)
	}
	if !ok {
		return def, nil
	}
	return v, nil
}
