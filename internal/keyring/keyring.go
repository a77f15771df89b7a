// Package keyring stores the PostgreSQL connection string in the OS keyring.
package keyring

import (
	"errors"
	"fmt"
	"os"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/noor/internal/constants"
)

// EnvConnectionString overrides the keyring when set.
const EnvConnectionString = "NOOR_DB_CONNECTION"

var (
	ErrNotFound           = errors.New("credentials not found in keyring")
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// entry is one secret in the OS keyring.
type entry struct {
	service string
	user    string
}

var (
	connection = entry{service: constants.AppName, user: constants.DefaultKeyringUser}
	// probe is read only to see whether the keyring answers
	probe = entry{service: constants.AppName, user: "test-availability"}
)

func (e entry) get() (string, error) {
	secret, err := keyring.Get(e.service, e.user)
	switch {
	case err == nil:
		return secret, nil
	case errors.Is(err, keyring.ErrNotFound):
		return "", ErrNotFound
	default:
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
}

func (e entry) set(secret string) error {
	if err := keyring.Set(e.service, e.user, secret); err != nil {
		return fmt.Errorf("failed to store credentials in keyring: %w", err)
	}
	return nil
}

func (e entry) delete() error {
	err := keyring.Delete(e.service, e.user)
	if errors.Is(err, keyring.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete credentials from keyring: %w", err)
	}
	return nil
}

func GetConnectionString() (string, error) {
	return connection.get()
}

func SetConnectionString(connStr string) error {
	if connStr == "" {
		return errors.New("connection string cannot be empty")
	}
	return connection.set(connStr)
}

func DeleteConnectionString() error {
	return connection.delete()
}

// IsAvailable reports whether the OS keyring answers at all; a missing secret still counts.
func IsAvailable() bool {
	_, err := probe.get()
	return err == nil || errors.Is(err, ErrNotFound)
}

// Source names where a connection string was found.
type Source string

const (
	SourceEnv     Source = "environment"
	SourceKeyring Source = "keyring"
)

// ResolveConnectionString looks in NOOR_DB_CONNECTION first, then the keyring.
func ResolveConnectionString() (string, Source, error) {
	if v := os.Getenv(EnvConnectionString); v != "" {
		return v, SourceEnv, nil
	}
	connStr, err := connection.get()
	if err != nil {
		return "", "", err
	}
	return connStr, SourceKeyring, nil
}
