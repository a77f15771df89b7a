package keyring

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gokeyring "github.com/zalando/go-keyring"
)

func TestConnectionStringLifecycle(t *testing.T) {
	gokeyring.MockInit()
	_ = DeleteConnectionString()

	_, err := GetConnectionString()
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Error(t, SetConnectionString(""))

	const connStr = "postgres://testuser@localhost:5432/noor?sslmode=disable"
	require.NoError(t, SetConnectionString(connStr))
	got, err := GetConnectionString()
	require.NoError(t, err)
	assert.Equal(t, connStr, got)

	require.NoError(t, DeleteConnectionString())
	_, err = GetConnectionString()
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, DeleteConnectionString(), ErrNotFound)
}

func TestUnavailableKeyring(t *testing.T) {
	gokeyring.MockInitWithError(errors.New("no dbus session"))
	t.Cleanup(gokeyring.MockInit)

	assert.False(t, IsAvailable())
	_, err := GetConnectionString()
	assert.ErrorIs(t, err, ErrKeyringUnavailable)
	assert.Error(t, SetConnectionString("host=localhost"))
}

func TestIsAvailable(t *testing.T) {
	gokeyring.MockInit()
	assert.True(t, IsAvailable())
}

func TestResolveConnectionString(t *testing.T) {
	gokeyring.MockInit()
	_ = DeleteConnectionString()

	t.Setenv(EnvConnectionString, "")
	_, _, err := ResolveConnectionString()
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, SetConnectionString("postgres://keyring@localhost/noor"))
	got, src, err := ResolveConnectionString()
	require.NoError(t, err)
	assert.Equal(t, "postgres://keyring@localhost/noor", got)
	assert.Equal(t, SourceKeyring, src)

	t.Setenv(EnvConnectionString, "postgres://env@localhost/noor")
	got, src, err = ResolveConnectionString()
	require.NoError(t, err)
	assert.Equal(t, "postgres://env@localhost/noor", got)
	assert.Equal(t, SourceEnv, src)
}
