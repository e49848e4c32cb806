package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("ADMIN_SERVER_ADDR", "127.0.0.1:8000")
	t.Setenv("ADMIN_AUTH_JWTSECRET", "secret")
	t.Setenv("ADMIN_DATABASE_PATH", "data/test.db")
}

func TestLoadFromEnv(t *testing.T) {
	setBaseEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8000", cfg.Server.Addr)
	assert.Equal(t, "secret", cfg.Auth.JWTSecret)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "data/test.db", cfg.Database.Path)
	assert.Equal(t, 60, cfg.Auth.TokenTTLMinutes)
	assert.False(t, cfg.Auth.ProtectArtists)
}

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv("ADMIN_SERVER_ADDR", "127.0.0.1:8000")
	t.Setenv("ADMIN_DATABASE_PATH", "data/test.db")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jwt secret")
}

func TestLoadRequiresAddr(t *testing.T) {
	t.Setenv("ADMIN_AUTH_JWTSECRET", "secret")
	t.Setenv("ADMIN_DATABASE_PATH", "data/test.db")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "addr")
}

func TestLoadMongoRequiresURI(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("ADMIN_DATABASE_DRIVER", "mongo")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "uri")
}

func TestLoadMongoDriver(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("ADMIN_DATABASE_DRIVER", "mongo")
	t.Setenv("ADMIN_DATABASE_URI", "mongodb://localhost:27017")
	t.Setenv("ADMIN_DATABASE_NAME", "admin_test")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DriverMongo, cfg.Database.Driver)
	assert.Equal(t, "mongodb://localhost:27017", cfg.Database.URI)
	assert.Equal(t, "admin_test", cfg.Database.Name)
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("ADMIN_DATABASE_DRIVER", "cassandra")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database driver")
}
