package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Setenv("DB_HOST", "test-host")
	t.Setenv("DB_MAX_OPEN_CONNS", "20")
	t.Setenv("MINIO_USE_SSL", "true")
	t.Setenv("DATA_DIR", "/srv/cms/data")

	cfg := Load()

	assert.Equal(t, "test-host", cfg.Database.Host)
	assert.True(t, cfg.Database.Enabled())
	assert.Equal(t, 20, cfg.Database.MaxOpenConns)
	assert.True(t, cfg.MinIO.UseSSL)
	assert.Equal(t, "/srv/cms/data", cfg.Storage.DataDir)
	assert.Equal(t, BackendFS, cfg.Storage.Backend)
	assert.Equal(t, "users.yml", cfg.Auth.UsersFile)
	assert.Equal(t, 24*time.Hour, cfg.Auth.SessionExpiry())
}

func TestValidate(t *testing.T) {
	t.Run("defaults are valid", func(t *testing.T) {
		cfg := Load()
		require.NoError(t, cfg.Validate())
		assert.Equal(t, time.UTC, cfg.Location())
	})

	t.Run("unknown backend", func(t *testing.T) {
		cfg := Load()
		cfg.Storage.Backend = "ftp"
		assert.Error(t, cfg.Validate())
	})

	t.Run("fs backend needs a data dir", func(t *testing.T) {
		cfg := Load()
		cfg.Storage.DataDir = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("minio backend does not need a data dir", func(t *testing.T) {
		cfg := Load()
		cfg.Storage.Backend = BackendMinIO
		cfg.Storage.DataDir = ""
		assert.NoError(t, cfg.Validate())
	})

	t.Run("bad timezone", func(t *testing.T) {
		cfg := Load()
		cfg.Timezone = "Mars/Olympus"
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "timezone")
		assert.Equal(t, time.UTC, cfg.Location())
	})

	t.Run("non numeric port", func(t *testing.T) {
		cfg := Load()
		cfg.Port = "http"
		assert.Error(t, cfg.Validate())
	})
}

func TestGetEnv(t *testing.T) {
	key := "TEST_ENV_VAR"
	os.Setenv(key, "value")
	defer os.Unsetenv(key)

	assert.Equal(t, "value", getEnv(key, "default"))
	assert.Equal(t, "default", getEnv("NON_EXISTENT", "default"))
}

func TestGetEnvBool(t *testing.T) {
	key := "TEST_BOOL_VAR"

	os.Setenv(key, "true")
	assert.True(t, getEnvBool(key, false))

	os.Setenv(key, "false")
	assert.False(t, getEnvBool(key, true))

	os.Setenv(key, "invalid")
	assert.True(t, getEnvBool(key, true))

	os.Unsetenv(key)
	assert.True(t, getEnvBool(key, true))
}

func TestGetEnvInt(t *testing.T) {
	key := "TEST_INT_VAR"

	os.Setenv(key, "123")
	assert.Equal(t, 123, getEnvInt(key, 0))

	os.Setenv(key, "invalid")
	assert.Equal(t, 10, getEnvInt(key, 10))

	os.Unsetenv(key)
	assert.Equal(t, 10, getEnvInt(key, 10))
}
