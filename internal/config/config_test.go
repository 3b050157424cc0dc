package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	// Save current env and restore later
	origHost := os.Getenv("MONGO_HOST")
	defer os.Setenv("MONGO_HOST", origHost)

	os.Setenv("MONGO_HOST", "test-host")
	os.Setenv("MONGO_PORT", "27018")
	os.Setenv("MINIO_USE_SSL", "true")

	cfg := Load()

	assert.Equal(t, "test-host", cfg.Mongo.Host)
	assert.Equal(t, 27018, cfg.Mongo.Port)
	assert.True(t, cfg.MinIO.UseSSL)
}

func TestLoadDefaults(t *testing.T) {
	os.Unsetenv("MONGO_PORT")
	os.Unsetenv("MONGO_DB")
	os.Unsetenv("MONGO_COLLECTION")
	os.Unsetenv("MONGO_AUTH_SOURCE")

	cfg := Load()

	assert.Equal(t, 27017, cfg.Mongo.Port)
	assert.Equal(t, "aac", cfg.Mongo.Database)
	assert.Equal(t, "animals", cfg.Mongo.Collection)
	assert.Empty(t, cfg.Mongo.AuthSource)
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
