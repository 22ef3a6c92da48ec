package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Setenv("DB_HOST", "test-host")
	t.Setenv("DB_MAX_OPEN_CONNS", "20")
	t.Setenv("MINIO_USE_SSL", "true")
	t.Setenv("MINIO_PRESIGN_EXPIRY", "1h")
	t.Setenv("LLM_MODEL", "gpt-test")

	cfg := Load()

	assert.Equal(t, "test-host", cfg.Database.Host)
	assert.Equal(t, 20, cfg.Database.MaxOpenConns)
	assert.True(t, cfg.MinIO.UseSSL)
	assert.Equal(t, time.Hour, cfg.MinIO.PresignExpiry)
	assert.Equal(t, "gpt-test", cfg.LLM.Model)
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("LLM_TEMPERATURE", "")
	t.Setenv("LLM_MAX_TOKENS", "")
	t.Setenv("LLM_MAX_INPUT_CHARS", "")
	t.Setenv("UPLOAD_MAX_FILE_BYTES", "")

	cfg := Load()

	assert.InDelta(t, 0.1, cfg.LLM.Temperature, 1e-6)
	assert.Equal(t, 2000, cfg.LLM.MaxTokens)
	assert.Equal(t, 15000, cfg.LLM.MaxInputChars)
	assert.Equal(t, int64(50<<20), cfg.Upload.MaxFileBytes)
	assert.Equal(t, "lease-processor", cfg.Upload.Folder)
	assert.Equal(t, time.Duration(0), cfg.LLM.Timeout)
}

func TestGetEnv(t *testing.T) {
	key := "TEST_ENV_VAR"
	t.Setenv(key, "value")

	assert.Equal(t, "value", getEnv(key, "default"))
	assert.Equal(t, "default", getEnv("NON_EXISTENT", "default"))
}

func TestGetEnvBool(t *testing.T) {
	key := "TEST_BOOL_VAR"

	t.Setenv(key, "true")
	assert.True(t, getEnvBool(key, false))

	t.Setenv(key, "false")
	assert.False(t, getEnvBool(key, true))

	t.Setenv(key, "invalid")
	assert.True(t, getEnvBool(key, true))

	t.Setenv(key, "")
	assert.True(t, getEnvBool(key, true))
}

func TestGetEnvInt(t *testing.T) {
	key := "TEST_INT_VAR"

	t.Setenv(key, "123")
	assert.Equal(t, 123, getEnvInt(key, 0))

	t.Setenv(key, "invalid")
	assert.Equal(t, 10, getEnvInt(key, 10))

	t.Setenv(key, "")
	assert.Equal(t, 10, getEnvInt(key, 10))
}

func TestGetEnvFloat32(t *testing.T) {
	key := "TEST_FLOAT_VAR"

	t.Setenv(key, "0.7")
	assert.InDelta(t, 0.7, getEnvFloat32(key, 0), 1e-6)

	t.Setenv(key, "warm")
	assert.InDelta(t, 0.1, getEnvFloat32(key, 0.1), 1e-6)
}

func TestGetEnvDuration(t *testing.T) {
	key := "TEST_DURATION_VAR"

	t.Setenv(key, "90s")
	assert.Equal(t, 90*time.Second, getEnvDuration(key, time.Minute))

	t.Setenv(key, "soon")
	assert.Equal(t, time.Minute, getEnvDuration(key, time.Minute))
}
