package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, key := range []string{"ENV", "SESSION_TTL", "EXPORT_CREDIT_COST", "RASTER_TIMEOUT", "OBJECT_STORE", "EXPORT_FILENAME_PREFIX"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, "dev", cfg.Env)
	assert.True(t, cfg.IsDev())
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 2, cfg.ExportCreditCost)
	assert.Equal(t, 60*time.Second, cfg.RasterTimeout)
	assert.Equal(t, "local", cfg.ObjectStoreType)
	assert.Equal(t, "BaraCV", cfg.ExportFilenamePrefix)
}

func TestLoadParsesOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("ENV", "prod")
	t.Setenv("SESSION_TTL", "3600")
	t.Setenv("RASTER_TIMEOUT", "90s")
	t.Setenv("EXPORT_CREDIT_COST", "nope")
	t.Setenv("OBJECT_STORE", "S3")
	t.Setenv("CORS_ALLOW_ORIGINS", " https://a.example , ,https://b.example")

	cfg := Load()
	assert.Equal(t, "production", cfg.Env)
	assert.False(t, cfg.IsDev())
	assert.Equal(t, time.Hour, cfg.SessionTTL)
	assert.Equal(t, 90*time.Second, cfg.RasterTimeout)
	assert.Equal(t, 2, cfg.ExportCreditCost)
	assert.Equal(t, "s3", cfg.ObjectStoreType)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowOrigin)
}

func TestLoadReadsDotEnvWithoutOverriding(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("WATERMARK_TEXT=\"Sample\"\nPORT=9999\n"), 0o600))
	t.Setenv("PORT", "7000")
	t.Setenv("WATERMARK_TEXT", "")
	require.NoError(t, os.Unsetenv("WATERMARK_TEXT"))

	cfg := Load()
	assert.Equal(t, "Sample", cfg.WatermarkText)
	assert.Equal(t, "7000", cfg.Port)
}

func TestLoadRejectsNonPositiveDurations(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("EXPORT_LINK_TTL", "-5m")
	t.Setenv("SESSION_TTL", "0")
	t.Setenv("S3_ENDPOINT", " http://minio:9000 ")

	cfg := Load()
	assert.Equal(t, 15*time.Minute, cfg.ExportLinkTTL)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, "http://minio:9000", cfg.S3Endpoint)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Config{Env: "dev"}.Validate())

	err := Config{Env: "production", ObjectStoreType: "s3"}.Validate()
	require.Error(t, err)
	for _, want := range []string{"DATABASE_URL", "REDIS_URL", "JWT_SECRET", "S3_BUCKET"} {
		assert.Contains(t, err.Error(), want)
	}

	ok := Config{
		Env:             "staging",
		DatabaseURL:     "postgres://db",
		RedisURL:        "redis://cache:6379/0",
		JWTSecret:       "s3cret",
		ObjectStoreType: "local",
	}
	assert.NoError(t, ok.Validate())
}
