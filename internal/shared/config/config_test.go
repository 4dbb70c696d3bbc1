package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
# service configuration
database:
  host: ${TEST_DB_HOST:-localhost}
  port: 5432
  user: postgres
  password: ${TEST_DB_PASSWORD:-}
  database: rideshare

http:
  port: ${TEST_PORT:-5050}

weather:
  api_key: ${TEST_WEATHER_KEY:-}
  base_url: ${TEST_WEATHER_URL:-https://api.openweathermap.org}

zones:
  geojson: data/taxi_zones.geojson

auth:
  secret: topsecret
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, "5432", cfg.Database.Port)
	assert.Equal(t, "postgres", cfg.Database.User)
	assert.Equal(t, "", cfg.Database.Password)
	assert.Equal(t, "rideshare", cfg.Database.Database)
	assert.Equal(t, "5050", cfg.HTTP.Port)
	assert.Equal(t, "https://api.openweathermap.org", cfg.Weather.BaseURL)
	assert.Equal(t, "data/taxi_zones.geojson", cfg.Zones.GeoJSON)
	assert.Equal(t, "topsecret", cfg.Auth.Secret)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("TEST_DB_HOST", "db.internal")
	t.Setenv("TEST_PORT", "8080")
	t.Setenv("TEST_WEATHER_KEY", "abc123")

	cfg, err := LoadConfig(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "8080", cfg.HTTP.Port)
	assert.Equal(t, "abc123", cfg.Weather.APIKey)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
