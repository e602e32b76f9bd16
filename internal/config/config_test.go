package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse(defaultsRaw)
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.HTTP.Timeout)
	assert.Equal(t, "https://dog.ceo/api", cfg.Endpoint.Dog)
	assert.Equal(t, "Phoenix", cfg.Weather.DefaultCity)
	assert.Equal(t, "fahrenheit", cfg.Weather.DefaultUnit)
	assert.Equal(t, "USD", cfg.Currency.Base)
	assert.Equal(t, []string{"EUR", "GBP", "JPY", "CAD", "MXN"}, cfg.Currency.Symbols)
	assert.Equal(t, 6, cfg.Shows.Limit)
	assert.Equal(t, time.Duration(0), cfg.Status.ProbeInterval)
	assert.Empty(t, cfg.GeocoderAPIKey)
}

func TestParseEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("HTTP_TIMEOUT", "3s")
	t.Setenv("DOG_API_URL", "http://127.0.0.1:1234/api")
	t.Setenv("GITHUB_USER", "torvalds")
	t.Setenv("CURRENCY_SYMBOLS", "eur, chf ,")
	t.Setenv("SHOWS_LIMIT", "3")
	t.Setenv("STATUS_PROBE_INTERVAL", "5m")
	t.Setenv("GOOGLE_GEOCODER_API_KEY", "secret")

	cfg, err := Parse(defaultsRaw)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 3*time.Second, cfg.HTTP.Timeout)
	assert.Equal(t, "http://127.0.0.1:1234/api", cfg.Endpoint.Dog)
	assert.Equal(t, "torvalds", cfg.GitHub.User)
	assert.Equal(t, []string{"EUR", "CHF"}, cfg.Currency.Symbols)
	assert.Equal(t, 3, cfg.Shows.Limit)
	assert.Equal(t, 5*time.Minute, cfg.Status.ProbeInterval)
	assert.Equal(t, "secret", cfg.GeocoderAPIKey)
}

func TestParseRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{name: "bad duration", key: "HTTP_TIMEOUT", val: "soon"},
		{name: "bad endpoint", key: "JOKE_API_URL", val: "not a url"},
		{name: "bad unit", key: "WEATHER_DEFAULT_UNIT", val: "kelvin"},
		{name: "bad port", key: "PORT", val: "http"},
		{name: "bad limit", key: "SHOWS_LIMIT", val: "-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			_, err := Parse(defaultsRaw)
			assert.Error(t, err)
		})
	}
}

func TestParseMalformedYAML(t *testing.T) {
	_, err := Parse([]byte("server: [unterminated"))
	assert.Error(t, err)
}

func TestLoadWithoutDotEnv(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "Phoenix", cfg.Weather.DefaultCity)
}

func TestLoadReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("GITHUB_USER=gopher\n"), 0o600))
	t.Chdir(dir)
	// godotenv never overrides a variable that is already set.
	t.Setenv("GITHUB_USER", "")
	require.NoError(t, os.Unsetenv("GITHUB_USER"))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "gopher", cfg.GitHub.User)
}

func TestLoadRejectsMalformedDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("BAD-KEY=1\n"), 0o600))
	t.Chdir(dir)

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load .env")
}
