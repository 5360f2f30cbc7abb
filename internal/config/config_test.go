package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"API_BASE_URL", "STATE_DIR", "HTTP_TIMEOUT", "SERVER_PORT", "RATE_LIMIT_RPM", "LOGIN_RATE_LIMIT_RPM"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://127.0.0.1:8000/app", cfg.APIBaseURL)
	assert.Equal(t, "./state", cfg.StateDir)
	assert.Equal(t, 15*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "3000", cfg.ServerPort)
	assert.Equal(t, 300, cfg.RateLimitRPM)
	assert.Equal(t, 10, cfg.LoginRateLimitRPM)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://portal.example.edu/app")
	t.Setenv("HTTP_TIMEOUT", "5s")
	t.Setenv("LOGIN_RATE_LIMIT_RPM", "3")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://portal.example.edu/app", cfg.APIBaseURL)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 3, cfg.LoginRateLimitRPM)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("HTTP_TIMEOUT", "soon")
	t.Setenv("RATE_LIMIT_RPM", "many")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 15*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 300, cfg.RateLimitRPM)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			APIBaseURL:  "http://127.0.0.1:8000/app",
			StateDir:    "./state",
			ServerPort:  "3000",
			HTTPTimeout: time.Second,
		}
	}

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, base().Validate())
	})

	t.Run("relative api url", func(t *testing.T) {
		cfg := base()
		cfg.APIBaseURL = "/app"
		assert.Error(t, cfg.Validate())
	})

	t.Run("empty state dir", func(t *testing.T) {
		cfg := base()
		cfg.StateDir = " "
		assert.Error(t, cfg.Validate())
	})

	t.Run("non-positive timeout", func(t *testing.T) {
		cfg := base()
		cfg.HTTPTimeout = 0
		assert.Error(t, cfg.Validate())
	})
}
