package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, defaultPlacesBaseURL, cfg.Places.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Places.RequestTimeout)
	assert.Equal(t, defaultFirebaseCerts, cfg.Auth.CertsURL)
	assert.True(t, cfg.Auth.RequireLocationAuth)
	assert.Equal(t, PersistenceModeInline, cfg.Persistence.Mode)
	assert.Equal(t, "place-ingest-workers", cfg.Worker.ConsumerGroup)
	assert.Equal(t, 20, cfg.Worker.BatchSize)
	assert.Equal(t, 3000, cfg.Server.Port)
}

func TestLoadFrom_EnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "API_HOST=127.0.0.1\n" +
		"API_PORT=8443\n" +
		"GOOGLE_API_KEY=test-key\n" +
		"GOOGLE_PLACES_TIMEOUT=3\n" +
		"FIREBASE_PROJECT_ID=eat-app\n" +
		"AUTH_REQUIRE_LOCATION=false\n" +
		"PERSISTENCE_MODE=stream\n" +
		"CORS_ALLOW_ORIGINS=https://eat.example.com, http://localhost:8081,\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8443", cfg.GetServerAddr())
	assert.Equal(t, "test-key", cfg.Places.APIKey)
	assert.Equal(t, 3*time.Second, cfg.Places.RequestTimeout)
	assert.Equal(t, "eat-app", cfg.Auth.FirebaseProjectID)
	assert.False(t, cfg.Auth.RequireLocationAuth)
	assert.True(t, cfg.StreamMode())
	assert.Equal(t, []string{"https://eat.example.com", "http://localhost:8081"}, cfg.Server.AllowOrigins)
	assert.NoError(t, cfg.Validate())
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Places:      PlacesConfig{APIKey: "key"},
			Auth:        AuthConfig{FirebaseProjectID: "project"},
			Persistence: PersistenceConfig{Mode: PersistenceModeInline},
		}
	}

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	t.Run("missing api key", func(t *testing.T) {
		cfg := valid()
		cfg.Places.APIKey = ""
		assert.ErrorContains(t, cfg.Validate(), "GOOGLE_API_KEY")
	})

	t.Run("missing project", func(t *testing.T) {
		cfg := valid()
		cfg.Auth.FirebaseProjectID = ""
		assert.ErrorContains(t, cfg.Validate(), "FIREBASE_PROJECT_ID")
	})

	t.Run("unknown persistence mode", func(t *testing.T) {
		cfg := valid()
		cfg.Persistence.Mode = "kafka"
		assert.ErrorContains(t, cfg.Validate(), "PERSISTENCE_MODE")
	})
}
