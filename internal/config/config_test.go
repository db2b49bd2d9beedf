package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("Success loading from env", func(t *testing.T) {
		t.Setenv("DB_HOST", "localhost")
		t.Setenv("DB_USER", "testuser")
		t.Setenv("DB_PASSWORD", "testpass")
		t.Setenv("DB_NAME", "testdb")
		t.Setenv("DB_PORT", "5433")
		t.Setenv("APP_PORT", "9090")
		t.Setenv("APP_ENV", "test")
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("DEFAULT_LOCALE", "pl-PL")
		t.Setenv("SECTION_TTL", "5m")
		t.Setenv("SECTION_CAPACITY", "50")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, "localhost", cfg.DBHost)
		assert.Equal(t, "testuser", cfg.DBUser)
		assert.Equal(t, "testpass", cfg.DBPassword)
		assert.Equal(t, "testdb", cfg.DBName)
		assert.Equal(t, "5433", cfg.DBPort)
		assert.Equal(t, "9090", cfg.AppPort)
		assert.Equal(t, "test", cfg.AppEnv)
		assert.Equal(t, "secret", cfg.JWTSecret)
		assert.Equal(t, "pl-PL", cfg.DefaultLocale)
		assert.Equal(t, 5*time.Minute, cfg.SectionTTL)
		assert.Equal(t, 50, cfg.SectionCapacity)
	})

	t.Run("Defaults", func(t *testing.T) {
		t.Setenv("DB_HOST", "localhost")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, "8080", cfg.AppPort)
		assert.Equal(t, "disable", cfg.DBSSLMode)
		assert.Equal(t, "en-US", cfg.DefaultLocale)
		assert.Equal(t, 30*time.Minute, cfg.SectionTTL)
		assert.Equal(t, 10000, cfg.SectionCapacity)
		assert.Equal(t, 25, cfg.DBMaxOpenConns)
		assert.Equal(t, 5, cfg.DBMaxIdleConns)
		assert.Equal(t, 30*time.Minute, cfg.DBConnMaxLifetime)
		assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSAllowedOrigins)
	})

	t.Run("Origins list", func(t *testing.T) {
		t.Setenv("DB_HOST", "localhost")
		t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com,https://b.example.com")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORSAllowedOrigins)
	})

	t.Run("Empty DB host", func(t *testing.T) {
		t.Setenv("DB_HOST", "")

		cfg, err := Load()

		assert.Error(t, err)
		assert.Nil(t, cfg)
	})

	t.Run("Invalid capacity", func(t *testing.T) {
		t.Setenv("DB_HOST", "localhost")
		t.Setenv("SECTION_CAPACITY", "0")

		_, err := Load()

		assert.ErrorContains(t, err, "SECTION_CAPACITY")
	})

	t.Run("Malformed duration", func(t *testing.T) {
		t.Setenv("DB_HOST", "localhost")
		t.Setenv("SECTION_TTL", "soon")

		_, err := Load()

		assert.ErrorContains(t, err, "parse config")
	})
}
