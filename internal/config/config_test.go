package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "production") // skip .env loading
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("CORS_ORIGIN", "")
	t.Setenv("BOARD_LIST_OWNER_ONLY", "")

	cfg := Load()

	assert.Equal(t, "5002", cfg.HTTPPort)
	assert.Equal(t, "http://localhost:5173", cfg.CorsOrigin)
	assert.Equal(t, "production", cfg.AppEnv)
	assert.False(t, cfg.BoardListOwnerOnly)
	assert.NotEmpty(t, cfg.DatabaseURL)
	assert.NotEmpty(t, cfg.JWTSecret)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("PORT", "8080")
	t.Setenv("DATABASE_URL", "postgres://app:app@db:5432/kano")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("CORS_ORIGIN", "https://kano.example.com")
	t.Setenv("BOARD_LIST_OWNER_ONLY", "true")

	cfg := Load()

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, "postgres://app:app@db:5432/kano", cfg.DatabaseURL)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, "https://kano.example.com", cfg.CorsOrigin)
	assert.True(t, cfg.BoardListOwnerOnly)
}
