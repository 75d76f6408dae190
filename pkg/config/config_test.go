package config

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(discardLogger())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, 8*time.Hour, cfg.Jwt.Expiry)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.NotEmpty(t, cfg.DB.Url)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("SERVER_PORT", "8080")
	t.Setenv("DATABASE_URL", "postgres://bank:secret@db:5432/branchbank")
	t.Setenv("JWT_EXPIRY", "30m")

	cfg, err := Load(discardLogger())
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "postgres://bank:secret@db:5432/branchbank", cfg.DB.Url)
	assert.Equal(t, 30*time.Minute, cfg.Jwt.Expiry)
}
