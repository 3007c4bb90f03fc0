package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgresql://u:p@localhost:5432/todo?sslmode=require")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.Equal(t, 8080, cfg.Server.Port)
	require.Equal(t, []string{"https://*", "http://*"}, cfg.Server.AllowedOrigins)
	require.Equal(t, 300*time.Second, cfg.Database.ConnMaxLifetime)
	require.Zero(t, cfg.Database.MaxOpenConns)
	require.Equal(t, "warn", cfg.Database.LogLevel)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://u:p@db/todo")
	t.Setenv("PORT", "9090")
	t.Setenv("DB_CONN_MAX_LIFETIME", "90s")
	t.Setenv("DB_MAX_OPEN_CONNS", "25")
	t.Setenv("DB_LOG_LEVEL", "INFO")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.example.com, ")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.Equal(t, 9090, cfg.Server.Port)
	require.Equal(t, 90*time.Second, cfg.Database.ConnMaxLifetime)
	require.Equal(t, 25, cfg.Database.MaxOpenConns)
	require.Equal(t, "info", cfg.Database.LogLevel)
	require.Equal(t, []string{"https://app.example.com"}, cfg.Server.AllowedOrigins)
}

func TestLoadConfig_MissingDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	cfg, err := LoadConfig()
	require.ErrorIs(t, err, ErrMissingDatabaseURL)
	require.Nil(t, cfg)
}
