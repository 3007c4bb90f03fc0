package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
}

type ServerConfig struct {
	Port           int
	AllowedOrigins []string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
}

type DatabaseConfig struct {
	URL             string
	ConnMaxLifetime time.Duration
	MaxOpenConns    int // 0 keeps the driver default (unbounded)
	MaxIdleConns    int // 0 keeps the driver default
	LogLevel        string
}

var ErrMissingDatabaseURL = errors.New("DATABASE_URL is required")

// LoadConfig loads configuration from environment variables and an optional .env file.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", 8080)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "https://*,http://*")
	v.SetDefault("DB_CONN_MAX_LIFETIME", "300s")
	v.SetDefault("DB_MAX_OPEN_CONNS", 0)
	v.SetDefault("DB_MAX_IDLE_CONNS", 0)
	v.SetDefault("DB_LOG_LEVEL", "warn")

	cfg := &Config{
		Server: ServerConfig{
			Port:           v.GetInt("PORT"),
			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
			ReadTimeout:    10 * time.Second,
			WriteTimeout:   30 * time.Second,
			IdleTimeout:    time.Minute,
		},
		Database: DatabaseConfig{
			URL:             strings.TrimSpace(v.GetString("DATABASE_URL")),
			ConnMaxLifetime: v.GetDuration("DB_CONN_MAX_LIFETIME"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			LogLevel:        strings.ToLower(v.GetString("DB_LOG_LEVEL")),
		},
	}

	if cfg.Database.URL == "" {
		return nil, ErrMissingDatabaseURL
	}
	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Database.ConnMaxLifetime <= 0 {
		cfg.Database.ConnMaxLifetime = 300 * time.Second
	}

	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
