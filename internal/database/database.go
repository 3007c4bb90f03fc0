package database

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Tomlord1122/todoo-api/internal/config"
	"github.com/Tomlord1122/todoo-api/internal/domain"
)

// DefaultConnMaxLifetime recycles pooled connections before a scaled-down
// database silently drops them.
const DefaultConnMaxLifetime = 300 * time.Second

// Service owns the process-wide connection pool.
type Service interface {
	Health() map[string]string
	Close() error
	GetDB() *gorm.DB

	// Migrate creates the tables for the registered models if they are absent.
	Migrate(ctx context.Context) error

	// Session runs fn inside one transaction bound to one pooled connection.
	// The transaction is committed when fn returns nil and rolled back
	// otherwise, and the connection always goes back to the pool.
	Session(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	db  *gorm.DB
	dsn string
}

// New opens the pool described by cfg and verifies it with a ping.
func New(cfg config.DatabaseConfig) (Service, error) {
	dsn, err := NormalizeURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  parseLogLevel(cfg.LogLevel),
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	// gorm pings on open, so an unreachable database fails here.
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		if db != nil {
			if sqlDB, dbErr := db.DB(); dbErr == nil {
				_ = sqlDB.Close()
			}
		}
		return nil, fmt.Errorf("%w: open %s: %w", domain.ErrConnection, SanitizeDSN(dsn), err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get underlying sql.DB: %w", err)
	}

	lifetime := cfg.ConnMaxLifetime
	if lifetime <= 0 {
		lifetime = DefaultConnMaxLifetime
	}
	sqlDB.SetConnMaxLifetime(lifetime)
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}

	log.Printf("Connected to database %s (conn max lifetime %s)", SanitizeDSN(dsn), lifetime)

	return &service{db: db, dsn: dsn}, nil
}

func (s *service) GetDB() *gorm.DB {
	return s.db
}

func (s *service) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&domain.Todo{}); err != nil {
		return wrapConnErr(fmt.Errorf("auto-migrate: %w", err))
	}
	return nil
}

func (s *service) Session(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return wrapConnErr(s.db.WithContext(ctx).Transaction(fn))
}

// Health pings the database and reports pool statistics.
func (s *service) Health() map[string]string {
	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	stats := make(map[string]string)
	sqlDB, err := s.db.DB()
	if err != nil {
		stats["status"] = "down"
		stats["error"] = fmt.Sprintf("failed to get underlying DB for health check: %v", err)
		log.Printf("Error getting DB for health check: %v", err)
		return stats
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		stats["status"] = "down"
		stats["error"] = fmt.Sprintf("db down: %v", err)
		log.Printf("db down: %v", err)
		return stats
	}

	stats["status"] = "up"
	stats["message"] = "It's healthy"

	dbStats := sqlDB.Stats()
	stats["open_connections"] = strconv.Itoa(dbStats.OpenConnections)
	stats["in_use"] = strconv.Itoa(dbStats.InUse)
	stats["idle"] = strconv.Itoa(dbStats.Idle)
	stats["wait_count"] = strconv.FormatInt(dbStats.WaitCount, 10)
	stats["wait_duration"] = dbStats.WaitDuration.String()
	stats["max_idle_closed"] = strconv.FormatInt(dbStats.MaxIdleClosed, 10)
	stats["max_lifetime_closed"] = strconv.FormatInt(dbStats.MaxLifetimeClosed, 10)

	if dbStats.WaitCount > 1000 {
		stats["message"] = "The database has a high number of wait events, indicating potential bottlenecks."
	}

	return stats
}

func (s *service) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		log.Printf("Error getting underlying sql.DB for closing: %v", err)
		return err
	}
	log.Printf("Closing connection pool for database: %s", SanitizeDSN(s.dsn))
	return sqlDB.Close()
}

func parseLogLevel(level string) logger.LogLevel {
	switch level {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}
