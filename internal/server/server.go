package server

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Tomlord1122/todoo-api/internal/config"
	"github.com/Tomlord1122/todoo-api/internal/service"
)

// HealthChecker reports database health. database.Service implements it.
type HealthChecker interface {
	Health() map[string]string
}

type Server struct {
	cfg         config.ServerConfig
	todoService service.TodoService
	db          HealthChecker
	registry    *prometheus.Registry
}

// NewServer wires the handlers to their dependencies. registry must already
// hold the collectors from metrics.RegisterCollectors.
func NewServer(cfg config.ServerConfig, todoService service.TodoService, db HealthChecker, registry *prometheus.Registry) *http.Server {
	appServer := &Server{
		cfg:         cfg,
		todoService: todoService,
		db:          db,
		registry:    registry,
	}

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      appServer.RegisterRoutes(),
		IdleTimeout:  cfg.IdleTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
}
