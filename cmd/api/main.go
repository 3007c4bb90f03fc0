package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/Tomlord1122/todoo-api/internal/config"
	"github.com/Tomlord1122/todoo-api/internal/database"
	"github.com/Tomlord1122/todoo-api/internal/metrics"
	"github.com/Tomlord1122/todoo-api/internal/repository"
	"github.com/Tomlord1122/todoo-api/internal/server"
	"github.com/Tomlord1122/todoo-api/internal/service"
)

func gracefulShutdown(apiServer *http.Server, dbService database.Service, done chan bool) {
	// Create context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	log.Println("Shutting down gracefully, press Ctrl+C again to force")
	stop()

	// The server has 5 seconds to finish the requests it is currently handling.
	ctxTimeout, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(ctxTimeout); err != nil {
		log.Printf("Server forced to shutdown with error: %v", err)
	}

	log.Println("Closing database connection pool...")
	if err := dbService.Close(); err != nil {
		log.Printf("Error closing database connection pool: %v", err)
	} else {
		log.Println("Database connection pool closed.")
	}

	log.Println("Server exiting")
	done <- true
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	dbService, err := database.New(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	log.Println("Creating tables..")
	migrateCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	err = dbService.Migrate(migrateCtx)
	cancel()
	if err != nil {
		_ = dbService.Close()
		log.Fatalf("Failed to create tables: %v", err)
	}

	sqlDB, err := dbService.GetDB().DB()
	if err != nil {
		log.Fatalf("Failed to get underlying sql.DB: %v", err)
	}
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics.RegisterCollectors(registry, sqlDB)

	todoStore := repository.NewGormStore(dbService)
	todoService := service.NewTodoService(todoStore)
	apiServer := server.NewServer(cfg.Server, todoService, dbService, registry)

	done := make(chan bool, 1)
	go gracefulShutdown(apiServer, dbService, done)

	log.Printf("Starting server on %s", apiServer.Addr)
	err = apiServer.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("HTTP server ListenAndServe error: %v", err)
	}

	<-done
	log.Println("Graceful shutdown complete.")
}
