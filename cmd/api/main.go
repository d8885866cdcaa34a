package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hungrybaby/recipes-api/backend/config"
	"github.com/hungrybaby/recipes-api/backend/internal/api"
	"github.com/hungrybaby/recipes-api/backend/internal/database"
	"github.com/hungrybaby/recipes-api/backend/internal/logging"
	"github.com/hungrybaby/recipes-api/backend/internal/server"
)

// overridden during build with ldflags
var version = "dev"

func main() {
	if err := run(); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Initialize configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	logging.SetDefaultStructuredLogger("recipes-api", version, cfg.LogLevel)
	api.Version = version
	if config.GetEnvironment() != config.Development {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.New(cfg)
	if err != nil {
		return err
	}
	defer database.Close(db)

	// postgres schemas are managed by cmd/migrate
	if cfg.DBDriver == config.DriverSQLite {
		if err := database.RunMigrations(db, cfg.MigrationsDir); err != nil {
			return err
		}
	}

	srv := server.New(cfg, db)

	// Channel to listen for errors coming from the server
	errChan := make(chan error, 1)

	// Start server in a goroutine
	go func() {
		errChan <- srv.Start()
	}()

	// Channel to listen for an interrupt or terminate signal from the OS
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Block until we receive a signal or error
	select {
	case err := <-errChan:
		return err
	case sig := <-quit:
		slog.Info("received signal", "signal", sig.String())
	}

	// Gracefully shutdown the server
	slog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	slog.Info("server stopped")
	return nil
}
