package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"signup-web/internal/config"
	"signup-web/internal/container"
	"signup-web/internal/handler"
	"signup-web/internal/service/session"
	"signup-web/pkg/logger"
	"signup-web/pkg/server"
)

// Resources holds all resources that need cleanup
type Resources struct {
	sessions *session.Service
	server   *http.Server
	log      *logger.Logger
	mu       sync.Mutex
	closed   bool
}

// Cleanup gracefully closes all resources
func (r *Resources) Cleanup(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true

	var errors []error

	r.log.Info("Starting graceful shutdown...")

	// Shutdown HTTP server first to stop accepting new requests
	if r.server != nil {
		if err := server.Shutdown(ctx, r.server, r.log); err != nil {
			errors = append(errors, fmt.Errorf("HTTP server shutdown: %w", err))
		}
	}

	if r.sessions != nil {
		r.log.Info("Stopping session service...")
		if err := r.sessions.Stop(ctx); err != nil {
			r.log.WithError(err).Error("Failed to stop session service")
			errors = append(errors, fmt.Errorf("session service shutdown: %w", err))
		}
	}

	if len(errors) > 0 {
		r.log.WithField("error_count", len(errors)).Error("Cleanup completed with errors")
		return fmt.Errorf("cleanup completed with %d errors: %v", len(errors), errors)
	}

	r.log.Info("Graceful shutdown completed successfully")
	return nil
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.WithFields(map[string]interface{}{
		"port":               cfg.Port,
		"log_level":          cfg.LogLevel,
		"environment":        cfg.Environment,
		"activities_api_url": cfg.ActivitiesAPIURL,
		"message_hide_delay": cfg.MessageHideDelay,
	}).Info("Starting signup-web server")

	// Create dependency injection container
	c, err := container.New(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to create container")
	}

	ctx := context.Background()
	sessions := c.GetSessionService()
	if err := sessions.Start(ctx); err != nil {
		log.WithError(err).Fatal("Failed to start session service")
	}

	srv := server.New(cfg.Port, handler.NewRouter(c))

	resources := &Resources{
		sessions: sessions,
		server:   srv,
		log:      log,
	}

	// Setup graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Cleanup runs however main returns
	defer func() {
		cleanupCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := resources.Cleanup(cleanupCtx); err != nil {
			log.WithError(err).Error("Cleanup completed with errors")
		}
	}()

	serverErrChan := server.Start(srv, nil, log)

	// Wait for interrupt signal or server error
	select {
	case sig := <-quit:
		log.WithField("signal", sig.String()).Info("Received shutdown signal")
	case err := <-serverErrChan:
		log.WithError(err).Error("Server failed, initiating shutdown")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 25*time.Second)
	defer cancel()

	if err := resources.Cleanup(shutdownCtx); err != nil {
		log.WithError(err).Error("Graceful shutdown completed with errors")
		os.Exit(1)
	}

	log.Info("Application shutdown complete")
}
