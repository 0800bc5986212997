package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"signup-web/pkg/logger"
)

// New creates an HTTP server with the service's timeouts
func New(port string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              ":" + port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		// pages wait on the activities server, which has no timeout by default
		WriteTimeout:   60 * time.Second,
		IdleTimeout:    120 * time.Second,
		MaxHeaderBytes: 1 << 20, // 1MB max header size
	}
}

// Start serves on l, or on srv.Addr when l is nil, in a goroutine. The
// returned channel receives the error that stopped the server, if any
// other than a graceful shutdown.
func Start(srv *http.Server, l net.Listener, log *logger.Logger) <-chan error {
	errCh := make(chan error, 1)
	go func() {
		var err error
		if l != nil {
			log.WithField("addr", l.Addr().String()).Info("Server starting")
			err = srv.Serve(l)
		} else {
			log.WithField("addr", srv.Addr).Info("Server starting")
			err = srv.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("Server error occurred")
			errCh <- err
		}
		close(errCh)
	}()
	return errCh
}

// Shutdown stops accepting requests and waits for in-flight ones until ctx ends
func Shutdown(ctx context.Context, srv *http.Server, log *logger.Logger) error {
	log.Info("Shutting down HTTP server...")
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("Failed to shutdown HTTP server")
		return err
	}
	log.Info("HTTP server shutdown complete")
	return nil
}
