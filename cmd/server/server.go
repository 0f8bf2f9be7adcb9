package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"
)

// newHTTPServer configures the server from the application config.
func (app *application) newHTTPServer(handler http.Handler) *http.Server {
	s := app.config.Server
	return &http.Server{
		Addr:              net.JoinHostPort("", strconv.Itoa(s.Port)),
		Handler:           handler,
		ReadTimeout:       time.Duration(s.ReadTimeoutSeconds) * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      time.Duration(s.WriteTimeoutSeconds) * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

// startHTTPServer serves until ctx is canceled or the listener fails.
// Cancellation triggers a graceful shutdown bounded by the configured timeout.
func (app *application) startHTTPServer(ctx context.Context, handler http.Handler) error {
	server := app.newHTTPServer(handler)

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info("starting server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			app.logger.Error("server failed", "error", err)
			return err
		}
		return nil
	case <-ctx.Done():
		app.logger.Info("shutting down server")
	}

	timeout := time.Duration(app.config.Server.ShutdownTimeoutSeconds) * time.Second
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		app.logger.Error("server shutdown failed", "error", err)
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	app.logger.Info("server shutdown completed")
	return nil
}
