// Package server runs the development auth API: an in-memory stand-in for
// the hosted service, used for local runs and end-to-end tests of the CLI.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/dmitrijs2005/authdemo/internal/logging"
	"github.com/dmitrijs2005/authdemo/internal/server/config"
	"github.com/dmitrijs2005/authdemo/internal/server/httpapi"
	"github.com/dmitrijs2005/authdemo/internal/server/repositories/sessions"
	"github.com/dmitrijs2005/authdemo/internal/server/repositories/users"
	"github.com/dmitrijs2005/authdemo/internal/server/services"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	config  *config.Config
	logger  logging.Logger
	handler http.Handler
}

// NewApp wires repositories, services and the router. Logs are written as
// JSON to stdout.
func NewApp(c *config.Config) *App {
	l := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logging.ParseLevel(c.LogLevel)}))
	return newApp(c, logging.NewSlogLogger(l))
}

// NewTestApp is NewApp with logs discarded.
func NewTestApp(c *config.Config) *App {
	return newApp(c, logging.Discard())
}

func newApp(c *config.Config, logger logging.Logger) *App {
	us := services.NewUserService(users.NewMemoryRepository(), sessions.NewMemoryRepository(), c)
	h := httpapi.NewHandler(us, logger)
	return &App{config: c, logger: logger, handler: httpapi.NewRouter(c.Prefix, h, logger)}
}

// Handler exposes the router, e.g. for httptest.NewServer.
func (app *App) Handler() http.Handler {
	return app.handler
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (app *App) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", app.config.Addr)
	if err != nil {
		return err
	}
	return app.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (app *App) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           app.handler,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info(ctx, "Server listening", "addr", ln.Addr().String(), "prefix", app.config.Prefix)
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	app.logger.Info(ctx, "Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	app.logger.Info(ctx, "Server stopped")
	return nil
}
