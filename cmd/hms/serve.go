package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	"github.com/hms/hms/internal/domain/billing"
	"github.com/hms/hms/internal/domain/identity"
	"github.com/hms/hms/internal/domain/scheduling"
	"github.com/hms/hms/internal/domain/supply"
	"github.com/hms/hms/internal/platform/middleware"
	"github.com/hms/hms/internal/platform/sandbox"
	"github.com/hms/hms/internal/store"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the records API on the configured local address",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(ctx context.Context, a *app, _ io.Writer) error {
				return runServer(ctx, a)
			})
		},
	}
}

// newServer builds the echo instance with every route registered.
func newServer(a *app) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.Recovery(a.logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(a.logger))
	e.Use(middleware.Metrics(a.metrics))
	e.Use(middleware.BodyLimit(a.cfg.BodyLimit))
	e.Use(middleware.RequestTimeout(a.cfg.RequestTimeout))

	e.GET("/health", func(c echo.Context) error {
		counts := make(map[string]int)
		for kind, n := range a.store.Counts() {
			counts[string(kind)] = n
		}
		return c.JSON(http.StatusOK, map[string]interface{}{
			"status":  "ok",
			"storage": a.store.Provider().Driver(),
			"records": counts,
		})
	})
	e.GET("/metrics", echo.WrapHandler(a.metrics.Handler()))

	apiV1 := e.Group("/api/v1")
	identity.NewHandler(a.identity).RegisterRoutes(apiV1)
	scheduling.NewHandler(a.scheduling).RegisterRoutes(apiV1)
	supply.NewHandler(a.supply).RegisterRoutes(apiV1)
	billing.NewHandler(a.billing).RegisterRoutes(apiV1)
	store.NewHandler(a.store).RegisterRoutes(apiV1)
	sandbox.NewSeedHandler(sandbox.NewSeeder(a.store)).RegisterRoutes(apiV1)

	return e
}

// runServer serves until SIGINT or SIGTERM. The caller saves the store once
// the server has drained.
func runServer(ctx context.Context, a *app) error {
	e := newServer(a)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		addr := a.cfg.Addr()
		a.logger.Info().Str("addr", addr).Str("storage", string(a.store.Provider().Driver())).Msg("starting server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			a.logger.Error().Err(err).Msg("server error")
			return err
		}
	case <-ctx.Done():
	}

	a.logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		a.logger.Error().Err(err).Msg("server shutdown failed")
		return err
	}
	a.logger.Info().Msg("server stopped")
	return nil
}
