package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/yacobolo/designsync/internal/api"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the JSON HTTP API for a visual editor",
	Long: `Serve scan results and accept edits over HTTP under /api. The project is
scanned once at startup; POST /api/rescan refreshes it.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg := buildServeConfig()
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("serve config: %w", err)
		}

		level := slog.LevelInfo
		if getBoolWithFallback("verbose", "verbose", false) {
			level = slog.LevelDebug
		}
		logger := slog.New(slog.NewJSONHandler(cmd.OutOrStdout(), &slog.HandlerOptions{Level: level}))

		engine, err := newEngine(logger)
		if err != nil {
			return err
		}
		if _, err := engine.Scan(cmd.Context()); err != nil {
			return fmt.Errorf("initial scan: %w", err)
		}

		r := chi.NewRouter()
		r.Mount("/api", api.NewRouter(engine, logger, cfg.Token))

		httpServer := &http.Server{
			Addr:              cfg.Addr,
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
		}
		return runServer(cmd.Context(), httpServer, logger)
	},
}

func init() {
	f := serveCmd.Flags()
	f.String("addr", "", "Listen address (default "+defaultAddr+")")
	f.String("token", "", "Require this Bearer token on API requests")
	addCacheSizeFlag(serveCmd)
}

// addCacheSizeFlag registers --cache-size on a long-running command. It
// overrides cache.size; zero keeps the configured size.
func addCacheSizeFlag(cmd *cobra.Command) {
	cmd.Flags().Int("cache-size", 0, "Scan results kept in memory (default 16)")
}

// runServer serves until a signal arrives or ctx is canceled, then shuts
// down gracefully.
func runServer(ctx context.Context, httpServer *http.Server, logger *slog.Logger) error {
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting HTTP server", slog.String("address", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case sig := <-quit:
			logger.Info("received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("server stopped")
	return nil
}
