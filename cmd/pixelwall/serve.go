package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/pixelwall/pixelwall"
	"github.com/pixelwall/pixelwall/config"
)

const (
	shutdownTimeout = 10 * time.Second
)

// newLogger creates a JSON logger for CLI use.
func newLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

// serveCmd starts the pixelwall canvas server.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the canvas server",
	Long: `Start the pixelwall canvas server.

The server will:
  - Load configuration from the specified YAML file
  - Decode the seed image, which fixes the canvas dimensions
  - Serve the drawing UI and canvas API on the configured port
  - Write the final canvas back to the seed path on shutdown

The server runs until interrupted (Ctrl+C) or receives SIGTERM. Pixel
writes accepted before the signal are drained and persisted before the
process exits.

Example:
  pixelwall serve -c config.yaml
  pixelwall serve --config /etc/pixelwall/config.yaml`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("config", "c", "", "path to config file (required)")
	_ = serveCmd.MarkFlagRequired("config")
}

func runServe(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger.Info("config loaded",
		"seed_path", cfg.SeedPath,
		"format", cfg.Format,
	)
	logger.Info("starting server",
		"port", cfg.Port,
		"cache_ttl", cfg.CacheTTL.Duration().String(),
		"queue_size", cfg.QueueSize,
	)

	opts := append(config.BuildOptions(cfg), pixelwall.WithLogger(logger))

	pw, err := pixelwall.New(opts...)
	if err != nil {
		return fmt.Errorf("failed to create pixelwall: %w", err)
	}

	// set up context with signal handling - cancel on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// start server - blocks until context cancelled
	errChan := make(chan error, 1)
	go func() {
		errChan <- pw.Start(ctx)
	}()

	// wait for server to finish
	select {
	case err := <-errChan:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		logger.Info("shutdown complete")
		return nil

	case <-ctx.Done():
		// signal received, wait for graceful shutdown with timeout
		select {
		case err := <-errChan:
			if err != nil {
				return fmt.Errorf("server error: %w", err)
			}
			logger.Info("shutdown complete")
			return nil
		case <-time.After(shutdownTimeout):
			logger.Warn("shutdown timed out",
				"timeout", shutdownTimeout.String(),
				"action", "forcing exit",
			)
			return nil
		}
	}
}
