package pixelwall

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pixelwall/pixelwall/internal/cache"
	"github.com/pixelwall/pixelwall/internal/canvas"
	"github.com/pixelwall/pixelwall/internal/server"
	"github.com/pixelwall/pixelwall/internal/service"
	"github.com/pixelwall/pixelwall/internal/writer"
	"github.com/pixelwall/pixelwall/web"
)

const (
	defaultPort      = 8080
	defaultCacheTTL  = 100 * time.Millisecond
	defaultQueueSize = 1024

	// shutdownGrace bounds how long in-flight HTTP requests may run after
	// the context is cancelled. It must elapse before the write queue is
	// closed, so that every request answered 204 has had its write queued.
	shutdownGrace = 5 * time.Second
)

// PixelWall is the main orchestrator for the shared pixel canvas server.
//
// PixelWall loads a seed image that fixes the canvas dimensions, serializes
// all pixel writes through a single background applier, serves the canvas
// over HTTP with a time-bounded encoding cache, and persists the final
// canvas back to the seed file on shutdown. It is created with [New] using
// functional options and started with [PixelWall.Start].
//
// The typical lifecycle is:
//
//	pw, err := pixelwall.New(pixelwall.WithSeedPath("data/canvas.png"))
//	if err != nil {
//	    slog.Error("failed to create pixelwall", "error", err)
//	    os.Exit(1)
//	}
//
//	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
//	defer cancel()
//
//	pw.Start(ctx) // blocks until context cancelled
//
// The caller controls the lifecycle via the context. Cancel the context to
// trigger graceful shutdown.
type PixelWall struct {
	seedPath  string
	port      int
	cacheTTL  time.Duration
	queueSize int
	format    canvas.Format
	logger    *slog.Logger
}

// New creates a new [PixelWall] instance with the given options.
//
// A seed image path must be configured via [WithSeedPath]; the seed image
// fixes the canvas dimensions for the lifetime of the process. Other
// options have sensible defaults:
//   - Port: 8080
//   - Cache TTL: 100ms
//   - Queue size: 1024
//   - Format: png
//
// Returns an error if no seed path is configured or if any option is
// invalid.
func New(opts ...Option) (*PixelWall, error) {
	cfg := &pwConfig{
		port:      defaultPort,
		cacheTTL:  defaultCacheTTL,
		queueSize: defaultQueueSize,
		format:    canvas.FormatPNG,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if cfg.seedPath == "" {
		return nil, fmt.Errorf("a seed image path is required")
	}

	// default to slog.Default() if no logger provided
	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	return &PixelWall{
		seedPath:  cfg.seedPath,
		port:      cfg.port,
		cacheTTL:  cfg.cacheTTL,
		queueSize: cfg.queueSize,
		format:    cfg.format,
		logger:    logger,
	}, nil
}

// Start loads the seed canvas and serves it until the context is cancelled.
//
// Start is a blocking call. During execution:
//
//   - The seed image is decoded, fixing the canvas dimensions
//   - The write coordinator's applier goroutine is started
//   - The HTTP server starts on the configured port
//   - The drawing UI is available at http://localhost:<port>
//
// On context cancellation, shutdown proceeds in order: the HTTP listener
// stops and in-flight requests finish, the write queue is closed and the
// applier drains every accepted write, and only then is the canvas
// persisted back to the seed path. A write accepted before the shutdown
// signal is therefore always reflected in the persisted image.
//
// Returns nil on graceful shutdown. Returns an error if the seed image
// cannot be loaded, the HTTP server fails to start, or the final snapshot
// cannot be written.
func (pw *PixelWall) Start(ctx context.Context) error {
	cv, err := canvas.Load(pw.seedPath)
	if err != nil {
		return fmt.Errorf("failed to load seed canvas: %w", err)
	}

	store := canvas.NewStore(cv)
	width, height := store.Dimensions()
	pw.logger.Info("canvas loaded",
		"path", pw.seedPath,
		"width", width,
		"height", height,
	)

	// check if context already cancelled before starting goroutines
	if ctx.Err() != nil {
		return nil
	}

	writes := writer.NewCoordinator(store, pw.queueSize, pw.logger)
	writes.Start()

	encCache := cache.New(pw.cacheTTL)
	svc := service.New(store, writes, encCache, pw.format)

	httpServer := server.NewServer(svc, pw.port, web.Assets, pw.logger)
	if err := httpServer.Start(ctx); err != nil {
		writes.Close()
		writes.Wait()
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}

	pw.logger.Info("pixelwall started",
		"url", fmt.Sprintf("http://localhost:%d", pw.port),
		"cache_ttl", pw.cacheTTL.String(),
	)

	<-ctx.Done()

	// stop accepting connections and let in-flight requests finish; any
	// request that was answered 204 has its write in the queue by the time
	// Shutdown returns
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		pw.logger.Error("http server shutdown error", "error", err)
	}

	// drain the queue before persisting so the snapshot reflects every
	// accepted write
	writes.Close()
	writes.Wait()

	if err := store.WithRead(func(cv *canvas.Canvas) error {
		return cv.Save(pw.seedPath, pw.format)
	}); err != nil {
		return fmt.Errorf("failed to persist canvas: %w", err)
	}

	pw.logger.Info("pixelwall stopped", "snapshot", pw.seedPath)
	return nil
}

// SeedPath returns the configured seed image path.
func (pw *PixelWall) SeedPath() string {
	return pw.seedPath
}

// Port returns the configured HTTP port.
func (pw *PixelWall) Port() int {
	return pw.port
}

// CacheTTL returns the configured encoding cache freshness window.
func (pw *PixelWall) CacheTTL() time.Duration {
	return pw.cacheTTL
}
