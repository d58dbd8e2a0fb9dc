package pixelwall

import (
	"errors"
	"log/slog"
	"time"

	"github.com/pixelwall/pixelwall/internal/canvas"
)

// pwConfig holds mutable state during PixelWall construction.
type pwConfig struct {
	seedPath  string
	port      int
	cacheTTL  time.Duration
	queueSize int
	format    canvas.Format
	logger    *slog.Logger
}

// Option is a function that configures a [PixelWall] instance during
// construction.
//
// Option implements the functional options pattern, allowing optional
// configuration to be passed to [New] in a type-safe, extensible way.
// Options return an error if validation fails.
//
// Built-in options: [WithSeedPath], [WithPort], [WithCacheTTL],
// [WithQueueSize], [WithFormat], [WithLogger].
type Option func(*pwConfig) error

// WithSeedPath sets the seed image file.
//
// The image is decoded at startup and fixes the canvas dimensions; the
// same path is overwritten with the final canvas on graceful shutdown.
// A seed path is required for [New] to succeed.
//
// Returns an error if the path is empty.
func WithSeedPath(path string) Option {
	return func(cfg *pwConfig) error {
		if path == "" {
			return errors.New("seed path cannot be empty")
		}
		cfg.seedPath = path
		return nil
	}
}

// WithPort sets the HTTP port for the canvas server.
//
// The drawing UI and API will be available at http://localhost:<port>.
// Defaults to 8080 if not specified.
//
// Returns an error if the port is outside the valid range (1-65535).
func WithPort(port int) Option {
	return func(cfg *pwConfig) error {
		if port < 1 || port > 65535 {
			return errors.New("port must be between 1 and 65535")
		}
		cfg.port = port
		return nil
	}
}

// WithCacheTTL sets how long an encoded canvas stays fresh.
//
// A read served within the TTL reuses the cached encoding and may lag the
// newest writes by up to this duration; raising it trades freshness for
// cheaper reads. Defaults to 100ms if not specified.
//
// Returns an error if the duration is zero or negative.
func WithCacheTTL(d time.Duration) Option {
	return func(cfg *pwConfig) error {
		if d <= 0 {
			return errors.New("cache TTL must be positive")
		}
		cfg.cacheTTL = d
		return nil
	}
}

// WithQueueSize sets the capacity of the pixel write queue.
//
// Writes submitted while the queue is full are rejected with a retryable
// busy error rather than blocking the caller. Defaults to 1024 if not
// specified.
//
// Returns an error if the value is zero or negative.
func WithQueueSize(n int) Option {
	return func(cfg *pwConfig) error {
		if n <= 0 {
			return errors.New("queue size must be positive")
		}
		cfg.queueSize = n
		return nil
	}
}

// WithFormat sets the image format used for the seed file, the shutdown
// snapshot, and the /image response.
//
// Accepted values are "png" (default), "bmp", and "tiff".
func WithFormat(format string) Option {
	return func(cfg *pwConfig) error {
		f, err := canvas.ParseFormat(format)
		if err != nil {
			return err
		}
		cfg.format = f
		return nil
	}
}

// WithLogger sets a custom [slog.Logger] for the PixelWall instance.
//
// This allows SDK consumers to control where logs are written and in what
// format. If not specified, [slog.Default] is used.
//
// Returns an error if the logger is nil.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *pwConfig) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		cfg.logger = logger
		return nil
	}
}
