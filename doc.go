// Package pixelwall provides a shared, mutable pixel canvas served over
// HTTP: clients fetch the current canvas as an encoded image and submit
// single-pixel writes.
//
// # Quick Start
//
// Point pixelwall at a seed image and start it with graceful shutdown:
//
//	pw, _ := pixelwall.New(pixelwall.WithSeedPath("data/canvas.png"))
//
//	// Set up graceful shutdown on SIGINT/SIGTERM
//	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
//	defer stop()
//
//	pw.Start(ctx) // blocks until context is cancelled
//
// The seed image fixes the canvas dimensions; on shutdown the final canvas
// is written back to the same path, so accepted writes survive restarts.
//
// # Configuration
//
// PixelWall uses the functional options pattern for configuration:
//
//	pw, err := pixelwall.New(
//	    pixelwall.WithSeedPath("data/canvas.png"),
//	    pixelwall.WithPort(9090),
//	    pixelwall.WithCacheTTL(250 * time.Millisecond),
//	    pixelwall.WithQueueSize(4096),
//	    pixelwall.WithFormat("png"),
//	)
//
// # Consistency model
//
// Pixel writes are accepted into a FIFO queue and applied by a single
// background goroutine, batched under one exclusive canvas lock per drain.
// Reads are served from an encoding cache that expires purely by elapsed
// time (default 100ms), never by write events. Reads therefore offer
// bounded staleness, not linearizability: a read reflects some consistent
// point-in-time canvas state at most one cache TTL old.
//
// # Architecture
//
// PixelWall consists of several internal packages (under internal/):
//
//   - internal/canvas: The RGB raster, its image codecs, and the
//     shared-read/exclusive-write store that owns it
//   - internal/writer: The bounded write queue and its single applier
//   - internal/cache: The time-windowed encoding cache
//   - internal/service: Validation and composition of the above
//   - internal/server: HTTP transport (chi router)
//   - web: Embedded drawing UI assets
//
// The internal packages are not part of the public API and may change
// without notice. The library is designed for single-binary deployment
// using Go's embed directive for static assets.
package pixelwall
