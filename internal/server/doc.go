// Package server provides the HTTP transport for the pixel canvas.
//
// This package is internal to pixelwall and handles all HTTP concerns:
//
//   - Drawing UI: Serves the embedded HTML page at "/"
//   - Canvas reads: Encoded image at "/image", served with
//     Cache-Control: no-store so freshness stays owned by the encoding cache
//   - Pixel writes: JSON endpoint at "/pixel", where 204 means accepted
//     into the write queue, not yet rendered
//
// Routing goes through chi with panic recovery and per-request
// correlation-id logging.
//
// Users of the pixelwall library should not need to interact with this
// package directly. The server is started by [pixelwall.PixelWall.Start].
package server
