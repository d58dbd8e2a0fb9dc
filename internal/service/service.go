// Package service composes the canvas store, write coordinator, and
// encoding cache into the operations the transport layer needs: read the
// canvas as an encoded image, and submit a single pixel write.
package service

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/pixelwall/pixelwall/internal/cache"
	"github.com/pixelwall/pixelwall/internal/canvas"
	"github.com/pixelwall/pixelwall/internal/writer"
)

// ErrOutOfBounds is returned by SubmitPixel for coordinates outside the
// canvas. Its text is the client-facing rejection reason.
var ErrOutOfBounds = errors.New("pixel outside of drawing area")

// CanvasService answers read-canvas and submit-pixel requests.
//
// Validation happens entirely here: an invalid write never reaches the
// coordinator or the store.
type CanvasService struct {
	store  *canvas.Store
	writes *writer.Coordinator
	cache  *cache.Cache
	format canvas.Format
}

// New creates a [CanvasService] over the given components.
func New(store *canvas.Store, writes *writer.Coordinator, c *cache.Cache, format canvas.Format) *CanvasService {
	return &CanvasService{
		store:  store,
		writes: writes,
		cache:  c,
		format: format,
	}
}

// ReadCanvas returns the current encoded canvas and its MIME content type.
//
// The bytes come from the encoding cache and may lag the newest writes by
// up to the cache TTL. The transport layer must serve them with
// Cache-Control: no-store so that freshness stays owned by this service,
// not by downstream caches.
func (s *CanvasService) ReadCanvas() (data []byte, contentType string, err error) {
	data, err = s.cache.GetOrFill(func() ([]byte, error) {
		var buf bytes.Buffer
		err := s.store.WithRead(func(cv *canvas.Canvas) error {
			return cv.Encode(&buf, s.format)
		})
		if err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	})
	if err != nil {
		return nil, "", err
	}
	return data, s.format.ContentType(), nil
}

// SubmitPixel validates the pixel coordinates and hands the write to the
// coordinator.
//
// A nil return means accepted into the queue, not applied; the write
// becomes visible once the applier has drained it and the encoding cache
// has expired. Rejections are [ErrOutOfBounds] for invalid coordinates and
// the coordinator's errors for a full or closed queue.
func (s *CanvasService) SubmitPixel(p canvas.Pixel) error {
	width, height := s.store.Dimensions()
	if p.X < 0 || p.X >= width {
		return fmt.Errorf("%w: x must be in [0,%d), got %d", ErrOutOfBounds, width, p.X)
	}
	if p.Y < 0 || p.Y >= height {
		return fmt.Errorf("%w: y must be in [0,%d), got %d", ErrOutOfBounds, height, p.Y)
	}

	return s.writes.Enqueue(p)
}

// Dimensions returns the fixed canvas width and height.
func (s *CanvasService) Dimensions() (width, height int) {
	return s.store.Dimensions()
}
