package canvas

import (
	"sync"
)

// Store owns the shared canvas and mediates all access to it.
//
// Exactly one writer may mutate the canvas at a time, and a writer
// excludes all readers for the duration of its mutation. Any number of
// readers may run concurrently. The lock guarantees atomicity of each
// WithWrite call, not of cross-call sequences.
//
// The canvas raster must never be reached except through these accessors.
type Store struct {
	mu     sync.RWMutex
	canvas *Canvas

	// dimensions are immutable after construction, so they are readable
	// without taking the lock.
	width  int
	height int
}

// NewStore creates a [Store] owning the given canvas.
//
// The caller must not retain or touch the canvas after handing it over.
func NewStore(c *Canvas) *Store {
	return &Store{
		canvas: c,
		width:  c.Width(),
		height: c.Height(),
	}
}

// WithWrite runs fn with exclusive access to the canvas.
//
// Blocks while any reader or another writer holds the canvas. Readers
// never observe a partially applied fn.
func (s *Store) WithWrite(fn func(*Canvas)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.canvas)
}

// WithRead runs fn with shared read access to the canvas.
//
// Many readers may run concurrently; fn must not mutate the canvas.
// The error returned by fn is passed through unchanged.
func (s *Store) WithRead(fn func(*Canvas) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.canvas)
}

// Dimensions returns the fixed canvas width and height.
func (s *Store) Dimensions() (width, height int) {
	return s.width, s.height
}
