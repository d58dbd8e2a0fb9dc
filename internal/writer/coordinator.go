// Package writer serializes all canvas mutations through a single
// background applier.
//
// Incoming pixel writes are queued on a bounded channel and applied by one
// dedicated goroutine, so a burst of writes costs one exclusive canvas
// lock per batch rather than one per request.
package writer

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/pixelwall/pixelwall/internal/canvas"
)

var (
	// ErrQueueFull is returned by Enqueue when the write queue is at
	// capacity. Callers should surface it as a retryable busy condition.
	ErrQueueFull = errors.New("write queue is full")

	// ErrClosed is returned by Enqueue after Close; writes accepted after
	// shutdown began would be lost, so they are rejected instead.
	ErrClosed = errors.New("write queue is closed")
)

// Coordinator owns the write queue and the applier goroutine.
//
// All lifecycle methods are safe for concurrent use. The typical sequence
// is NewCoordinator, Start, any number of concurrent Enqueue calls, then
// Close followed by Wait during shutdown. Wait returns only after every
// write accepted before Close has been applied to the store.
type Coordinator struct {
	store  *canvas.Store
	queue  chan canvas.Pixel
	logger *slog.Logger

	mu      sync.RWMutex
	closed  bool
	started bool
	wg      sync.WaitGroup
}

// NewCoordinator creates a [Coordinator] writing into store.
//
// queueSize bounds the number of accepted-but-unapplied writes; Enqueue
// fails fast with [ErrQueueFull] once the bound is reached.
func NewCoordinator(store *canvas.Store, queueSize int, logger *slog.Logger) *Coordinator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Coordinator{
		store:  store,
		queue:  make(chan canvas.Pixel, queueSize),
		logger: logger,
	}
}

// Enqueue adds a validated pixel write to the queue.
//
// Never blocks: it either accepts the write in FIFO position, or fails
// with [ErrQueueFull] or [ErrClosed]. Acceptance means the write will be
// applied, not that it has been.
func (c *Coordinator) Enqueue(p canvas.Pixel) error {
	// RLock pairs with the exclusive lock in Close so a send can never
	// race the channel close.
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.closed {
		return ErrClosed
	}

	select {
	case c.queue <- p:
		return nil
	default:
		return ErrQueueFull
	}
}

// Start launches the applier goroutine.
//
// Start is idempotent; calls after the first are no-ops.
func (c *Coordinator) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.started {
		return
	}
	c.started = true
	c.wg.Add(1)
	go c.run()

	c.logger.Info("write coordinator started", "queue_capacity", cap(c.queue))
}

// Close stops accepting writes. Queued writes are still applied; use
// [Coordinator.Wait] to block until the queue is drained.
//
// Close is idempotent and safe to call before Start.
func (c *Coordinator) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.closed {
		c.closed = true
		close(c.queue)
	}
}

// Wait blocks until the applier has drained the queue and exited.
// Returns immediately if Start was never called.
func (c *Coordinator) Wait() {
	c.wg.Wait()
}

// run is the applier loop. It blocks until at least one write is queued,
// snapshots every write available at that moment, and applies the whole
// batch under a single exclusive store access. Writes arriving while a
// batch is being applied are deferred to the next batch, preserving FIFO
// order across batches.
//
// The loop exits when the queue is closed and empty, which makes the
// drain reachable deterministically during shutdown.
func (c *Coordinator) run() {
	defer c.wg.Done()

	batch := make([]canvas.Pixel, 0, 64)
	for {
		p, ok := <-c.queue
		if !ok {
			c.logger.Info("write queue drained")
			return
		}

		batch = batch[:0]
		batch = append(batch, p)
	snapshot:
		for {
			select {
			case next, ok := <-c.queue:
				if !ok {
					break snapshot
				}
				batch = append(batch, next)
			default:
				break snapshot
			}
		}

		c.store.WithWrite(func(cv *canvas.Canvas) {
			for _, w := range batch {
				cv.Apply(w)
			}
		})

		c.logger.Debug("applied write batch", "size", len(batch))
	}
}
