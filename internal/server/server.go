package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/pixelwall/pixelwall/internal/canvas"
	"github.com/pixelwall/pixelwall/internal/service"
	"github.com/pixelwall/pixelwall/internal/writer"
)

// CanvasService is the boundary the server needs from the core: read the
// encoded canvas, submit a pixel write.
type CanvasService interface {
	ReadCanvas() (data []byte, contentType string, err error)
	SubmitPixel(p canvas.Pixel) error
}

// Server handles HTTP requests for the pixel canvas.
//
// Server provides three endpoints:
//   - GET /: Serves the embedded drawing UI
//   - GET /image: Returns the current canvas as an encoded image
//   - POST /pixel: Accepts a single pixel write as JSON
//
// The server is started with [Server.Start] and stopped with
// [Server.Shutdown]; the caller sequences Shutdown before closing the
// write queue so that every accepted write reaches the canvas.
type Server struct {
	svc        CanvasService
	port       int
	httpServer *http.Server
	listener   net.Listener
	assets     fs.FS
	logger     *slog.Logger
}

// NewServer creates a new HTTP [Server].
//
// assets is the embedded filesystem containing the drawing UI (may be
// nil, in which case / returns 404).
func NewServer(svc CanvasService, port int, assets fs.FS, logger *slog.Logger) *Server {
	return &Server{
		svc:    svc,
		port:   port,
		assets: assets,
		logger: logger,
	}
}

// Start begins serving HTTP requests in a background goroutine.
//
// Start is non-blocking and returns immediately after confirming the
// server is listening, so a port conflict surfaces synchronously.
func (s *Server) Start(ctx context.Context) error {
	r := chi.NewRouter()
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/image", s.handleImage)
	r.Post("/pixel", s.handlePixel)
	if s.assets != nil {
		r.Get("/", s.handleIndex)
	}

	// create listener first to verify port availability synchronously
	addr := fmt.Sprintf(":%d", s.port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to bind to port %d: %w", s.port, err)
	}
	s.listener = ln

	s.httpServer = &http.Server{
		Handler: r,
		// BaseContext derives all request contexts from the server context
		// so in-flight handlers observe cancellation.
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		if err := s.httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
			s.logger.Error("http server error", "error", err)
		}
	}()

	return nil
}

// Shutdown stops accepting new connections and blocks until in-flight
// requests finish or ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	return nil
}

// Addr returns the listener address, useful when the configured port is 0.
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// handleImage serves the current canvas encoding.
//
// Responses carry Cache-Control: no-store; staleness is bounded by the
// encoding cache's TTL and must not compound with intermediary caches.
func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) {
	data, contentType, err := s.svc.ReadCanvas()
	if err != nil {
		s.logger.Error("failed to encode canvas", "error", err)
		http.Error(w, "failed to encode canvas", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "no-store")
	if _, err := w.Write(data); err != nil {
		s.logger.Error("failed to write image response", "error", err)
	}
}

// pixelRequest is the wire format of a pixel write.
type pixelRequest struct {
	X int   `json:"x"`
	Y int   `json:"y"`
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// handlePixel accepts a pixel write. 204 means queued, not yet rendered.
func (s *Server) handlePixel(w http.ResponseWriter, r *http.Request) {
	var req pixelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	err := s.svc.SubmitPixel(canvas.Pixel{X: req.X, Y: req.Y, R: req.R, G: req.G, B: req.B})
	switch {
	case err == nil:
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, service.ErrOutOfBounds):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, writer.ErrQueueFull), errors.Is(err, writer.ErrClosed):
		http.Error(w, "service busy, retry later", http.StatusServiceUnavailable)
	default:
		s.logger.Error("failed to submit pixel", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// handleIndex serves the drawing UI.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	content, err := fs.ReadFile(s.assets, "assets/index.html")
	if err != nil {
		http.Error(w, "drawing UI not found", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(content); err != nil {
		s.logger.Error("failed to write index response", "error", err)
	}
}

// requestLogger attaches a correlation id to each request and logs its
// outcome through slog.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		start := time.Now()
		next.ServeHTTP(ww, r)

		s.logger.Debug("request completed",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}
