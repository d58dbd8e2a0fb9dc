package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pixelwall/pixelwall/internal/cache"
	"github.com/pixelwall/pixelwall/internal/canvas"
	"github.com/pixelwall/pixelwall/internal/service"
	"github.com/pixelwall/pixelwall/internal/writer"
	"github.com/pixelwall/pixelwall/web"
)

// testLogger returns a logger that discards all output for clean test output.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// stubService implements CanvasService for exercising error paths.
type stubService struct {
	data        []byte
	contentType string
	readErr     error
	submitErr   error
	submitted   []canvas.Pixel
}

func (s *stubService) ReadCanvas() ([]byte, string, error) {
	return s.data, s.contentType, s.readErr
}

func (s *stubService) SubmitPixel(p canvas.Pixel) error {
	if s.submitErr != nil {
		return s.submitErr
	}
	s.submitted = append(s.submitted, p)
	return nil
}

// newRealService wires the real core over a width x height black canvas.
func newRealService(t *testing.T, width, height int) *service.CanvasService {
	t.Helper()

	c, err := canvas.New(width, height)
	if err != nil {
		t.Fatalf("canvas.New() error = %v", err)
	}
	store := canvas.NewStore(c)
	writes := writer.NewCoordinator(store, 64, testLogger())
	writes.Start()
	t.Cleanup(func() {
		writes.Close()
		writes.Wait()
	})

	return service.New(store, writes, cache.New(100*time.Millisecond), canvas.FormatPNG)
}

// startTestServer runs a Server on an ephemeral port and returns its base URL.
func startTestServer(t *testing.T, svc CanvasService) string {
	t.Helper()

	s := NewServer(svc, 0, web.Assets, testLogger())
	ctx, cancel := context.WithCancel(context.Background())
	if err := s.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	t.Cleanup(func() {
		cancel()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), time.Second)
		defer shutdownCancel()
		_ = s.Shutdown(shutdownCtx)
	})

	return fmt.Sprintf("http://%s", s.Addr())
}

func TestHandleImage(t *testing.T) {
	svc := newRealService(t, 3, 2)
	s := NewServer(svc, 0, web.Assets, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/image", nil)
	rec := httptest.NewRecorder()
	s.handleImage(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if got := rec.Header().Get("Content-Type"); got != "image/png" {
		t.Errorf("Content-Type = %q, want image/png", got)
	}
	if got := rec.Header().Get("Cache-Control"); got != "no-store" {
		t.Errorf("Cache-Control = %q, want no-store", got)
	}

	decoded, err := canvas.Decode(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatalf("body did not decode as an image: %v", err)
	}
	if decoded.Width() != 3 || decoded.Height() != 2 {
		t.Errorf("decoded dimensions = %dx%d, want 3x2", decoded.Width(), decoded.Height())
	}
}

func TestHandleImage_EncodeError(t *testing.T) {
	svc := &stubService{readErr: errors.New("encode failed")}
	s := NewServer(svc, 0, nil, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/image", nil)
	rec := httptest.NewRecorder()
	s.handleImage(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
}

func TestHandlePixel_Accepted(t *testing.T) {
	svc := &stubService{}
	s := NewServer(svc, 0, nil, testLogger())

	body := strings.NewReader(`{"x":1,"y":2,"r":255,"g":0,"b":0}`)
	req := httptest.NewRequest(http.MethodPost, "/pixel", body)
	rec := httptest.NewRecorder()
	s.handlePixel(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNoContent)
	}
	if len(svc.submitted) != 1 {
		t.Fatalf("submitted %d pixels, want 1", len(svc.submitted))
	}
	want := canvas.Pixel{X: 1, Y: 2, R: 255, G: 0, B: 0}
	if svc.submitted[0] != want {
		t.Errorf("submitted pixel = %+v, want %+v", svc.submitted[0], want)
	}
}

func TestHandlePixel_OutOfBounds(t *testing.T) {
	svc := newRealService(t, 2, 2)
	s := NewServer(svc, 0, nil, testLogger())

	body := strings.NewReader(`{"x":5,"y":0,"r":1,"g":2,"b":3}`)
	req := httptest.NewRequest(http.MethodPost, "/pixel", body)
	rec := httptest.NewRecorder()
	s.handlePixel(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if !strings.Contains(rec.Body.String(), "pixel outside of drawing area") {
		t.Errorf("body = %q, want it to contain the rejection reason", rec.Body.String())
	}
}

func TestHandlePixel_MalformedJSON(t *testing.T) {
	svc := &stubService{}
	s := NewServer(svc, 0, nil, testLogger())

	tests := []struct {
		name string
		body string
	}{
		{"not json", "not json"},
		{"empty", ""},
		{"channel overflow", `{"x":0,"y":0,"r":300,"g":0,"b":0}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/pixel", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			s.handlePixel(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
			}
		})
	}
}

func TestHandlePixel_Backpressure(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"queue full", writer.ErrQueueFull},
		{"queue closed", writer.ErrClosed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubService{submitErr: tt.err}
			s := NewServer(svc, 0, nil, testLogger())

			body := strings.NewReader(`{"x":0,"y":0,"r":0,"g":0,"b":0}`)
			req := httptest.NewRequest(http.MethodPost, "/pixel", body)
			rec := httptest.NewRecorder()
			s.handlePixel(rec, req)

			if rec.Code != http.StatusServiceUnavailable {
				t.Errorf("status = %d, want %d", rec.Code, http.StatusServiceUnavailable)
			}
		})
	}
}

func TestHandleIndex(t *testing.T) {
	svc := &stubService{}
	s := NewServer(svc, 0, web.Assets, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	s.handleIndex(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if got := rec.Header().Get("Content-Type"); !strings.HasPrefix(got, "text/html") {
		t.Errorf("Content-Type = %q, want text/html", got)
	}
	if !strings.Contains(rec.Body.String(), "pixelwall") {
		t.Error("index page missing expected content")
	}
}

func TestServer_Routing(t *testing.T) {
	svc := newRealService(t, 2, 2)
	baseURL := startTestServer(t, svc)

	t.Run("GET /image", func(t *testing.T) {
		resp, err := http.Get(baseURL + "/image")
		if err != nil {
			t.Fatalf("GET /image error = %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
		}
	})

	t.Run("POST /pixel", func(t *testing.T) {
		body := strings.NewReader(`{"x":0,"y":0,"r":9,"g":9,"b":9}`)
		resp, err := http.Post(baseURL+"/pixel", "application/json", body)
		if err != nil {
			t.Fatalf("POST /pixel error = %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusNoContent {
			t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusNoContent)
		}
	})

	t.Run("GET /pixel is not allowed", func(t *testing.T) {
		resp, err := http.Get(baseURL + "/pixel")
		if err != nil {
			t.Fatalf("GET /pixel error = %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusMethodNotAllowed {
			t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusMethodNotAllowed)
		}
	})

	t.Run("GET /", func(t *testing.T) {
		resp, err := http.Get(baseURL + "/")
		if err != nil {
			t.Fatalf("GET / error = %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
		}
	})
}

func TestServer_StartPortConflict(t *testing.T) {
	svc := &stubService{}

	first := NewServer(svc, 0, nil, testLogger())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := first.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	t.Cleanup(func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), time.Second)
		defer shutdownCancel()
		_ = first.Shutdown(shutdownCtx)
	})

	port := first.Addr().(*net.TCPAddr).Port
	second := NewServer(svc, port, nil, testLogger())
	if err := second.Start(ctx); err == nil {
		t.Error("Start() expected error for occupied port, got nil")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), time.Second)
		defer shutdownCancel()
		_ = second.Shutdown(shutdownCtx)
	}
}
