package main

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/pixelwall/pixelwall/internal/canvas"
)

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		input   string
		r, g, b uint8
		wantErr bool
	}{
		{"#ff0000", 255, 0, 0, false},
		{"#00ff00", 0, 255, 0, false},
		{"#0000ff", 0, 0, 255, false},
		{"#ffffff", 255, 255, 255, false},
		{"222222", 0x22, 0x22, 0x22, false}, // leading # optional
		{"#fff", 0, 0, 0, true},
		{"#gggggg", 0, 0, 0, true},
		{"", 0, 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			r, g, b, err := parseHexColor(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseHexColor(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err == nil && (r != tt.r || g != tt.g || b != tt.b) {
				t.Errorf("parseHexColor(%q) = (%d,%d,%d), want (%d,%d,%d)",
					tt.input, r, g, b, tt.r, tt.g, tt.b)
			}
		})
	}
}

func TestRunSeed_CreatesImage(t *testing.T) {
	output := filepath.Join(t.TempDir(), "canvas.png")

	stdout, err := executeCmd(t, "seed",
		"-o", output,
		"--width", "8",
		"--height", "6",
		"--color", "#102030",
	)
	if err != nil {
		t.Fatalf("seed command error = %v", err)
	}
	if !strings.Contains(stdout, "Created 8x6") {
		t.Errorf("output = %q, want it to mention the created size", stdout)
	}

	c, err := canvas.Load(output)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if c.Width() != 8 || c.Height() != 6 {
		t.Fatalf("seed dimensions = %dx%d, want 8x6", c.Width(), c.Height())
	}
	r, g, b := c.PixelAt(4, 3)
	if r != 0x10 || g != 0x20 || b != 0x30 {
		t.Errorf("PixelAt(4,3) = (%d,%d,%d), want (16,32,48)", r, g, b)
	}
}

func TestRunSeed_RefusesOverwrite(t *testing.T) {
	output := filepath.Join(t.TempDir(), "canvas.png")

	if _, err := executeCmd(t, "seed", "-o", output); err != nil {
		t.Fatalf("seed command error = %v", err)
	}

	if _, err := executeCmd(t, "seed", "-o", output); err == nil {
		t.Fatal("seed command expected error for existing file, got nil")
	}

	// --force allows the overwrite
	if _, err := executeCmd(t, "seed", "-o", output, "--force"); err != nil {
		t.Fatalf("seed --force error = %v", err)
	}
}

func TestRunSeed_InvalidColor(t *testing.T) {
	output := filepath.Join(t.TempDir(), "canvas.png")
	if _, err := executeCmd(t, "seed", "-o", output, "--color", "red"); err == nil {
		t.Fatal("seed command expected error for invalid color, got nil")
	}
}
