// Package config provides YAML configuration parsing for pixelwall.
//
// This package enables running pixelwall as a standalone binary with a
// configuration file, as an alternative to the programmatic SDK approach.
//
// Example configuration:
//
//	port: 8080
//	seed_path: data/canvas.png
//	format: png
//	cache_ttl: 100ms
//	queue_size: 1024
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pixelwall/pixelwall/internal/canvas"
)

// Defaults applied by [Parse] when a field is absent.
const (
	defaultPort      = 8080
	defaultCacheTTL  = 100 * time.Millisecond
	defaultQueueSize = 1024
	defaultFormat    = "png"
)

// Config is the root configuration structure for pixelwall.
//
// It maps directly to the YAML configuration file structure.
// Use [Load] or [Parse] to create a Config from YAML.
type Config struct {
	// Port is the HTTP server port. Defaults to 8080.
	Port int `yaml:"port"`

	// SeedPath is the image file loaded at startup. It fixes the canvas
	// dimensions and is overwritten with the final canvas on shutdown.
	SeedPath string `yaml:"seed_path"`

	// Format is the image format for the seed file, the shutdown snapshot,
	// and the /image response: "png" (default), "bmp", or "tiff".
	Format string `yaml:"format"`

	// CacheTTL is how long an encoded canvas stays fresh.
	// Accepts duration strings like "100ms", "1s". Defaults to 100ms.
	CacheTTL Duration `yaml:"cache_ttl"`

	// QueueSize is the capacity of the pixel write queue. Writes submitted
	// while the queue is full are rejected as retryable. Defaults to 1024.
	QueueSize int `yaml:"queue_size"`
}

// Duration wraps time.Duration for YAML unmarshalling.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler for Duration.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}

	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}

	*d = Duration(parsed)
	return nil
}

// Duration returns the underlying time.Duration value.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// Load reads and parses a YAML configuration file.
//
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse parses YAML configuration data, applies defaults, and validates.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if cfg.Port == 0 {
		cfg.Port = defaultPort
	}
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = Duration(defaultCacheTTL)
	}
	if cfg.QueueSize == 0 {
		cfg.QueueSize = defaultQueueSize
	}
	if cfg.Format == "" {
		cfg.Format = defaultFormat
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// validate checks field ranges after defaults have been applied.
func (c *Config) validate() error {
	if c.SeedPath == "" {
		return fmt.Errorf("seed_path is required")
	}

	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", c.Port)
	}

	if c.CacheTTL.Duration() < 0 {
		return fmt.Errorf("cache_ttl cannot be negative, got %s", c.CacheTTL.Duration())
	}

	if c.QueueSize < 1 {
		return fmt.Errorf("queue_size must be positive, got %d", c.QueueSize)
	}

	if _, err := canvas.ParseFormat(c.Format); err != nil {
		return fmt.Errorf("format: %w", err)
	}

	return nil
}
