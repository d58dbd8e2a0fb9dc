package config

import (
	"github.com/pixelwall/pixelwall"
)

// BuildOptions converts parsed configuration into SDK options for
// [pixelwall.New].
//
// The config must already have been through [Parse] (or [Load]) so that
// defaults are applied and fields are validated.
func BuildOptions(cfg *Config) []pixelwall.Option {
	return []pixelwall.Option{
		pixelwall.WithSeedPath(cfg.SeedPath),
		pixelwall.WithPort(cfg.Port),
		pixelwall.WithCacheTTL(cfg.CacheTTL.Duration()),
		pixelwall.WithQueueSize(cfg.QueueSize),
		pixelwall.WithFormat(cfg.Format),
	}
}
