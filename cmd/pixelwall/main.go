// Package main is the entry point for the pixelwall CLI.
//
// pixelwall can be run either as a library (SDK) or as a standalone binary
// with YAML configuration. This CLI provides the standalone binary approach.
//
// Usage:
//
//	pixelwall serve -c config.yaml          # Start the canvas server
//	pixelwall validate -c config.yaml       # Validate configuration
//	pixelwall seed -o data/canvas.png       # Create a blank seed image
//	pixelwall version                       # Show version info
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information - set by GoReleaser at build time via ldflags.
// Example: go build -ldflags "-X main.version=1.0.0"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCmd is the base command when called without subcommands.
// It just displays help - actual functionality is in subcommands.
var rootCmd = &cobra.Command{
	Use:   "pixelwall",
	Short: "A shared collaborative pixel canvas server",
	Long: `pixelwall serves a shared, mutable pixel canvas over HTTP.

Clients fetch the canvas as an encoded image and submit single-pixel
writes, which are serialized through a background applier. The canvas is
seeded from an image file at startup and written back on shutdown.

Quick start:
  1. Create a seed image:  pixelwall seed -o data/canvas.png
  2. Create a config file (pixelwall.yaml)
  3. Run: pixelwall serve -c pixelwall.yaml
  4. Open http://localhost:8080 in your browser

Example config:
  port: 8080
  seed_path: data/canvas.png
  cache_ttl: 100ms`,
	// No Run/RunE means this just shows help when called without subcommands
}

// Execute runs the root command.
// This is the main entry point called from main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error, just exit with code 1
		os.Exit(1)
	}
}

func main() {
	Execute()
}

// versionCmd prints version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print the version, commit hash, and build date of this pixelwall binary.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("pixelwall %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
	},
}

func init() {
	// Register subcommands with root
	rootCmd.AddCommand(versionCmd)
}
