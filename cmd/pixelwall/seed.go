package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pixelwall/pixelwall/internal/canvas"
)

// seedCmd creates a blank seed image for the server to load.
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create a blank seed image",
	Long: `Create a blank seed image for the canvas server to load.

The server requires an existing seed image at startup; its dimensions fix
the canvas size for the lifetime of the process. This command generates
one filled with a single color.

An existing file is not overwritten unless --force is given.

Example:
  pixelwall seed -o data/canvas.png
  pixelwall seed -o data/canvas.png --width 640 --height 480 --color '#222222'`,
	RunE: runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)

	seedCmd.Flags().StringP("output", "o", "", "path of the seed image to create (required)")
	seedCmd.Flags().Int("width", 256, "canvas width in pixels")
	seedCmd.Flags().Int("height", 256, "canvas height in pixels")
	seedCmd.Flags().String("color", "#ffffff", "fill color as #rrggbb")
	seedCmd.Flags().String("format", "png", "image format: png, bmp, or tiff")
	seedCmd.Flags().Bool("force", false, "overwrite an existing file")
	_ = seedCmd.MarkFlagRequired("output")
}

func runSeed(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")
	width, _ := cmd.Flags().GetInt("width")
	height, _ := cmd.Flags().GetInt("height")
	colorArg, _ := cmd.Flags().GetString("color")
	formatArg, _ := cmd.Flags().GetString("format")
	force, _ := cmd.Flags().GetBool("force")

	format, err := canvas.ParseFormat(formatArg)
	if err != nil {
		return err
	}

	r, g, b, err := parseHexColor(colorArg)
	if err != nil {
		return err
	}

	if !force {
		if _, err := os.Stat(output); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", output)
		}
	}

	c, err := canvas.New(width, height)
	if err != nil {
		return err
	}
	c.Fill(r, g, b)

	if err := c.Save(output, format); err != nil {
		return err
	}

	fmt.Printf("Created %dx%d %s seed image at %s\n", width, height, format, output)
	return nil
}

// parseHexColor parses a "#rrggbb" color string.
func parseHexColor(s string) (r, g, b uint8, err error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 {
		return 0, 0, 0, fmt.Errorf("invalid color %q (expected #rrggbb)", s)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid color %q (expected #rrggbb)", s)
	}

	return uint8(v >> 16), uint8(v >> 8), uint8(v), nil
}
