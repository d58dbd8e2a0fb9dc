package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pixelwall/pixelwall/config"
)

// validateCmd validates a config file without starting the server.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a config file",
	Long: `Validate a pixelwall configuration file without starting the server.

This command parses the YAML and validates all fields. It's useful for
CI/CD pipelines or pre-deployment checks. The seed image itself is not
opened; only the configuration is checked.

Exit codes:
  0 - Config is valid
  1 - Config is invalid (error details printed to stderr)

Example:
  pixelwall validate -c config.yaml
  pixelwall validate --config /etc/pixelwall/config.yaml`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringP("config", "c", "", "path to config file (required)")
	_ = validateCmd.MarkFlagRequired("config")
}

func runValidate(cmd *cobra.Command, args []string) error {
	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	fmt.Printf("Config is valid!\n")
	fmt.Printf("  Port:       %d\n", cfg.Port)
	fmt.Printf("  Seed path:  %s\n", cfg.SeedPath)
	fmt.Printf("  Format:     %s\n", cfg.Format)
	fmt.Printf("  Cache TTL:  %s\n", cfg.CacheTTL.Duration())
	fmt.Printf("  Queue size: %d\n", cfg.QueueSize)

	return nil
}
