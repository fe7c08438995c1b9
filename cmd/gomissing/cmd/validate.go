package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/gomissing/internal/config"
	"github.com/dbsmedya/gomissing/internal/database"
	"github.com/dbsmedya/gomissing/internal/logger"
	"github.com/dbsmedya/gomissing/internal/schema"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration and schema",
	Long: `Validate checks the configuration file, parses the schema descriptor,
verifies that every key field exists at the schema root, and, when the
MySQL source is enabled, verifies database connectivity.

Example:
  gomissing validate --config gomissing.yaml`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	configFile := GetConfigFile()

	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	overrides := GetCLIOverrides()
	cfg.ApplyOverrides(overrides.LogLevel, overrides.LogFormat,
		overrides.CachePath, overrides.Workers, overrides.Normalize)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log, err := logger.New(&cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	cmd.Printf("\n=== Configuration Validation ===\n")
	cmd.Printf("Config file: %s\n", configFile)

	fieldCount := 0
	if cfg.Dataset.Schema != "" {
		node, err := schema.Parse(cfg.Dataset.Schema)
		if err != nil {
			return fmt.Errorf("failed to parse schema descriptor: %w", err)
		}
		for _, name := range cfg.Dataset.KeyFields {
			if node.Field(name) == nil {
				return fmt.Errorf("key field %q not found in schema", name)
			}
		}
		fieldCount = len(node.Paths())
	}
	cmd.Printf("Field paths: %d\n", fieldCount)
	cmd.Printf("Key fields: %v\n", cfg.Dataset.KeyFields)

	if cfg.Source.Enabled {
		log.Info("Checking MySQL source connectivity...")
		src := database.NewSource(&cfg.Source)
		if err := src.Connect(context.Background()); err != nil {
			return fmt.Errorf("source connectivity check failed: %w", err)
		}
		defer func() { _ = src.Close() }()
		cmd.Printf("MySQL source: OK (%s/%s)\n", cfg.Source.Database, cfg.Source.Table)
	}

	cmd.Printf("\nConfiguration is valid.\n")
	return nil
}
