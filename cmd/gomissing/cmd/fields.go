package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/gomissing/internal/config"
	"github.com/dbsmedya/gomissing/internal/schema"
)

var fieldsCmd = &cobra.Command{
	Use:   "fields",
	Short: "List every reportable field path of the configured schema",
	Long: `Fields parses the configured schema descriptor and prints every field
path the missingness report would contain, in report order (depth-first
schema traversal).

Example:
  gomissing fields --config gomissing.yaml`,
	RunE: runFields,
}

func init() {
	rootCmd.AddCommand(fieldsCmd)
}

func runFields(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(GetConfigFile())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cfg.Dataset.Schema == "" {
		return fmt.Errorf("dataset.schema is not set in %s", GetConfigFile())
	}

	node, err := schema.Parse(cfg.Dataset.Schema)
	if err != nil {
		return fmt.Errorf("failed to parse schema descriptor: %w", err)
	}

	paths := node.Paths()
	cmd.Printf("Field paths (%d):\n", len(paths))
	for _, path := range paths {
		cmd.Printf("  %s\n", path)
	}
	return nil
}
