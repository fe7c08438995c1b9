package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/gomissing/internal/config"
	"github.com/dbsmedya/gomissing/internal/database"
	"github.com/dbsmedya/gomissing/internal/dataset"
	"github.com/dbsmedya/gomissing/internal/engine"
	"github.com/dbsmedya/gomissing/internal/logger"
	"github.com/dbsmedya/gomissing/internal/render"
	"github.com/dbsmedya/gomissing/internal/report"
	"github.com/dbsmedya/gomissing/internal/schema"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Compute and print the missingness report",
	Long: `Report runs the missingness aggregation over the configured dataset
and prints the resulting table: one line per field path with the missing
count, the affected row keys, and the missing percentage.

When report.cache_path is configured and the file exists, the cached
report is loaded verbatim instead of recomputing. Otherwise the computed
report is persisted there.

Example:
  gomissing report --config gomissing.yaml --cache reports/missingness.json`,
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(GetConfigFile())
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

	ctx := context.Background()

	ds, err := openDataset(ctx, cfg, log)
	if err != nil {
		return err
	}

	builder := report.NewBuilder(ds, engine.NewLocal(cfg.Report.Workers, log), cfg.Report.CachePath, log)
	rep, err := builder.Build(ctx)
	if err != nil {
		return err
	}

	cmd.Print(render.Table(rep.Rows(), &render.Options{Color: !noColor}))
	return nil
}

// openDataset assembles the dataset from the configured source, or
// returns nil when the run is cache-only.
func openDataset(ctx context.Context, cfg *config.Config, log *logger.Logger) (*dataset.Dataset, error) {
	if cfg.Dataset.Path == "" && !cfg.Source.Enabled {
		return nil, nil
	}

	node, err := schema.Parse(cfg.Dataset.Schema)
	if err != nil {
		return nil, fmt.Errorf("failed to parse schema descriptor: %w", err)
	}

	var rows []dataset.Row
	if cfg.Source.Enabled {
		src := database.NewSource(&cfg.Source)
		if err := src.Connect(ctx); err != nil {
			return nil, err
		}
		defer func() { _ = src.Close() }()

		docs, err := src.LoadRows(ctx)
		if err != nil {
			return nil, err
		}
		rows = make([]dataset.Row, len(docs))
		for i, doc := range docs {
			rows[i] = dataset.Row(doc)
		}
		log.WithDataset(cfg.Source.Table).Infof("Loaded %d rows from MySQL source", len(rows))
	} else {
		rows, err = dataset.LoadFile(cfg.Dataset.Path)
		if err != nil {
			return nil, err
		}
		log.WithDataset(cfg.Dataset.Path).Infof("Loaded %d rows from dataset file", len(rows))
	}

	if cfg.Dataset.Normalize {
		dataset.NormalizeEmptyLists(rows, node)
	}

	return dataset.New(node, cfg.Dataset.KeyFields, rows)
}
