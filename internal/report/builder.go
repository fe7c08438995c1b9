package report

import (
	"context"
	"errors"
	"os"

	"github.com/dbsmedya/gomissing/internal/dataset"
	"github.com/dbsmedya/gomissing/internal/engine"
	"github.com/dbsmedya/gomissing/internal/logger"
	"github.com/dbsmedya/gomissing/internal/walker"
)

// Engine runs the aggregation pass. The builder treats it as one
// synchronous call returning a fully materialized result.
type Engine interface {
	Run(ctx context.Context, ds *dataset.Dataset, plan *walker.Plan) (*engine.Result, error)
}

// Builder computes missingness reports, optionally short-circuiting to
// and persisting a cache file.
type Builder struct {
	ds        *dataset.Dataset
	engine    Engine
	cachePath string
	logger    *logger.Logger
}

// NewBuilder creates a Builder. ds may be nil when cachePath points at a
// previously persisted report; eng defaults to a local engine and log to
// the default logger.
func NewBuilder(ds *dataset.Dataset, eng Engine, cachePath string, log *logger.Logger) *Builder {
	if log == nil {
		log = logger.NewDefault()
	}
	if eng == nil {
		eng = engine.NewLocal(0, log)
	}
	return &Builder{
		ds:        ds,
		engine:    eng,
		cachePath: cachePath,
		logger:    log,
	}
}

// Build returns the missingness report. A cache file, when present, is
// loaded verbatim with no validation against the current dataset. A
// computed report is persisted to the cache path when one is configured.
func (b *Builder) Build(ctx context.Context) (*Report, error) {
	if b.cachePath != "" {
		if _, err := os.Stat(b.cachePath); err == nil {
			b.logger.WithCache(b.cachePath).Info("Loading cached missingness report")
			return loadCache(b.cachePath)
		}
	}

	if b.ds == nil {
		return nil, &ConfigurationError{
			Reason: "no dataset supplied and no cached report found",
		}
	}

	plan, err := walker.Walk(b.ds.Schema(), walker.Never, b.ds.Key)
	if err != nil {
		return nil, b.classify(err)
	}

	result, err := b.engine.Run(ctx, b.ds, plan)
	if err != nil {
		return nil, b.classify(err)
	}

	rows := assemble(plan.Paths(), result)
	rep := &Report{rows: rows, totalRows: result.TotalRows}

	if b.cachePath != "" {
		b.logger.WithCache(b.cachePath).Infof("Writing cached report")
		if err := saveCache(b.cachePath, rows); err != nil {
			return nil, b.classify(err)
		}
	}

	return rep, nil
}

// assemble derives percentages and orders the rows by the plan's
// depth-first registration order.
func assemble(paths []string, result *engine.Result) []Row {
	rows := make([]Row, 0, len(paths))
	for _, path := range paths {
		count := result.Counts[path]
		var percent float64
		if result.TotalRows > 0 {
			percent = 100 * float64(count) / float64(result.TotalRows)
		}
		rows = append(rows, Row{
			Field:          path,
			Counts:         count,
			MissingKeys:    result.MissingKeys[path],
			MissingPercent: percent,
		})
	}
	return rows
}

// classify maps a raw failure into the report error taxonomy. This is
// the single classification point; the walker and engine let failures
// surface untouched.
func (b *Builder) classify(err error) error {
	if errors.Is(err, walker.ErrOutOfBounds) {
		b.logger.Errorf("Empty list-of-record encountered; replace empty lists with null before building the report: %v", err)
		return &EmptyListPreconditionError{Cause: err}
	}
	b.logger.Errorf("Missingness computation failed: %v", err)
	return &ComputationFailureError{Cause: err}
}
