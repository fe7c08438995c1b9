// Package engine executes a missingness aggregation plan against a
// dataset. The pass is a sharded parallel reduction: rows are split into
// contiguous shards, each shard reduces independently, and shard partials
// merge in shard order so key lists stay in dataset row order.
package engine

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dbsmedya/gomissing/internal/dataset"
	"github.com/dbsmedya/gomissing/internal/logger"
	"github.com/dbsmedya/gomissing/internal/walker"
)

// Result is the fully materialized outcome of one aggregation pass.
type Result struct {
	TotalRows   int64
	Counts      map[string]int64
	MissingKeys map[string][]dataset.Key
}

// Local runs the aggregation pass in-process.
type Local struct {
	workers int
	logger  *logger.Logger
}

// NewLocal creates a Local engine. A non-positive worker count defaults
// to GOMAXPROCS.
func NewLocal(workers int, log *logger.Logger) *Local {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if log == nil {
		log = logger.NewDefault()
	}
	return &Local{workers: workers, logger: log}
}

// partial is one shard's reduction state, indexed by path position.
type partial struct {
	counts []int64
	keys   [][]dataset.Key
}

// Run evaluates every count and key expression of the plan against every
// row and reduces the results. Counts add across shards; key lists
// concatenate in shard order.
func (e *Local) Run(ctx context.Context, ds *dataset.Dataset, plan *walker.Plan) (*Result, error) {
	start := time.Now()
	rows := ds.Rows()
	paths := plan.Paths()

	countExprs := make([]walker.CountExpr, len(paths))
	keysExprs := make([]walker.KeysExpr, len(paths))
	for i, path := range paths {
		countExpr, ok := plan.Count(path)
		if !ok {
			return nil, fmt.Errorf("engine: plan has no count expression for %q", path)
		}
		keysExpr, ok := plan.Keys(path)
		if !ok {
			return nil, fmt.Errorf("engine: plan has no keys expression for %q", path)
		}
		countExprs[i] = countExpr
		keysExprs[i] = keysExpr
	}

	shards := shardBounds(len(rows), e.workers)
	partials := make([]*partial, len(shards))

	g, ctx := errgroup.WithContext(ctx)
	for s, bounds := range shards {
		g.Go(func() error {
			p := &partial{
				counts: make([]int64, len(paths)),
				keys:   make([][]dataset.Key, len(paths)),
			}
			for r := bounds[0]; r < bounds[1]; r++ {
				select {
				case <-ctx.Done():
					return ctx.Err()
				default:
				}
				row := rows[r]
				for i := range paths {
					n, err := countExprs[i](row)
					if err != nil {
						return err
					}
					p.counts[i] += n
					hit, err := keysExprs[i](row)
					if err != nil {
						return err
					}
					if hit {
						p.keys[i] = append(p.keys[i], plan.Key(row))
					}
				}
			}
			partials[s] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &Result{
		TotalRows:   ds.RowCount(),
		Counts:      make(map[string]int64, len(paths)),
		MissingKeys: make(map[string][]dataset.Key, len(paths)),
	}
	for i, path := range paths {
		var count int64
		var keys []dataset.Key
		for _, p := range partials {
			count += p.counts[i]
			keys = append(keys, p.keys[i]...)
		}
		result.Counts[path] = count
		result.MissingKeys[path] = keys
	}

	e.logger.Debugf("Aggregation pass complete: %d rows, %d field paths, %d shards in %s",
		len(rows), len(paths), len(shards), time.Since(start))
	return result, nil
}

// shardBounds splits n rows into at most workers contiguous [start, end)
// ranges of near-equal size.
func shardBounds(n, workers int) [][2]int {
	if n == 0 {
		return [][2]int{{0, 0}}
	}
	if workers > n {
		workers = n
	}
	bounds := make([][2]int, 0, workers)
	size := n / workers
	extra := n % workers
	start := 0
	for s := 0; s < workers; s++ {
		end := start + size
		if s < extra {
			end++
		}
		bounds = append(bounds, [2]int{start, end})
		start = end
	}
	return bounds
}
