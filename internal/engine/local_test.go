package engine

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbsmedya/gomissing/internal/dataset"
	"github.com/dbsmedya/gomissing/internal/schema"
	"github.com/dbsmedya/gomissing/internal/walker"
)

func testDataset(t *testing.T, n int) (*dataset.Dataset, *walker.Plan) {
	t.Helper()
	node, err := schema.Parse(`struct{id: str, v: int32, rec: struct{x: int32}}`)
	require.NoError(t, err)

	rows := make([]dataset.Row, 0, n)
	for i := 0; i < n; i++ {
		row := dataset.Row{"id": fmt.Sprintf("r%03d", i)}
		// Every third row misses v, every fifth misses the whole record.
		if i%3 != 0 {
			row["v"] = int64(i)
		}
		if i%5 != 0 {
			row["rec"] = map[string]any{"x": int64(i)}
		}
		rows = append(rows, row)
	}
	ds, err := dataset.New(node, []string{"id"}, rows)
	require.NoError(t, err)
	plan, err := walker.Walk(node, walker.Never, ds.Key)
	require.NoError(t, err)
	return ds, plan
}

func TestLocalRun_Counts(t *testing.T) {
	ds, plan := testDataset(t, 30)
	result, err := NewLocal(4, nil).Run(context.Background(), ds, plan)
	require.NoError(t, err)

	assert.Equal(t, int64(30), result.TotalRows)
	assert.Equal(t, int64(10), result.Counts["v"])
	assert.Equal(t, int64(6), result.Counts["rec"])
	assert.Equal(t, int64(0), result.Counts["id"])
	assert.Len(t, result.MissingKeys["v"], 10)
}

// Key lists must come out in dataset row order whatever the worker count.
func TestLocalRun_DeterministicKeyOrder(t *testing.T) {
	ds, plan := testDataset(t, 53)

	sequential, err := NewLocal(1, nil).Run(context.Background(), ds, plan)
	require.NoError(t, err)

	for _, workers := range []int{2, 3, 8, 64} {
		parallel, err := NewLocal(workers, nil).Run(context.Background(), ds, plan)
		require.NoError(t, err)
		assert.Equal(t, sequential.Counts, parallel.Counts, "workers=%d", workers)
		require.Equal(t, len(sequential.MissingKeys["v"]), len(parallel.MissingKeys["v"]), "workers=%d", workers)
		for i := range sequential.MissingKeys["v"] {
			assert.True(t, sequential.MissingKeys["v"][i].Equal(parallel.MissingKeys["v"][i]),
				"workers=%d, key %d", workers, i)
		}
	}
}

func TestLocalRun_EmptyDataset(t *testing.T) {
	ds, plan := testDataset(t, 0)
	result, err := NewLocal(4, nil).Run(context.Background(), ds, plan)
	require.NoError(t, err)
	assert.Equal(t, int64(0), result.TotalRows)
	assert.Equal(t, int64(0), result.Counts["v"])
	assert.Empty(t, result.MissingKeys["v"])
}

func TestLocalRun_PropagatesEvaluationError(t *testing.T) {
	node, err := schema.Parse(`struct{id: str, items: array<struct{v: int32}>}`)
	require.NoError(t, err)
	rows := []dataset.Row{
		{"id": "r1", "items": []any{}},
	}
	ds, err := dataset.New(node, []string{"id"}, rows)
	require.NoError(t, err)
	plan, err := walker.Walk(node, walker.Never, ds.Key)
	require.NoError(t, err)

	_, err = NewLocal(2, nil).Run(context.Background(), ds, plan)
	require.Error(t, err)
	assert.ErrorIs(t, err, walker.ErrOutOfBounds)
}

func TestLocalRun_Cancellation(t *testing.T) {
	ds, plan := testDataset(t, 100)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewLocal(2, nil).Run(ctx, ds, plan)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestShardBounds(t *testing.T) {
	tests := []struct {
		name     string
		n        int
		workers  int
		expected [][2]int
	}{
		{"empty", 0, 4, [][2]int{{0, 0}}},
		{"fewer rows than workers", 2, 4, [][2]int{{0, 1}, {1, 2}}},
		{"even split", 6, 3, [][2]int{{0, 2}, {2, 4}, {4, 6}}},
		{"uneven split", 7, 3, [][2]int{{0, 3}, {3, 5}, {5, 7}}},
		{"single worker", 5, 1, [][2]int{{0, 5}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, shardBounds(tc.n, tc.workers))
		})
	}
}
