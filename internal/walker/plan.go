package walker

import (
	"github.com/elliotchance/orderedmap/v2"

	"github.com/dbsmedya/gomissing/internal/dataset"
)

// Plan is the output of a walk: for every field path, in depth-first
// schema order, the count expression and the key-collection expression
// to evaluate against each row.
type Plan struct {
	counts *orderedmap.OrderedMap[string, CountExpr]
	keys   *orderedmap.OrderedMap[string, KeysExpr]
	keyFn  KeyFunc
}

// Paths returns every registered field path in registration order.
func (p *Plan) Paths() []string {
	paths := make([]string, 0, p.counts.Len())
	for el := p.counts.Front(); el != nil; el = el.Next() {
		paths = append(paths, el.Key)
	}
	return paths
}

// Len returns the number of registered field paths.
func (p *Plan) Len() int {
	return p.counts.Len()
}

// Count returns the count expression for a field path.
func (p *Plan) Count(path string) (CountExpr, bool) {
	return p.counts.Get(path)
}

// Keys returns the key-collection expression for a field path.
func (p *Plan) Keys(path string) (KeysExpr, bool) {
	return p.keys.Get(path)
}

// Key extracts the key for a row using the plan's key function.
func (p *Plan) Key(row dataset.Row) dataset.Key {
	return p.keyFn(row)
}
