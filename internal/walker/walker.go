// Package walker turns a nested schema into a missingness aggregation
// plan: for every reachable field path, a per-row count contribution and
// a per-row "collect this row's key" predicate.
//
// The walk is a recursive descent over the schema, not the data. Each
// recursion level threads an ancestor-missing flag so that a field lying
// beneath an absent record is charged to the ancestor's path only, never
// double counted on its own path.
package walker

import (
	"errors"
	"fmt"

	"github.com/elliotchance/orderedmap/v2"

	"github.com/dbsmedya/gomissing/internal/dataset"
	"github.com/dbsmedya/gomissing/internal/schema"
)

// ErrOutOfBounds signals that a list-of-record value was empty during
// traversal. Empty lists have no representative element; they must be
// normalized to null before the walk (see dataset.NormalizeEmptyLists).
var ErrOutOfBounds = errors.New("list-of-record index out of bounds")

// BoolExpr evaluates a per-row boolean.
type BoolExpr func(dataset.Row) (bool, error)

// CountExpr returns one row's contribution to a field path's missing
// count. Outside lists the contribution is 0 or 1; under a list of
// records it is the number of elements with the field missing.
type CountExpr func(dataset.Row) (int64, error)

// KeysExpr reports whether a row's key belongs in a field path's
// missing-key list. At most one hit per row, however many list elements
// are missing the field.
type KeysExpr func(dataset.Row) (bool, error)

// KeyFunc extracts the key identifying a row.
type KeyFunc func(dataset.Row) dataset.Key

// Never is the ancestor-missing predicate for the schema root: no
// ancestor exists, so nothing is ever suppressed.
func Never(dataset.Row) (bool, error) {
	return false, nil
}

// Walk produces the aggregation plan for a record schema. The ancestor
// predicate is true for rows where some strict ancestor of root is
// already missing (use Never at the top level); keyFn extracts row keys
// for the missing-key collections.
func Walk(root *schema.Node, ancestor BoolExpr, keyFn KeyFunc) (*Plan, error) {
	if root == nil || root.Kind != schema.KindRecord {
		return nil, fmt.Errorf("walker: root must be a record schema")
	}
	if err := root.Validate(); err != nil {
		return nil, err
	}
	if keyFn == nil {
		return nil, fmt.Errorf("walker: key function is required")
	}
	if ancestor == nil {
		ancestor = Never
	}

	plan := &Plan{
		counts: orderedmap.NewOrderedMap[string, CountExpr](),
		keys:   orderedmap.NewOrderedMap[string, KeysExpr](),
		keyFn:  keyFn,
	}
	rootScope := func(row dataset.Row) ([]occurrence, error) {
		missing, err := ancestor(row)
		if err != nil {
			return nil, err
		}
		return []occurrence{{val: map[string]any(row), ancestorMissing: missing}}, nil
	}
	walkRecord(root, rootScope, "", plan)
	return plan, nil
}

// occurrence is one appearance of the current record node within a row:
// exactly one at the top level, one per element underneath a list of
// records. Each carries its own ancestor-missing state.
//
// keyOnly marks a placeholder for a missing list: the immediate element
// fields still collect the row's key, but contribute no counts, and
// nothing beneath them is traversed.
type occurrence struct {
	val             any
	ancestorMissing bool
	keyOnly         bool
}

// scopeFn resolves the occurrences of the current record node in a row.
type scopeFn func(dataset.Row) ([]occurrence, error)

func walkRecord(rec *schema.Node, scope scopeFn, prefix string, plan *Plan) {
	for _, field := range rec.Fields {
		path := prefix + field.Name
		name := field.Name

		plan.counts.Set(path, func(row dataset.Row) (int64, error) {
			occs, err := scope(row)
			if err != nil {
				return 0, err
			}
			var n int64
			for _, occ := range occs {
				if occ.keyOnly || occ.ancestorMissing {
					continue
				}
				if dataset.IsMissing(dataset.FieldValue(occ.val, name)) {
					n++
				}
			}
			return n, nil
		})
		plan.keys.Set(path, func(row dataset.Row) (bool, error) {
			occs, err := scope(row)
			if err != nil {
				return false, err
			}
			for _, occ := range occs {
				if occ.ancestorMissing {
					continue
				}
				if occ.keyOnly || dataset.IsMissing(dataset.FieldValue(occ.val, name)) {
					return true, nil
				}
			}
			return false, nil
		})

		switch field.Node.Kind {
		case schema.KindRecord:
			walkRecord(field.Node, recordScope(scope, name), path+".", plan)
		case schema.KindListOfRecord:
			walkRecord(field.Node.Elem, listScope(scope, name, path), path+".", plan)
		}
	}
}

// recordScope descends into a record field: one child occurrence per
// parent occurrence, with the ancestor-missing flag extended by the
// field's own missingness.
func recordScope(parent scopeFn, name string) scopeFn {
	return func(row dataset.Row) ([]occurrence, error) {
		occs, err := parent(row)
		if err != nil {
			return nil, err
		}
		out := make([]occurrence, 0, len(occs))
		for _, occ := range occs {
			if occ.keyOnly {
				continue
			}
			v := dataset.FieldValue(occ.val, name)
			out = append(out, occurrence{
				val:             v,
				ancestorMissing: occ.ancestorMissing || dataset.IsMissing(v),
			})
		}
		return out, nil
	}
}

// listScope descends into a list-of-record field: one child occurrence
// per element, all inheriting the parent's ancestor-missing flag. A
// missing list leaves a key-only placeholder; an empty one is a
// precondition violation.
func listScope(parent scopeFn, name, path string) scopeFn {
	return func(row dataset.Row) ([]occurrence, error) {
		occs, err := parent(row)
		if err != nil {
			return nil, err
		}
		var out []occurrence
		for _, occ := range occs {
			if occ.keyOnly {
				continue
			}
			v := dataset.FieldValue(occ.val, name)
			if dataset.IsMissing(v) {
				out = append(out, occurrence{ancestorMissing: occ.ancestorMissing, keyOnly: true})
				continue
			}
			list, ok := v.([]any)
			if !ok {
				return nil, fmt.Errorf("walker: field %q holds %T, expected a list of records", path, v)
			}
			if len(list) == 0 {
				return nil, fmt.Errorf("walker: field %q is an empty list: %w", path, ErrOutOfBounds)
			}
			for _, elem := range list {
				out = append(out, occurrence{val: elem, ancestorMissing: occ.ancestorMissing})
			}
		}
		return out, nil
	}
}
