package dataset

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dbsmedya/gomissing/internal/schema"
)

// LoadFile reads an ordered JSON array of row documents from a file.
func LoadFile(path string) ([]Row, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset file: %w", err)
	}
	var rows []Row
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode dataset file %q: %w", path, err)
	}
	return rows, nil
}

// NormalizeEmptyLists replaces empty list-of-record values with nil,
// in place, wherever the schema declares a list of records. Traversal
// requires this normalization: an empty list has no representative
// element, so it must be treated as absent instead.
func NormalizeEmptyLists(rows []Row, root *schema.Node) {
	if root == nil || root.Kind != schema.KindRecord {
		return
	}
	for _, row := range rows {
		normalizeRecord(map[string]any(row), root)
	}
}

func normalizeRecord(m map[string]any, rec *schema.Node) {
	for _, f := range rec.Fields {
		v, ok := m[f.Name]
		if !ok || v == nil {
			continue
		}
		switch f.Node.Kind {
		case schema.KindRecord:
			if child, ok := v.(map[string]any); ok {
				normalizeRecord(child, f.Node)
			}
		case schema.KindListOfRecord:
			list, ok := v.([]any)
			if !ok {
				continue
			}
			if len(list) == 0 {
				m[f.Name] = nil
				continue
			}
			for _, elem := range list {
				if em, ok := elem.(map[string]any); ok {
					normalizeRecord(em, f.Node.Elem)
				}
			}
		}
	}
}
