// Package dataset holds the row-level data model: ordered rows of nested
// record values, the key projection that identifies each row, and helpers
// for loading and normalizing raw row documents.
package dataset

import (
	"fmt"

	"github.com/dbsmedya/gomissing/internal/schema"
)

// Row is one dataset row: a nested record value decoded from JSON.
// A field is missing when its key is absent or its value is nil.
type Row map[string]any

// IsMissing reports whether a value counts as absent.
func IsMissing(v any) bool {
	return v == nil
}

// FieldValue extracts the named field from a record value. Non-record
// containers (and nil) yield a missing value.
func FieldValue(container any, name string) any {
	switch m := container.(type) {
	case Row:
		return m[name]
	case map[string]any:
		return m[name]
	default:
		return nil
	}
}

// Dataset is an ordered collection of rows paired with the schema that
// describes them and the field names whose projection keys each row.
type Dataset struct {
	schema    *schema.Node
	keyFields []string
	rows      []Row
}

// New creates a Dataset. The schema must be a record and every key field
// must be a field of the schema root.
func New(s *schema.Node, keyFields []string, rows []Row) (*Dataset, error) {
	if s == nil || s.Kind != schema.KindRecord {
		return nil, fmt.Errorf("dataset: schema root must be a record")
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if len(keyFields) == 0 {
		return nil, fmt.Errorf("dataset: at least one key field is required")
	}
	for _, name := range keyFields {
		if s.Field(name) == nil {
			return nil, fmt.Errorf("dataset: key field %q not found in schema", name)
		}
	}
	return &Dataset{
		schema:    s,
		keyFields: append([]string(nil), keyFields...),
		rows:      rows,
	}, nil
}

// Schema returns the schema describing the rows.
func (d *Dataset) Schema() *schema.Node {
	return d.schema
}

// KeyFields returns the designated key field names, in order.
func (d *Dataset) KeyFields() []string {
	return append([]string(nil), d.keyFields...)
}

// Rows returns the ordered rows.
func (d *Dataset) Rows() []Row {
	return d.rows
}

// RowCount returns the total number of rows.
func (d *Dataset) RowCount() int64 {
	return int64(len(d.rows))
}

// Key projects a row onto the dataset's key fields.
func (d *Dataset) Key(row Row) Key {
	key := make(Key, 0, len(d.keyFields))
	for _, name := range d.keyFields {
		key = append(key, KeyField{Name: name, Value: row[name]})
	}
	return key
}
