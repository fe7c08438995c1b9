// Package schema models the nested structure of a dataset as an explicit
// tree of scalar, record, and list-of-record nodes.
//
// Only records and lists of records participate in nested missingness
// traversal. Every other container (array of scalars, set, dict) is a leaf:
// its presence is tested, its contents are not.
package schema

import "fmt"

// Kind identifies the variant of a schema node.
type Kind int

const (
	// KindScalar is a leaf node: a scalar value or a non-traversed container.
	KindScalar Kind = iota
	// KindRecord is a named, ordered mapping of field name to child node.
	KindRecord
	// KindListOfRecord is a sequence whose elements share one record schema.
	KindListOfRecord
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindRecord:
		return "record"
	case KindListOfRecord:
		return "list-of-record"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Field is a named child of a record node. Field order is significant:
// it drives the depth-first ordering of the missingness report.
type Field struct {
	Name string
	Node *Node
}

// Node is one node of the schema tree.
type Node struct {
	Kind   Kind
	Type   string  // scalar type text, e.g. "int32" or "dict<str, int32>"
	Fields []Field // populated for KindRecord
	Elem   *Node   // populated for KindListOfRecord, always a record
}

// Scalar creates a leaf node with the given type text.
func Scalar(typeText string) *Node {
	return &Node{Kind: KindScalar, Type: typeText}
}

// Record creates a record node with the given fields, in order.
func Record(fields ...Field) *Node {
	return &Node{Kind: KindRecord, Fields: fields}
}

// ListOf creates a list-of-record node with the given element schema.
func ListOf(elem *Node) *Node {
	return &Node{Kind: KindListOfRecord, Elem: elem}
}

// Field returns the child node with the given name, or nil if the node
// is not a record or has no such field.
func (n *Node) Field(name string) *Node {
	if n == nil || n.Kind != KindRecord {
		return nil
	}
	for _, f := range n.Fields {
		if f.Name == name {
			return f.Node
		}
	}
	return nil
}

// Paths enumerates every reportable field path of a record node in
// depth-first order: each field is listed before its descendants, lists
// of records are traversed through their element schema. This is the
// order missingness reports are emitted in.
func (n *Node) Paths() []string {
	if n == nil || n.Kind != KindRecord {
		return nil
	}
	var paths []string
	appendPaths(n, "", &paths)
	return paths
}

func appendPaths(rec *Node, prefix string, paths *[]string) {
	for _, f := range rec.Fields {
		path := prefix + f.Name
		*paths = append(*paths, path)
		switch f.Node.Kind {
		case KindRecord:
			appendPaths(f.Node, path+".", paths)
		case KindListOfRecord:
			appendPaths(f.Node.Elem, path+".", paths)
		}
	}
}

// Validate checks structural integrity: records have uniquely named
// fields and lists of records carry a record element schema.
func (n *Node) Validate() error {
	return validate(n, "")
}

func validate(n *Node, path string) error {
	if n == nil {
		return fmt.Errorf("schema: nil node at %q", path)
	}
	switch n.Kind {
	case KindScalar:
		return nil
	case KindRecord:
		seen := make(map[string]bool, len(n.Fields))
		for _, f := range n.Fields {
			if f.Name == "" {
				return fmt.Errorf("schema: empty field name at %q", path)
			}
			if seen[f.Name] {
				return fmt.Errorf("schema: duplicate field %q at %q", f.Name, path)
			}
			seen[f.Name] = true
			child := path
			if child != "" {
				child += "."
			}
			child += f.Name
			if err := validate(f.Node, child); err != nil {
				return err
			}
		}
		return nil
	case KindListOfRecord:
		if n.Elem == nil || n.Elem.Kind != KindRecord {
			return fmt.Errorf("schema: list-of-record at %q must have a record element", path)
		}
		return validate(n.Elem, path)
	default:
		return fmt.Errorf("schema: unknown node kind %d at %q", int(n.Kind), path)
	}
}
