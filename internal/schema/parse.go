package schema

import (
	"fmt"
	"strings"
)

// Parse builds a schema tree from a compact type descriptor, e.g.
//
//	struct{k1: str, k2: str, a: int32,
//	       detailed_struct: struct{long_field1: int32, long_field2: str},
//	       array_of_structs: array<struct{long_n: int32}>}
//
// array<struct{...}> becomes a list-of-record node; array, set and dict
// of anything else stay scalar leaves. The top-level descriptor must be
// a struct.
func Parse(descriptor string) (*Node, error) {
	p := &parser{input: descriptor}
	p.skipSpace()
	node, err := p.parseNode()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.input) {
		return nil, p.errorf("trailing input")
	}
	if node.Kind != KindRecord {
		return nil, fmt.Errorf("schema: top-level descriptor must be a struct, got %s", node.Kind)
	}
	if err := node.Validate(); err != nil {
		return nil, err
	}
	return node, nil
}

type parser struct {
	input string
	pos   int
}

func (p *parser) errorf(format string, args ...interface{}) error {
	msg := fmt.Sprintf(format, args...)
	return fmt.Errorf("schema: %s at offset %d", msg, p.pos)
}

func (p *parser) skipSpace() {
	for p.pos < len(p.input) {
		switch p.input[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *parser) parseNode() (*Node, error) {
	p.skipSpace()
	switch {
	case p.hasKeyword("struct", '{'):
		return p.parseRecord()
	case p.hasKeyword("array", '<'):
		return p.parseArray()
	default:
		return p.parseScalar()
	}
}

// hasKeyword reports whether the input at the cursor starts with the
// keyword immediately followed (after optional spaces) by the opener.
func (p *parser) hasKeyword(keyword string, opener byte) bool {
	rest := p.input[p.pos:]
	if !strings.HasPrefix(rest, keyword) {
		return false
	}
	i := p.pos + len(keyword)
	for i < len(p.input) && (p.input[i] == ' ' || p.input[i] == '\t' || p.input[i] == '\n' || p.input[i] == '\r') {
		i++
	}
	return i < len(p.input) && p.input[i] == opener
}

func (p *parser) parseRecord() (*Node, error) {
	p.pos += len("struct")
	p.skipSpace()
	p.pos++ // consume '{'
	rec := &Node{Kind: KindRecord}
	p.skipSpace()
	if p.peek() == '}' {
		p.pos++
		return rec, nil
	}
	for {
		name, err := p.parseIdent()
		if err != nil {
			return nil, err
		}
		p.skipSpace()
		if p.peek() != ':' {
			return nil, p.errorf("expected ':' after field %q", name)
		}
		p.pos++
		child, err := p.parseNode()
		if err != nil {
			return nil, err
		}
		rec.Fields = append(rec.Fields, Field{Name: name, Node: child})
		p.skipSpace()
		switch p.peek() {
		case ',':
			p.pos++
			p.skipSpace()
		case '}':
			p.pos++
			return rec, nil
		default:
			return nil, p.errorf("expected ',' or '}' after field %q", name)
		}
	}
}

func (p *parser) parseArray() (*Node, error) {
	start := p.pos
	p.pos += len("array")
	p.skipSpace()
	p.pos++ // consume '<'
	inner, err := p.parseNode()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.peek() != '>' {
		return nil, p.errorf("expected '>' closing array")
	}
	p.pos++
	if inner.Kind == KindRecord {
		return ListOf(inner), nil
	}
	// Arrays of anything else are leaves; keep the full type text.
	return Scalar(compactTypeText(p.input[start:p.pos])), nil
}

// parseScalar consumes a scalar type name, tracking angle brackets so
// composite leaf types like dict<str, int32> are captured whole.
func (p *parser) parseScalar() (*Node, error) {
	start := p.pos
	depth := 0
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		if depth == 0 && (c == ',' || c == '}' || c == '>') {
			break
		}
		switch c {
		case '<':
			depth++
		case '>':
			depth--
			if depth < 0 {
				return nil, p.errorf("unbalanced '>'")
			}
		case '{':
			return nil, p.errorf("unexpected '{' in type name")
		}
		p.pos++
	}
	if depth != 0 {
		return nil, p.errorf("unbalanced '<'")
	}
	text := compactTypeText(p.input[start:p.pos])
	if text == "" {
		return nil, p.errorf("expected a type name")
	}
	return Scalar(text), nil
}

func (p *parser) parseIdent() (string, error) {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		if c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' ||
			p.pos > start && c >= '0' && c <= '9' {
			p.pos++
			continue
		}
		break
	}
	if p.pos == start {
		return "", p.errorf("expected a field name")
	}
	return p.input[start:p.pos], nil
}

func (p *parser) peek() byte {
	if p.pos < len(p.input) {
		return p.input[p.pos]
	}
	return 0
}

// compactTypeText strips whitespace from captured type text so the
// stored leaf type is stable regardless of descriptor formatting,
// e.g. "dict<str, int32>" becomes "dict<str,int32>".
func compactTypeText(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '\r':
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
