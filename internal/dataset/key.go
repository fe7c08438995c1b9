package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
)

// KeyField is one component of a row key.
type KeyField struct {
	Name  string
	Value any
}

// Key identifies one row: the projection of the row onto the dataset's
// key fields, in key-field order. It marshals to a JSON object whose
// members appear in that order, so persisted key records survive a
// round trip structurally intact.
type Key []KeyField

// MarshalJSON encodes the key as an ordered JSON object.
func (k Key) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, kf := range k {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(kf.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		value, err := json.Marshal(kf.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object preserving member order.
func (k *Key) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("dataset: key must be a JSON object")
	}
	out := Key{}
	for dec.More() {
		nameTok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := nameTok.(string)
		if !ok {
			return fmt.Errorf("dataset: key member name must be a string")
		}
		var value any
		if err := dec.Decode(&value); err != nil {
			return err
		}
		out = append(out, KeyField{Name: name, Value: value})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*k = out
	return nil
}

// Equal reports whether two keys have the same fields and values in the
// same order.
func (k Key) Equal(other Key) bool {
	if len(k) != len(other) {
		return false
	}
	for i := range k {
		if k[i].Name != other[i].Name || !reflect.DeepEqual(k[i].Value, other[i].Value) {
			return false
		}
	}
	return true
}

// String renders the key for log output.
func (k Key) String() string {
	data, err := json.Marshal(k)
	if err != nil {
		return fmt.Sprintf("key(%v)", []KeyField(k))
	}
	return string(data)
}
