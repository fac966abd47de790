// Package types provides the CV record model shared by the editor, the renderers and the exporters.
package types

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Kind is the shape of a section value.
type Kind int

// Section value shapes
const (
	KindScalar Kind = iota
	KindObject
	KindList
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindObject:
		return "object"
	case KindList:
		return "list"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Value is the content of one section. It is one of Scalar, Object or List.
// Values are never modified after construction; edits build new ones.
type Value interface {
	Kind() Kind
	isValue()
}

// Scalar is a single text value, e.g. the professional summary.
type Scalar string

// Object is a singleton mapping from field name to text, e.g. contact info.
type Object map[string]string

// List is an ordered sequence of items. Position is display order.
type List []Fields

// Fields is one item of a list section.
type Fields map[string]string

// Kind implements Value.
func (Scalar) Kind() Kind { return KindScalar }

// Kind implements Value.
func (Object) Kind() Kind { return KindObject }

// Kind implements Value.
func (List) Kind() Kind { return KindList }

func (Scalar) isValue() {}
func (Object) isValue() {}
func (List) isValue()   {}

// Get returns the named field or "" when absent. Safe on a nil Object.
func (o Object) Get(name string) string {
	return o[name]
}

// Get returns the named field or "" when absent. Safe on nil Fields.
func (f Fields) Get(name string) string {
	return f[name]
}

// Clone returns an independent copy of f. The copy is never nil.
func (f Fields) Clone() Fields {
	out := make(Fields, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// Merge returns a new Fields holding f overlaid with other.
func (f Fields) Merge(other map[string]string) Fields {
	out := make(Fields, len(f)+len(other))
	for k, v := range f {
		out[k] = v
	}
	for k, v := range other {
		out[k] = v
	}
	return out
}

// Merge returns a new Object holding o overlaid with other.
func (o Object) Merge(other map[string]string) Object {
	return Object(Fields(o).Merge(other))
}

// ParseValue decodes a JSON string, object or array into a Value.
// Objects become Object, arrays of objects become List and strings become Scalar.
// null decodes to an empty Scalar.
func ParseValue(raw []byte) (Value, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty value")
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return nil, fmt.Errorf("failed to decode text value: %w", err)
		}
		return Scalar(s), nil
	case '{':
		var m map[string]string
		if err := json.Unmarshal(trimmed, &m); err != nil {
			return nil, fmt.Errorf("failed to decode object value: %w", err)
		}
		return Object(m), nil
	case '[':
		var items []map[string]string
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("failed to decode list value: %w", err)
		}
		list := make(List, 0, len(items))
		for _, item := range items {
			list = append(list, Fields(item).Clone())
		}
		return list, nil
	case 'n':
		if string(trimmed) == "null" {
			return Scalar(""), nil
		}
	}

	return nil, fmt.Errorf("unsupported value: %s", trimmed)
}

// MarshalValue encodes a Value as JSON. A nil Value encodes as null.
func MarshalValue(v Value) ([]byte, error) {
	switch v := v.(type) {
	case nil:
		return []byte("null"), nil
	case Scalar:
		return json.Marshal(string(v))
	case Object:
		if v == nil {
			return []byte("{}"), nil
		}
		return json.Marshal(map[string]string(v))
	case List:
		items := make([]map[string]string, 0, len(v))
		for _, item := range v {
			if item == nil {
				item = Fields{}
			}
			items = append(items, item)
		}
		return json.Marshal(items)
	default:
		return nil, fmt.Errorf("unsupported value type %T", v)
	}
}
