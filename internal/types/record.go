// Package types provides the CV record model shared by the editor, the renderers and the exporters.
package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
)

// Record is a complete CV profile. It is a value type: copying a Record
// copies the section table, and section values are never modified in place,
// so every Record can be treated as frozen.
type Record struct {
	sections [sectionCount]Value
}

// DefaultRecord returns the zero-value profile: empty strings, every
// declared object field present, every list empty.
func DefaultRecord() Record {
	var r Record
	for _, id := range Sections() {
		r.sections[id] = zeroValue(id)
	}
	return r
}

func zeroValue(id SectionID) Value {
	switch id.Kind() {
	case KindObject:
		obj := make(Object, len(sectionDefs[id].fields))
		for _, f := range sectionDefs[id].fields {
			obj[f] = ""
		}
		return obj
	case KindList:
		return List{}
	default:
		return Scalar("")
	}
}

// Section returns the current value of a section, or nil for an unknown id.
func (r Record) Section(id SectionID) Value {
	if !id.Valid() {
		return nil
	}
	return r.sections[id]
}

// With returns a copy of r with one section replaced. Every other section
// keeps its identity. An unknown id returns r unchanged.
func (r Record) With(id SectionID, v Value) Record {
	if !id.Valid() {
		return r
	}
	r.sections[id] = v
	return r
}

// Text returns the section as text, or "" when it does not hold a Scalar.
func (r Record) Text(id SectionID) string {
	if s, ok := r.Section(id).(Scalar); ok {
		return string(s)
	}
	return ""
}

// Object returns the section as an Object, or nil when it does not hold one.
func (r Record) Object(id SectionID) Object {
	if o, ok := r.Section(id).(Object); ok {
		return o
	}
	return nil
}

// Items returns the section as a List, or nil when it does not hold one.
func (r Record) Items(id SectionID) List {
	if l, ok := r.Section(id).(List); ok {
		return l
	}
	return nil
}

// Field is shorthand for r.Object(id).Get(name).
func (r Record) Field(id SectionID, name string) string {
	return r.Object(id).Get(name)
}

// FullName returns personalInfo.fullName.
func (r Record) FullName() string {
	return r.Field(SectionPersonalInfo, FieldFullName)
}

// Equal reports whether two records hold the same content. Nil and empty
// maps or lists compare equal.
func (r Record) Equal(other Record) bool {
	for id := range r.sections {
		if !valuesEqual(r.sections[id], other.sections[id]) {
			return false
		}
	}
	return true
}

func valuesEqual(a, b Value) bool {
	switch a := a.(type) {
	case nil:
		return b == nil
	case Scalar:
		bs, ok := b.(Scalar)
		return ok && a == bs
	case Object:
		bo, ok := b.(Object)
		return ok && len(a) == len(bo) && (len(a) == 0 || reflect.DeepEqual(a, bo))
	case List:
		bl, ok := b.(List)
		if !ok || len(a) != len(bl) {
			return false
		}
		for i := range a {
			if len(a[i]) != len(bl[i]) {
				return false
			}
			if len(a[i]) > 0 && !reflect.DeepEqual(a[i], bl[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// MarshalJSON writes the sections in declaration order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, id := range Sections() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(id.String())
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		value, err := MarshalValue(r.sections[id])
		if err != nil {
			return nil, fmt.Errorf("failed to marshal section %s: %w", id, err)
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a record document. Missing or null sections take
// their zero value and unknown keys are ignored. The shape of each section
// follows the JSON kind found in the document, not the declared kind.
func (r *Record) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to decode record: %w", err)
	}

	out := DefaultRecord()
	for _, id := range Sections() {
		msg, ok := raw[id.String()]
		if !ok || string(bytes.TrimSpace(msg)) == "null" {
			continue
		}
		v, err := ParseValue(msg)
		if err != nil {
			return fmt.Errorf("section %s: %w", id, err)
		}
		out.sections[id] = v
	}

	*r = out
	return nil
}
