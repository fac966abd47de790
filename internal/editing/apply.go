// Package editing implements the section-addressed edits that drive a CV record:
// field updates, item insertion and item removal. Every function returns a new
// record and never modifies its input.
package editing

import "github.com/jonathan/cv-genie/internal/types"

// Edit addresses one change to a record.
//
// Index selects an item of a list section; nil means "no index". Field names
// the key to set; it is ignored when the edit replaces a whole section.
// Value is usually a types.Scalar. A types.Object value at an item position
// replaces that item wholesale.
type Edit struct {
	Section types.SectionID
	Index   *int
	Field   string
	Value   types.Value
}

// At returns a pointer to i, for use as Edit.Index.
func At(i int) *int {
	return &i
}

// Apply applies e to r and returns the resulting record.
//
// The branch is chosen from e.Index and the current shape of the section:
//
//  1. Index set, section holds a List: the item at Index is replaced by the
//     old item merged with {Field: Value}. An out-of-range index is a no-op.
//  2. Index nil, section holds an Object: {Field: Value} is merged into it.
//  3. Anything else: the section is replaced by Value and Field is ignored.
//
// Value is not checked against the declared shape of the section, so a
// caller can store a List in a scalar section; renderers treat such a
// section as empty. Edits to unknown sections are no-ops.
func Apply(r types.Record, e Edit) types.Record {
	if !e.Section.Valid() {
		return r
	}

	current := r.Section(e.Section)

	if list, ok := current.(types.List); ok && e.Index != nil {
		return applyItem(r, e, list)
	}

	if obj, ok := current.(types.Object); ok && e.Index == nil {
		return applyObject(r, e, obj)
	}

	return r.With(e.Section, e.Value)
}

// ApplyByName is Apply addressed by the section's wire name.
// Unknown names leave r unchanged.
func ApplyByName(r types.Record, section string, index *int, field string, value types.Value) types.Record {
	id, ok := types.ParseSectionID(section)
	if !ok {
		return r
	}
	return Apply(r, Edit{Section: id, Index: index, Field: field, Value: value})
}

// SetText is the common single-field form of Apply.
func SetText(r types.Record, section types.SectionID, index *int, field, text string) types.Record {
	return Apply(r, Edit{Section: section, Index: index, Field: field, Value: types.Scalar(text)})
}

// applyItem updates one item of a list section
func applyItem(r types.Record, e Edit, list types.List) types.Record {
	i := *e.Index
	if i < 0 || i >= len(list) {
		return r
	}

	var item types.Fields
	switch v := e.Value.(type) {
	case types.Scalar:
		item = list[i].Merge(map[string]string{e.Field: string(v)})
	case types.Object:
		item = types.Fields(v).Clone()
	default:
		// A list cannot be stored inside a text field
		return r
	}

	updated := make(types.List, len(list))
	copy(updated, list)
	updated[i] = item
	return r.With(e.Section, updated)
}

// applyObject merges into a singleton object section
func applyObject(r types.Record, e Edit, obj types.Object) types.Record {
	switch v := e.Value.(type) {
	case types.Scalar:
		return r.With(e.Section, obj.Merge(map[string]string{e.Field: string(v)}))
	case types.Object:
		return r.With(e.Section, obj.Merge(v))
	default:
		return r
	}
}
