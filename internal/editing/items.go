package editing

import "github.com/jonathan/cv-genie/internal/types"

// ZeroItem returns a new item for a list section with every declared field
// set to "". Sections that are not lists, and unknown sections, get an empty
// item; callers must not expect any particular field on it.
func ZeroItem(section types.SectionID) types.Fields {
	if section.Kind() != types.KindList {
		return types.Fields{}
	}

	fields := section.Fields()
	item := make(types.Fields, len(fields))
	for _, f := range fields {
		item[f] = ""
	}
	return item
}

// AddItem appends ZeroItem(section) to a list section. If the section does
// not currently hold a list, r is returned unchanged.
func AddItem(r types.Record, section types.SectionID) types.Record {
	list, ok := r.Section(section).(types.List)
	if !ok {
		return r
	}

	updated := make(types.List, len(list), len(list)+1)
	copy(updated, list)
	updated = append(updated, ZeroItem(section))
	return r.With(section, updated)
}

// RemoveItem removes the item at index from a list section, shifting later
// items down. Index handling matches an array splice of one element: an index
// past the end removes nothing, a negative index counts back from the end and
// is clamped to the first item. If the section does not hold a list, r is
// returned unchanged.
func RemoveItem(r types.Record, section types.SectionID, index int) types.Record {
	list, ok := r.Section(section).(types.List)
	if !ok {
		return r
	}

	start := spliceStart(index, len(list))
	if start >= len(list) {
		return r
	}

	updated := make(types.List, 0, len(list)-1)
	updated = append(updated, list[:start]...)
	updated = append(updated, list[start+1:]...)
	return r.With(section, updated)
}

// AddItemByName is AddItem addressed by wire name.
// Unknown names leave r unchanged.
func AddItemByName(r types.Record, section string) types.Record {
	id, ok := types.ParseSectionID(section)
	if !ok {
		return r
	}
	return AddItem(r, id)
}

// RemoveItemByName is RemoveItem addressed by wire name.
func RemoveItemByName(r types.Record, section string, index int) types.Record {
	id, ok := types.ParseSectionID(section)
	if !ok {
		return r
	}
	return RemoveItem(r, id, index)
}

func spliceStart(index, length int) int {
	if index < 0 {
		index += length
		if index < 0 {
			index = 0
		}
	}
	return index
}
