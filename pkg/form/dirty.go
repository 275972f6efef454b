package form

import "github.com/google/go-cmp/cmp"

// markDirtyLocked compares the incoming value against the field's configured
// default (empty string when none is set) and updates the per-field and
// global dirty flags. Callers hold f.mu.
func (f *Form) markDirtyLocked(name string, raw any) {
	def, ok := f.defaultValue(name)
	if !ok {
		def = ""
	}

	if valuesEqual(raw, def) {
		delete(f.state.DirtyFields, name)
		if len(f.state.DirtyFields) == 0 {
			f.state.IsDirty = false
		}
		return
	}

	f.state.DirtyFields[name] = struct{}{}
	f.state.IsDirty = true
}

// valuesEqual compares by value, not identity. Form values are serializable
// (scalars, strings, slices, maps), which cmp handles without options.
func valuesEqual(a, b any) bool {
	return cmp.Equal(a, b)
}
