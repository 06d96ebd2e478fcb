package props

import (
	"fmt"
	"reflect"
)

// Import copies every field of source into the store's own properties,
// overwriting existing values on name collision. Source must be a mapping
// with string keys or a record: a struct or non-nil pointer to struct
// (exported fields only, field names used as-is).
//
// Import does NOT clear tombstones for the names it writes. This is a
// deliberate asymmetry against Set: an imported value is readable through
// Get and Has (the own-value branch of lookup wins), but the surviving
// tombstone still excludes the name from the resolved view of All, since
// tombstones apply after the own-property overlay there. Callers that
// want an import to fully restore a deleted name must Set it.
//
// Fails with CodeFrozen if the store is frozen and CodeInvalidImportSource
// if source has an unsupported shape; the store is untouched either way.
func (s *Store) Import(source any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	// Mutation guard first, like every other mutator.
	if s.frozen {
		return s.report(CodeFrozen, fmt.Sprintf("cannot import into frozen store %s", s.describe()))
	}
	fields, ok := importFields(source)
	if !ok {
		return s.report(CodeInvalidImportSource,
			fmt.Sprintf("cannot import %T into store %s: source must be a record or a string-keyed mapping", source, s.describe()))
	}
	for k, v := range fields {
		s.props[k] = v
	}
	return nil
}

// importFields flattens a record or mapping source into name/value pairs.
// Returns ok=false for every other shape, including nil and nil pointers.
func importFields(source any) (map[string]any, bool) {
	// Fast path for the common mapping shapes.
	switch src := source.(type) {
	case map[string]any:
		out := make(map[string]any, len(src))
		for k, v := range src {
			out[k] = v
		}
		return out, true
	case map[string]string:
		out := make(map[string]any, len(src))
		for k, v := range src {
			out[k] = v
		}
		return out, true
	}

	v := reflect.ValueOf(source)
	if !v.IsValid() {
		return nil, false
	}
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil, false
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		out := make(map[string]any, v.Len())
		iter := v.MapRange()
		for iter.Next() {
			out[iter.Key().String()] = iter.Value().Interface()
		}
		return out, true
	case reflect.Struct:
		t := v.Type()
		out := make(map[string]any, t.NumField())
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}
			out[f.Name] = v.Field(i).Interface()
		}
		return out, true
	default:
		return nil, false
	}
}
