package input

import (
	"reflect"

	"github.com/dmitrymomot/input/core/sanitizer"
)

// Clean applies the input cleaning rule to a single value. Strings are
// trimmed, and stripped of markup first when sanitize is set. Any other value,
// including slices and maps holding strings, is returned unchanged.
func Clean(v any, sanitize bool) any {
	s, ok := v.(string)
	if !ok {
		return v
	}
	return sanitizer.Clean(s, sanitize)
}

// IsEmptyLike reports whether v counts as empty for precedence lookups and
// cookie removal: nil, "", "0", false, numeric zero, or an empty slice or map.
func IsEmptyLike(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == "" || t == "0"
	case bool:
		return !t
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() == 0
	case reflect.Slice, reflect.Map:
		return rv.Len() == 0
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
