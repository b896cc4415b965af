package structmap

import (
	"fmt"
	"reflect"
	"strings"
)

// fieldInfo holds mapping metadata for one struct field.
type fieldInfo struct {
	name     string // Go field name
	wireName string // member name on the wire
	index    []int  // reflect index path, through flattened embedded structs
	optional bool   // absent member leaves the field zero instead of failing
}

// ParseStructTag parses a `fauna:"..."` tag into key-value pairs.
// The grammar is comma-separated `key=value` pairs and bare flags:
// `fauna:"field=first_name,optional"`.
func ParseStructTag(tag string) (map[string]string, error) {
	result := make(map[string]string)
	for _, part := range strings.Split(tag, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if idx := strings.Index(part, "="); idx >= 0 {
			key := strings.TrimSpace(part[:idx])
			if key == "" {
				return nil, fmt.Errorf("invalid tag: empty key in %q", part)
			}
			result[key] = strings.TrimSpace(part[idx+1:])
			continue
		}
		result[part] = ""
	}
	return result, nil
}

// structFields extracts the mapped fields of a struct type in
// declaration order. A field is excluded when unexported or tagged
// `fauna:"omit"` (or `fauna:"-"`). Anonymous struct fields are
// flattened; a wire-name conflict between a flattened field and
// another field is an error.
func structFields(typ reflect.Type) ([]*fieldInfo, error) {
	var fields []*fieldInfo
	seen := make(map[string]string) // wire name -> Go field name
	if err := collectFields(typ, nil, &fields, seen); err != nil {
		return nil, err
	}
	return fields, nil
}

func collectFields(typ reflect.Type, prefix []int, fields *[]*fieldInfo, seen map[string]string) error {
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		index := append(append([]int(nil), prefix...), i)

		if field.Anonymous {
			if field.Type.Kind() == reflect.Struct {
				if err := collectFields(field.Type, index, fields, seen); err != nil {
					return err
				}
			}
			// anonymous non-struct fields carry no data
			continue
		}
		if !field.IsExported() {
			continue
		}

		info := &fieldInfo{
			name:     field.Name,
			wireName: field.Name,
			index:    index,
		}

		tag := field.Tag.Get("fauna")
		if tag != "" {
			parsed, err := ParseStructTag(tag)
			if err != nil {
				return fmt.Errorf("failed to parse tag on field %s: %w", field.Name, err)
			}
			if _, ok := parsed["omit"]; ok {
				continue
			}
			if _, ok := parsed["-"]; ok {
				continue
			}
			if name, ok := parsed["field"]; ok && name != "" {
				info.wireName = name
			}
			_, hasRequired := parsed["required"]
			_, hasOptional := parsed["optional"]
			if hasRequired && hasOptional {
				return fmt.Errorf("field %s cannot be both required and optional", field.Name)
			}
			if hasOptional {
				info.optional = true
			}
			if !hasRequired && !hasOptional {
				info.optional = isOptionalType(field.Type)
			}
		} else {
			info.optional = isOptionalType(field.Type)
		}

		if prev, ok := seen[info.wireName]; ok {
			return fmt.Errorf("field name conflict: %q maps to both %s and %s", info.wireName, prev, field.Name)
		}
		seen[info.wireName] = field.Name

		*fields = append(*fields, info)
	}
	return nil
}

// isOptionalType reports whether a missing member may leave the field
// zero: nilable types are optional by default.
func isOptionalType(typ reflect.Type) bool {
	switch typ.Kind() {
	case reflect.Ptr, reflect.Slice, reflect.Map, reflect.Interface:
		return true
	default:
		return false
	}
}
