package values

import "fmt"

// ShapeError reports that a coercion or path segment found a value of
// the wrong kind.
type ShapeError struct {
	Path     string // path to the offending value, "" at the root
	Expected Kind
	Actual   Kind
}

func (e *ShapeError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("expected %s, got %s at %s", e.Expected, e.Actual, e.Path)
	}
	return fmt.Sprintf("expected %s, got %s", e.Expected, e.Actual)
}

// NotFoundError reports a missing object key or an out-of-range array
// index during field resolution.
type NotFoundError struct {
	Path  string // accumulated path up to the failing segment
	Key   string // set for key segments
	Index int    // set for index segments
	IsKey bool
}

func (e *NotFoundError) Error() string {
	if e.IsKey {
		if e.Path != "" {
			return fmt.Sprintf("no such field %q at %s", e.Key, e.Path)
		}
		return fmt.Sprintf("no such field %q", e.Key)
	}
	if e.Path != "" {
		return fmt.Sprintf("index %d out of bounds at %s", e.Index, e.Path)
	}
	return fmt.Sprintf("index %d out of bounds", e.Index)
}

// RangeError reports a numeric narrowing outside the target type's
// representable range.
type RangeError struct {
	Value  int64
	Target string
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("value %d out of range for %s", e.Value, e.Target)
}

// MissingFieldError reports that a required struct field could not be
// resolved while decoding a record.
type MissingFieldError struct {
	Type  string // Go type being decoded
	Field string // wire field name
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field %q for %s", e.Field, e.Type)
}
