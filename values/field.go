package values

import (
	"fmt"
	"strconv"
	"strings"
)

// Segment is one step of a field path: either an object key or an
// array index.
type Segment struct {
	key   string
	index int
	isKey bool
}

// Key returns a segment selecting an object member.
func Key(k string) Segment {
	return Segment{key: k, isKey: true}
}

// Index returns a segment selecting an array element.
func Index(i int) Segment {
	return Segment{index: i}
}

func (s Segment) String() string {
	if s.isKey {
		return s.key
	}
	return "[" + strconv.Itoa(s.index) + "]"
}

// Field is an immutable ordered sequence of path segments. A Field
// holds no reference to any value tree; it is a pure descriptor,
// reusable across many trees. Two Fields with equal segment sequences
// resolve identically.
type Field struct {
	segs []Segment
}

// At builds a field path from segments. Constructing a path with no
// segments is caller misuse and panics; extend an existing Field with
// the At method instead.
func At(segs ...Segment) Field {
	if len(segs) == 0 {
		panic("values.At: field path needs at least one segment")
	}
	return Field{}.At(segs...)
}

// AtKeys is shorthand for a path of key segments.
func AtKeys(keys ...string) Field {
	segs := make([]Segment, len(keys))
	for i, k := range keys {
		segs[i] = Key(k)
	}
	return At(segs...)
}

// At extends the field with more segments, returning a new Field. The
// receiver is unchanged.
func (f Field) At(segs ...Segment) Field {
	res := make([]Segment, 0, len(f.segs)+len(segs))
	res = append(res, f.segs...)
	res = append(res, segs...)
	return Field{segs: res}
}

// Segments returns a copy of the field's segments.
func (f Field) Segments() []Segment {
	return append([]Segment(nil), f.segs...)
}

func (f Field) String() string {
	return pathString(f.segs)
}

func pathString(segs []Segment) string {
	var sb strings.Builder
	for i, s := range segs {
		if s.isKey && i > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(s.String())
	}
	return sb.String()
}

// GetField resolves a field path against v, consuming segments left to
// right. Every failure mode returns a Result failure: a missing key or
// out-of-range index yields a NotFoundError naming the segment and the
// accumulated path, and a segment applied to the wrong container kind
// yields a ShapeError naming both kinds. Resolution never panics.
func (v *Value) GetField(f Field) Result[*Value] {
	cur := v
	for i, seg := range f.segs {
		if seg.isKey {
			if kindOf(cur) != ObjectKind {
				return Fail[*Value](&ShapeError{
					Path:     pathString(f.segs[:i+1]),
					Expected: ObjectKind,
					Actual:   kindOf(cur),
				})
			}
			next, ok := cur.Lookup(seg.key)
			if !ok {
				return Fail[*Value](&NotFoundError{
					Path:  pathString(f.segs[:i]),
					Key:   seg.key,
					IsKey: true,
				})
			}
			cur = next
			continue
		}
		if kindOf(cur) != ArrayKind {
			return Fail[*Value](&ShapeError{
				Path:     pathString(f.segs[:i+1]),
				Expected: ArrayKind,
				Actual:   kindOf(cur),
			})
		}
		next, ok := cur.Index(seg.index)
		if !ok {
			return Fail[*Value](&NotFoundError{
				Path:  pathString(f.segs[:i]),
				Index: seg.index,
			})
		}
		cur = next
	}
	if cur == nil {
		cur = Null()
	}
	return Ok(cur)
}

// AtPath resolves the given segments against v; shorthand for
// v.GetField(At(segs...)).
func (v *Value) AtPath(segs ...Segment) Result[*Value] {
	return v.GetField(At(segs...))
}

// TypedField is a Field bound to a terminal codec. Binding produces a
// new descriptor; the underlying Field is unchanged.
type TypedField[T any] struct {
	field Field
	codec Codec[T]
}

// To binds a terminal codec to a field path.
func To[T any](f Field, c Codec[T]) TypedField[T] {
	return TypedField[T]{field: f, codec: c}
}

// Field returns the underlying path.
func (tf TypedField[T]) Field() Field {
	return tf.field
}

// Get resolves a typed field against v: path resolution followed by
// the terminal codec's decode. Codec failures are annotated with the
// field path.
func Get[T any](v *Value, tf TypedField[T]) Result[T] {
	r := v.GetField(tf.field)
	if r.IsErr() {
		return Fail[T](r.Err())
	}
	dr := tf.codec.Decode(r.value)
	if dr.IsErr() && len(tf.field.segs) > 0 {
		return Failf[T]("at %s: %w", tf.field, dr.Err())
	}
	return dr
}

// Collect resolves a field path to an array and decodes every element
// with the element codec, fail fast. It mirrors ArrayOf applied at the
// end of a path.
func Collect[T any](v *Value, f Field, elem Codec[T]) Result[[]T] {
	return Get(v, To(f, ArrayOf(elem)))
}

var _ fmt.Stringer = Field{}
