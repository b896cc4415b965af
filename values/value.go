package values

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"
)

// Value is a node in a document tree. It is a tagged union over the
// kinds listed in Kind and is immutable after construction: the only
// way to obtain a Value is through the From* constructors, and no
// mutating API exists.
type Value struct {
	kind Kind

	boolv  bool
	int64v int64
	f64v   float64
	strv   string
	bytesv []byte
	datev  Date
	timev  time.Time
	refv   Ref

	// keys/vals hold object and set-ref members in insertion order;
	// vals alone holds array elements.
	keys []string
	vals []*Value
}

var nullValue = &Value{kind: NullKind}

// Null returns the null value. There is a single null instance.
func Null() *Value {
	return nullValue
}

func FromBool(v bool) *Value {
	return &Value{kind: BoolKind, boolv: v}
}

func FromLong(v int64) *Value {
	return &Value{kind: LongKind, int64v: v}
}

func FromDouble(v float64) *Value {
	return &Value{kind: DoubleKind, f64v: v}
}

func FromString(v string) *Value {
	return &Value{kind: StringKind, strv: v}
}

// FromBytes copies b, so later mutation of b does not leak into the value.
func FromBytes(b []byte) *Value {
	return &Value{kind: BytesKind, bytesv: slices.Clone(b)}
}

func FromDate(d Date) *Value {
	return &Value{kind: DateKind, datev: d}
}

// FromTime builds a Time value. The instant keeps nanosecond precision
// and is normalized to UTC.
func FromTime(t time.Time) *Value {
	return &Value{kind: TimeKind, timev: t.UTC()}
}

func FromRef(r Ref) *Value {
	return &Value{kind: RefKind, refv: r}
}

// FromSetRef builds a set-ref descriptor from its parameters. Keys are
// sorted for a deterministic representation.
func FromSetRef(params map[string]*Value) *Value {
	res := fromSortedMap(params)
	res.kind = SetRefKind
	return res
}

// FromSlice builds an array value. The slice is copied; elements are
// shared, which is safe since values are immutable. Nil elements
// become null.
func FromSlice(elems []*Value) *Value {
	vals := make([]*Value, len(elems))
	for i, e := range elems {
		if e == nil {
			e = nullValue
		}
		vals[i] = e
	}
	return &Value{kind: ArrayKind, vals: vals}
}

// FromMap builds an object value with keys in sorted order.
func FromMap(fields map[string]*Value) *Value {
	res := fromSortedMap(fields)
	res.kind = ObjectKind
	return res
}

func fromSortedMap(fields map[string]*Value) *Value {
	keys := slices.Sorted(maps.Keys(fields))
	vals := make([]*Value, len(keys))
	for i, k := range keys {
		v := fields[k]
		if v == nil {
			v = nullValue
		}
		vals[i] = v
	}
	return &Value{keys: keys, vals: vals}
}

// KeyVal is one object member for order-preserving construction.
type KeyVal struct {
	Key string
	Val *Value
}

// FromKeyVals builds an object value preserving the given member
// order. A later duplicate key overwrites the earlier member in place.
func FromKeyVals(kvs []KeyVal) *Value {
	res := &Value{kind: ObjectKind}
	index := make(map[string]int, len(kvs))
	for _, kv := range kvs {
		v := kv.Val
		if v == nil {
			v = nullValue
		}
		if at, ok := index[kv.Key]; ok {
			res.vals[at] = v
			continue
		}
		index[kv.Key] = len(res.keys)
		res.keys = append(res.keys, kv.Key)
		res.vals = append(res.vals, v)
	}
	return res
}

// ObjectOf is shorthand for FromKeyVals over alternating key, value
// pairs: ObjectOf("a", FromLong(1), "b", FromString("x")).
// It panics if args is malformed, since that is caller misuse.
func ObjectOf(args ...any) *Value {
	if len(args)%2 != 0 {
		panic("values.ObjectOf: odd number of arguments")
	}
	kvs := make([]KeyVal, 0, len(args)/2)
	for i := 0; i < len(args); i += 2 {
		k, ok := args[i].(string)
		if !ok {
			panic(fmt.Sprintf("values.ObjectOf: argument %d is not a string key", i))
		}
		v, ok := args[i+1].(*Value)
		if !ok {
			panic(fmt.Sprintf("values.ObjectOf: argument %d is not a *Value", i+1))
		}
		kvs = append(kvs, KeyVal{Key: k, Val: v})
	}
	return FromKeyVals(kvs)
}

// Kind returns the variant discriminator.
func (v *Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether v is the null value.
func (v *Value) IsNull() bool {
	return v.kind == NullKind
}

// Lookup returns the member named key of an object or set-ref value.
// It reports false when the key is absent or v is not object shaped;
// it never panics.
func (v *Value) Lookup(key string) (*Value, bool) {
	if v.kind != ObjectKind && v.kind != SetRefKind {
		return nil, false
	}
	for i, k := range v.keys {
		if k == key {
			return v.vals[i], true
		}
	}
	return nil, false
}

// Index returns element i of an array value. It reports false when i
// is out of bounds or v is not an array; it never panics.
func (v *Value) Index(i int) (*Value, bool) {
	if v.kind != ArrayKind || i < 0 || i >= len(v.vals) {
		return nil, false
	}
	return v.vals[i], true
}

// Len returns the number of elements or members of a container value,
// 0 for scalars.
func (v *Value) Len() int {
	return len(v.vals)
}

// Keys returns the member keys of an object or set-ref value in
// insertion order. The slice is a copy.
func (v *Value) Keys() []string {
	return slices.Clone(v.keys)
}

// Elems returns the elements of an array value, or the member values
// of an object value in key order. The slice is a copy; the elements
// are shared immutable values.
func (v *Value) Elems() []*Value {
	return slices.Clone(v.vals)
}

// Bool returns the payload of a Bool value, false otherwise.
func (v *Value) Bool() bool { return v.boolv }

// Long returns the payload of a Long value, 0 otherwise.
func (v *Value) Long() int64 { return v.int64v }

// Double returns the payload of a Double value, 0 otherwise.
func (v *Value) Double() float64 { return v.f64v }

// Str returns the payload of a String value, "" otherwise.
func (v *Value) Str() string { return v.strv }

// BytesVal returns a copy of the payload of a Bytes value.
func (v *Value) BytesVal() []byte { return slices.Clone(v.bytesv) }

// DateVal returns the payload of a Date value.
func (v *Value) DateVal() Date { return v.datev }

// TimeVal returns the payload of a Time value.
func (v *Value) TimeVal() time.Time { return v.timev }

// RefVal returns the payload of a Ref value.
func (v *Value) RefVal() Ref { return v.refv }

// String renders a compact debug representation. It is not the wire
// form; see the wire package for that.
func (v *Value) String() string {
	var sb strings.Builder
	v.debugString(&sb)
	return sb.String()
}

func (v *Value) debugString(sb *strings.Builder) {
	switch v.kind {
	case NullKind:
		sb.WriteString("null")
	case BoolKind:
		fmt.Fprintf(sb, "%t", v.boolv)
	case LongKind:
		fmt.Fprintf(sb, "%d", v.int64v)
	case DoubleKind:
		fmt.Fprintf(sb, "%g", v.f64v)
	case StringKind:
		fmt.Fprintf(sb, "%q", v.strv)
	case BytesKind:
		fmt.Fprintf(sb, "bytes(%x)", v.bytesv)
	case DateKind:
		fmt.Fprintf(sb, "date(%s)", v.datev)
	case TimeKind:
		fmt.Fprintf(sb, "time(%s)", v.timev.Format(time.RFC3339Nano))
	case RefKind:
		sb.WriteString(v.refv.String())
	case SetRefKind, ObjectKind:
		if v.kind == SetRefKind {
			sb.WriteString("set")
		}
		sb.WriteByte('{')
		for i, k := range v.keys {
			if i > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(sb, "%q: ", k)
			v.vals[i].debugString(sb)
		}
		sb.WriteByte('}')
	case ArrayKind:
		sb.WriteByte('[')
		for i, e := range v.vals {
			if i > 0 {
				sb.WriteString(", ")
			}
			e.debugString(sb)
		}
		sb.WriteByte(']')
	}
}
