package values

import "math"

// Codec is a bidirectional coercion between a Value and a host type T.
// Decode checks the value's kind and fails with a descriptive error on
// mismatch; Encode wraps a host value in the corresponding variant.
// Both directions return a Result and never panic for data-shape
// problems.
type Codec[T any] interface {
	Decode(*Value) Result[T]
	Encode(T) Result[*Value]
}

type codecFuncs[T any] struct {
	decode func(*Value) Result[T]
	encode func(T) Result[*Value]
}

func (c codecFuncs[T]) Decode(v *Value) Result[T] { return c.decode(v) }
func (c codecFuncs[T]) Encode(t T) Result[*Value] { return c.encode(t) }

// CodecOf builds a Codec from a decode and an encode function. It is
// the extension point for hand-written codecs.
func CodecOf[T any](decode func(*Value) Result[T], encode func(T) Result[*Value]) Codec[T] {
	return codecFuncs[T]{decode: decode, encode: encode}
}

func scalarCodec[T any](kind Kind, extract func(*Value) T, wrap func(T) *Value) Codec[T] {
	return codecFuncs[T]{
		decode: func(v *Value) Result[T] {
			if v == nil || v.Kind() != kind {
				return Fail[T](&ShapeError{Expected: kind, Actual: kindOf(v)})
			}
			return Ok(extract(v))
		},
		encode: func(t T) Result[*Value] {
			return Ok(wrap(t))
		},
	}
}

func kindOf(v *Value) Kind {
	if v == nil {
		return NullKind
	}
	return v.Kind()
}

// Primitive codecs, one per kind.
var (
	// ValueCodec coerces a Value to itself, failing on null.
	ValueCodec Codec[*Value] = codecFuncs[*Value]{
		decode: decodeNonNull,
		encode: func(v *Value) Result[*Value] {
			return decodeNonNull(v)
		},
	}

	BoolCodec   = scalarCodec(BoolKind, (*Value).Bool, FromBool)
	LongCodec   = scalarCodec(LongKind, (*Value).Long, FromLong)
	DoubleCodec = scalarCodec(DoubleKind, (*Value).Double, FromDouble)
	StringCodec = scalarCodec(StringKind, (*Value).Str, FromString)
	BytesCodec  = scalarCodec(BytesKind, (*Value).BytesVal, FromBytes)
	DateCodec   = scalarCodec(DateKind, (*Value).DateVal, FromDate)
	TimeCodec   = scalarCodec(TimeKind, (*Value).TimeVal, FromTime)
	RefCodec    = scalarCodec(RefKind, (*Value).RefVal, FromRef)

	SetRefCodec = scalarCodec(SetRefKind, (*Value).memberMap, FromSetRef)
	ArrayCodec  = scalarCodec(ArrayKind, (*Value).Elems, FromSlice)
	ObjectCodec = scalarCodec(ObjectKind, (*Value).memberMap, FromMap)
)

func decodeNonNull(v *Value) Result[*Value] {
	if v == nil || v.Kind() == NullKind {
		return Failf[*Value]("value is null")
	}
	return Ok(v)
}

// MapWith derives a Codec for type O from a Codec for type I plus a
// pair of mapping functions. A mapping function may reject a value by
// returning an error; a panic inside a mapping function is caught here
// and converted into a failure carrying the panic as cause, never
// escaping past the Codec interface.
func MapWith[I, O any](base Codec[I], to func(I) (O, error), from func(O) (I, error)) Codec[O] {
	return codecFuncs[O]{
		decode: func(v *Value) (res Result[O]) {
			defer recoverFailure(&res)
			r := base.Decode(v)
			if r.IsErr() {
				return Fail[O](r.Err())
			}
			o, err := to(r.value)
			if err != nil {
				return Fail[O](err)
			}
			return Ok(o)
		},
		encode: func(o O) (res Result[*Value]) {
			defer recoverFailure(&res)
			i, err := from(o)
			if err != nil {
				return Fail[*Value](err)
			}
			return base.Encode(i)
		},
	}
}

func recoverFailure[T any](res *Result[T]) {
	r := recover()
	if r == nil {
		return
	}
	if err, ok := r.(error); ok {
		*res = Failf[T]("mapping function panicked: %w", err)
		return
	}
	*res = Failf[T]("mapping function panicked: %v", r)
}

// Derived numeric codecs. Narrowing fails with a RangeError instead of
// silently truncating, with one deliberate exception: RuneCodec keeps
// the low-order 32 bits of the long rather than range-checking, so
// out-of-range longs wrap instead of failing.
var (
	IntCodec   = narrowCodec[int]("int", math.MinInt, math.MaxInt)
	Int32Codec = narrowCodec[int32]("int32", math.MinInt32, math.MaxInt32)
	Int16Codec = narrowCodec[int16]("int16", math.MinInt16, math.MaxInt16)
	Int8Codec  = narrowCodec[int8]("int8", math.MinInt8, math.MaxInt8)

	RuneCodec = MapWith(LongCodec,
		func(v int64) (rune, error) { return rune(v), nil },
		func(r rune) (int64, error) { return int64(r), nil })

	FloatCodec = MapWith(DoubleCodec,
		func(v float64) (float32, error) { return float32(v), nil },
		func(f float32) (float64, error) { return float64(f), nil })
)

type signed interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

func narrowCodec[T signed](name string, lo, hi int64) Codec[T] {
	return MapWith(LongCodec,
		func(v int64) (T, error) {
			if v < lo || v > hi {
				return 0, &RangeError{Value: v, Target: name}
			}
			return T(v), nil
		},
		func(t T) (int64, error) {
			return int64(t), nil
		})
}

// ArrayOf derives a codec for []T from an element codec. Decoding is
// fail fast: the first element failure is returned, annotated with the
// element index, and no partial slice is produced.
func ArrayOf[T any](elem Codec[T]) Codec[[]T] {
	return codecFuncs[[]T]{
		decode: func(v *Value) Result[[]T] {
			if v == nil || v.Kind() != ArrayKind {
				return Fail[[]T](&ShapeError{Expected: ArrayKind, Actual: kindOf(v)})
			}
			res := make([]T, 0, v.Len())
			for i, e := range v.vals {
				r := elem.Decode(e)
				if r.IsErr() {
					return Failf[[]T]("element %d: %w", i, r.Err())
				}
				res = append(res, r.value)
			}
			return Ok(res)
		},
		encode: func(ts []T) Result[*Value] {
			elems := make([]*Value, 0, len(ts))
			for i, t := range ts {
				r := elem.Encode(t)
				if r.IsErr() {
					return Failf[*Value]("element %d: %w", i, r.Err())
				}
				elems = append(elems, r.value)
			}
			return Ok(FromSlice(elems))
		},
	}
}

// MapOf derives a codec for map[string]T from an element codec, with
// the same fail-fast policy as ArrayOf. Encoding sorts keys.
func MapOf[T any](elem Codec[T]) Codec[map[string]T] {
	return codecFuncs[map[string]T]{
		decode: func(v *Value) Result[map[string]T] {
			if v == nil || v.Kind() != ObjectKind {
				return Fail[map[string]T](&ShapeError{Expected: ObjectKind, Actual: kindOf(v)})
			}
			res := make(map[string]T, v.Len())
			for i, k := range v.keys {
				r := elem.Decode(v.vals[i])
				if r.IsErr() {
					return Failf[map[string]T]("field %q: %w", k, r.Err())
				}
				res[k] = r.value
			}
			return Ok(res)
		},
		encode: func(m map[string]T) Result[*Value] {
			fields := make(map[string]*Value, len(m))
			for k, t := range m {
				r := elem.Encode(t)
				if r.IsErr() {
					return Failf[*Value]("field %q: %w", k, r.Err())
				}
				fields[k] = r.value
			}
			return Ok(FromMap(fields))
		},
	}
}

// Coerce applies a codec to a value: shorthand for c.Decode(v) with a
// nil guard.
func Coerce[T any](v *Value, c Codec[T]) Result[T] {
	if v == nil {
		v = Null()
	}
	return c.Decode(v)
}
