// Package values provides the document value model: an immutable
// tagged-union tree (Value), a success/failure wrapper (Result), a
// registry of bidirectional coercions between values and Go types
// (Codec), and composable path expressions over value trees (Field).
//
// # Values
//
// A Value is one of twelve kinds: Null, Bool, Long, Double, String,
// Bytes, Date, Time, Ref, SetRef, Array and Object. Values are built
// bottom-up with constructors and never mutated:
//
//	v := values.ObjectOf(
//	    "name", values.FromString("pierre"),
//	    "age", values.FromLong(42),
//	)
//
// Object member order is preserved for round-trip fidelity but does
// not affect equality: values.Equal compares objects by key.
//
// # Coercion
//
// Codecs coerce values to host types and back, reporting failures as
// Result values rather than panics:
//
//	age, err := values.Get(v, values.To(values.AtKeys("age"), values.LongCodec)).Get()
//
// Custom codecs compose from existing ones with MapWith, or are built
// directly with CodecOf. The structmap package derives codecs for
// struct types.
//
// # Fields
//
// A Field is a reusable path descriptor over value trees. Fields are
// immutable; At returns extended copies:
//
//	first := values.At(values.Key("data"), values.Index(0))
//	name := first.At(values.Key("name"))
package values
