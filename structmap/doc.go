// Package structmap derives document codecs for Go types from their
// declared shape, using reflection and struct tags.
//
// # Usage
//
//	type User struct {
//	    Name  string `fauna:"field=name"`
//	    Age   int    `fauna:"field=age"`
//	    Notes string `fauna:"omit"`
//	}
//
//	node, err := structmap.Encode(User{Name: "alice", Age: 30})
//
//	var u User
//	err = structmap.Decode(node, &u)
//
// For use with field projection, DeriveCodec returns a values.Codec:
//
//	userCodec := structmap.DeriveCodec[User]()
//	u, err := values.Get(doc, values.To(values.AtKeys("data"), userCodec)).Get()
//
// # Field mapping
//
// Only exported fields are mapped. The member name on the wire is the
// Go field name unless renamed with `fauna:"field=..."`. Fields tagged
// `fauna:"omit"` (or `fauna:"-"`) are excluded. Anonymous struct
// fields are flattened into the parent object. Nilable fields
// (pointers, slices, maps, interfaces) are optional: an absent member
// leaves them zero. Other fields are required and their absence fails
// the whole decode; override with the `required`/`optional` flags.
//
// A type implementing Marshaler/Unmarshaler takes over its own
// conversion; encoding.TextMarshaler/TextUnmarshaler pairs map to
// String values.
//
// # Derivation cache
//
// Codecs are derived once per type and memoized for the life of the
// process. Self-referential types are supported: the cache publishes a
// forward reference before descending into members, so recursion
// terminates at derivation time and resolves at encode/decode time.
package structmap
