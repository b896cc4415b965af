package structmap

import (
	"reflect"

	"github.com/ardmn/faunadb-go/values"
)

// Encode converts a Go value to a document value. Struct fields map to
// object members in declaration order; see the package documentation
// for the tag grammar.
func Encode(v any) (*values.Value, error) {
	if v == nil {
		return values.Null(), nil
	}
	rv := reflect.ValueOf(v)
	return codecFor(rv.Type()).encode(rv, "")
}

// Decode converts a document value into *v. It decodes into a scratch
// value and assigns only on full success, so a failed decode never
// leaves *v partially populated.
func Decode(node *values.Value, v any) error {
	if v == nil {
		return &UnmarshalError{Message: "destination value cannot be nil"}
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr {
		return &UnmarshalError{Message: "destination value must be a pointer"}
	}
	if rv.IsNil() {
		return &UnmarshalError{Message: "destination pointer cannot be nil"}
	}
	if node == nil {
		node = values.Null()
	}

	elem := rv.Elem()
	tmp := reflect.New(elem.Type()).Elem()
	if err := codecFor(elem.Type()).decode(node, tmp, ""); err != nil {
		return err
	}
	elem.Set(tmp)
	return nil
}

// DeriveCodec returns the memoized codec for T, derived from its
// declared shape. The returned codec is safe for concurrent use;
// deriving the same type from several goroutines yields behaviorally
// identical codecs backed by one cache entry.
func DeriveCodec[T any]() values.Codec[T] {
	t := reflect.TypeOf((*T)(nil)).Elem()
	tc := codecFor(t)
	return values.CodecOf(
		func(node *values.Value) values.Result[T] {
			var out T
			if node == nil {
				node = values.Null()
			}
			if err := tc.decode(node, reflect.ValueOf(&out).Elem(), ""); err != nil {
				return values.Fail[T](err)
			}
			return values.Ok(out)
		},
		func(v T) values.Result[*values.Value] {
			node, err := tc.encode(reflect.ValueOf(&v).Elem(), "")
			if err != nil {
				return values.Fail[*values.Value](err)
			}
			return values.Ok(node)
		})
}
