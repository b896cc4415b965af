package structmap

import (
	"encoding"
	"fmt"
	"math"
	"reflect"
	"sync"
	"time"

	"github.com/ardmn/faunadb-go/debug"
	"github.com/ardmn/faunadb-go/values"
)

// Marshaler lets a type provide its own encoding to a Value, taking
// precedence over the derived one.
type Marshaler interface {
	MarshalValue() (*values.Value, error)
}

// Unmarshaler lets a type provide its own decoding from a Value,
// taking precedence over the derived one.
type Unmarshaler interface {
	UnmarshalValue(*values.Value) error
}

// typeCodec is the reflection-level codec derived for one Go type.
// Both functions carry the field path for error reporting.
type typeCodec struct {
	encode func(v reflect.Value, path string) (*values.Value, error)
	decode func(node *values.Value, v reflect.Value, path string) error
}

// codecCache memoizes derived codecs per target type for the life of
// the process. Entries are pure and never invalidated.
var codecCache sync.Map // reflect.Type -> *typeCodec

// codecFor returns the memoized codec for t, deriving it on first use.
//
// Derivation follows the encoding/json typeEncoder scheme: before
// building the member codecs a placeholder is published that blocks
// until derivation finishes and then delegates to the real codec. The
// placeholder breaks derivation-time recursion for self-referential
// types, and LoadOrStore makes concurrent first derivations converge
// on one winner; a losing build is discarded, which is harmless since
// derivation has no side effects.
func codecFor(t reflect.Type) *typeCodec {
	if c, ok := codecCache.Load(t); ok {
		return c.(*typeCodec)
	}

	var (
		wg sync.WaitGroup
		tc *typeCodec
	)
	wg.Add(1)
	placeholder := &typeCodec{
		encode: func(v reflect.Value, path string) (*values.Value, error) {
			wg.Wait()
			return tc.encode(v, path)
		},
		decode: func(node *values.Value, v reflect.Value, path string) error {
			wg.Wait()
			return tc.decode(node, v, path)
		},
	}
	if actual, loaded := codecCache.LoadOrStore(t, placeholder); loaded {
		return actual.(*typeCodec)
	}

	tc = buildCodec(t)
	wg.Done()
	codecCache.Store(t, tc)
	if debug.Derive() {
		debug.Logf("structmap: derived codec for %s", t)
	}
	return tc
}

var (
	valuePtrType        = reflect.TypeOf((*values.Value)(nil))
	dateType            = reflect.TypeOf(values.Date{})
	timeType            = reflect.TypeOf(time.Time{})
	refType             = reflect.TypeOf(values.Ref{})
	marshalerType       = reflect.TypeOf((*Marshaler)(nil)).Elem()
	unmarshalerType     = reflect.TypeOf((*Unmarshaler)(nil)).Elem()
	textMarshalerType   = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()
	textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()
)

func buildCodec(t reflect.Type) *typeCodec {
	if t == valuePtrType {
		return valuePassthroughCodec()
	}
	if tc := hookCodec(t); tc != nil {
		return tc
	}

	var tc *typeCodec
	switch t {
	case dateType:
		tc = scalarTypeCodec(values.DateKind,
			func(v reflect.Value) *values.Value { return values.FromDate(v.Interface().(values.Date)) },
			func(node *values.Value, v reflect.Value) { v.Set(reflect.ValueOf(node.DateVal())) })
	case timeType:
		tc = scalarTypeCodec(values.TimeKind,
			func(v reflect.Value) *values.Value { return values.FromTime(v.Interface().(time.Time)) },
			func(node *values.Value, v reflect.Value) { v.Set(reflect.ValueOf(node.TimeVal())) })
	case refType:
		tc = scalarTypeCodec(values.RefKind,
			func(v reflect.Value) *values.Value { return values.FromRef(v.Interface().(values.Ref)) },
			func(node *values.Value, v reflect.Value) { v.Set(reflect.ValueOf(node.RefVal())) })
	default:
		if ttc := textCodec(t); ttc != nil {
			tc = ttc
			break
		}
		switch t.Kind() {
		case reflect.Bool:
			tc = scalarTypeCodec(values.BoolKind,
				func(v reflect.Value) *values.Value { return values.FromBool(v.Bool()) },
				func(node *values.Value, v reflect.Value) { v.SetBool(node.Bool()) })
		case reflect.String:
			tc = scalarTypeCodec(values.StringKind,
				func(v reflect.Value) *values.Value { return values.FromString(v.String()) },
				func(node *values.Value, v reflect.Value) { v.SetString(node.Str()) })
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			tc = intCodec(t)
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			tc = uintCodec(t)
		case reflect.Float32, reflect.Float64:
			tc = floatCodec(t)
		case reflect.Ptr:
			tc = ptrCodec(t)
		case reflect.Slice:
			if t.Elem().Kind() == reflect.Uint8 {
				tc = bytesCodec(t)
			} else {
				tc = sliceCodec(t)
			}
		case reflect.Array:
			tc = arrayCodec(t)
		case reflect.Map:
			tc = mapCodec(t)
		case reflect.Struct:
			tc = structCodec(t)
		case reflect.Interface:
			tc = interfaceCodec(t)
		default:
			tc = unsupportedCodec(t)
		}
	}

	tc.decode = nullToZero(tc.decode)
	return tc
}

// nullToZero makes a null member decode to the target's zero value,
// whatever the target type.
func nullToZero(dec func(*values.Value, reflect.Value, string) error) func(*values.Value, reflect.Value, string) error {
	return func(node *values.Value, v reflect.Value, path string) error {
		if node == nil || node.IsNull() {
			v.Set(reflect.Zero(v.Type()))
			return nil
		}
		return dec(node, v, path)
	}
}

func valuePassthroughCodec() *typeCodec {
	return &typeCodec{
		encode: func(v reflect.Value, path string) (*values.Value, error) {
			if v.IsNil() {
				return values.Null(), nil
			}
			return v.Interface().(*values.Value), nil
		},
		decode: func(node *values.Value, v reflect.Value, path string) error {
			if node == nil {
				node = values.Null()
			}
			v.Set(reflect.ValueOf(node))
			return nil
		},
	}
}

// hookCodec wires the Marshaler/Unmarshaler hooks when t (or *t)
// implements them. Both directions must be covered, else the hooks are
// ignored and derivation proceeds structurally.
func hookCodec(t reflect.Type) *typeCodec {
	pt := reflect.PointerTo(t)
	hasMarshal := t.Implements(marshalerType) || pt.Implements(marshalerType)
	hasUnmarshal := t.Implements(unmarshalerType) || pt.Implements(unmarshalerType)
	if !hasMarshal || !hasUnmarshal {
		return nil
	}
	return &typeCodec{
		encode: func(v reflect.Value, path string) (*values.Value, error) {
			m, ok := v.Interface().(Marshaler)
			if !ok {
				m = addrOf(v).Interface().(Marshaler)
			}
			node, err := m.MarshalValue()
			if err != nil {
				return nil, &MarshalError{FieldPath: path, Message: err.Error(), Err: err}
			}
			return node, nil
		},
		decode: func(node *values.Value, v reflect.Value, path string) error {
			u, ok := addrOf(v).Interface().(Unmarshaler)
			if !ok {
				return &UnmarshalError{FieldPath: path, Message: fmt.Sprintf("%s does not implement Unmarshaler", v.Type())}
			}
			if err := u.UnmarshalValue(node); err != nil {
				return &UnmarshalError{FieldPath: path, Message: err.Error(), Err: err}
			}
			return nil
		},
	}
}

// textCodec maps types implementing both encoding.TextMarshaler and
// encoding.TextUnmarshaler to String values.
func textCodec(t reflect.Type) *typeCodec {
	pt := reflect.PointerTo(t)
	hasMarshal := t.Implements(textMarshalerType) || pt.Implements(textMarshalerType)
	if !hasMarshal || !pt.Implements(textUnmarshalerType) {
		return nil
	}
	return &typeCodec{
		encode: func(v reflect.Value, path string) (*values.Value, error) {
			tm, ok := v.Interface().(encoding.TextMarshaler)
			if !ok {
				tm = addrOf(v).Interface().(encoding.TextMarshaler)
			}
			text, err := tm.MarshalText()
			if err != nil {
				return nil, &MarshalError{FieldPath: path, Message: err.Error(), Err: err}
			}
			return values.FromString(string(text)), nil
		},
		decode: func(node *values.Value, v reflect.Value, path string) error {
			if node.Kind() != values.StringKind {
				return shapeErr(path, values.StringKind, node.Kind())
			}
			tu := addrOf(v).Interface().(encoding.TextUnmarshaler)
			if err := tu.UnmarshalText([]byte(node.Str())); err != nil {
				return &UnmarshalError{FieldPath: path, Message: err.Error(), Err: err}
			}
			return nil
		},
	}
}

// addrOf returns v.Addr(), copying v into fresh storage when it is not
// addressable.
func addrOf(v reflect.Value) reflect.Value {
	if v.CanAddr() {
		return v.Addr()
	}
	pv := reflect.New(v.Type())
	pv.Elem().Set(v)
	return pv
}

func scalarTypeCodec(kind values.Kind,
	enc func(reflect.Value) *values.Value,
	dec func(*values.Value, reflect.Value)) *typeCodec {
	return &typeCodec{
		encode: func(v reflect.Value, path string) (*values.Value, error) {
			return enc(v), nil
		},
		decode: func(node *values.Value, v reflect.Value, path string) error {
			if node.Kind() != kind {
				return shapeErr(path, kind, node.Kind())
			}
			dec(node, v)
			return nil
		},
	}
}

func shapeErr(path string, expected, actual values.Kind) error {
	serr := &values.ShapeError{Path: path, Expected: expected, Actual: actual}
	return &UnmarshalError{FieldPath: path, Message: serr.Error(), Err: serr}
}

func intCodec(t reflect.Type) *typeCodec {
	name := t.String()
	return &typeCodec{
		encode: func(v reflect.Value, path string) (*values.Value, error) {
			return values.FromLong(v.Int()), nil
		},
		decode: func(node *values.Value, v reflect.Value, path string) error {
			if node.Kind() != values.LongKind {
				return shapeErr(path, values.LongKind, node.Kind())
			}
			n := node.Long()
			if v.OverflowInt(n) {
				rerr := &values.RangeError{Value: n, Target: name}
				return &UnmarshalError{FieldPath: path, Message: rerr.Error(), Err: rerr}
			}
			v.SetInt(n)
			return nil
		},
	}
}

func uintCodec(t reflect.Type) *typeCodec {
	name := t.String()
	return &typeCodec{
		encode: func(v reflect.Value, path string) (*values.Value, error) {
			u := v.Uint()
			if u > math.MaxInt64 {
				return nil, &MarshalError{FieldPath: path, Message: fmt.Sprintf("value %d overflows the wire integer", u)}
			}
			return values.FromLong(int64(u)), nil
		},
		decode: func(node *values.Value, v reflect.Value, path string) error {
			if node.Kind() != values.LongKind {
				return shapeErr(path, values.LongKind, node.Kind())
			}
			n := node.Long()
			if n < 0 || v.OverflowUint(uint64(n)) {
				rerr := &values.RangeError{Value: n, Target: name}
				return &UnmarshalError{FieldPath: path, Message: rerr.Error(), Err: rerr}
			}
			v.SetUint(uint64(n))
			return nil
		},
	}
}

// floatCodec accepts both Double and Long on decode, since wire
// integers routinely land in float fields.
func floatCodec(t reflect.Type) *typeCodec {
	return &typeCodec{
		encode: func(v reflect.Value, path string) (*values.Value, error) {
			return values.FromDouble(v.Float()), nil
		},
		decode: func(node *values.Value, v reflect.Value, path string) error {
			switch node.Kind() {
			case values.DoubleKind:
				v.SetFloat(node.Double())
			case values.LongKind:
				v.SetFloat(float64(node.Long()))
			default:
				return shapeErr(path, values.DoubleKind, node.Kind())
			}
			return nil
		},
	}
}

func ptrCodec(t reflect.Type) *typeCodec {
	elem := codecFor(t.Elem())
	return &typeCodec{
		encode: func(v reflect.Value, path string) (*values.Value, error) {
			if v.IsNil() {
				return values.Null(), nil
			}
			return elem.encode(v.Elem(), path)
		},
		decode: func(node *values.Value, v reflect.Value, path string) error {
			// null is handled by nullToZero and leaves the pointer nil
			pv := reflect.New(t.Elem())
			if err := elem.decode(node, pv.Elem(), path); err != nil {
				return err
			}
			v.Set(pv)
			return nil
		},
	}
}

func bytesCodec(t reflect.Type) *typeCodec {
	return &typeCodec{
		encode: func(v reflect.Value, path string) (*values.Value, error) {
			if v.IsNil() {
				return values.Null(), nil
			}
			return values.FromBytes(v.Bytes()), nil
		},
		decode: func(node *values.Value, v reflect.Value, path string) error {
			if node.Kind() != values.BytesKind {
				return shapeErr(path, values.BytesKind, node.Kind())
			}
			v.SetBytes(node.BytesVal())
			return nil
		},
	}
}

func sliceCodec(t reflect.Type) *typeCodec {
	elem := codecFor(t.Elem())
	return &typeCodec{
		encode: func(v reflect.Value, path string) (*values.Value, error) {
			elems := make([]*values.Value, v.Len())
			for i := 0; i < v.Len(); i++ {
				n, err := elem.encode(v.Index(i), elemPath(path, i))
				if err != nil {
					return nil, err
				}
				elems[i] = n
			}
			return values.FromSlice(elems), nil
		},
		decode: func(node *values.Value, v reflect.Value, path string) error {
			if node.Kind() != values.ArrayKind {
				return shapeErr(path, values.ArrayKind, node.Kind())
			}
			n := node.Len()
			sv := reflect.MakeSlice(t, n, n)
			for i := 0; i < n; i++ {
				ev, _ := node.Index(i)
				if err := elem.decode(ev, sv.Index(i), elemPath(path, i)); err != nil {
					return err
				}
			}
			v.Set(sv)
			return nil
		},
	}
}

func arrayCodec(t reflect.Type) *typeCodec {
	elem := codecFor(t.Elem())
	return &typeCodec{
		encode: func(v reflect.Value, path string) (*values.Value, error) {
			elems := make([]*values.Value, v.Len())
			for i := 0; i < v.Len(); i++ {
				n, err := elem.encode(v.Index(i), elemPath(path, i))
				if err != nil {
					return nil, err
				}
				elems[i] = n
			}
			return values.FromSlice(elems), nil
		},
		decode: func(node *values.Value, v reflect.Value, path string) error {
			if node.Kind() != values.ArrayKind {
				return shapeErr(path, values.ArrayKind, node.Kind())
			}
			if node.Len() > t.Len() {
				return &UnmarshalError{FieldPath: path, Message: fmt.Sprintf("array of %d elements does not fit in %s", node.Len(), t)}
			}
			av := reflect.New(t).Elem()
			for i := 0; i < node.Len(); i++ {
				ev, _ := node.Index(i)
				if err := elem.decode(ev, av.Index(i), elemPath(path, i)); err != nil {
					return err
				}
			}
			v.Set(av)
			return nil
		},
	}
}

func mapCodec(t reflect.Type) *typeCodec {
	if t.Key().Kind() != reflect.String {
		return unsupportedCodec(t)
	}
	elem := codecFor(t.Elem())
	return &typeCodec{
		encode: func(v reflect.Value, path string) (*values.Value, error) {
			if v.IsNil() {
				return values.Null(), nil
			}
			fields := make(map[string]*values.Value, v.Len())
			iter := v.MapRange()
			for iter.Next() {
				key := iter.Key().String()
				n, err := elem.encode(iter.Value(), joinPath(path, key))
				if err != nil {
					return nil, err
				}
				fields[key] = n
			}
			return values.FromMap(fields), nil
		},
		decode: func(node *values.Value, v reflect.Value, path string) error {
			if node.Kind() != values.ObjectKind {
				return shapeErr(path, values.ObjectKind, node.Kind())
			}
			mv := reflect.MakeMapWithSize(t, node.Len())
			for _, key := range node.Keys() {
				member, _ := node.Lookup(key)
				ev := reflect.New(t.Elem()).Elem()
				if err := elem.decode(member, ev, joinPath(path, key)); err != nil {
					return err
				}
				mv.SetMapIndex(reflect.ValueOf(key).Convert(t.Key()), ev)
			}
			v.Set(mv)
			return nil
		},
	}
}

func structCodec(t reflect.Type) *typeCodec {
	fields, err := structFields(t)
	if err != nil {
		return errorCodec(t, err)
	}
	codecs := make([]*typeCodec, len(fields))
	for i, f := range fields {
		codecs[i] = codecFor(t.FieldByIndex(f.index).Type)
	}
	typeName := t.String()
	return &typeCodec{
		encode: func(v reflect.Value, path string) (*values.Value, error) {
			kvs := make([]values.KeyVal, 0, len(fields))
			for i, f := range fields {
				n, err := codecs[i].encode(v.FieldByIndex(f.index), joinPath(path, f.wireName))
				if err != nil {
					return nil, err
				}
				kvs = append(kvs, values.KeyVal{Key: f.wireName, Val: n})
			}
			return values.FromKeyVals(kvs), nil
		},
		decode: func(node *values.Value, v reflect.Value, path string) error {
			if node.Kind() != values.ObjectKind {
				return shapeErr(path, values.ObjectKind, node.Kind())
			}
			for i, f := range fields {
				member, ok := node.Lookup(f.wireName)
				if !ok {
					if f.optional {
						continue
					}
					merr := &values.MissingFieldError{Type: typeName, Field: f.wireName}
					return &UnmarshalError{FieldPath: joinPath(path, f.wireName), Message: merr.Error(), Err: merr}
				}
				if err := codecs[i].decode(member, v.FieldByIndex(f.index), joinPath(path, f.wireName)); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

// interfaceCodec supports the empty interface: encode dispatches on
// the dynamic type, decode produces Native data.
func interfaceCodec(t reflect.Type) *typeCodec {
	if t.NumMethod() != 0 {
		return unsupportedCodec(t)
	}
	return &typeCodec{
		encode: func(v reflect.Value, path string) (*values.Value, error) {
			if v.IsNil() {
				return values.Null(), nil
			}
			inner := v.Elem()
			return codecFor(inner.Type()).encode(inner, path)
		},
		decode: func(node *values.Value, v reflect.Value, path string) error {
			native := node.Native()
			if native == nil {
				v.Set(reflect.Zero(t))
				return nil
			}
			v.Set(reflect.ValueOf(native))
			return nil
		},
	}
}

func unsupportedCodec(t reflect.Type) *typeCodec {
	return errorCodec(t, fmt.Errorf("unsupported type: %s", t))
}

func errorCodec(t reflect.Type, err error) *typeCodec {
	return &typeCodec{
		encode: func(v reflect.Value, path string) (*values.Value, error) {
			return nil, &MarshalError{FieldPath: path, Message: err.Error(), Err: err}
		},
		decode: func(node *values.Value, v reflect.Value, path string) error {
			return &UnmarshalError{FieldPath: path, Message: err.Error(), Err: err}
		},
	}
}

func joinPath(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}

func elemPath(path string, i int) string {
	return fmt.Sprintf("%s[%d]", path, i)
}
