package wire

import (
	"bytes"
	"encoding/base64"
	stdjson "encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/segmentio/encoding/json"

	"github.com/ardmn/faunadb-go/debug"
	"github.com/ardmn/faunadb-go/values"
)

// Wrapper keys for value variants that have no native JSON
// counterpart. Each wire object carrying exactly one of these keys
// round-trips losslessly.
const (
	bytesKey  = "@bytes"
	dateKey   = "@date"
	timeKey   = "@ts"
	refKey    = "@ref"
	setRefKey = "@set"
	objectKey = "object"
)

// jsonValue adapts a value tree to the JSON library's Marshaler and
// Unmarshaler extension points. It is the only coupling between the
// value model and the JSON library.
type jsonValue struct {
	v *values.Value
}

// ToJSON serializes a value tree to wire bytes.
func ToJSON(v *values.Value) ([]byte, error) {
	if v == nil {
		v = values.Null()
	}
	return json.Marshal(jsonValue{v: v})
}

// FromJSON parses wire bytes into a value tree.
func FromJSON(data []byte) (*values.Value, error) {
	var jv jsonValue
	if err := json.Unmarshal(data, &jv); err != nil {
		return nil, err
	}
	if debug.Wire() {
		debug.Logf("wire: decoded %s", jv.v)
	}
	return jv.v, nil
}

func (j jsonValue) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := appendValue(&buf, j.v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func appendValue(buf *bytes.Buffer, v *values.Value) error {
	switch v.Kind() {
	case values.NullKind:
		buf.WriteString("null")
	case values.BoolKind:
		buf.WriteString(strconv.FormatBool(v.Bool()))
	case values.LongKind:
		buf.WriteString(strconv.FormatInt(v.Long(), 10))
	case values.DoubleKind:
		d, err := json.Marshal(v.Double())
		if err != nil {
			return err
		}
		buf.Write(d)
	case values.StringKind:
		return appendString(buf, v.Str())
	case values.BytesKind:
		return appendWrapped(buf, bytesKey, func() error {
			return appendString(buf, base64.URLEncoding.EncodeToString(v.BytesVal()))
		})
	case values.DateKind:
		return appendWrapped(buf, dateKey, func() error {
			return appendString(buf, v.DateVal().String())
		})
	case values.TimeKind:
		return appendWrapped(buf, timeKey, func() error {
			return appendString(buf, v.TimeVal().UTC().Format(time.RFC3339Nano))
		})
	case values.RefKind:
		return appendWrapped(buf, refKey, func() error {
			ref := v.RefVal()
			buf.WriteByte('{')
			if ref.Collection != "" {
				if err := appendString(buf, "collection"); err != nil {
					return err
				}
				buf.WriteByte(':')
				if err := appendString(buf, ref.Collection); err != nil {
					return err
				}
				buf.WriteByte(',')
			}
			if err := appendString(buf, "id"); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := appendString(buf, ref.ID); err != nil {
				return err
			}
			buf.WriteByte('}')
			return nil
		})
	case values.SetRefKind:
		return appendWrapped(buf, setRefKey, func() error {
			return appendMembers(buf, v)
		})
	case values.ObjectKind:
		return appendWrapped(buf, objectKey, func() error {
			return appendMembers(buf, v)
		})
	case values.ArrayKind:
		buf.WriteByte('[')
		for i, e := range v.Elems() {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := appendValue(buf, e); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	default:
		return fmt.Errorf("cannot serialize kind %s", v.Kind())
	}
	return nil
}

func appendString(buf *bytes.Buffer, s string) error {
	d, err := json.Marshal(s)
	if err != nil {
		return err
	}
	buf.Write(d)
	return nil
}

func appendWrapped(buf *bytes.Buffer, key string, inner func() error) error {
	buf.WriteByte('{')
	if err := appendString(buf, key); err != nil {
		return err
	}
	buf.WriteByte(':')
	if err := inner(); err != nil {
		return err
	}
	buf.WriteByte('}')
	return nil
}

func appendMembers(buf *bytes.Buffer, v *values.Value) error {
	buf.WriteByte('{')
	keys := v.Keys()
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := appendString(buf, k); err != nil {
			return err
		}
		buf.WriteByte(':')
		member, _ := v.Lookup(k)
		if err := appendValue(buf, member); err != nil {
			return err
		}
	}
	buf.WriteByte('}')
	return nil
}

func (j *jsonValue) UnmarshalJSON(data []byte) error {
	dec := stdjson.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	raw, err := decodeStream(dec)
	if err != nil {
		return err
	}
	v, err := interpret(raw)
	if err != nil {
		return err
	}
	j.v = v
	return nil
}

func decodeStream(dec *stdjson.Decoder) (rawNode, error) {
	tok, err := dec.Token()
	if err != nil {
		return rawNode{}, err
	}
	return decodeToken(dec, tok)
}

func decodeToken(dec *stdjson.Decoder, tok json.Token) (rawNode, error) {
	switch t := tok.(type) {
	case nil:
		return scalarNode(values.Null()), nil
	case bool:
		return scalarNode(values.FromBool(t)), nil
	case string:
		return scalarNode(values.FromString(t)), nil
	case json.Number:
		if i, err := strconv.ParseInt(t.String(), 10, 64); err == nil {
			return scalarNode(values.FromLong(i)), nil
		}
		f, err := t.Float64()
		if err != nil {
			return rawNode{}, fmt.Errorf("bad number %q: %w", t.String(), err)
		}
		return scalarNode(values.FromDouble(f)), nil
	case json.Delim:
		switch t {
		case '[':
			res := rawNode{kind: rawArray}
			for dec.More() {
				e, err := decodeStream(dec)
				if err != nil {
					return rawNode{}, err
				}
				res.elems = append(res.elems, e)
			}
			if _, err := dec.Token(); err != nil { // consume ']'
				return rawNode{}, err
			}
			return res, nil
		case '{':
			res := rawNode{kind: rawObject}
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return rawNode{}, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return rawNode{}, fmt.Errorf("object key is not a string: %v", keyTok)
				}
				member, err := decodeStream(dec)
				if err != nil {
					return rawNode{}, err
				}
				res.members = append(res.members, rawMember{key: key, val: member})
			}
			if _, err := dec.Token(); err != nil { // consume '}'
				return rawNode{}, err
			}
			return res, nil
		}
	}
	return rawNode{}, fmt.Errorf("unexpected token %v", tok)
}
