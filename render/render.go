// Package render pretty-prints value trees for terminals. The output
// mirrors the wire JSON shapes but is indented and optionally colored.
package render

import (
	"encoding/base64"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/ardmn/faunadb-go/values"
)

type RenderState struct {
	depth, indent int
	compact       bool

	Color func(values.Kind, ColorAttr, string) string
}

// Render writes a human-readable rendering of v to w.
func Render(v *values.Value, w io.Writer, opts ...RenderOption) error {
	rs := &RenderState{
		indent: 2,
	}
	for _, opt := range opts {
		opt(rs)
	}
	if rs.Color == nil {
		rs.Color = func(_ values.Kind, _ ColorAttr, s string) string { return s }
	}
	if v == nil {
		v = values.Null()
	}
	if err := render(v, w, rs); err != nil {
		return err
	}
	return writeString(w, "\n")
}

func render(v *values.Value, w io.Writer, rs *RenderState) error {
	k := v.Kind()
	switch k {
	case values.NullKind:
		return writeString(w, rs.Color(k, ValueColor, "null"))
	case values.BoolKind:
		return writeString(w, rs.Color(k, ValueColor, strconv.FormatBool(v.Bool())))
	case values.LongKind:
		return writeString(w, rs.Color(k, ValueColor, strconv.FormatInt(v.Long(), 10)))
	case values.DoubleKind:
		return writeString(w, rs.Color(k, ValueColor, strconv.FormatFloat(v.Double(), 'g', -1, 64)))
	case values.StringKind:
		return writeString(w, rs.Color(k, ValueColor, strconv.Quote(v.Str())))
	case values.BytesKind:
		return renderWrapped(w, rs, k, "@bytes",
			rs.Color(k, ValueColor, strconv.Quote(base64.URLEncoding.EncodeToString(v.BytesVal()))))
	case values.DateKind:
		return renderWrapped(w, rs, k, "@date",
			rs.Color(k, ValueColor, strconv.Quote(v.DateVal().String())))
	case values.TimeKind:
		return renderWrapped(w, rs, k, "@ts",
			rs.Color(k, ValueColor, strconv.Quote(v.TimeVal().UTC().Format(time.RFC3339Nano))))
	case values.RefKind:
		return renderWrapped(w, rs, k, "@ref",
			rs.Color(k, ValueColor, v.RefVal().String()))
	case values.SetRefKind:
		return renderWrappedMembers(v, w, rs, "@set")
	case values.ObjectKind:
		return renderMembers(v, w, rs)
	case values.ArrayKind:
		return renderElems(v, w, rs)
	}
	return nil
}

func renderWrapped(w io.Writer, rs *RenderState, k values.Kind, key, body string) error {
	s := rs.Color(k, SepColor, "{") +
		rs.Color(k, WrapperColor, strconv.Quote(key)) +
		rs.Color(k, SepColor, ": ") +
		body +
		rs.Color(k, SepColor, "}")
	return writeString(w, s)
}

func renderWrappedMembers(v *values.Value, w io.Writer, rs *RenderState, key string) error {
	k := v.Kind()
	open := rs.Color(k, SepColor, "{") +
		rs.Color(k, WrapperColor, strconv.Quote(key)) +
		rs.Color(k, SepColor, ": ")
	if err := writeString(w, open); err != nil {
		return err
	}
	if err := renderMembers(v, w, rs); err != nil {
		return err
	}
	return writeString(w, rs.Color(k, SepColor, "}"))
}

func renderMembers(v *values.Value, w io.Writer, rs *RenderState) error {
	k := v.Kind()
	keys := v.Keys()
	if len(keys) == 0 {
		return writeString(w, rs.Color(k, SepColor, "{}"))
	}
	if err := writeString(w, rs.Color(k, SepColor, "{")); err != nil {
		return err
	}
	rs.depth++
	for i, key := range keys {
		if i > 0 {
			if err := writeString(w, rs.Color(k, SepColor, ",")); err != nil {
				return err
			}
		}
		if err := writeNL(w, rs); err != nil {
			return err
		}
		member, _ := v.Lookup(key)
		field := rs.Color(k, FieldColor, strconv.Quote(key)) + rs.Color(k, SepColor, ": ")
		if err := writeString(w, field); err != nil {
			return err
		}
		if err := render(member, w, rs); err != nil {
			return err
		}
	}
	rs.depth--
	if err := writeNL(w, rs); err != nil {
		return err
	}
	return writeString(w, rs.Color(k, SepColor, "}"))
}

func renderElems(v *values.Value, w io.Writer, rs *RenderState) error {
	k := v.Kind()
	elems := v.Elems()
	if len(elems) == 0 {
		return writeString(w, rs.Color(k, SepColor, "[]"))
	}
	if err := writeString(w, rs.Color(k, SepColor, "[")); err != nil {
		return err
	}
	rs.depth++
	for i, e := range elems {
		if i > 0 {
			if err := writeString(w, rs.Color(k, SepColor, ",")); err != nil {
				return err
			}
		}
		if err := writeNL(w, rs); err != nil {
			return err
		}
		if err := render(e, w, rs); err != nil {
			return err
		}
	}
	rs.depth--
	if err := writeNL(w, rs); err != nil {
		return err
	}
	return writeString(w, rs.Color(k, SepColor, "]"))
}

func writeNL(w io.Writer, rs *RenderState) error {
	if rs.compact {
		return nil
	}
	indentString := strings.Repeat(strings.Repeat(" ", rs.indent), rs.depth)
	return writeString(w, "\n"+indentString)
}

func writeString(w io.Writer, s string) error {
	_, err := w.Write([]byte(s))
	return err
}
