package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ardmn/faunadb-go/values"
)

func TestRender_Plain(t *testing.T) {
	v := values.ObjectOf(
		"name", values.FromString("alice"),
		"scores", values.FromSlice([]*values.Value{
			values.FromLong(1), values.FromLong(2),
		}),
	)
	var buf bytes.Buffer
	if err := Render(v, &buf); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	want := `{
  "name": "alice",
  "scores": [
    1,
    2
  ]
}
`
	if buf.String() != want {
		t.Errorf("got:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestRender_Compact(t *testing.T) {
	v := values.ObjectOf("a", values.FromLong(1))
	var buf bytes.Buffer
	if err := Render(v, &buf, Compact(true)); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if strings.Count(buf.String(), "\n") != 1 {
		t.Errorf("compact output has extra newlines: %q", buf.String())
	}
}

func TestRender_WrappedKinds(t *testing.T) {
	v := values.FromBytes([]byte{1})
	var buf bytes.Buffer
	if err := Render(v, &buf); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !strings.Contains(buf.String(), "@bytes") {
		t.Errorf("wrapper key missing: %q", buf.String())
	}
}

func TestRender_NilValue(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(nil, &buf); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if buf.String() != "null\n" {
		t.Errorf("got %q", buf.String())
	}
}

func TestColors_FallsBackToDefault(t *testing.T) {
	c := NewColors()
	f := c.Get(values.ArrayKind, FieldColor)
	if f == nil {
		t.Fatal("nil color func")
	}
	if got := c.Default("plain"); got != "plain" {
		t.Errorf("default color altered text: %q", got)
	}
}
