package values

import (
	"errors"
	"strings"
	"testing"
)

func doc() *Value {
	return ObjectOf(
		"name", FromString("alice"),
		"address", ObjectOf(
			"city", FromString("nyc"),
		),
		"scores", FromSlice([]*Value{FromLong(10), FromLong(20), FromLong(30)}),
	)
}

func TestGetField(t *testing.T) {
	tests := []struct {
		name  string
		field Field
		want  *Value
	}{
		{name: "top level key", field: AtKeys("name"), want: FromString("alice")},
		{name: "nested key", field: AtKeys("address", "city"), want: FromString("nyc")},
		{name: "array index", field: At(Key("scores"), Index(1)), want: FromLong(20)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := doc().GetField(tt.field)
			if r.IsErr() {
				t.Fatalf("unexpected failure: %v", r.Err())
			}
			if !Equal(r.MustGet(), tt.want) {
				t.Errorf("got %s, want %s", r.MustGet(), tt.want)
			}
		})
	}
}

func TestGetField_MissingKey(t *testing.T) {
	r := doc().GetField(AtKeys("x"))
	if !r.IsErr() {
		t.Fatal("expected failure")
	}
	var nf *NotFoundError
	if !errors.As(r.Err(), &nf) {
		t.Fatalf("expected NotFoundError, got %T", r.Err())
	}
	if !nf.IsKey || nf.Key != "x" {
		t.Errorf("unexpected %v", nf)
	}
	if got := r.Err().Error(); got != `no such field "x"` {
		t.Errorf("unexpected message %q", got)
	}
}

func TestGetField_IndexOutOfBounds(t *testing.T) {
	r := doc().GetField(At(Key("scores"), Index(9)))
	if !r.IsErr() {
		t.Fatal("expected failure")
	}
	var nf *NotFoundError
	if !errors.As(r.Err(), &nf) {
		t.Fatalf("expected NotFoundError, got %T", r.Err())
	}
	if nf.IsKey || nf.Index != 9 || nf.Path != "scores" {
		t.Errorf("unexpected %v", nf)
	}
}

func TestGetField_WrongContainerKind(t *testing.T) {
	r := doc().GetField(At(Key("name"), Key("inner")))
	if !r.IsErr() {
		t.Fatal("expected failure")
	}
	var se *ShapeError
	if !errors.As(r.Err(), &se) {
		t.Fatalf("expected ShapeError, got %T", r.Err())
	}
	if se.Expected != ObjectKind || se.Actual != StringKind {
		t.Errorf("unexpected %v", se)
	}
}

func TestField_ConstructionEquivalence(t *testing.T) {
	// one call with the full path and chained extension resolve the same
	a := At(Key("address"), Key("city"))
	b := AtKeys("address").At(Key("city"))
	ra := doc().GetField(a)
	rb := doc().GetField(b)
	if ra.IsErr() || rb.IsErr() {
		t.Fatalf("failures: %v %v", ra.Err(), rb.Err())
	}
	if !Equal(ra.MustGet(), rb.MustGet()) {
		t.Error("equivalent paths resolved differently")
	}
}

func TestField_ExtensionDoesNotMutate(t *testing.T) {
	base := AtKeys("address")
	_ = base.At(Key("city"))
	if got := base.String(); got != "address" {
		t.Errorf("base field mutated by At: %q", got)
	}
}

func TestAt_PanicsOnEmptyPath(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	At()
}

func TestTypedField(t *testing.T) {
	city := To(AtKeys("address", "city"), StringCodec)
	r := Get(doc(), city)
	if r.IsErr() {
		t.Fatalf("unexpected failure: %v", r.Err())
	}
	if r.MustGet() != "nyc" {
		t.Errorf("got %q", r.MustGet())
	}

	// coercion failure names the path
	asLong := To(AtKeys("address", "city"), LongCodec)
	if r := Get(doc(), asLong); !r.IsErr() {
		t.Error("expected coercion failure")
	} else if !strings.Contains(r.Err().Error(), "address.city") {
		t.Errorf("error should carry the path: %v", r.Err())
	}
}

func TestCollect(t *testing.T) {
	r := Collect(doc(), AtKeys("scores"), LongCodec)
	if r.IsErr() {
		t.Fatalf("unexpected failure: %v", r.Err())
	}
	got := r.MustGet()
	want := []int64{10, 20, 30}
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: got %d, want %d", i, got[i], want[i])
		}
	}
}

func TestSegmentString(t *testing.T) {
	f := At(Key("a"), Index(2), Key("b"))
	if got := f.String(); got != "a[2].b" {
		t.Errorf("got %q", got)
	}
}
