package values

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestPrimitiveCodecs_RoundTrip(t *testing.T) {
	date := Date{Year: 2024, Month: time.March, Day: 5}
	ts := time.Date(2024, 3, 5, 10, 30, 0, 123456789, time.UTC)
	t.Run("bool", func(t *testing.T) { roundTrip(t, BoolCodec, true, FromBool(true)) })
	t.Run("long", func(t *testing.T) { roundTrip(t, LongCodec, int64(-7), FromLong(-7)) })
	t.Run("double", func(t *testing.T) { roundTrip(t, DoubleCodec, 2.5, FromDouble(2.5)) })
	t.Run("string", func(t *testing.T) { roundTrip(t, StringCodec, "hi", FromString("hi")) })
	t.Run("date", func(t *testing.T) { roundTrip(t, DateCodec, date, FromDate(date)) })
	t.Run("time", func(t *testing.T) { roundTrip(t, TimeCodec, ts, FromTime(ts)) })
	t.Run("ref", func(t *testing.T) {
		r := Ref{Collection: "users", ID: "1"}
		roundTrip(t, RefCodec, r, FromRef(r))
	})
}

func roundTrip[T any](t *testing.T, c Codec[T], goVal T, val *Value) {
	t.Helper()
	enc := c.Encode(goVal)
	if enc.IsErr() {
		t.Fatalf("encode failed: %v", enc.Err())
	}
	if !Equal(enc.MustGet(), val) {
		t.Fatalf("encode produced %s, want %s", enc.MustGet(), val)
	}
	dec := c.Decode(val)
	if dec.IsErr() {
		t.Fatalf("decode failed: %v", dec.Err())
	}
	back := c.Encode(dec.MustGet())
	if back.IsErr() {
		t.Fatalf("re-encode failed: %v", back.Err())
	}
	if !Equal(back.MustGet(), val) {
		t.Fatalf("round trip mismatch: %s vs %s", back.MustGet(), val)
	}
}

func TestCodec_WrongKindFails(t *testing.T) {
	r := LongCodec.Decode(FromString("nope"))
	if !r.IsErr() {
		t.Fatal("expected failure")
	}
	var se *ShapeError
	if !errors.As(r.Err(), &se) {
		t.Fatalf("expected ShapeError, got %T", r.Err())
	}
	if se.Expected != LongKind || se.Actual != StringKind {
		t.Errorf("unexpected kinds: %v", se)
	}
}

func TestValueCodec_FailsOnNull(t *testing.T) {
	if r := ValueCodec.Decode(Null()); !r.IsErr() {
		t.Error("decode of null should fail")
	}
	if r := ValueCodec.Decode(nil); !r.IsErr() {
		t.Error("decode of nil should fail")
	}
	if r := ValueCodec.Encode(Null()); !r.IsErr() {
		t.Error("encode of null should fail")
	}
	if r := ValueCodec.Decode(FromLong(1)); r.IsErr() {
		t.Errorf("decode of non-null failed: %v", r.Err())
	}
}

func TestNarrowingCodecs(t *testing.T) {
	tests := []struct {
		name    string
		in      int64
		wantErr bool
	}{
		{name: "int8 fits", in: 120},
		{name: "int8 overflows", in: 300, wantErr: true},
		{name: "int8 underflows", in: -129, wantErr: true},
		{name: "int8 min", in: -128},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Int8Codec.Decode(FromLong(tt.in))
			if tt.wantErr {
				if !r.IsErr() {
					t.Fatalf("expected range failure for %d", tt.in)
				}
				var re *RangeError
				if !errors.As(r.Err(), &re) {
					t.Fatalf("expected RangeError, got %v", r.Err())
				}
				if re.Value != tt.in || re.Target != "int8" {
					t.Errorf("unexpected RangeError %v", re)
				}
				return
			}
			if r.IsErr() {
				t.Fatalf("unexpected failure: %v", r.Err())
			}
			if int64(r.MustGet()) != tt.in {
				t.Errorf("got %d, want %d", r.MustGet(), tt.in)
			}
		})
	}
}

func TestRuneCodec_KeepsLowBits(t *testing.T) {
	// out-of-range longs wrap instead of failing
	in := int64(1<<40 | 'x')
	r := RuneCodec.Decode(FromLong(in))
	if r.IsErr() {
		t.Fatalf("unexpected failure: %v", r.Err())
	}
	if r.MustGet() != 'x' {
		t.Errorf("expected low bits 'x', got %q", r.MustGet())
	}
}

func TestMapWith(t *testing.T) {
	upper := MapWith(StringCodec,
		func(s string) (string, error) { return strings.ToUpper(s), nil },
		func(s string) (string, error) { return strings.ToLower(s), nil })
	r := upper.Decode(FromString("abc"))
	if r.IsErr() || r.MustGet() != "ABC" {
		t.Fatalf("got %v, %v", r, r.Err())
	}

	rejecting := MapWith(LongCodec,
		func(i int64) (int64, error) {
			if i < 0 {
				return 0, fmt.Errorf("negative")
			}
			return i, nil
		},
		func(i int64) (int64, error) { return i, nil })
	if r := rejecting.Decode(FromLong(-1)); !r.IsErr() {
		t.Error("expected mapping rejection")
	}
}

func TestMapWith_RecoversPanic(t *testing.T) {
	panicky := MapWith(LongCodec,
		func(i int64) (int64, error) { panic("boom") },
		func(i int64) (int64, error) { return i, nil })
	r := panicky.Decode(FromLong(1))
	if !r.IsErr() {
		t.Fatal("expected failure from panic")
	}
	if !strings.Contains(r.Err().Error(), "mapping function panicked") {
		t.Errorf("unexpected error %v", r.Err())
	}
}

func TestArrayOf_FailFast(t *testing.T) {
	arr := FromSlice([]*Value{
		FromLong(1), FromLong(2), FromString("oops"), FromLong(4),
	})
	r := ArrayOf(LongCodec).Decode(arr)
	if !r.IsErr() {
		t.Fatal("expected failure")
	}
	if !strings.Contains(r.Err().Error(), "element 2") {
		t.Errorf("error should name the failing index: %v", r.Err())
	}

	ok := ArrayOf(LongCodec).Decode(FromSlice([]*Value{FromLong(1), FromLong(2)}))
	if ok.IsErr() {
		t.Fatalf("unexpected failure: %v", ok.Err())
	}
	if got := ok.MustGet(); len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Errorf("got %v", got)
	}
}

func TestMapOf(t *testing.T) {
	obj := ObjectOf("a", FromLong(1), "b", FromString("nope"))
	r := MapOf(LongCodec).Decode(obj)
	if !r.IsErr() {
		t.Fatal("expected failure")
	}
	if !strings.Contains(r.Err().Error(), `field "b"`) {
		t.Errorf("error should name the failing key: %v", r.Err())
	}

	ok := MapOf(LongCodec).Decode(ObjectOf("a", FromLong(1)))
	if ok.IsErr() || ok.MustGet()["a"] != 1 {
		t.Errorf("got %v, %v", ok, ok.Err())
	}
}

func TestCoerce(t *testing.T) {
	r := Coerce(FromLong(9), LongCodec)
	if r.IsErr() || r.MustGet() != 9 {
		t.Errorf("got %v, %v", r, r.Err())
	}
}
