package values

import (
	"testing"
	"time"
)

func TestConstructors_BasicKinds(t *testing.T) {
	tests := []struct {
		name     string
		value    *Value
		wantKind Kind
		check    func(*testing.T, *Value)
	}{
		{
			name:     "null",
			value:    Null(),
			wantKind: NullKind,
			check: func(t *testing.T, v *Value) {
				if !v.IsNull() {
					t.Errorf("expected IsNull")
				}
			},
		},
		{
			name:     "bool",
			value:    FromBool(true),
			wantKind: BoolKind,
			check: func(t *testing.T, v *Value) {
				if !v.Bool() {
					t.Errorf("expected true")
				}
			},
		},
		{
			name:     "long",
			value:    FromLong(42),
			wantKind: LongKind,
			check: func(t *testing.T, v *Value) {
				if v.Long() != 42 {
					t.Errorf("expected 42, got %d", v.Long())
				}
			},
		},
		{
			name:     "double",
			value:    FromDouble(3.14),
			wantKind: DoubleKind,
			check: func(t *testing.T, v *Value) {
				if v.Double() != 3.14 {
					t.Errorf("expected 3.14, got %v", v.Double())
				}
			},
		},
		{
			name:     "string",
			value:    FromString("hello"),
			wantKind: StringKind,
			check: func(t *testing.T, v *Value) {
				if v.Str() != "hello" {
					t.Errorf("expected 'hello', got %q", v.Str())
				}
			},
		},
		{
			name:     "date",
			value:    FromDate(Date{Year: 2024, Month: time.March, Day: 5}),
			wantKind: DateKind,
			check: func(t *testing.T, v *Value) {
				if v.DateVal().Day != 5 {
					t.Errorf("expected day 5, got %d", v.DateVal().Day)
				}
			},
		},
		{
			name:     "ref",
			value:    FromRef(Ref{Collection: "users", ID: "42"}),
			wantKind: RefKind,
			check: func(t *testing.T, v *Value) {
				if v.RefVal().ID != "42" {
					t.Errorf("expected id 42, got %q", v.RefVal().ID)
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value.Kind() != tt.wantKind {
				t.Fatalf("expected kind %s, got %s", tt.wantKind, tt.value.Kind())
			}
			tt.check(t, tt.value)
		})
	}
}

func TestFromBytes_CopiesInput(t *testing.T) {
	src := []byte{1, 2, 3}
	v := FromBytes(src)
	src[0] = 99
	if got := v.BytesVal(); got[0] != 1 {
		t.Errorf("value aliased caller bytes: got %v", got)
	}
	// the accessor copy must not expose internals either
	out := v.BytesVal()
	out[1] = 99
	if got := v.BytesVal(); got[1] != 2 {
		t.Errorf("accessor leaked internal slice: got %v", got)
	}
}

func TestFromTime_NormalizesToUTC(t *testing.T) {
	loc := time.FixedZone("X", 3600)
	in := time.Date(2024, 3, 5, 10, 0, 0, 0, loc)
	v := FromTime(in)
	if v.TimeVal().Location() != time.UTC {
		t.Errorf("expected UTC, got %v", v.TimeVal().Location())
	}
	if !v.TimeVal().Equal(in) {
		t.Errorf("instant changed: %v vs %v", v.TimeVal(), in)
	}
}

func TestObjectValue_OrderAndLookup(t *testing.T) {
	v := ObjectOf(
		"b", FromLong(2),
		"a", FromLong(1),
		"c", FromLong(3),
	)
	wantKeys := []string{"b", "a", "c"}
	keys := v.Keys()
	if len(keys) != len(wantKeys) {
		t.Fatalf("expected %d keys, got %d", len(wantKeys), len(keys))
	}
	for i, k := range wantKeys {
		if keys[i] != k {
			t.Errorf("key %d: expected %q, got %q", i, k, keys[i])
		}
	}
	got, ok := v.Lookup("a")
	if !ok {
		t.Fatal("expected to find key a")
	}
	if got.Long() != 1 {
		t.Errorf("expected 1, got %d", got.Long())
	}
	if _, ok := v.Lookup("zzz"); ok {
		t.Error("expected lookup miss for zzz")
	}
}

func TestFromKeyVals_DuplicateOverwritesInPlace(t *testing.T) {
	v := FromKeyVals([]KeyVal{
		{Key: "a", Val: FromLong(1)},
		{Key: "b", Val: FromLong(2)},
		{Key: "a", Val: FromLong(9)},
	})
	if v.Len() != 2 {
		t.Fatalf("expected 2 members, got %d", v.Len())
	}
	if keys := v.Keys(); keys[0] != "a" || keys[1] != "b" {
		t.Errorf("expected keys [a b], got %v", keys)
	}
	a, _ := v.Lookup("a")
	if a.Long() != 9 {
		t.Errorf("expected later duplicate to win, got %d", a.Long())
	}
}

func TestFromMap_SortsKeys(t *testing.T) {
	v := FromMap(map[string]*Value{
		"z": FromLong(1),
		"a": FromLong(2),
		"m": FromLong(3),
	})
	keys := v.Keys()
	want := []string{"a", "m", "z"}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("expected sorted keys %v, got %v", want, keys)
		}
	}
}

func TestArrayValue_IndexAndElems(t *testing.T) {
	v := FromSlice([]*Value{FromLong(1), FromString("x")})
	if v.Len() != 2 {
		t.Fatalf("expected len 2, got %d", v.Len())
	}
	e, ok := v.Index(1)
	if !ok || e.Str() != "x" {
		t.Errorf("expected x at index 1")
	}
	if _, ok := v.Index(2); ok {
		t.Error("expected miss at index 2")
	}
	if _, ok := v.Index(-1); ok {
		t.Error("expected miss at index -1")
	}
}

func TestObjectOf_PanicsOnMalformedArgs(t *testing.T) {
	tests := []struct {
		name string
		args []any
	}{
		{name: "odd args", args: []any{"a"}},
		{name: "non-string key", args: []any{1, FromLong(1)}},
		{name: "non-value val", args: []any{"a", 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			ObjectOf(tt.args...)
		})
	}
}

func TestNative(t *testing.T) {
	v := ObjectOf(
		"name", FromString("n"),
		"tags", FromSlice([]*Value{FromLong(1), FromDouble(2.5)}),
		"gone", Null(),
	)
	got := v.Native().(map[string]any)
	if got["name"] != "n" {
		t.Errorf("expected n, got %v", got["name"])
	}
	tags := got["tags"].([]any)
	if tags[0] != int64(1) || tags[1] != 2.5 {
		t.Errorf("unexpected tags %v", tags)
	}
	if got["gone"] != nil {
		t.Errorf("expected nil for null member")
	}
}
