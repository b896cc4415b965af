package structmap

import (
	"reflect"
	"testing"
)

func TestParseStructTag(t *testing.T) {
	tests := []struct {
		name    string
		tag     string
		want    map[string]string
		wantErr bool
	}{
		{
			name: "single pair",
			tag:  "field=first_name",
			want: map[string]string{"field": "first_name"},
		},
		{
			name: "pair and flag",
			tag:  "field=x,optional",
			want: map[string]string{"field": "x", "optional": ""},
		},
		{
			name: "spaces tolerated",
			tag:  " field = x , required ",
			want: map[string]string{"field": "x", "required": ""},
		},
		{
			name: "empty segments skipped",
			tag:  ",,omit,",
			want: map[string]string{"omit": ""},
		},
		{
			name:    "empty key",
			tag:     "=x",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseStructTag(tt.tag)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStructFields(t *testing.T) {
	type embedded struct {
		Shared string `fauna:"field=shared"`
	}
	type rec struct {
		embedded
		Name   string `fauna:"field=name"`
		Hidden string `fauna:"omit"`
		Dashed string `fauna:"-"`
		hidden string
		Plain  int
	}
	_ = rec{hidden: ""}

	fields, err := structFields(reflect.TypeOf(rec{}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var wires []string
	for _, f := range fields {
		wires = append(wires, f.wireName)
	}
	want := []string{"shared", "name", "Plain"}
	if !reflect.DeepEqual(wires, want) {
		t.Errorf("wire names = %v, want %v", wires, want)
	}
}

func TestStructFields_Conflict(t *testing.T) {
	type a struct {
		X string `fauna:"field=dup"`
	}
	type rec struct {
		a
		Y string `fauna:"field=dup"`
	}
	if _, err := structFields(reflect.TypeOf(rec{})); err == nil {
		t.Error("expected conflict error")
	}
}

func TestStructFields_RequiredAndOptionalConflict(t *testing.T) {
	type rec struct {
		X string `fauna:"required,optional"`
	}
	if _, err := structFields(reflect.TypeOf(rec{})); err == nil {
		t.Error("expected error for contradictory flags")
	}
}

func TestStructFields_DefaultOptionality(t *testing.T) {
	type rec struct {
		Scalar int
		Slice  []int
		Ptr    *int
		M      map[string]int
	}
	fields, err := structFields(reflect.TypeOf(rec{}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	byName := map[string]*fieldInfo{}
	for _, f := range fields {
		byName[f.name] = f
	}
	if byName["Scalar"].optional {
		t.Error("scalar fields default to required")
	}
	for _, n := range []string{"Slice", "Ptr", "M"} {
		if !byName[n].optional {
			t.Errorf("%s should default to optional", n)
		}
	}
}
