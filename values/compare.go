package values

import (
	"bytes"
	"cmp"
	"maps"
	"slices"
	"strings"
)

// Equal reports deep structural equality of two values.
func Equal(a, b *Value) bool {
	return Compare(a, b) == 0
}

// Compare returns an integer comparing two values.
// The result will be 0 if a==b, -1 if a < b, and +1 if a > b.
// Values of different kinds order by kind rank.
func Compare(a, b *Value) int {
	if a == b {
		return 0
	}
	// nil is the null value
	if a == nil {
		a = nullValue
	}
	if b == nil {
		b = nullValue
	}

	rankA := rank(a.kind)
	rankB := rank(b.kind)
	if rankA != rankB {
		return cmp.Compare(rankA, rankB)
	}

	switch a.kind {
	case NullKind:
		return 0
	case BoolKind:
		if a.boolv == b.boolv {
			return 0
		}
		if !a.boolv {
			return -1
		}
		return 1
	case LongKind:
		return cmp.Compare(a.int64v, b.int64v)
	case DoubleKind:
		return cmp.Compare(a.f64v, b.f64v)
	case StringKind:
		return strings.Compare(a.strv, b.strv)
	case BytesKind:
		return bytes.Compare(a.bytesv, b.bytesv)
	case DateKind:
		return a.datev.Time().Compare(b.datev.Time())
	case TimeKind:
		return a.timev.Compare(b.timev)
	case RefKind:
		if c := strings.Compare(a.refv.Collection, b.refv.Collection); c != 0 {
			return c
		}
		return strings.Compare(a.refv.ID, b.refv.ID)
	case ArrayKind:
		return compareElems(a.vals, b.vals)
	case ObjectKind, SetRefKind:
		return compareMembers(a, b)
	}
	return 0
}

// rank returns the sorting rank of a kind.
func rank(k Kind) int {
	switch k {
	case NullKind:
		return 0
	case BoolKind:
		return 1
	case LongKind:
		return 2
	case DoubleKind:
		return 3
	case StringKind:
		return 4
	case BytesKind:
		return 5
	case DateKind:
		return 6
	case TimeKind:
		return 7
	case RefKind:
		return 8
	case SetRefKind:
		return 9
	case ArrayKind:
		return 10
	case ObjectKind:
		return 11
	}
	return 100
}

func compareElems(a, b []*Value) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if c := Compare(a[i], b[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(a), len(b))
}

// compareMembers compares objects as key-sorted member sequences, so
// member insertion order does not affect equality.
func compareMembers(a, b *Value) int {
	am, bm := a.memberMap(), b.memberMap()
	akeys := sortedKeys(am)
	bkeys := sortedKeys(bm)
	n := min(len(akeys), len(bkeys))
	for i := 0; i < n; i++ {
		if c := strings.Compare(akeys[i], bkeys[i]); c != 0 {
			return c
		}
		if c := Compare(am[akeys[i]], bm[bkeys[i]]); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(akeys), len(bkeys))
}

func (v *Value) memberMap() map[string]*Value {
	res := make(map[string]*Value, len(v.keys))
	for i, k := range v.keys {
		res[k] = v.vals[i]
	}
	return res
}

func sortedKeys(m map[string]*Value) []string {
	return slices.Sorted(maps.Keys(m))
}
