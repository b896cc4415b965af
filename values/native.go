package values

// Native converts a value tree to plain Go data: nil, bool, int64,
// float64, string, []byte, Date, time.Time, Ref, []any and
// map[string]any. Object key order is lost. SetRef parameters convert
// like objects.
//
// The result is useful for handing documents to expression engines and
// templating; it is not the wire form.
func (v *Value) Native() any {
	switch v.kind {
	case NullKind:
		return nil
	case BoolKind:
		return v.boolv
	case LongKind:
		return v.int64v
	case DoubleKind:
		return v.f64v
	case StringKind:
		return v.strv
	case BytesKind:
		return v.BytesVal()
	case DateKind:
		return v.datev
	case TimeKind:
		return v.timev
	case RefKind:
		return v.refv
	case ArrayKind:
		res := make([]any, len(v.vals))
		for i, e := range v.vals {
			res[i] = e.Native()
		}
		return res
	case ObjectKind, SetRefKind:
		res := make(map[string]any, len(v.keys))
		for i, k := range v.keys {
			res[k] = v.vals[i].Native()
		}
		return res
	}
	return nil
}
