package wire

import (
	"encoding/base64"
	"fmt"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/ardmn/faunadb-go/values"
)

// ToYAML serializes a value tree to YAML. Variant wrappers use the
// same shapes as the JSON wire format, so the two formats interconvert.
func ToYAML(v *values.Value) ([]byte, error) {
	if v == nil {
		v = values.Null()
	}
	return yaml.Marshal(yamlRepr(v))
}

// FromYAML parses YAML into a value tree, preserving member order.
func FromYAML(data []byte) (*values.Value, error) {
	var doc any
	if err := yaml.UnmarshalWithOptions(data, &doc, yaml.UseOrderedMap()); err != nil {
		return nil, err
	}
	raw, err := rawFromYAML(doc)
	if err != nil {
		return nil, err
	}
	return interpret(raw)
}

func yamlRepr(v *values.Value) any {
	switch v.Kind() {
	case values.NullKind:
		return nil
	case values.BoolKind:
		return v.Bool()
	case values.LongKind:
		return v.Long()
	case values.DoubleKind:
		return v.Double()
	case values.StringKind:
		return v.Str()
	case values.BytesKind:
		return yaml.MapSlice{{Key: bytesKey, Value: base64.URLEncoding.EncodeToString(v.BytesVal())}}
	case values.DateKind:
		return yaml.MapSlice{{Key: dateKey, Value: v.DateVal().String()}}
	case values.TimeKind:
		return yaml.MapSlice{{Key: timeKey, Value: v.TimeVal().UTC().Format(time.RFC3339Nano)}}
	case values.RefKind:
		ref := v.RefVal()
		inner := yaml.MapSlice{}
		if ref.Collection != "" {
			inner = append(inner, yaml.MapItem{Key: "collection", Value: ref.Collection})
		}
		inner = append(inner, yaml.MapItem{Key: "id", Value: ref.ID})
		return yaml.MapSlice{{Key: refKey, Value: inner}}
	case values.SetRefKind:
		return yaml.MapSlice{{Key: setRefKey, Value: membersRepr(v)}}
	case values.ObjectKind:
		return yaml.MapSlice{{Key: objectKey, Value: membersRepr(v)}}
	case values.ArrayKind:
		elems := v.Elems()
		res := make([]any, len(elems))
		for i, e := range elems {
			res[i] = yamlRepr(e)
		}
		return res
	}
	return nil
}

func membersRepr(v *values.Value) yaml.MapSlice {
	res := make(yaml.MapSlice, 0, v.Len())
	for _, k := range v.Keys() {
		member, _ := v.Lookup(k)
		res = append(res, yaml.MapItem{Key: k, Value: yamlRepr(member)})
	}
	return res
}

func rawFromYAML(doc any) (rawNode, error) {
	switch t := doc.(type) {
	case nil:
		return scalarNode(values.Null()), nil
	case bool:
		return scalarNode(values.FromBool(t)), nil
	case int:
		return scalarNode(values.FromLong(int64(t))), nil
	case int64:
		return scalarNode(values.FromLong(t)), nil
	case uint64:
		if t > 1<<63-1 {
			return rawNode{}, fmt.Errorf("integer %d overflows int64", t)
		}
		return scalarNode(values.FromLong(int64(t))), nil
	case float64:
		return scalarNode(values.FromDouble(t)), nil
	case string:
		return scalarNode(values.FromString(t)), nil
	case []any:
		res := rawNode{kind: rawArray, elems: make([]rawNode, len(t))}
		for i, e := range t {
			n, err := rawFromYAML(e)
			if err != nil {
				return rawNode{}, err
			}
			res.elems[i] = n
		}
		return res, nil
	case yaml.MapSlice:
		res := rawNode{kind: rawObject, members: make([]rawMember, 0, len(t))}
		for _, item := range t {
			key, ok := item.Key.(string)
			if !ok {
				return rawNode{}, fmt.Errorf("mapping key is not a string: %v", item.Key)
			}
			member, err := rawFromYAML(item.Value)
			if err != nil {
				return rawNode{}, err
			}
			res.members = append(res.members, rawMember{key: key, val: member})
		}
		return res, nil
	}
	return rawNode{}, fmt.Errorf("cannot interpret YAML node of type %T", doc)
}
