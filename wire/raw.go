package wire

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/ardmn/faunadb-go/values"
)

// rawNode is a parsed but uninterpreted document node. Wrapper
// recognition runs top down over raw nodes, so an "object" wrapper
// shields its payload's member keys from recognition while member
// values are still interpreted normally.
type rawKind int

const (
	rawScalar rawKind = iota
	rawArray
	rawObject
)

type rawNode struct {
	kind    rawKind
	scalar  *values.Value
	elems   []rawNode
	members []rawMember
}

type rawMember struct {
	key string
	val rawNode
}

func scalarNode(v *values.Value) rawNode {
	return rawNode{kind: rawScalar, scalar: v}
}

func interpret(n rawNode) (*values.Value, error) {
	switch n.kind {
	case rawScalar:
		return n.scalar, nil
	case rawArray:
		elems := make([]*values.Value, len(n.elems))
		for i, e := range n.elems {
			v, err := interpret(e)
			if err != nil {
				return nil, err
			}
			elems[i] = v
		}
		return values.FromSlice(elems), nil
	default:
		return interpretObject(n.members)
	}
}

// interpretObject recognizes the single-key variant wrappers and turns
// anything else into a plain object value with key order preserved.
func interpretObject(members []rawMember) (*values.Value, error) {
	if len(members) == 1 {
		key, val := members[0].key, members[0].val
		switch key {
		case bytesKey:
			s, err := wrapperString(key, val)
			if err != nil {
				return nil, err
			}
			b, err := base64.URLEncoding.DecodeString(s)
			if err != nil {
				return nil, fmt.Errorf("malformed %s wrapper: %w", key, err)
			}
			return values.FromBytes(b), nil
		case dateKey:
			s, err := wrapperString(key, val)
			if err != nil {
				return nil, err
			}
			d, err := values.ParseDate(s)
			if err != nil {
				return nil, fmt.Errorf("malformed %s wrapper: %w", key, err)
			}
			return values.FromDate(d), nil
		case timeKey:
			s, err := wrapperString(key, val)
			if err != nil {
				return nil, err
			}
			ts, err := time.Parse(time.RFC3339Nano, s)
			if err != nil {
				return nil, fmt.Errorf("malformed %s wrapper: %w", key, err)
			}
			return values.FromTime(ts), nil
		case refKey:
			if val.kind != rawObject {
				return nil, malformed(key)
			}
			return interpretRef(val.members)
		case setRefKey:
			if val.kind != rawObject {
				return nil, malformed(key)
			}
			params := make(map[string]*values.Value, len(val.members))
			for _, m := range val.members {
				v, err := interpret(m.val)
				if err != nil {
					return nil, err
				}
				params[m.key] = v
			}
			return values.FromSetRef(params), nil
		case objectKey:
			if val.kind != rawObject {
				return nil, malformed(key)
			}
			return plainObject(val.members)
		default:
			if strings.HasPrefix(key, "@") {
				return nil, &UnknownShapeError{Key: key}
			}
		}
	}
	return plainObject(members)
}

func plainObject(members []rawMember) (*values.Value, error) {
	kvs := make([]values.KeyVal, 0, len(members))
	for _, m := range members {
		v, err := interpret(m.val)
		if err != nil {
			return nil, err
		}
		kvs = append(kvs, values.KeyVal{Key: m.key, Val: v})
	}
	return values.FromKeyVals(kvs), nil
}

func interpretRef(members []rawMember) (*values.Value, error) {
	var ref values.Ref
	var hasID bool
	for _, m := range members {
		switch m.key {
		case "id":
			s, err := wrapperString(refKey, m.val)
			if err != nil {
				return nil, err
			}
			ref.ID = s
			hasID = true
		case "collection":
			s, err := wrapperString(refKey, m.val)
			if err != nil {
				return nil, err
			}
			ref.Collection = s
		}
	}
	if !hasID {
		return nil, fmt.Errorf("malformed %s wrapper: missing id", refKey)
	}
	return values.FromRef(ref), nil
}

func wrapperString(key string, n rawNode) (string, error) {
	if n.kind != rawScalar || n.scalar.Kind() != values.StringKind {
		return "", malformed(key)
	}
	return n.scalar.Str(), nil
}

func malformed(key string) error {
	return fmt.Errorf("malformed %s wrapper: unexpected payload", key)
}
