// Package faunadb ties the value model, the reflective mapper and the
// wire format together behind a small encoding/json-shaped surface.
//
// Marshal reflects a Go value into a value tree and serializes it;
// Unmarshal parses wire bytes and reflects them back into a Go value.
// Code that wants to work with dynamic documents directly should use
// the values, structmap and wire packages instead.
package faunadb

import (
	"github.com/ardmn/faunadb-go/structmap"
	"github.com/ardmn/faunadb-go/values"
	"github.com/ardmn/faunadb-go/wire"
)

// Marshal serializes any Go value to wire JSON.
func Marshal(v any) ([]byte, error) {
	node, err := structmap.Encode(v)
	if err != nil {
		return nil, err
	}
	return wire.ToJSON(node)
}

// Unmarshal parses wire JSON into out, which must be a non-nil
// pointer.
func Unmarshal(data []byte, out any) error {
	node, err := wire.FromJSON(data)
	if err != nil {
		return err
	}
	return structmap.Decode(node, out)
}

// Parse parses wire JSON into a dynamic value tree.
func Parse(data []byte) (*values.Value, error) {
	return wire.FromJSON(data)
}

// Serialize writes a value tree back out as wire JSON.
func Serialize(v *values.Value) ([]byte, error) {
	return wire.ToJSON(v)
}
