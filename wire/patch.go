package wire

import (
	jsonpatch "github.com/evanphx/json-patch/v5"

	"github.com/ardmn/faunadb-go/values"
)

// ApplyPatch applies an RFC 6902 JSON Patch document to a value tree.
// Both sides round-trip through the wire format, so variant wrappers
// are addressable by patch paths ("/@ref/id" and so on).
func ApplyPatch(v *values.Value, patch []byte) (*values.Value, error) {
	ops, err := jsonpatch.DecodePatch(patch)
	if err != nil {
		return nil, err
	}
	doc, err := ToJSON(v)
	if err != nil {
		return nil, err
	}
	out, err := ops.Apply(doc)
	if err != nil {
		return nil, err
	}
	return FromJSON(out)
}

// ApplyMergePatch applies an RFC 7386 merge patch to a value tree.
func ApplyMergePatch(v *values.Value, patch []byte) (*values.Value, error) {
	doc, err := ToJSON(v)
	if err != nil {
		return nil, err
	}
	out, err := jsonpatch.MergePatch(doc, patch)
	if err != nil {
		return nil, err
	}
	return FromJSON(out)
}
