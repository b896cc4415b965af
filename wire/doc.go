// Package wire converts value trees to and from serialized byte
// formats.
//
// The JSON form maps primitives to their native JSON counterparts and
// wraps everything else in single-key objects: {"@bytes": b64},
// {"@date": "2006-01-02"}, {"@ts": rfc3339}, {"@ref": {...}},
// {"@set": {...}}. Plain object values are wrapped as
// {"object": {...}} on encode so that user data containing "@"-keys
// never collides with the variant wrappers; on decode both wrapped and
// plain objects are accepted. Member order survives a round trip.
//
// The YAML form uses the same wrapper shapes, so a document can be
// read in one format and written in the other. ApplyPatch and
// ApplyMergePatch edit a value tree through its JSON form.
package wire
