// Package normalize turns loosely-structured YouTube records into typed
// results, substituting fixed placeholder values for anything missing.
package normalize

import (
	"encoding/json"

	"github.com/tidwall/gjson"
)

// RawRecord is a read-only view over an arbitrary JSON object whose fields
// may be absent or of an unexpected type. Paths use gjson syntax
// ("author.name", "thumbnails.0.url").
type RawRecord struct {
	res gjson.Result
}

// Parse wraps raw JSON bytes. Invalid JSON yields an empty record.
func Parse(data []byte) RawRecord {
	if !gjson.ValidBytes(data) {
		return RawRecord{}
	}
	return RawRecord{res: gjson.ParseBytes(data)}
}

// FromValue wraps any JSON-marshalable value.
func FromValue(v any) RawRecord {
	data, err := json.Marshal(v)
	if err != nil {
		return RawRecord{}
	}
	return Parse(data)
}

// Get returns the sub-record at path; missing paths give an empty record.
func (r RawRecord) Get(path string) RawRecord {
	if !r.res.Exists() {
		return RawRecord{}
	}
	return RawRecord{res: r.res.Get(path)}
}

// Exists reports whether the record holds any value, null included.
func (r RawRecord) Exists() bool { return r.res.Exists() }

// IsObject reports whether the record is a JSON object.
func (r RawRecord) IsObject() bool { return r.res.IsObject() }

// IsArray reports whether the record is a JSON array.
func (r RawRecord) IsArray() bool { return r.res.IsArray() }

// IsString reports whether the record is a JSON string.
func (r RawRecord) IsString() bool { return r.res.Type == gjson.String }

// Value reports the record as a usable scalar: present, truthy, and either a
// string or a number. Numbers keep their JSON spelling so large IDs survive.
func (r RawRecord) Value() (string, bool) {
	switch r.res.Type {
	case gjson.String:
		if r.res.Str == "" {
			return "", false
		}
		return r.res.Str, true
	case gjson.Number:
		if r.res.Num == 0 {
			return "", false
		}
		return r.res.Raw, true
	default:
		return "", false
	}
}

// String looks up path and reports it as a usable scalar.
func (r RawRecord) String(path string) (string, bool) {
	return r.Get(path).Value()
}

// NestedString reads member from the value at path, checking that the value
// is an object first. When the value is itself a plain string and member is
// empty, that string is returned.
func (r RawRecord) NestedString(path, member string) (string, bool) {
	v := r.Get(path)
	switch {
	case v.IsObject() && member != "":
		return v.String(member)
	case v.IsString() && member == "":
		return v.Value()
	}
	return "", false
}

// Array returns the elements of the array at path, or nil if path is not an array.
func (r RawRecord) Array(path string) []RawRecord {
	v := r.Get(path)
	if !v.IsArray() {
		return nil
	}
	items := v.res.Array()
	out := make([]RawRecord, len(items))
	for i, it := range items {
		out[i] = RawRecord{res: it}
	}
	return out
}

// MarshalJSON emits the underlying JSON, or null for an empty record.
func (r RawRecord) MarshalJSON() ([]byte, error) {
	if !r.res.Exists() {
		return []byte("null"), nil
	}
	return []byte(r.res.Raw), nil
}

// stringOr returns the first usable value among paths, or def.
func (r RawRecord) stringOr(def string, paths ...string) string {
	for _, p := range paths {
		if s, ok := r.String(p); ok {
			return s
		}
	}
	return def
}
