// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

// FieldKind identifies the concrete type stored inside a [FieldValue].
type FieldKind string

const (
	KindString    FieldKind = "string"
	KindInt64     FieldKind = "int64"
	KindDouble    FieldKind = "double"
	KindBool      FieldKind = "bool"
	KindBytes     FieldKind = "bytes"
	KindTime      FieldKind = "time"
	KindReference FieldKind = "reference"
)

// ReferenceAction controls what happens to the referencing record when the
// record it points at is deleted.
type ReferenceAction string

const (
	// ReferenceActionNone leaves the referencing record untouched; the
	// reference simply becomes dangling.
	ReferenceActionNone ReferenceAction = "none"

	// ReferenceActionCascade deletes the referencing record together with
	// its target.
	ReferenceActionCascade ReferenceAction = "cascade"
)

// Reference points a record at another record in the same zone.
type Reference struct {
	// RecordID is the identifier of the target record.
	RecordID string `json:"record_id"`

	// Action defines the deletion behavior when the target is removed.
	Action ReferenceAction `json:"action"`
}

// FieldValue is a tagged union holding one typed record field value.
// Exactly one of the value accessors is meaningful, selected by Kind.
//
// The zero FieldValue is invalid; construct values with the NewField*
// helpers so the Kind tag is always consistent with the payload.
type FieldValue struct {
	Kind FieldKind `json:"kind"`

	Str   string     `json:"str,omitempty"`
	Int   int64      `json:"int,omitempty"`
	Dbl   float64    `json:"dbl,omitempty"`
	Bool  bool       `json:"bool,omitempty"`
	Bytes []byte     `json:"bytes,omitempty"`
	Time  *time.Time `json:"time,omitempty"`
	Ref   *Reference `json:"ref,omitempty"`
}

func NewFieldString(v string) FieldValue { return FieldValue{Kind: KindString, Str: v} }
func NewFieldInt64(v int64) FieldValue   { return FieldValue{Kind: KindInt64, Int: v} }
func NewFieldDouble(v float64) FieldValue {
	return FieldValue{Kind: KindDouble, Dbl: v}
}
func NewFieldBool(v bool) FieldValue    { return FieldValue{Kind: KindBool, Bool: v} }
func NewFieldBytes(v []byte) FieldValue { return FieldValue{Kind: KindBytes, Bytes: v} }
func NewFieldTime(v time.Time) FieldValue {
	t := v.UTC()
	return FieldValue{Kind: KindTime, Time: &t}
}
func NewFieldReference(target string, action ReferenceAction) FieldValue {
	return FieldValue{Kind: KindReference, Ref: &Reference{RecordID: target, Action: action}}
}

// Equal reports whether two field values carry the same kind and payload.
func (v FieldValue) Equal(o FieldValue) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindString:
		return v.Str == o.Str
	case KindInt64:
		return v.Int == o.Int
	case KindDouble:
		return v.Dbl == o.Dbl
	case KindBool:
		return v.Bool == o.Bool
	case KindBytes:
		return string(v.Bytes) == string(o.Bytes)
	case KindTime:
		if v.Time == nil || o.Time == nil {
			return v.Time == o.Time
		}
		return v.Time.Equal(*o.Time)
	case KindReference:
		if v.Ref == nil || o.Ref == nil {
			return v.Ref == o.Ref
		}
		return *v.Ref == *o.Ref
	}
	return false
}

// canonical returns a deterministic single-line representation of the value
// used for content hashing. The representation is stable across processes;
// it is never parsed back.
func (v FieldValue) canonical() string {
	switch v.Kind {
	case KindString:
		return "s:" + v.Str
	case KindInt64:
		return fmt.Sprintf("i:%d", v.Int)
	case KindDouble:
		return fmt.Sprintf("d:%g", v.Dbl)
	case KindBool:
		return fmt.Sprintf("b:%t", v.Bool)
	case KindBytes:
		return "y:" + base64.StdEncoding.EncodeToString(v.Bytes)
	case KindTime:
		if v.Time == nil {
			return "t:"
		}
		return "t:" + v.Time.UTC().Format(time.RFC3339Nano)
	case KindReference:
		if v.Ref == nil {
			return "r:"
		}
		return fmt.Sprintf("r:%s:%s", v.Ref.RecordID, v.Ref.Action)
	}
	return "?"
}

// FieldMap is the typed field set of a record, keyed by field name.
type FieldMap map[string]FieldValue

// Clone returns a deep copy of the map. Mutating the copy never affects the
// receiver, including Bytes payloads.
func (m FieldMap) Clone() FieldMap {
	if m == nil {
		return nil
	}
	out := make(FieldMap, len(m))
	for k, v := range m {
		if v.Bytes != nil {
			b := make([]byte, len(v.Bytes))
			copy(b, v.Bytes)
			v.Bytes = b
		}
		if v.Time != nil {
			t := *v.Time
			v.Time = &t
		}
		if v.Ref != nil {
			r := *v.Ref
			v.Ref = &r
		}
		out[k] = v
	}
	return out
}

// Canonical renders the map as a deterministic byte sequence: field names
// sorted lexicographically, each entry on the form name=value separated by
// newlines. Used as the content-hash input.
func (m FieldMap) Canonical() []byte {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	var out []byte
	for _, name := range names {
		out = append(out, name...)
		out = append(out, '=')
		out = append(out, m[name].canonical()...)
		out = append(out, '\n')
	}
	return out
}

// References returns every reference field value in the map.
func (m FieldMap) References() []Reference {
	var refs []Reference
	for _, v := range m {
		if v.Kind == KindReference && v.Ref != nil {
			refs = append(refs, *v.Ref)
		}
	}
	return refs
}

// Value implements driver-friendly serialization: the map is stored in the
// database as its JSON encoding.
func (m FieldMap) EncodeJSON() ([]byte, error) {
	payload, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("encode field map: %w", err)
	}
	return payload, nil
}

// DecodeFieldMap parses the JSON encoding produced by EncodeJSON.
func DecodeFieldMap(payload []byte) (FieldMap, error) {
	if len(payload) == 0 {
		return FieldMap{}, nil
	}
	var m FieldMap
	if err := json.Unmarshal(payload, &m); err != nil {
		return nil, fmt.Errorf("decode field map: %w", err)
	}
	return m, nil
}
