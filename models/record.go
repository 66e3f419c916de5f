// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/hex"
	"time"

	"github.com/zeebo/blake3"
)

// Record is a single synchronized item: a uniquely identified, typed set of
// field values living inside one zone.
//
// The record body is owned by whichever side wrote it last; the server
// stamps every accepted mutation with a fresh opaque ChangeTag. A client
// mutation must carry the tag the record was last read with — a mismatch is
// a conflict and is never resolved silently.
type Record struct {
	// RecordID is the client-assigned unique identifier (UUID string).
	RecordID string `json:"record_id"`

	// Zone is the name of the partition the record belongs to.
	Zone string `json:"zone"`

	// UserID is the owner of the record. Assigned server-side from the
	// authenticated identity; clients never set it.
	UserID int64 `json:"user_id,omitempty"`

	// Type is a free-form record type label (e.g. "note", "bookmark").
	Type string `json:"type"`

	// Fields holds the typed field values of the record.
	Fields FieldMap `json:"fields"`

	// ChangeTag is the server-assigned opaque version marker. Empty until
	// the record has been accepted by the server at least once. Compared
	// only for equality; clients must not interpret its contents.
	ChangeTag string `json:"change_tag,omitempty"`

	// Hash is the blake3 content hash of the canonical Fields encoding.
	// Equal hashes mean equal content regardless of tags, which is how
	// replayed saves are recognized as already applied.
	Hash string `json:"hash,omitempty"`

	// Deleted marks a soft-deleted record. Deleted records keep their row
	// so other devices observe the deletion through the changes feed.
	Deleted bool `json:"deleted,omitempty"`

	// CreatedAt is the timestamp when the record was first stored.
	CreatedAt *time.Time `json:"created_at,omitempty"`

	// UpdatedAt is the timestamp of the last accepted mutation.
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// TableName returns the name of the database table
// associated with the Record model.
func (r *Record) TableName() string {
	return "records"
}

// ContentHash computes the blake3 hash of the record's canonical field
// encoding. The type label participates so that retyping a record counts
// as a content change.
func (r *Record) ContentHash() string {
	h := blake3.New()
	h.Write([]byte(r.Type))
	h.Write([]byte{0})
	h.Write(r.Fields.Canonical())
	return hex.EncodeToString(h.Sum(nil))
}

// Stamp recomputes and stores the content hash. Call after any field
// mutation and before persisting or transmitting the record.
func (r *Record) Stamp() {
	r.Hash = r.ContentHash()
}

// Clone returns a deep copy of the record.
func (r *Record) Clone() Record {
	out := *r
	out.Fields = r.Fields.Clone()
	if r.CreatedAt != nil {
		t := *r.CreatedAt
		out.CreatedAt = &t
	}
	if r.UpdatedAt != nil {
		t := *r.UpdatedAt
		out.UpdatedAt = &t
	}
	return out
}

// RecordState is the lightweight sync descriptor of a record: enough for
// change detection without moving field payloads.
type RecordState struct {
	RecordID  string     `json:"record_id"`
	Zone      string     `json:"zone"`
	Hash      string     `json:"hash"`
	ChangeTag string     `json:"change_tag"`
	Deleted   bool       `json:"deleted"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}
