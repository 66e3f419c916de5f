// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// ChangeOp is the kind of mutation carried by a pending change or a change
// feed entry.
type ChangeOp string

const (
	OpSave   ChangeOp = "save"
	OpDelete ChangeOp = "delete"
)

// ChangeToken is an opaque cursor into a zone's change feed. Clients persist
// it between fetches and treat it as a black box; only the server can decode
// it. The empty token means "from the beginning of the feed".
type ChangeToken string

// IsZero reports whether the token is the initial (empty) cursor.
func (t ChangeToken) IsZero() bool { return t == "" }

// PendingChange is one entry of the durable local mutation ledger: an intent
// to save or delete a record that the server has not confirmed yet.
//
// Entries are inserted in the same transaction as the local write they
// describe and removed strictly after the server confirms the mutation —
// never optimistically. Replaying a confirmed entry is a no-op by design:
// the server signals "unknown item" for repeated deletes and "already
// applied" for saves whose content hash matches the stored record.
type PendingChange struct {
	// ID is the local queue sequence number (SQLite AUTOINCREMENT).
	ID int64 `json:"id"`

	// Zone and RecordID identify the target record.
	Zone     string `json:"zone"`
	RecordID string `json:"record_id"`

	// Op is the intended mutation.
	Op ChangeOp `json:"op"`

	// Payload is the full record snapshot for saves; nil for deletes.
	Payload *Record `json:"payload,omitempty"`

	// BaseTag is the change tag the record carried when the mutation was
	// made locally. The server compares it against the current tag to
	// detect conflicting concurrent writes.
	BaseTag string `json:"base_tag"`

	// QueuedAt is when the entry was enqueued.
	QueuedAt time.Time `json:"queued_at"`

	// Attempts counts transmissions of this entry, for diagnostics and
	// backoff decisions.
	Attempts int `json:"attempts"`
}

// RecordChange is one entry of the server's change feed: either a live
// record body or a deletion marker.
type RecordChange struct {
	// RecordID identifies the changed record.
	RecordID string `json:"record_id"`

	// Deleted is true for deletion markers; Record is nil in that case.
	Deleted bool `json:"deleted"`

	// Record is the current record body for live changes.
	Record *Record `json:"record,omitempty"`
}
