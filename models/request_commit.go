// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// RecordSave is one save entry of a commit batch.
type RecordSave struct {
	// Record is the full record body to store. RecordID, Zone, Type and
	// Fields are required; Hash is recomputed server-side.
	Record Record `json:"record"`

	// BaseTag is the change tag the record was last read with, or empty
	// for a record the server has never seen.
	BaseTag string `json:"base_tag"`
}

// RecordDelete is one delete entry of a commit batch.
type RecordDelete struct {
	// RecordID identifies the record to delete.
	RecordID string `json:"record_id"`

	// BaseTag is the change tag the record was last read with.
	BaseTag string `json:"base_tag"`
}

// CommitRequest is a batch of record mutations sent by the client.
// The server resolves each item independently unless Atomic is set.
type CommitRequest struct {
	// UserID is the owner of the batch. Populated server-side from the
	// authenticated identity; client-supplied values are ignored.
	UserID int64 `json:"user_id,omitempty"`

	// Zone is the partition every item in the batch belongs to.
	Zone string `json:"zone"`

	// Atomic requests all-or-nothing semantics: any item failure aborts
	// the whole batch and every item reports its disposition.
	Atomic bool `json:"atomic,omitempty"`

	// Saves and Deletes carry the batch items. Their combined count must
	// not exceed the server's batch limit.
	Saves   []RecordSave   `json:"saves,omitempty"`
	Deletes []RecordDelete `json:"deletes,omitempty"`

	// Hash of the serialized items — transport integrity check.
	Hash string `json:"hash,omitempty"`

	// Length is the total number of items in the batch.
	Length int `json:"length"`
}

// Items returns the combined batch size.
func (r CommitRequest) Items() int {
	return len(r.Saves) + len(r.Deletes)
}
