// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/zonesync/models"
)

// Conflict describes a rejected pending change: the server's current tag did
// not match the base tag the local mutation was made against.
type Conflict struct {
	// Zone and Op locate the conflicting intent.
	Zone string
	Op   models.ChangeOp

	// Local is the record the client tried to write; nil for deletes.
	Local *models.Record

	// Remote is the server's current copy, as attached to the conflict
	// disposition. May carry Deleted when the server removed the record.
	Remote *models.Record
}

// Resolution is the resolver's verdict on a conflict.
//
// AcceptRemote means the server copy wins: the engine writes it into the
// local mirror and drops the pending intent. Otherwise Record carries the
// payload to retry with; the engine restamps the intent with the server's
// current tag before the next send, so one conflict cannot recur against the
// same server version.
type Resolution struct {
	AcceptRemote bool
	Record       *models.Record
}

// ConflictResolver decides the outcome of concurrent writes to one record.
// Implementations must be pure with respect to storage: the engine applies
// the resolution.
type ConflictResolver interface {
	Resolve(ctx context.Context, conflict Conflict) (Resolution, error)
}

// Resolution policy names accepted by NewConflictResolver.
const (
	PolicyServerWins  = "server_wins"
	PolicyClientWins  = "client_wins"
	PolicyFieldMerge  = "field_merge"
	PolicyCounterWins = "counter_wins"
)

// counterField is the numeric edit counter compared by the counter-wins
// policy.
const counterField = "edit_count"

// NewConflictResolver returns the resolver for the named policy.
// Unknown names fall back to server-wins, the safe default.
func NewConflictResolver(policy string) ConflictResolver {
	switch policy {
	case PolicyClientWins:
		return clientWinsResolver{}
	case PolicyFieldMerge:
		return fieldMergeResolver{}
	case PolicyCounterWins:
		return counterWinsResolver{field: counterField}
	default:
		return serverWinsResolver{}
	}
}

// serverWinsResolver always accepts the server copy.
type serverWinsResolver struct{}

func (serverWinsResolver) Resolve(ctx context.Context, conflict Conflict) (Resolution, error) {
	return Resolution{AcceptRemote: true}, nil
}

// clientWinsResolver keeps the local intent. Saves retry with the local
// fields; deletes retry the deletion.
type clientWinsResolver struct{}

func (clientWinsResolver) Resolve(ctx context.Context, conflict Conflict) (Resolution, error) {
	return Resolution{Record: conflict.Local}, nil
}

// fieldMergeResolver takes the remote record as the base and overlays every
// local field on top, so concurrent edits to disjoint fields both survive.
// A local delete has no fields to keep and degrades to server-wins; a save
// over a server-side deletion keeps the local copy.
type fieldMergeResolver struct{}

func (fieldMergeResolver) Resolve(ctx context.Context, conflict Conflict) (Resolution, error) {
	if conflict.Local == nil {
		return Resolution{AcceptRemote: true}, nil
	}
	if conflict.Remote == nil || conflict.Remote.Deleted {
		return Resolution{Record: conflict.Local}, nil
	}

	merged := conflict.Remote.Clone()
	if merged.Fields == nil {
		merged.Fields = models.FieldMap{}
	}
	for name, value := range conflict.Local.Fields {
		merged.Fields[name] = value
	}
	merged.Type = conflict.Local.Type
	merged.Stamp()

	return Resolution{Record: &merged}, nil
}

// counterWinsResolver compares a numeric edit counter: the copy with the
// higher count wins, the remote copy on a tie.
type counterWinsResolver struct {
	field string
}

func (r counterWinsResolver) Resolve(ctx context.Context, conflict Conflict) (Resolution, error) {
	if conflict.Local == nil {
		return Resolution{AcceptRemote: true}, nil
	}
	if conflict.Remote == nil || conflict.Remote.Deleted {
		return Resolution{Record: conflict.Local}, nil
	}

	if counterValue(conflict.Local, r.field) > counterValue(conflict.Remote, r.field) {
		return Resolution{Record: conflict.Local}, nil
	}
	return Resolution{AcceptRemote: true}, nil
}

func counterValue(record *models.Record, field string) int64 {
	value, ok := record.Fields[field]
	if !ok || value.Kind != models.KindInt64 {
		return 0
	}
	return value.Int
}
