package store

import (
	"context"

	"github.com/MKhiriev/zonesync/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_store_mock.go -package=mock

// LocalRecordRepository is the SQLite-backed local mirror of the user's
// records. Every local mutation and its pending-queue entry are written in
// one transaction, so the mutation ledger can never disagree with the data
// it describes.
type LocalRecordRepository interface {
	// SaveRecord upserts the record locally and enqueues a save intent
	// carrying the change tag the record held before this write.
	SaveRecord(ctx context.Context, record models.Record) (models.Record, error)

	GetRecord(ctx context.Context, zone, recordID string) (models.Record, error)
	ListRecords(ctx context.Context, zone string) ([]models.Record, error)
	ListStates(ctx context.Context, zone string) ([]models.RecordState, error)

	// DeleteRecord marks the record deleted locally and enqueues a delete
	// intent. The row is kept until the server's deletion marker arrives
	// through the change feed.
	DeleteRecord(ctx context.Context, zone, recordID string) error

	// ApplyChanges applies one fetched page and persists its token in the
	// same transaction: an interrupted apply never leaves a token pointing
	// past changes the mirror does not hold.
	ApplyChanges(ctx context.Context, zone string, changes []models.RecordChange, token models.ChangeToken) error

	// ConfirmSave stores the change tag the server assigned to an accepted
	// save, so the next local edit carries the right base tag.
	ConfirmSave(ctx context.Context, zone, recordID, changeTag string) error

	// PurgeZone drops the zone's records, pending entries and sync token
	// atomically. Used when the server reports the zone deleted or a token
	// expires and a full resync starts.
	PurgeZone(ctx context.Context, zone string) error
}

// PendingQueueRepository reads and maintains the durable local mutation
// ledger. Entries are inserted by [LocalRecordRepository] writes and removed
// only after the server confirms them.
type PendingQueueRepository interface {
	// ListPending returns up to limit entries for the zone in queue order,
	// skipping entries with id <= afterID. The cursor lets a drain walk past
	// entries that stay queued instead of re-reading the same head window.
	ListPending(ctx context.Context, zone string, afterID int64, limit int) ([]models.PendingChange, error)

	// ListZonesWithPending returns the zones that currently have queued
	// mutations, for the sync job's zone walk.
	ListZonesWithPending(ctx context.Context) ([]string, error)

	Remove(ctx context.Context, ids ...int64) error
	BumpAttempts(ctx context.Context, ids ...int64) error

	// Restamp replaces an entry's base tag and payload after a conflict
	// was resolved, so the retry targets the server's current version.
	Restamp(ctx context.Context, id int64, baseTag string, payload *models.Record) error
}

// SyncStateRepository persists per-zone change tokens. Tokens are normally
// written by [LocalRecordRepository.ApplyChanges]; this interface serves
// reads and explicit resets.
type SyncStateRepository interface {
	GetToken(ctx context.Context, zone string) (models.ChangeToken, error)
	ResetToken(ctx context.Context, zone string) error
}

// SessionRepository persists the authenticated session between client runs.
type SessionRepository interface {
	SaveSession(ctx context.Context, session models.Session) error
	GetSession(ctx context.Context) (models.Session, error)
	ClearSession(ctx context.Context) error
}
