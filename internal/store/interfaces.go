package store

import (
	"context"
	"time"

	"github.com/MKhiriev/zonesync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository persists and retrieves user accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByLogin(ctx context.Context, user models.User) (models.User, error)
}

// RecordRepository applies commit batches against the records table and
// serves single-record lookups.
type RecordRepository interface {
	// Commit applies a batch of saves and deletes in one transaction with
	// optimistic change-tag checks. In non-atomic mode one item's failure
	// never rolls back its siblings; in atomic mode any failure aborts the
	// transaction and applied items report rejected.
	Commit(ctx context.Context, req models.CommitRequest, quotaBytes int64) (models.CommitResponse, error)

	// GetRecord returns the current server copy of one record, including
	// soft-deleted rows.
	GetRecord(ctx context.Context, userID int64, zone, recordID string) (models.Record, error)
}

// ZoneRepository manages named record partitions.
type ZoneRepository interface {
	CreateZone(ctx context.Context, zone models.Zone) (models.Zone, error)
	ListZones(ctx context.Context, userID int64) ([]models.Zone, error)

	// DeleteZone removes the zone and every record inside it, and writes a
	// zone tombstone into the change log so connected clients purge their
	// local copies on the next fetch.
	DeleteZone(ctx context.Context, userID int64, name string) error
}

// ChangeLogRepository reads and maintains the per-zone change feed.
type ChangeLogRepository interface {
	// ListChanges returns feed entries with seq > sinceSeq in feed order,
	// joined with current record bodies. more is true when another page is
	// immediately available; lastSeq is the cursor for the next page.
	ListChanges(ctx context.Context, userID int64, zone string, sinceSeq int64, limit int) (changes []models.RecordChange, lastSeq int64, more bool, err error)

	// ZoneDeletedSince reports whether a zone tombstone was logged after
	// sinceSeq for the given user and zone.
	ZoneDeletedSince(ctx context.Context, userID int64, zone string, sinceSeq int64) (bool, error)

	// Horizon returns the highest pruned change-log sequence. Tokens at or
	// below the horizon are expired.
	Horizon(ctx context.Context) (int64, error)

	// Prune deletes change-log entries older than the retention boundary
	// and advances the horizon. Returns the number of removed entries.
	Prune(ctx context.Context, olderThan time.Time) (int64, error)
}

// ErrorClassificator decides whether a failed database operation is worth
// retrying. Implementations inspect driver-specific error codes.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
