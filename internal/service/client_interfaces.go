package service

import (
	"context"
	"time"

	"github.com/MKhiriev/zonesync/models"
)

// ClientAuthService handles account registration and session lifecycle on
// the client side. A successful Register or Login stores the bearer token in
// the transport adapter and persists the session locally, so the next start
// can resume without credentials.
type ClientAuthService interface {
	// Register creates a new account on the server and opens a session.
	Register(ctx context.Context, user models.User) (models.Session, error)

	// Login authenticates against the server and opens a session.
	Login(ctx context.Context, user models.User) (models.Session, error)

	// RestoreSession loads the persisted session, if any, and arms the
	// transport with its token. Returns store.ErrNoSession when no session
	// was saved.
	RestoreSession(ctx context.Context) (models.Session, error)

	// Logout clears the persisted session and the transport token.
	Logout(ctx context.Context) error
}

// ClientRecordService is the client-facing record and zone API. Record
// mutations are written to the local mirror and the pending queue in one
// transaction; the sync engine transmits them later. Zone management talks
// to the server directly.
type ClientRecordService interface {
	// SaveRecord stores the record locally and queues it for upload.
	// A missing RecordID is assigned a fresh UUID; a missing Zone defaults
	// to the shared default zone.
	SaveRecord(ctx context.Context, record models.Record) (models.Record, error)

	GetRecord(ctx context.Context, zone, recordID string) (models.Record, error)
	ListRecords(ctx context.Context, zone string) ([]models.Record, error)

	// DeleteRecord marks the record deleted locally and queues the delete.
	DeleteRecord(ctx context.Context, zone, recordID string) error

	CreateZone(ctx context.Context, name string) (models.Zone, error)
	ListZones(ctx context.Context) ([]models.Zone, error)

	// DeleteZone removes the zone server-side and purges the local copy.
	DeleteZone(ctx context.Context, name string) error
}

// SyncStatus is a point-in-time snapshot of the engine, for display.
type SyncStatus struct {
	// Syncing reports whether any zone operation is currently in flight.
	Syncing bool

	// LastSync is when the last zone sync finished successfully.
	LastSync time.Time

	// LastError is the message of the most recent failure, cleared by the
	// next successful sync.
	LastError string

	// PendingZones lists the zones that still hold queued mutations.
	PendingZones []string
}

// ClientSyncService drives the fetch/send cycle for one zone at a time.
type ClientSyncService interface {
	// FetchChanges pulls the zone's change feed page by page, applying each
	// page and its token atomically. An expired cursor triggers one full
	// resync from the beginning; a zone tombstone purges the local copy.
	FetchChanges(ctx context.Context, zone string) error

	// SendChanges drains the zone's pending queue in batches, reconciling
	// every per-item disposition. Items succeed and fail independently.
	SendChanges(ctx context.Context, zone string) error

	// Sync runs FetchChanges then SendChanges. At most one operation per
	// zone is in flight; a concurrent call returns ErrZoneBusy.
	Sync(ctx context.Context, zone string) error

	// Zones returns the zones worth syncing: every zone known to the
	// server plus any zone with queued local mutations.
	Zones(ctx context.Context) ([]string, error)

	// Status reports the engine snapshot for display.
	Status(ctx context.Context) SyncStatus
}

// ClientSyncJob is the background worker that periodically syncs every
// eligible zone, with a per-zone throttle that backs off failing zones.
type ClientSyncJob interface {
	// Start launches the background goroutine. Any previously running job
	// is stopped first. The interval defaults when zero or negative.
	Start(ctx context.Context, interval time.Duration)

	// Stop signals the background goroutine to exit and blocks until it
	// has fully terminated.
	Stop()
}
