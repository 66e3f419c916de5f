package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/zonesync/internal/config"
	"github.com/MKhiriev/zonesync/internal/logger"
)

// ClientStorages groups the client-side storage repositories into a single
// value that can be passed around the service layer.
type ClientStorages struct {
	// RecordRepository is the SQLite-backed local mirror of the user's
	// records plus the pending-change ledger writes.
	RecordRepository LocalRecordRepository

	// PendingRepository reads and maintains the pending-change ledger.
	PendingRepository PendingQueueRepository

	// SyncStateRepository reads and resets per-zone change tokens.
	SyncStateRepository SyncStateRepository

	// SessionRepository persists the authenticated session between runs.
	SessionRepository SessionRepository
}

// NewClientStorages initialises the client storage layer using the supplied
// configuration and logger. It performs the following steps:
//  1. Opens an SQLite connection to the file path specified in cfg.DB.Path,
//     creating the database file if it does not yet exist.
//  2. Runs pending schema migrations via [DB.MigrateClient].
//  3. Constructs and returns a [ClientStorages] value wired to fresh
//     repositories sharing the connection.
//
// Returns an error if the database connection cannot be established or if
// migration fails.
func NewClientStorages(cfg config.ClientStorage, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectSQLite(context.Background(), cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := db.MigrateClient(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &ClientStorages{
		RecordRepository:    NewLocalRecordRepository(db, logger),
		PendingRepository:   NewPendingQueueRepository(db, logger),
		SyncStateRepository: NewSyncStateRepository(db, logger),
		SessionRepository:   NewSessionRepository(db, logger),
	}, nil
}
