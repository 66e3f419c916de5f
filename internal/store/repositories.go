package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/zonesync/internal/config"
	"github.com/MKhiriev/zonesync/internal/logger"
)

// Repositories groups the server-side storage repositories into a single
// value that can be passed to the service layer.
type Repositories struct {
	UserRepository      UserRepository
	RecordRepository    RecordRepository
	ZoneRepository      ZoneRepository
	ChangeLogRepository ChangeLogRepository
}

// NewRepositories initialises the server storage layer: it opens the
// PostgreSQL connection, runs pending schema migrations, and wires every
// repository to the shared connection.
func NewRepositories(ctx context.Context, cfg config.Storage, logger *logger.Logger) (*Repositories, error) {
	logger.Info().Msg("creating new repositories...")

	db, err := NewConnectPostgres(ctx, cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("postgres connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &Repositories{
		UserRepository:      NewUserRepository(db, logger),
		RecordRepository:    NewRecordRepository(db, logger),
		ZoneRepository:      NewZoneRepository(db, logger),
		ChangeLogRepository: NewChangeLogRepository(db, logger),
	}, nil
}
