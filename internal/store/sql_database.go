package store

import (
	"database/sql"

	"github.com/MKhiriev/zonesync/internal/logger"
	"github.com/MKhiriev/zonesync/migrations"
)

// DB wraps the standard library connection pool with the error classifier
// and logger the repositories share.
type DB struct {
	*sql.DB
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// Migrate applies the embedded server (PostgreSQL) schema migrations.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB)
}

// MigrateClient applies the embedded client (SQLite) schema migrations.
func (db *DB) MigrateClient() error {
	return migrations.MigrateClient(db.DB)
}
