// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/zonesync/internal/logger"
	"github.com/MKhiriev/zonesync/models"
	"github.com/jackc/pgerrcode"
)

// zoneRepository is the PostgreSQL-backed implementation of [ZoneRepository].
type zoneRepository struct {
	*DB
	logger *logger.Logger
}

// NewZoneRepository constructs a [ZoneRepository] backed by the provided
// database connection and logger.
func NewZoneRepository(db *DB, logger *logger.Logger) ZoneRepository {
	logger.Debug().Msg("creating zone repository")
	return &zoneRepository{
		DB:     db,
		logger: logger,
	}
}

// CreateZone implements [ZoneRepository].
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrZoneAlreadyExists].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *zoneRepository) CreateZone(ctx context.Context, zone models.Zone) (models.Zone, error) {
	log := logger.FromContext(ctx)

	row := r.DB.QueryRowContext(ctx, createZone, zone.UserID, zone.Name)

	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "zoneRepository.CreateZone").Str("zone", zone.Name).Msg("error creating zone")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.Zone{}, ErrZoneAlreadyExists
		default:
			return models.Zone{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	var created models.Zone
	if err := row.Scan(&created.UserID, &created.Name, &created.CreatedAt); err != nil {
		if postgresError(err) == pgerrcode.UniqueViolation {
			return models.Zone{}, ErrZoneAlreadyExists
		}
		log.Err(err).Str("func", "zoneRepository.CreateZone").Str("zone", zone.Name).Msg("error: scanning error")
		return models.Zone{}, err
	}

	return created, nil
}

// ListZones implements [ZoneRepository].
func (r *zoneRepository) ListZones(ctx context.Context, userID int64) ([]models.Zone, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectZonesQuery(userID)
	if err != nil {
		log.Err(err).
			Str("func", "zoneRepository.ListZones").
			Int64("user_id", userID).
			Msg("failed to create query")
		return nil, err
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "zoneRepository.ListZones").
			Int64("user_id", userID).
			Msg("failed to execute query for listing zones")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	zones := make([]models.Zone, 0, 8)

	for rows.Next() {
		var zone models.Zone
		if scanErr := rows.Scan(&zone.UserID, &zone.Name, &zone.CreatedAt); scanErr != nil {
			log.Err(scanErr).
				Str("func", "zoneRepository.ListZones").
				Int64("user_id", userID).
				Msg("failed to scan zone row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		zones = append(zones, zone)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "zoneRepository.ListZones").
			Int64("user_id", userID).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return zones, nil
}

// DeleteZone implements [ZoneRepository].
//
// The zone row, its records, and the tombstone are handled in one
// transaction: a crash can never leave records without the tombstone that
// tells clients to purge them.
func (r *zoneRepository) DeleteZone(ctx context.Context, userID int64, name string) error {
	log := logger.FromContext(ctx)

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "zoneRepository.DeleteZone").
			Str("zone", name).
			Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, deleteZone, userID, name)
	if err != nil {
		log.Err(err).
			Str("func", "zoneRepository.DeleteZone").
			Str("zone", name).
			Msg("failed to delete zone row")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrZoneNotFound
	}

	if _, err := tx.ExecContext(ctx, deleteZoneRecords, userID, name); err != nil {
		log.Err(err).
			Str("func", "zoneRepository.DeleteZone").
			Str("zone", name).
			Msg("failed to delete zone records")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	// the tombstone rides the same feed the records did; clients that fetch
	// it purge the zone locally
	if _, err := tx.ExecContext(ctx, insertChangeLogEntry, userID, name, "", "zone_delete", ""); err != nil {
		log.Err(err).
			Str("func", "zoneRepository.DeleteZone").
			Str("zone", name).
			Msg("failed to write zone tombstone")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if err := tx.Commit(); err != nil {
		log.Err(err).
			Str("func", "zoneRepository.DeleteZone").
			Str("zone", name).
			Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	log.Info().
		Str("func", "zoneRepository.DeleteZone").
		Int64("user_id", userID).
		Str("zone", name).
		Msg("zone deleted with all records")

	return nil
}
