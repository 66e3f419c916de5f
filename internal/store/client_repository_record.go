package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/zonesync/internal/logger"
	"github.com/MKhiriev/zonesync/models"
)

// localRecordRepository is the SQLite-backed implementation of
// [LocalRecordRepository]. Local writes and their pending-queue entries share
// a transaction, as do fetched pages and their change tokens.
type localRecordRepository struct {
	*DB
	logger *logger.Logger
}

func NewLocalRecordRepository(db *DB, logger *logger.Logger) LocalRecordRepository {
	return &localRecordRepository{
		DB:     db,
		logger: logger,
	}
}

// SaveRecord implements [LocalRecordRepository]. The enqueued intent carries
// the change tag the stored row held before this write; a repeated local edit
// coalesces into the existing queue entry without touching that base tag.
func (l *localRecordRepository) SaveRecord(ctx context.Context, record models.Record) (models.Record, error) {
	log := logger.FromContext(ctx)

	record.Stamp()

	fieldsJSON, err := record.Fields.EncodeJSON()
	if err != nil {
		return models.Record{}, fmt.Errorf("%w: %w", ErrEncodingFields, err)
	}

	tx, err := l.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "localRecordRepository.SaveRecord").
			Str("zone", record.Zone).
			Str("record_id", record.RecordID).
			Msg("failed to begin transaction")
		return models.Record{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	// the base tag is whatever the mirror last confirmed; empty for records
	// the server has never seen
	baseTag := ""
	err = tx.QueryRowContext(ctx, getLocalRecordTag, record.Zone, record.RecordID).Scan(&baseTag)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		log.Err(err).
			Str("func", "localRecordRepository.SaveRecord").
			Str("record_id", record.RecordID).
			Msg("failed to read stored change tag")
		return models.Record{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	record.ChangeTag = baseTag

	if _, err := tx.ExecContext(ctx, upsertLocalRecord,
		record.Zone, record.RecordID,
		record.Type, fieldsJSON, record.ChangeTag, record.Hash, record.Deleted,
	); err != nil {
		log.Err(err).
			Str("func", "localRecordRepository.SaveRecord").
			Str("record_id", record.RecordID).
			Msg("failed to upsert local record")
		return models.Record{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	payloadJSON, err := encodePendingPayload(&record)
	if err != nil {
		return models.Record{}, err
	}

	if _, err := tx.ExecContext(ctx, enqueuePendingChange,
		record.Zone, record.RecordID, string(models.OpSave), payloadJSON, baseTag,
	); err != nil {
		log.Err(err).
			Str("func", "localRecordRepository.SaveRecord").
			Str("record_id", record.RecordID).
			Msg("failed to enqueue pending save")
		return models.Record{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if err := tx.Commit(); err != nil {
		log.Err(err).
			Str("func", "localRecordRepository.SaveRecord").
			Str("record_id", record.RecordID).
			Msg("failed to commit transaction")
		return models.Record{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return record, nil
}

// GetRecord implements [LocalRecordRepository].
func (l *localRecordRepository) GetRecord(ctx context.Context, zone, recordID string) (models.Record, error) {
	log := logger.FromContext(ctx)

	record, err := scanLocalRecord(l.DB.QueryRowContext(ctx, getLocalRecord, zone, recordID))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Record{}, ErrRecordNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "localRecordRepository.GetRecord").
			Str("zone", zone).
			Str("record_id", recordID).
			Msg("failed to get local record")
		return models.Record{}, err
	}

	return record, nil
}

// ListRecords implements [LocalRecordRepository]. Soft-deleted rows awaiting
// server confirmation are excluded.
func (l *localRecordRepository) ListRecords(ctx context.Context, zone string) ([]models.Record, error) {
	log := logger.FromContext(ctx)

	rows, err := l.DB.QueryContext(ctx, listLocalRecords, zone)
	if err != nil {
		log.Err(err).
			Str("func", "localRecordRepository.ListRecords").
			Str("zone", zone).
			Msg("failed to query local records")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var records []models.Record
	for rows.Next() {
		record, scanErr := scanLocalRecord(rows)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "localRecordRepository.ListRecords").
				Str("zone", zone).
				Msg("failed to scan local record row")
			return nil, scanErr
		}
		records = append(records, record)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "localRecordRepository.ListRecords").
			Str("zone", zone).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return records, nil
}

// ListStates implements [LocalRecordRepository].
func (l *localRecordRepository) ListStates(ctx context.Context, zone string) ([]models.RecordState, error) {
	log := logger.FromContext(ctx)

	rows, err := l.DB.QueryContext(ctx, listLocalStates, zone)
	if err != nil {
		log.Err(err).
			Str("func", "localRecordRepository.ListStates").
			Str("zone", zone).
			Msg("failed to query local record states")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var states []models.RecordState
	for rows.Next() {
		var state models.RecordState
		if scanErr := rows.Scan(
			&state.Zone,
			&state.RecordID,
			&state.Hash,
			&state.ChangeTag,
			&state.Deleted,
			&state.UpdatedAt,
		); scanErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
		}
		states = append(states, state)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "localRecordRepository.ListStates").
			Str("zone", zone).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return states, nil
}

// DeleteRecord implements [LocalRecordRepository]. The row stays, soft
// deleted, until the server's deletion marker arrives through the feed.
func (l *localRecordRepository) DeleteRecord(ctx context.Context, zone, recordID string) error {
	log := logger.FromContext(ctx)

	tx, err := l.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "localRecordRepository.DeleteRecord").
			Str("zone", zone).
			Str("record_id", recordID).
			Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	baseTag := ""
	err = tx.QueryRowContext(ctx, getLocalRecordTag, zone, recordID).Scan(&baseTag)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrRecordNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "localRecordRepository.DeleteRecord").
			Str("record_id", recordID).
			Msg("failed to read stored change tag")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if _, err := tx.ExecContext(ctx, markLocalRecordDeleted, zone, recordID); err != nil {
		log.Err(err).
			Str("func", "localRecordRepository.DeleteRecord").
			Str("record_id", recordID).
			Msg("failed to mark local record deleted")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if _, err := tx.ExecContext(ctx, enqueuePendingChange,
		zone, recordID, string(models.OpDelete), nil, baseTag,
	); err != nil {
		log.Err(err).
			Str("func", "localRecordRepository.DeleteRecord").
			Str("record_id", recordID).
			Msg("failed to enqueue pending delete")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if err := tx.Commit(); err != nil {
		log.Err(err).
			Str("func", "localRecordRepository.DeleteRecord").
			Str("record_id", recordID).
			Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

// ApplyChanges implements [LocalRecordRepository]. Live changes replace the
// mirrored rows, deletion markers drop them, and the new token is persisted
// in the same transaction. Pending entries are left untouched: divergence is
// reconciled at send time against the server's tag check.
func (l *localRecordRepository) ApplyChanges(ctx context.Context, zone string, changes []models.RecordChange, token models.ChangeToken) error {
	log := logger.FromContext(ctx)

	tx, err := l.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "localRecordRepository.ApplyChanges").
			Str("zone", zone).
			Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	for _, change := range changes {
		if change.Deleted || change.Record == nil {
			if _, err := tx.ExecContext(ctx, dropLocalRecord, zone, change.RecordID); err != nil {
				log.Err(err).
					Str("func", "localRecordRepository.ApplyChanges").
					Str("record_id", change.RecordID).
					Msg("failed to drop deleted record")
				return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
			}
			continue
		}

		record := change.Record
		fieldsJSON, encErr := record.Fields.EncodeJSON()
		if encErr != nil {
			return fmt.Errorf("%w: %w", ErrEncodingFields, encErr)
		}

		if _, err := tx.ExecContext(ctx, upsertLocalRecord,
			zone, change.RecordID,
			record.Type, fieldsJSON, record.ChangeTag, record.Hash, false,
		); err != nil {
			log.Err(err).
				Str("func", "localRecordRepository.ApplyChanges").
				Str("record_id", change.RecordID).
				Msg("failed to upsert fetched record")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	if _, err := tx.ExecContext(ctx, setSyncToken, zone, string(token)); err != nil {
		log.Err(err).
			Str("func", "localRecordRepository.ApplyChanges").
			Str("zone", zone).
			Msg("failed to persist change token")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if err := tx.Commit(); err != nil {
		log.Err(err).
			Str("func", "localRecordRepository.ApplyChanges").
			Str("zone", zone).
			Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	log.Debug().
		Str("func", "localRecordRepository.ApplyChanges").
		Str("zone", zone).
		Int("changes", len(changes)).
		Msg("applied change feed page")

	return nil
}

// ConfirmSave implements [LocalRecordRepository].
func (l *localRecordRepository) ConfirmSave(ctx context.Context, zone, recordID, changeTag string) error {
	log := logger.FromContext(ctx)

	if _, err := l.DB.ExecContext(ctx, setLocalRecordTag, zone, recordID, changeTag); err != nil {
		log.Err(err).
			Str("func", "localRecordRepository.ConfirmSave").
			Str("zone", zone).
			Str("record_id", recordID).
			Msg("failed to store confirmed change tag")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// PurgeZone implements [LocalRecordRepository].
func (l *localRecordRepository) PurgeZone(ctx context.Context, zone string) error {
	log := logger.FromContext(ctx)

	tx, err := l.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "localRecordRepository.PurgeZone").
			Str("zone", zone).
			Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	for _, statement := range []string{dropZoneRecords, dropZonePending, resetSyncToken} {
		if _, err := tx.ExecContext(ctx, statement, zone); err != nil {
			log.Err(err).
				Str("func", "localRecordRepository.PurgeZone").
				Str("zone", zone).
				Msg("failed to purge zone state")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	if err := tx.Commit(); err != nil {
		log.Err(err).
			Str("func", "localRecordRepository.PurgeZone").
			Str("zone", zone).
			Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	log.Info().
		Str("func", "localRecordRepository.PurgeZone").
		Str("zone", zone).
		Msg("purged local zone state")

	return nil
}

// scanLocalRecord scans one local record row in [getLocalRecord] column order.
func scanLocalRecord(row rowScanner) (models.Record, error) {
	var record models.Record
	var fieldsJSON []byte

	err := row.Scan(
		&record.Zone,
		&record.RecordID,
		&record.Type,
		&fieldsJSON,
		&record.ChangeTag,
		&record.Hash,
		&record.Deleted,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		return models.Record{}, err
	}

	fields, err := models.DecodeFieldMap(fieldsJSON)
	if err != nil {
		return models.Record{}, fmt.Errorf("%w: %w", ErrDecodingFields, err)
	}
	record.Fields = fields

	return record, nil
}
