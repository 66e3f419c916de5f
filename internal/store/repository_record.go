// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/zonesync/internal/logger"
	"github.com/MKhiriev/zonesync/models"
)

// recordRepository is the PostgreSQL-backed implementation of
// [RecordRepository]. It applies commit batches against the "records" table
// and writes one change-log entry per accepted mutation, all inside a single
// transaction.
//
// Every public method obtains a context-scoped logger via
// [logger.FromContext] so that all database interactions are traced with
// structured fields (user_id, zone, record_id).
type recordRepository struct {
	*DB
	logger *logger.Logger
}

// NewRecordRepository constructs a [RecordRepository] backed by the provided
// database connection and logger.
func NewRecordRepository(db *DB, logger *logger.Logger) RecordRepository {
	logger.Debug().Msg("creating record repository")
	return &recordRepository{
		DB:     db,
		logger: logger,
	}
}

// recordRow is the per-record state read under FOR UPDATE before an item is
// applied: just enough to detect conflicts, replays, and quota movement.
type recordRow struct {
	changeTag string
	hash      string
	sizeBytes int64
	deleted   bool
	found     bool
}

// Commit implements [RecordRepository].
//
// Per item, the disposition is decided against the row locked with
// FOR UPDATE:
//   - save of an unknown record with an empty base tag → insert (ok);
//   - save of an unknown record with a non-empty base tag → unknown
//     (the record vanished server-side since the client read it);
//   - save whose content hash equals the live stored hash → already applied
//     (a replayed confirmation lost in transit), nothing is written;
//   - base tag mismatch → conflict, with the current server copy attached;
//   - delete of an unknown or already-deleted record → unknown (the intent
//     is satisfied; clients treat it as success);
//   - otherwise the mutation is applied, a fresh change tag is stamped, and
//     a change-log entry is written.
//
// Deletes cascade: live records referencing the deleted record with the
// cascade action are soft-deleted recursively, each with its own change-log
// entry.
//
// When quotaBytes > 0, a save that would push the user's stored bytes over
// the budget reports quota_exceeded and is not applied.
//
// In atomic mode any non-applied item aborts the transaction: failed items
// keep their own status and every applied item is reported as rejected.
func (r *recordRepository) Commit(ctx context.Context, req models.CommitRequest, quotaBytes int64) (models.CommitResponse, error) {
	log := logger.FromContext(ctx)

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "recordRepository.Commit").
			Int64("user_id", req.UserID).
			Str("zone", req.Zone).
			Msg("failed to begin transaction")
		return models.CommitResponse{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	// zone must exist; a commit into a deleted zone is routed to the purge
	// path on the client, not silently recreated here
	var exists bool
	if err := tx.QueryRowContext(ctx, zoneExists, req.UserID, req.Zone).Scan(&exists); err != nil {
		log.Err(err).
			Str("func", "recordRepository.Commit").
			Str("zone", req.Zone).
			Msg("failed to check zone existence")
		return models.CommitResponse{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if !exists {
		return models.CommitResponse{}, ErrZoneNotFound
	}

	usage := int64(0)
	if quotaBytes > 0 {
		query, args, buildErr := buildUsageQuery(req.UserID)
		if buildErr != nil {
			return models.CommitResponse{}, buildErr
		}
		if err := tx.QueryRowContext(ctx, query, args...).Scan(&usage); err != nil {
			log.Err(err).
				Str("func", "recordRepository.Commit").
				Int64("user_id", req.UserID).
				Msg("failed to read storage usage")
			return models.CommitResponse{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
	}

	results := make([]models.ItemResult, 0, req.Items())
	failed := false

	for _, save := range req.Saves {
		result, applyErr := r.applySave(ctx, tx, req.UserID, req.Zone, save, quotaBytes, &usage)
		if applyErr != nil {
			return models.CommitResponse{}, applyErr
		}
		if !result.Applied() {
			failed = true
		}
		results = append(results, result)
	}

	for _, del := range req.Deletes {
		result, applyErr := r.applyDelete(ctx, tx, req.UserID, req.Zone, del)
		if applyErr != nil {
			return models.CommitResponse{}, applyErr
		}
		// an unknown delete is a satisfied intent, not a batch failure
		if !result.Applied() && result.Status != models.ItemUnknown {
			failed = true
		}
		results = append(results, result)
	}

	if req.Atomic && failed {
		// deferred rollback discards every applied item; report them as
		// rejected so the client re-queues nothing it believes confirmed
		for i := range results {
			if results[i].Applied() {
				results[i] = models.ItemResult{
					RecordID: results[i].RecordID,
					Status:   models.ItemRejected,
				}
			}
		}
		return models.CommitResponse{Results: results, Length: len(results)}, nil
	}

	if err := tx.Commit(); err != nil {
		log.Err(err).
			Str("func", "recordRepository.Commit").
			Int64("user_id", req.UserID).
			Str("zone", req.Zone).
			Msg("failed to commit transaction")
		return models.CommitResponse{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return models.CommitResponse{Results: results, Length: len(results)}, nil
}

// applySave decides and applies the disposition of one save item inside the
// commit transaction.
func (r *recordRepository) applySave(ctx context.Context, tx *sql.Tx, userID int64, zone string, save models.RecordSave, quotaBytes int64, usage *int64) (models.ItemResult, error) {
	log := logger.FromContext(ctx)
	recordID := save.Record.RecordID

	current, err := r.lockRecord(ctx, tx, userID, zone, recordID)
	if err != nil {
		return models.ItemResult{}, err
	}

	save.Record.Stamp()

	if !current.found {
		if save.BaseTag != "" {
			// the client read a record the server no longer has
			return models.ItemResult{RecordID: recordID, Status: models.ItemUnknown}, nil
		}
		return r.insertNew(ctx, tx, userID, zone, save, quotaBytes, usage)
	}

	if !current.deleted && current.hash == save.Record.Hash {
		// replayed confirmation of content the server already stores
		return models.ItemResult{
			RecordID:  recordID,
			Status:    models.ItemAlreadyApplied,
			ChangeTag: current.changeTag,
		}, nil
	}

	if current.changeTag != save.BaseTag {
		serverRecord, getErr := r.getRecordTx(ctx, tx, userID, zone, recordID)
		if getErr != nil {
			return models.ItemResult{}, getErr
		}
		log.Debug().
			Str("func", "recordRepository.applySave").
			Str("zone", zone).
			Str("record_id", recordID).
			Str("base_tag", save.BaseTag).
			Str("current_tag", current.changeTag).
			Msg("change tag mismatch on save")
		return models.ItemResult{
			RecordID:     recordID,
			Status:       models.ItemConflict,
			ServerRecord: &serverRecord,
		}, nil
	}

	fieldsJSON, refsJSON, encErr := encodeRecordBody(save.Record)
	if encErr != nil {
		return models.ItemResult{}, encErr
	}

	newSize := int64(len(fieldsJSON))
	if quotaBytes > 0 && *usage-current.sizeBytes+newSize > quotaBytes {
		return models.ItemResult{RecordID: recordID, Status: models.ItemQuotaExceeded}, nil
	}

	tag := newChangeTag()
	if _, err := tx.ExecContext(ctx, updateRecord,
		userID, zone, recordID,
		save.Record.Type, fieldsJSON, refsJSON, tag, save.Record.Hash, newSize,
	); err != nil {
		log.Err(err).
			Str("func", "recordRepository.applySave").
			Str("record_id", recordID).
			Msg("failed to update record")
		return models.ItemResult{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if err := r.logChange(ctx, tx, userID, zone, recordID, models.OpSave, tag); err != nil {
		return models.ItemResult{}, err
	}

	*usage += newSize - current.sizeBytes
	return models.ItemResult{RecordID: recordID, Status: models.ItemOK, ChangeTag: tag}, nil
}

// insertNew stores a record the server has never seen.
func (r *recordRepository) insertNew(ctx context.Context, tx *sql.Tx, userID int64, zone string, save models.RecordSave, quotaBytes int64, usage *int64) (models.ItemResult, error) {
	log := logger.FromContext(ctx)
	recordID := save.Record.RecordID

	fieldsJSON, refsJSON, encErr := encodeRecordBody(save.Record)
	if encErr != nil {
		return models.ItemResult{}, encErr
	}

	newSize := int64(len(fieldsJSON))
	if quotaBytes > 0 && *usage+newSize > quotaBytes {
		return models.ItemResult{RecordID: recordID, Status: models.ItemQuotaExceeded}, nil
	}

	tag := newChangeTag()
	if _, err := tx.ExecContext(ctx, insertRecord,
		userID, zone, recordID,
		save.Record.Type, fieldsJSON, refsJSON, tag, save.Record.Hash, newSize,
	); err != nil {
		log.Err(err).
			Str("func", "recordRepository.insertNew").
			Str("record_id", recordID).
			Msg("failed to insert record")
		return models.ItemResult{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if err := r.logChange(ctx, tx, userID, zone, recordID, models.OpSave, tag); err != nil {
		return models.ItemResult{}, err
	}

	*usage += newSize
	return models.ItemResult{RecordID: recordID, Status: models.ItemOK, ChangeTag: tag}, nil
}

// applyDelete decides and applies the disposition of one delete item inside
// the commit transaction, cascading to referencing records.
func (r *recordRepository) applyDelete(ctx context.Context, tx *sql.Tx, userID int64, zone string, del models.RecordDelete) (models.ItemResult, error) {
	log := logger.FromContext(ctx)

	current, err := r.lockRecord(ctx, tx, userID, zone, del.RecordID)
	if err != nil {
		return models.ItemResult{}, err
	}

	if !current.found || current.deleted {
		// already satisfied: replaying a confirmed delete is a no-op
		return models.ItemResult{RecordID: del.RecordID, Status: models.ItemUnknown}, nil
	}

	if current.changeTag != del.BaseTag {
		serverRecord, getErr := r.getRecordTx(ctx, tx, userID, zone, del.RecordID)
		if getErr != nil {
			return models.ItemResult{}, getErr
		}
		log.Debug().
			Str("func", "recordRepository.applyDelete").
			Str("zone", zone).
			Str("record_id", del.RecordID).
			Msg("change tag mismatch on delete")
		return models.ItemResult{
			RecordID:     del.RecordID,
			Status:       models.ItemConflict,
			ServerRecord: &serverRecord,
		}, nil
	}

	tag, err := r.softDelete(ctx, tx, userID, zone, del.RecordID)
	if err != nil {
		return models.ItemResult{}, err
	}

	if err := r.cascadeDelete(ctx, tx, userID, zone, del.RecordID); err != nil {
		return models.ItemResult{}, err
	}

	return models.ItemResult{RecordID: del.RecordID, Status: models.ItemOK, ChangeTag: tag}, nil
}

// cascadeDelete soft-deletes every live record that references seed with the
// cascade action, walking the reference graph breadth-first so chains of
// parents are removed in one commit.
func (r *recordRepository) cascadeDelete(ctx context.Context, tx *sql.Tx, userID int64, zone, seed string) error {
	log := logger.FromContext(ctx)

	frontier := []string{seed}
	visited := map[string]bool{seed: true}

	for len(frontier) > 0 {
		parent := frontier[0]
		frontier = frontier[1:]

		query, args, err := buildSelectCascadeQuery(userID, zone, parent)
		if err != nil {
			return err
		}

		rows, err := tx.QueryContext(ctx, query, args...)
		if err != nil {
			log.Err(err).
				Str("func", "recordRepository.cascadeDelete").
				Str("record_id", parent).
				Msg("failed to query cascading children")
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}

		children := make([]string, 0, 4)
		for rows.Next() {
			var child string
			if err := rows.Scan(&child); err != nil {
				rows.Close()
				return fmt.Errorf("%w: %w", ErrScanningRows, err)
			}
			children = append(children, child)
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		rows.Close()

		for _, child := range children {
			if visited[child] {
				continue
			}
			visited[child] = true

			if _, err := r.softDelete(ctx, tx, userID, zone, child); err != nil {
				return err
			}
			frontier = append(frontier, child)
		}
	}

	return nil
}

// softDelete marks one record deleted with a fresh tag and logs the change.
func (r *recordRepository) softDelete(ctx context.Context, tx *sql.Tx, userID int64, zone, recordID string) (string, error) {
	log := logger.FromContext(ctx)

	tag := newChangeTag()
	if _, err := tx.ExecContext(ctx, softDeleteRecord, userID, zone, recordID, tag); err != nil {
		log.Err(err).
			Str("func", "recordRepository.softDelete").
			Str("record_id", recordID).
			Msg("failed to soft-delete record")
		return "", fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if err := r.logChange(ctx, tx, userID, zone, recordID, models.OpDelete, tag); err != nil {
		return "", err
	}

	return tag, nil
}

// logChange appends one change-log entry inside the commit transaction.
func (r *recordRepository) logChange(ctx context.Context, tx *sql.Tx, userID int64, zone, recordID string, op models.ChangeOp, tag string) error {
	log := logger.FromContext(ctx)

	if _, err := tx.ExecContext(ctx, insertChangeLogEntry, userID, zone, recordID, string(op), tag); err != nil {
		log.Err(err).
			Str("func", "recordRepository.logChange").
			Str("record_id", recordID).
			Msg("failed to write change log entry")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// lockRecord reads the change-detection state of one record under FOR UPDATE.
func (r *recordRepository) lockRecord(ctx context.Context, tx *sql.Tx, userID int64, zone, recordID string) (recordRow, error) {
	log := logger.FromContext(ctx)

	var row recordRow
	err := tx.QueryRowContext(ctx, getRecordForUpdate, userID, zone, recordID).
		Scan(&row.changeTag, &row.hash, &row.sizeBytes, &row.deleted)
	if errors.Is(err, sql.ErrNoRows) {
		return recordRow{}, nil
	}
	if err != nil {
		log.Err(err).
			Str("func", "recordRepository.lockRecord").
			Str("zone", zone).
			Str("record_id", recordID).
			Msg("failed to lock record row")
		return recordRow{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	row.found = true
	return row, nil
}

// GetRecord implements [RecordRepository].
func (r *recordRepository) GetRecord(ctx context.Context, userID int64, zone, recordID string) (models.Record, error) {
	log := logger.FromContext(ctx)

	record, err := scanRecord(r.DB.QueryRowContext(ctx, getRecord, userID, zone, recordID))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Record{}, ErrRecordNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "recordRepository.GetRecord").
			Str("zone", zone).
			Str("record_id", recordID).
			Msg("failed to get record")
		return models.Record{}, err
	}

	return record, nil
}

// getRecordTx reads the full current record inside the commit transaction,
// used to attach the server copy to conflict results.
func (r *recordRepository) getRecordTx(ctx context.Context, tx *sql.Tx, userID int64, zone, recordID string) (models.Record, error) {
	record, err := scanRecord(tx.QueryRowContext(ctx, getRecord, userID, zone, recordID))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Record{}, ErrRecordNotFound
	}
	return record, err
}

// rowScanner abstracts *sql.Row and *sql.Rows for record scanning.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanRecord scans one full record row in [getRecord] column order.
func scanRecord(row rowScanner) (models.Record, error) {
	var record models.Record
	var fieldsJSON []byte

	err := row.Scan(
		&record.UserID,
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

// encodeRecordBody serializes the field map and its extracted references for
// storage. References ride in their own JSONB column so cascade lookups stay
// a single containment query.
func encodeRecordBody(record models.Record) (fieldsJSON, refsJSON []byte, err error) {
	fieldsJSON, err = record.Fields.EncodeJSON()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrEncodingFields, err)
	}

	refs := record.Fields.References()
	if refs == nil {
		refs = []models.Reference{}
	}
	refsJSON, err = json.Marshal(refs)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrEncodingFields, err)
	}

	return fieldsJSON, refsJSON, nil
}

// newChangeTag mints an opaque version marker: the current nanosecond clock
// plus a random nonce, hex-encoded. Tags are compared only for equality, so
// the structure is an implementation detail.
func newChangeTag() string {
	nonce := make([]byte, 4)
	_, _ = rand.Read(nonce)
	return fmt.Sprintf("%x-%s", time.Now().UnixNano(), hex.EncodeToString(nonce))
}
