// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/zonesync/internal/logger"
	"github.com/MKhiriev/zonesync/models"
)

// changeLogRepository is the PostgreSQL-backed implementation of
// [ChangeLogRepository]. It serves change-feed pages from the "change_log"
// table and maintains the pruned horizon in "prune_state".
type changeLogRepository struct {
	*DB
	logger *logger.Logger
}

// NewChangeLogRepository constructs a [ChangeLogRepository] backed by the
// provided database connection and logger.
func NewChangeLogRepository(db *DB, logger *logger.Logger) ChangeLogRepository {
	logger.Debug().Msg("creating change log repository")
	return &changeLogRepository{
		DB:     db,
		logger: logger,
	}
}

// ListChanges implements [ChangeLogRepository].
//
// Each feed entry is joined with the current record body. The body may be
// newer than the entry that produced it — the feed converges on current
// state, not on history — so a record modified twice between two fetches is
// delivered once with its latest content. Entries whose record row is gone
// or soft-deleted are emitted as deletion markers.
func (r *changeLogRepository) ListChanges(ctx context.Context, userID int64, zone string, sinceSeq int64, limit int) ([]models.RecordChange, int64, bool, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectChangesQuery(userID, zone, sinceSeq, limit)
	if err != nil {
		log.Err(err).
			Str("func", "changeLogRepository.ListChanges").
			Int64("user_id", userID).
			Str("zone", zone).
			Msg("failed to create query")
		return nil, 0, false, err
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "changeLogRepository.ListChanges").
			Int64("user_id", userID).
			Str("zone", zone).
			Int64("since_seq", sinceSeq).
			Msg("failed to execute change feed query")
		return nil, 0, false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	changes := make([]models.RecordChange, 0, limit)
	lastSeq := sinceSeq
	seen := make(map[string]int, limit)
	count := 0
	more := false

	for rows.Next() {
		if count == limit {
			// the limit+1-th row only proves another page exists
			more = true
			break
		}
		count++

		var (
			seq       int64
			recordID  string
			op        string
			recType   *string
			fields    []byte
			changeTag *string
			hash      *string
			deleted   *bool
			createdAt *time.Time
			updatedAt *time.Time
		)

		if scanErr := rows.Scan(&seq, &recordID, &op, &recType, &fields, &changeTag, &hash, &deleted, &createdAt, &updatedAt); scanErr != nil {
			log.Err(scanErr).
				Str("func", "changeLogRepository.ListChanges").
				Str("zone", zone).
				Msg("failed to scan change feed row")
			return nil, 0, false, fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
		}

		lastSeq = seq

		change := models.RecordChange{RecordID: recordID, Deleted: true}
		if recType != nil && deleted != nil && !*deleted {
			fieldMap, decErr := models.DecodeFieldMap(fields)
			if decErr != nil {
				return nil, 0, false, fmt.Errorf("%w: %w", ErrDecodingFields, decErr)
			}
			change = models.RecordChange{
				RecordID: recordID,
				Record: &models.Record{
					RecordID:  recordID,
					Zone:      zone,
					Type:      *recType,
					Fields:    fieldMap,
					ChangeTag: derefString(changeTag),
					Hash:      derefString(hash),
					CreatedAt: createdAt,
					UpdatedAt: updatedAt,
				},
			}
		}

		// a record touched twice in one page is delivered once, in its
		// final disposition
		if idx, ok := seen[recordID]; ok {
			changes[idx] = change
			continue
		}
		seen[recordID] = len(changes)
		changes = append(changes, change)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "changeLogRepository.ListChanges").
			Str("zone", zone).
			Msg("error occurred during rows iteration")
		return nil, 0, false, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return changes, lastSeq, more, nil
}

// ZoneDeletedSince implements [ChangeLogRepository].
func (r *changeLogRepository) ZoneDeletedSince(ctx context.Context, userID int64, zone string, sinceSeq int64) (bool, error) {
	log := logger.FromContext(ctx)

	var deleted bool
	if err := r.DB.QueryRowContext(ctx, zoneDeletedSince, userID, zone, sinceSeq).Scan(&deleted); err != nil {
		log.Err(err).
			Str("func", "changeLogRepository.ZoneDeletedSince").
			Str("zone", zone).
			Msg("failed to check zone tombstone")
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return deleted, nil
}

// Horizon implements [ChangeLogRepository].
func (r *changeLogRepository) Horizon(ctx context.Context) (int64, error) {
	log := logger.FromContext(ctx)

	var horizon int64
	if err := r.DB.QueryRowContext(ctx, getHorizon).Scan(&horizon); err != nil {
		log.Err(err).
			Str("func", "changeLogRepository.Horizon").
			Msg("failed to read prune horizon")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return horizon, nil
}

// Prune implements [ChangeLogRepository]. Deleted sequences and the horizon
// advance in one transaction: a token can never be validated against a
// horizon older than the pruning that invalidated it.
func (r *changeLogRepository) Prune(ctx context.Context, olderThan time.Time) (int64, error) {
	log := logger.FromContext(ctx)

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "changeLogRepository.Prune").
			Msg("failed to begin transaction")
		return 0, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx, pruneChangeLog, olderThan)
	if err != nil {
		log.Err(err).
			Str("func", "changeLogRepository.Prune").
			Time("older_than", olderThan).
			Msg("failed to prune change log")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	var pruned, maxSeq int64
	for rows.Next() {
		var seq int64
		if scanErr := rows.Scan(&seq); scanErr != nil {
			rows.Close()
			return 0, fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
		}
		pruned++
		if seq > maxSeq {
			maxSeq = seq
		}
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		rows.Close()
		return 0, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}
	rows.Close()

	if pruned > 0 {
		if _, err := tx.ExecContext(ctx, advanceHorizon, maxSeq); err != nil {
			log.Err(err).
				Str("func", "changeLogRepository.Prune").
				Int64("max_seq", maxSeq).
				Msg("failed to advance prune horizon")
			return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	if err := tx.Commit(); err != nil {
		log.Err(err).
			Str("func", "changeLogRepository.Prune").
			Msg("failed to commit transaction")
		return 0, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	if pruned > 0 {
		log.Info().
			Str("func", "changeLogRepository.Prune").
			Int64("pruned", pruned).
			Int64("horizon", maxSeq).
			Msg("change log pruned")
	}

	return pruned, nil
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
