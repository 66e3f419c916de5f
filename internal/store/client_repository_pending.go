package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/MKhiriev/zonesync/internal/logger"
	"github.com/MKhiriev/zonesync/models"
)

// pendingQueueRepository is the SQLite-backed implementation of
// [PendingQueueRepository].
type pendingQueueRepository struct {
	*DB
	logger *logger.Logger
}

func NewPendingQueueRepository(db *DB, logger *logger.Logger) PendingQueueRepository {
	return &pendingQueueRepository{
		DB:     db,
		logger: logger,
	}
}

// ListPending implements [PendingQueueRepository].
func (p *pendingQueueRepository) ListPending(ctx context.Context, zone string, afterID int64, limit int) ([]models.PendingChange, error) {
	log := logger.FromContext(ctx)

	rows, err := p.DB.QueryContext(ctx, listPendingChanges, zone, afterID, limit)
	if err != nil {
		log.Err(err).
			Str("func", "pendingQueueRepository.ListPending").
			Str("zone", zone).
			Msg("failed to query pending changes")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var entries []models.PendingChange
	for rows.Next() {
		var entry models.PendingChange
		var payloadJSON []byte
		var op string

		if scanErr := rows.Scan(
			&entry.ID,
			&entry.Zone,
			&entry.RecordID,
			&op,
			&payloadJSON,
			&entry.BaseTag,
			&entry.QueuedAt,
			&entry.Attempts,
		); scanErr != nil {
			log.Err(scanErr).
				Str("func", "pendingQueueRepository.ListPending").
				Str("zone", zone).
				Msg("failed to scan pending change row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
		}

		entry.Op = models.ChangeOp(op)
		if len(payloadJSON) > 0 {
			var record models.Record
			if decErr := json.Unmarshal(payloadJSON, &record); decErr != nil {
				return nil, fmt.Errorf("%w: %w", ErrDecodingFields, decErr)
			}
			entry.Payload = &record
		}

		entries = append(entries, entry)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "pendingQueueRepository.ListPending").
			Str("zone", zone).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return entries, nil
}

// ListZonesWithPending implements [PendingQueueRepository].
func (p *pendingQueueRepository) ListZonesWithPending(ctx context.Context) ([]string, error) {
	log := logger.FromContext(ctx)

	rows, err := p.DB.QueryContext(ctx, listPendingZones)
	if err != nil {
		log.Err(err).
			Str("func", "pendingQueueRepository.ListZonesWithPending").
			Msg("failed to query zones with pending changes")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var zones []string
	for rows.Next() {
		var zone string
		if scanErr := rows.Scan(&zone); scanErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
		}
		zones = append(zones, zone)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "pendingQueueRepository.ListZonesWithPending").
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return zones, nil
}

// Remove implements [PendingQueueRepository].
func (p *pendingQueueRepository) Remove(ctx context.Context, ids ...int64) error {
	log := logger.FromContext(ctx)

	if len(ids) == 0 {
		return nil
	}

	query, args, err := buildRemovePendingQuery(ids)
	if err != nil {
		return err
	}

	if _, err := p.DB.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "pendingQueueRepository.Remove").
			Int("count", len(ids)).
			Msg("failed to remove confirmed pending changes")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// BumpAttempts implements [PendingQueueRepository].
func (p *pendingQueueRepository) BumpAttempts(ctx context.Context, ids ...int64) error {
	log := logger.FromContext(ctx)

	if len(ids) == 0 {
		return nil
	}

	query, args, err := buildBumpAttemptsQuery(ids)
	if err != nil {
		return err
	}

	if _, err := p.DB.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "pendingQueueRepository.BumpAttempts").
			Int("count", len(ids)).
			Msg("failed to bump attempt counters")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// Restamp implements [PendingQueueRepository].
func (p *pendingQueueRepository) Restamp(ctx context.Context, id int64, baseTag string, payload *models.Record) error {
	log := logger.FromContext(ctx)

	payloadJSON, err := encodePendingPayload(payload)
	if err != nil {
		return err
	}

	if _, err := p.DB.ExecContext(ctx, restampPendingChange, id, baseTag, payloadJSON); err != nil {
		log.Err(err).
			Str("func", "pendingQueueRepository.Restamp").
			Int64("id", id).
			Msg("failed to restamp pending change")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// encodePendingPayload serializes a record snapshot for the queue; deletes
// carry no payload and store NULL.
func encodePendingPayload(payload *models.Record) ([]byte, error) {
	if payload == nil {
		return nil, nil
	}

	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncodingFields, err)
	}

	return payloadJSON, nil
}
