// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/zonesync/internal/config"
	"github.com/MKhiriev/zonesync/internal/logger"
	"github.com/MKhiriev/zonesync/internal/store"
	"github.com/MKhiriev/zonesync/internal/validators"
	"github.com/MKhiriev/zonesync/models"
)

// defaultBatchLimit caps commit batches when no limit is configured.
const defaultBatchLimit = 400

// recordService is the concrete implementation of RecordService. Commit
// batches pass per-item validation here; tag comparison, cascades, and quota
// accounting happen inside the repository transaction.
type recordService struct {
	recordRepository store.RecordRepository
	validator        validators.Validator

	batchLimit int
	quotaBytes int64

	logger *logger.Logger
}

// NewRecordService constructs a RecordService bound to the given repository
// with the batch and quota limits from cfg.
func NewRecordService(recordRepository store.RecordRepository, cfg config.Sync, logger *logger.Logger) RecordService {
	batchLimit := cfg.BatchLimit
	if batchLimit <= 0 {
		batchLimit = defaultBatchLimit
	}

	return &recordService{
		recordRepository: recordRepository,
		validator:        validators.NewRecordValidator(),
		batchLimit:       batchLimit,
		quotaBytes:       cfg.QuotaBytes,
		logger:           logger,
	}
}

// Commit applies one batch of record mutations.
//
// Oversized batches fail with ErrBatchTooLarge before any item is examined.
// Each item is then validated independently: invalid items report
// ItemInvalid in the response while valid siblings proceed. In atomic mode
// a single invalid item aborts the batch and every valid item reports
// ItemRejected without touching storage.
//
// Results always come back in request order, saves first, then deletes.
func (s *recordService) Commit(ctx context.Context, req models.CommitRequest) (models.CommitResponse, error) {
	log := logger.FromContext(ctx)

	if req.Items() > s.batchLimit {
		log.Error().
			Str("func", "Commit").
			Str("zone", req.Zone).
			Int("items", req.Items()).
			Int("limit", s.batchLimit).
			Msg("batch over the item limit")
		return models.CommitResponse{}, ErrBatchTooLarge
	}

	if err := s.validator.Validate(ctx, req, validators.FieldUserID, validators.FieldZone); err != nil {
		log.Err(err).Str("func", "Commit").Str("zone", req.Zone).Msg("invalid commit request")
		return models.CommitResponse{}, ErrInvalidDataProvided
	}

	invalid := s.validateItems(ctx, &req)

	if len(invalid) > 0 && req.Atomic {
		return s.rejectAtomicBatch(req, invalid), nil
	}

	valid, positions := splitValidItems(req, invalid)

	var applied models.CommitResponse
	if valid.Items() > 0 {
		var err error
		applied, err = s.recordRepository.Commit(ctx, valid, s.quotaBytes)
		if err != nil {
			log.Err(err).Str("func", "Commit").Str("zone", req.Zone).Msg("commit batch failed")
			return models.CommitResponse{}, fmt.Errorf("commit batch failed: %w", err)
		}
	}

	return mergeResults(req, invalid, applied, positions), nil
}

// validateItems checks every batch item in isolation and returns the invalid
// ones keyed by their position in request order (saves first, then deletes).
// Duplicate record identities are invalid past their first occurrence so
// per-item resolution stays order-independent.
func (s *recordService) validateItems(ctx context.Context, req *models.CommitRequest) map[int]models.ItemResult {
	invalid := make(map[int]models.ItemResult)
	seen := make(map[string]bool, req.Items())

	markInvalid := func(pos int, recordID string, err error) {
		invalid[pos] = models.ItemResult{
			RecordID: recordID,
			Status:   models.ItemInvalid,
			Message:  err.Error(),
		}
	}

	for i := range req.Saves {
		record := &req.Saves[i].Record
		if record.Zone != "" && record.Zone != req.Zone {
			markInvalid(i, record.RecordID, validators.ErrZoneMismatch)
			continue
		}
		record.Zone = req.Zone

		if err := s.validator.Validate(ctx, record); err != nil {
			markInvalid(i, record.RecordID, err)
			continue
		}
		if seen[record.RecordID] {
			markInvalid(i, record.RecordID, validators.ErrDuplicateRecordID)
			continue
		}
		seen[record.RecordID] = true

		record.UserID = req.UserID
		record.Stamp()
	}

	for i, del := range req.Deletes {
		pos := len(req.Saves) + i
		if del.RecordID == "" {
			markInvalid(pos, del.RecordID, validators.ErrInvalidRecordID)
			continue
		}
		if seen[del.RecordID] {
			markInvalid(pos, del.RecordID, validators.ErrDuplicateRecordID)
			continue
		}
		seen[del.RecordID] = true
	}

	return invalid
}

// rejectAtomicBatch builds the all-or-nothing response: invalid items keep
// their validation verdict, everything else reports rejected.
func (s *recordService) rejectAtomicBatch(req models.CommitRequest, invalid map[int]models.ItemResult) models.CommitResponse {
	results := make([]models.ItemResult, 0, req.Items())

	for pos := 0; pos < req.Items(); pos++ {
		if res, ok := invalid[pos]; ok {
			results = append(results, res)
			continue
		}
		results = append(results, models.ItemResult{
			RecordID: recordIDAt(req, pos),
			Status:   models.ItemRejected,
		})
	}

	return models.CommitResponse{Results: results, Length: len(results)}
}

// splitValidItems extracts the items that passed validation into a new
// request preserving relative order, and records each extracted item's
// position in the original request so results can be merged back.
func splitValidItems(req models.CommitRequest, invalid map[int]models.ItemResult) (models.CommitRequest, []int) {
	valid := models.CommitRequest{
		UserID: req.UserID,
		Zone:   req.Zone,
		Atomic: req.Atomic,
	}
	positions := make([]int, 0, req.Items()-len(invalid))

	for i, save := range req.Saves {
		if _, bad := invalid[i]; bad {
			continue
		}
		valid.Saves = append(valid.Saves, save)
		positions = append(positions, i)
	}
	for i, del := range req.Deletes {
		pos := len(req.Saves) + i
		if _, bad := invalid[pos]; bad {
			continue
		}
		valid.Deletes = append(valid.Deletes, del)
		positions = append(positions, pos)
	}

	valid.Length = valid.Items()
	return valid, positions
}

// mergeResults interleaves repository results with validation failures back
// into request order.
func mergeResults(req models.CommitRequest, invalid map[int]models.ItemResult, applied models.CommitResponse, positions []int) models.CommitResponse {
	results := make([]models.ItemResult, req.Items())

	for pos, res := range invalid {
		results[pos] = res
	}
	for i, pos := range positions {
		if i < len(applied.Results) {
			results[pos] = applied.Results[i]
		}
	}

	return models.CommitResponse{Results: results, Length: len(results)}
}

// recordIDAt returns the record identity at the given request-order position.
func recordIDAt(req models.CommitRequest, pos int) string {
	if pos < len(req.Saves) {
		return req.Saves[pos].Record.RecordID
	}
	return req.Deletes[pos-len(req.Saves)].RecordID
}
