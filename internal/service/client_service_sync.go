// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/MKhiriev/zonesync/internal/adapter"
	"github.com/MKhiriev/zonesync/internal/config"
	"github.com/MKhiriev/zonesync/internal/logger"
	"github.com/MKhiriev/zonesync/internal/store"
	"github.com/MKhiriev/zonesync/models"
	"github.com/sethvargo/go-retry"
)

// Transient retry tuning for one server operation.
const (
	retryBaseDelay  = 500 * time.Millisecond
	retryCappedAt   = 30 * time.Second
	retryMaxRetries = 5
)

// clientSyncService is the concrete implementation of ClientSyncService: the
// engine that moves the change feed into the local mirror and the pending
// queue onto the server.
type clientSyncService struct {
	records  store.LocalRecordRepository
	queue    store.PendingQueueRepository
	state    store.SyncStateRepository
	adapter  adapter.ServerAdapter
	resolver ConflictResolver

	batchLimit int
	pageLimit  int

	// inFlight guards each zone against concurrent sync operations.
	mu       sync.Mutex
	inFlight map[string]bool

	statusMu  sync.RWMutex
	syncing   int
	lastSync  time.Time
	lastError string

	logger *logger.Logger
}

// NewClientSyncService constructs the sync engine over the client storages,
// the server transport, and a conflict resolution policy.
func NewClientSyncService(storages *store.ClientStorages, serverAdapter adapter.ServerAdapter, resolver ConflictResolver, cfg config.ClientSync, logger *logger.Logger) ClientSyncService {
	batchLimit := cfg.BatchLimit
	if batchLimit <= 0 {
		batchLimit = defaultBatchLimit
	}
	pageLimit := cfg.PageLimit
	if pageLimit <= 0 {
		pageLimit = defaultPageLimit
	}
	if resolver == nil {
		resolver = serverWinsResolver{}
	}

	return &clientSyncService{
		records:    storages.RecordRepository,
		queue:      storages.PendingRepository,
		state:      storages.SyncStateRepository,
		adapter:    serverAdapter,
		resolver:   resolver,
		batchLimit: batchLimit,
		pageLimit:  pageLimit,
		inFlight:   make(map[string]bool),
		logger:     logger,
	}
}

// Sync implements ClientSyncService: fetch the zone's feed, then drain its
// pending queue. A concurrent call on the same zone fails with ErrZoneBusy
// without touching either side.
func (s *clientSyncService) Sync(ctx context.Context, zone string) error {
	if !s.acquireZone(zone) {
		return ErrZoneBusy
	}
	defer s.releaseZone(zone)

	err := s.FetchChanges(ctx, zone)
	if err == nil {
		err = s.SendChanges(ctx, zone)
	}

	s.recordOutcome(err)
	return err
}

// FetchChanges implements ClientSyncService.
//
// Pages are applied with their tokens atomically, so an interruption between
// pages is resumable. An expired cursor resets the token and refetches from
// the beginning exactly once; repeated expiry within one call is a server
// bug and surfaces as an error.
func (s *clientSyncService) FetchChanges(ctx context.Context, zone string) error {
	log := logger.FromContext(ctx)
	resyncDone := false

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		token, err := s.state.GetToken(ctx, zone)
		if err != nil {
			return fmt.Errorf("token lookup for zone %s: %w", zone, err)
		}

		var resp models.ChangesResponse
		err = s.withTransientRetry(ctx, func(ctx context.Context) error {
			var fetchErr error
			resp, fetchErr = s.adapter.FetchChanges(ctx, models.ChangesRequest{
				Zone:  zone,
				Token: token,
				Limit: s.pageLimit,
			})
			return fetchErr
		})
		if errors.Is(err, adapter.ErrTokenExpired) && !resyncDone {
			resyncDone = true
			log.Info().Str("func", "FetchChanges").Str("zone", zone).Msg("change token expired, full resync")
			if resetErr := s.state.ResetToken(ctx, zone); resetErr != nil {
				return fmt.Errorf("token reset for zone %s: %w", zone, resetErr)
			}
			continue
		}
		if err != nil {
			return mapAdapterError(err)
		}

		if resp.ZoneDeleted {
			log.Info().Str("func", "FetchChanges").Str("zone", zone).Msg("zone deleted on server, purging local copy")
			if purgeErr := s.records.PurgeZone(ctx, zone); purgeErr != nil {
				return fmt.Errorf("local purge of zone %s: %w", zone, purgeErr)
			}
			return nil
		}

		if applyErr := s.records.ApplyChanges(ctx, zone, resp.Changes, resp.Token); applyErr != nil {
			return fmt.Errorf("applying %d changes to zone %s: %w", len(resp.Changes), zone, applyErr)
		}

		if !resp.More {
			return nil
		}
	}
}

// SendChanges implements ClientSyncService.
//
// The queue is drained in batches behind a strictly advancing id cursor:
// entries that stay queued after their disposition was reconciled (rejected,
// quota, invalid) are passed over instead of re-listed, so one call always
// terminates and a stuck head batch never starves the tail of the queue.
// Item-level failures are collected and returned after every transmittable
// entry has been processed; transport failures abort immediately.
func (s *clientSyncService) SendChanges(ctx context.Context, zone string) error {
	var itemErr error
	afterID := int64(0)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		entries, err := s.queue.ListPending(ctx, zone, afterID, s.batchLimit)
		if err != nil {
			return fmt.Errorf("pending queue read for zone %s: %w", zone, err)
		}
		if len(entries) == 0 {
			return itemErr
		}
		afterID = entries[len(entries)-1].ID

		if batchErr, sendErr := s.sendBatch(ctx, zone, entries); sendErr != nil {
			return sendErr
		} else if batchErr != nil && itemErr == nil {
			itemErr = batchErr
		}
	}
}

// sendBatch transmits one batch of pending entries and reconciles every
// per-item disposition. The second return value is a transport failure; the
// first collects item-level failures that leave entries queued.
func (s *clientSyncService) sendBatch(ctx context.Context, zone string, entries []models.PendingChange) (error, error) {
	log := logger.FromContext(ctx)

	var (
		saveEntries   []models.PendingChange
		deleteEntries []models.PendingChange
		req           = models.CommitRequest{Zone: zone}
		ids           = make([]int64, 0, len(entries))
	)

	for _, entry := range entries {
		ids = append(ids, entry.ID)
		switch entry.Op {
		case models.OpSave:
			if entry.Payload == nil {
				// a save intent without a payload cannot be transmitted
				log.Error().Str("zone", zone).Str("record_id", entry.RecordID).Msg("dropping save intent without payload")
				if err := s.queue.Remove(ctx, entry.ID); err != nil {
					return nil, fmt.Errorf("removing malformed entry %d: %w", entry.ID, err)
				}
				continue
			}
			req.Saves = append(req.Saves, models.RecordSave{Record: *entry.Payload, BaseTag: entry.BaseTag})
			saveEntries = append(saveEntries, entry)
		case models.OpDelete:
			req.Deletes = append(req.Deletes, models.RecordDelete{RecordID: entry.RecordID, BaseTag: entry.BaseTag})
			deleteEntries = append(deleteEntries, entry)
		}
	}

	req.Length = req.Items()
	if req.Length == 0 {
		return nil, nil
	}

	if err := s.queue.BumpAttempts(ctx, ids...); err != nil {
		return nil, fmt.Errorf("bumping attempts: %w", err)
	}

	resp, err := s.commit(ctx, req)
	if err != nil {
		return nil, mapAdapterError(err)
	}

	var itemErr error
	for i, result := range resp.Results {
		var entry models.PendingChange
		if i < len(saveEntries) {
			entry = saveEntries[i]
		} else if i-len(saveEntries) < len(deleteEntries) {
			entry = deleteEntries[i-len(saveEntries)]
		} else {
			break
		}

		resErr := s.reconcileItem(ctx, zone, entry, result)
		if resErr != nil && itemErr == nil {
			itemErr = resErr
		}
	}

	return itemErr, nil
}

// commit sends one commit request with transient retry; a batch the server
// refuses as too large is split in half and both halves are retried, keeping
// result order.
func (s *clientSyncService) commit(ctx context.Context, req models.CommitRequest) (models.CommitResponse, error) {
	var resp models.CommitResponse
	err := s.withTransientRetry(ctx, func(ctx context.Context) error {
		var commitErr error
		resp, commitErr = s.adapter.Commit(ctx, req)
		return commitErr
	})
	if err == nil {
		return resp, nil
	}
	if !errors.Is(err, adapter.ErrBatchTooLarge) || req.Items() <= 1 {
		return models.CommitResponse{}, err
	}

	first, second := splitCommitRequest(req)

	respFirst, err := s.commit(ctx, first)
	if err != nil {
		return models.CommitResponse{}, err
	}
	respSecond, err := s.commit(ctx, second)
	if err != nil {
		return models.CommitResponse{}, err
	}

	results := append(respFirst.Results, respSecond.Results...)
	return models.CommitResponse{Results: results, Length: len(results)}, nil
}

// reconcileItem applies one server disposition to the queue and the mirror.
// A non-nil return leaves the entry queued for a later cycle.
func (s *clientSyncService) reconcileItem(ctx context.Context, zone string, entry models.PendingChange, result models.ItemResult) error {
	log := logger.FromContext(ctx)

	switch result.Status {
	case models.ItemOK, models.ItemAlreadyApplied:
		if err := s.queue.Remove(ctx, entry.ID); err != nil {
			return fmt.Errorf("removing confirmed entry %d: %w", entry.ID, err)
		}
		if entry.Op == models.OpSave && result.ChangeTag != "" {
			if err := s.records.ConfirmSave(ctx, zone, entry.RecordID, result.ChangeTag); err != nil {
				return fmt.Errorf("stamping confirmed save %s: %w", entry.RecordID, err)
			}
		}
		return nil

	case models.ItemUnknown:
		if entry.Op == models.OpDelete {
			// the record never reached the server; the intent is satisfied
			return s.queue.Remove(ctx, entry.ID)
		}
		// a save against a record the server lost: retry as a fresh insert
		return s.queue.Restamp(ctx, entry.ID, "", entry.Payload)

	case models.ItemConflict:
		return s.resolveConflict(ctx, zone, entry, result)

	case models.ItemQuotaExceeded:
		log.Error().Str("zone", zone).Str("record_id", entry.RecordID).Msg("save denied by storage quota")
		return ErrQuotaExceeded

	case models.ItemInvalid:
		log.Error().
			Str("zone", zone).
			Str("record_id", entry.RecordID).
			Str("message", result.Message).
			Msg("server rejected entry as invalid")
		return fmt.Errorf("%w: %s", ErrInvalidDataProvided, result.Message)

	case models.ItemRejected:
		// aborted by an atomic sibling; the entry stays queued
		return nil

	default:
		return fmt.Errorf("unknown item status %q for record %s", result.Status, entry.RecordID)
	}
}

// resolveConflict routes a tag mismatch through the resolver and applies the
// verdict: accept the server copy into the mirror and drop the intent, or
// restamp the intent with the server's current tag for the next send.
func (s *clientSyncService) resolveConflict(ctx context.Context, zone string, entry models.PendingChange, result models.ItemResult) error {
	log := logger.FromContext(ctx)

	conflict := Conflict{
		Zone:   zone,
		Op:     entry.Op,
		Local:  entry.Payload,
		Remote: result.ServerRecord,
	}

	resolution, err := s.resolver.Resolve(ctx, conflict)
	if err != nil {
		return fmt.Errorf("resolving conflict for %s: %w", entry.RecordID, err)
	}

	token, err := s.state.GetToken(ctx, zone)
	if err != nil {
		return fmt.Errorf("token lookup for zone %s: %w", zone, err)
	}

	if resolution.AcceptRemote {
		change := models.RecordChange{
			RecordID: entry.RecordID,
			Deleted:  result.ServerRecord == nil || result.ServerRecord.Deleted,
			Record:   result.ServerRecord,
		}
		if change.Deleted {
			change.Record = nil
		}
		if err := s.records.ApplyChanges(ctx, zone, []models.RecordChange{change}, token); err != nil {
			return fmt.Errorf("accepting server copy of %s: %w", entry.RecordID, err)
		}
		log.Info().Str("zone", zone).Str("record_id", entry.RecordID).Msg("conflict resolved, server copy accepted")
		return s.queue.Remove(ctx, entry.ID)
	}

	remoteTag := ""
	if result.ServerRecord != nil {
		remoteTag = result.ServerRecord.ChangeTag
	}

	payload := resolution.Record
	if entry.Op == models.OpSave && payload == nil {
		payload = entry.Payload
	}
	if payload != nil {
		// the mirror reflects the resolved content and the tag it will be
		// retried against
		resolved := payload.Clone()
		resolved.ChangeTag = remoteTag
		change := models.RecordChange{RecordID: entry.RecordID, Record: &resolved}
		if err := s.records.ApplyChanges(ctx, zone, []models.RecordChange{change}, token); err != nil {
			return fmt.Errorf("storing resolved copy of %s: %w", entry.RecordID, err)
		}
		payload = &resolved
	}

	log.Info().Str("zone", zone).Str("record_id", entry.RecordID).Msg("conflict resolved, local intent restamped")
	return s.queue.Restamp(ctx, entry.ID, remoteTag, payload)
}

// Zones implements ClientSyncService. The server's zone list is merged with
// the zones holding queued mutations, so offline work is not skipped when
// the server is unreachable.
func (s *clientSyncService) Zones(ctx context.Context) ([]string, error) {
	set := make(map[string]bool)

	zones, err := s.adapter.ListZones(ctx)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "Zones").Msg("server zone listing unavailable")
	} else {
		for _, zone := range zones {
			set[zone.Name] = true
		}
	}

	pending, err := s.queue.ListZonesWithPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("pending zone listing: %w", err)
	}
	for _, zone := range pending {
		set[zone] = true
	}

	names := make([]string, 0, len(set))
	for zone := range set {
		names = append(names, zone)
	}
	sort.Strings(names)

	return names, nil
}

// Status implements ClientSyncService.
func (s *clientSyncService) Status(ctx context.Context) SyncStatus {
	pending, err := s.queue.ListZonesWithPending(ctx)
	if err != nil {
		pending = nil
	}

	s.statusMu.RLock()
	defer s.statusMu.RUnlock()

	return SyncStatus{
		Syncing:      s.syncing > 0,
		LastSync:     s.lastSync,
		LastError:    s.lastError,
		PendingZones: pending,
	}
}

// withTransientRetry runs op with capped exponential backoff and jitter.
// Only transient transport failures are retried; a rate limit honors the
// server-suggested delay before the next attempt.
func (s *clientSyncService) withTransientRetry(ctx context.Context, op func(context.Context) error) error {
	backoff := retry.NewExponential(retryBaseDelay)
	backoff = retry.WithCappedDuration(retryCappedAt, backoff)
	backoff = retry.WithJitterPercent(20, backoff)
	backoff = retry.WithMaxRetries(retryMaxRetries, backoff)

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := op(ctx)
		if err == nil {
			return nil
		}

		var rateLimited *adapter.RateLimitError
		if errors.As(err, &rateLimited) && rateLimited.RetryAfter > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(rateLimited.RetryAfter):
			}
			return retry.RetryableError(err)
		}

		if errors.Is(err, adapter.ErrUnavailable) || errors.Is(err, adapter.ErrRateLimited) {
			return retry.RetryableError(err)
		}

		return err
	})
}

func (s *clientSyncService) acquireZone(zone string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.inFlight[zone] {
		return false
	}
	s.inFlight[zone] = true

	s.statusMu.Lock()
	s.syncing++
	s.statusMu.Unlock()

	return true
}

func (s *clientSyncService) releaseZone(zone string) {
	s.mu.Lock()
	delete(s.inFlight, zone)
	s.mu.Unlock()

	s.statusMu.Lock()
	s.syncing--
	s.statusMu.Unlock()
}

func (s *clientSyncService) recordOutcome(err error) {
	s.statusMu.Lock()
	defer s.statusMu.Unlock()

	if err != nil {
		s.lastError = err.Error()
		return
	}
	s.lastSync = time.Now()
	s.lastError = ""
}

// splitCommitRequest halves a request the server refused as too large,
// preserving the saves-then-deletes item order across the halves.
func splitCommitRequest(req models.CommitRequest) (models.CommitRequest, models.CommitRequest) {
	half := req.Items() / 2

	first := models.CommitRequest{UserID: req.UserID, Zone: req.Zone, Atomic: req.Atomic}
	second := models.CommitRequest{UserID: req.UserID, Zone: req.Zone, Atomic: req.Atomic}

	if half <= len(req.Saves) {
		first.Saves = req.Saves[:half]
		second.Saves = req.Saves[half:]
		second.Deletes = req.Deletes
	} else {
		first.Saves = req.Saves
		first.Deletes = req.Deletes[:half-len(req.Saves)]
		second.Deletes = req.Deletes[half-len(req.Saves):]
	}

	first.Length = first.Items()
	second.Length = second.Items()
	return first, second
}
