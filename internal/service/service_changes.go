// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/zonesync/internal/config"
	"github.com/MKhiriev/zonesync/internal/logger"
	"github.com/MKhiriev/zonesync/internal/store"
	"github.com/MKhiriev/zonesync/internal/validators"
	"github.com/MKhiriev/zonesync/models"
)

// defaultPageLimit caps change-feed pages when the request and the config
// are both silent.
const defaultPageLimit = 200

// tokenVersion prefixes every encoded change token. A future format change
// bumps the version instead of breaking old cursors silently.
const tokenVersion = "v1"

// changeService is the concrete implementation of ChangeService. It owns the
// change token format and serves feed pages from the change log.
type changeService struct {
	changeLogRepository store.ChangeLogRepository
	validator           validators.Validator

	pageLimit int
	retention time.Duration

	logger *logger.Logger
}

// NewChangeService constructs a ChangeService with the paging and retention
// settings from cfg.
func NewChangeService(changeLogRepository store.ChangeLogRepository, cfg config.Sync, logger *logger.Logger) ChangeService {
	pageLimit := cfg.PageLimit
	if pageLimit <= 0 {
		pageLimit = defaultPageLimit
	}

	return &changeService{
		changeLogRepository: changeLogRepository,
		validator:           validators.NewRecordValidator(),
		pageLimit:           pageLimit,
		retention:           cfg.Retention,
		logger:              logger,
	}
}

// FetchChanges returns one page of the zone's change feed after the request
// token.
//
// The empty token reads from the beginning of the feed, which is always
// permitted: pruning keeps the newest entry per record, so a from-zero fetch
// converges on current state. A non-empty token below the pruned horizon
// fails with ErrChangeTokenExpired. A zone tombstone after the token turns
// the response into ZoneDeleted with no changes.
func (s *changeService) FetchChanges(ctx context.Context, req models.ChangesRequest) (models.ChangesResponse, error) {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, req, validators.FieldUserID, validators.FieldZone, validators.FieldPageLimit); err != nil {
		log.Err(err).Str("func", "FetchChanges").Str("zone", req.Zone).Msg("invalid changes request")
		return models.ChangesResponse{}, ErrInvalidDataProvided
	}

	sinceSeq, err := decodeChangeToken(req.Token, req.Zone)
	if err != nil {
		log.Err(err).Str("func", "FetchChanges").Str("zone", req.Zone).Msg("change token rejected")
		return models.ChangesResponse{}, err
	}

	if !req.Token.IsZero() {
		horizon, horizonErr := s.changeLogRepository.Horizon(ctx)
		if horizonErr != nil {
			return models.ChangesResponse{}, fmt.Errorf("horizon lookup failed: %w", horizonErr)
		}
		if sinceSeq < horizon {
			log.Info().
				Str("func", "FetchChanges").
				Str("zone", req.Zone).
				Int64("since_seq", sinceSeq).
				Int64("horizon", horizon).
				Msg("change token below pruned horizon")
			return models.ChangesResponse{}, ErrChangeTokenExpired
		}
	}

	zoneDeleted, err := s.changeLogRepository.ZoneDeletedSince(ctx, req.UserID, req.Zone, sinceSeq)
	if err != nil {
		return models.ChangesResponse{}, fmt.Errorf("zone tombstone lookup failed: %w", err)
	}
	if zoneDeleted {
		return models.ChangesResponse{
			Token:       encodeChangeToken(req.Zone, sinceSeq),
			ZoneDeleted: true,
		}, nil
	}

	limit := req.Limit
	if limit <= 0 || limit > s.pageLimit {
		limit = s.pageLimit
	}

	changes, lastSeq, more, err := s.changeLogRepository.ListChanges(ctx, req.UserID, req.Zone, sinceSeq, limit)
	if err != nil {
		log.Err(err).Str("func", "FetchChanges").Str("zone", req.Zone).Msg("change feed read failed")
		return models.ChangesResponse{}, fmt.Errorf("change feed read failed: %w", err)
	}

	return models.ChangesResponse{
		Changes: changes,
		Token:   encodeChangeToken(req.Zone, lastSeq),
		More:    more,
		Length:  len(changes),
	}, nil
}

// Prune removes change-log entries older than the retention window and
// advances the expiry horizon. A zero retention disables pruning.
func (s *changeService) Prune(ctx context.Context) (int64, error) {
	if s.retention <= 0 {
		return 0, nil
	}

	pruned, err := s.changeLogRepository.Prune(ctx, time.Now().Add(-s.retention))
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "Prune").Msg("change log pruning failed")
		return 0, fmt.Errorf("change log pruning failed: %w", err)
	}

	return pruned, nil
}

// encodeChangeToken produces the opaque cursor handed to clients:
// base64("v1:<zone>:<seq>").
func encodeChangeToken(zone string, seq int64) models.ChangeToken {
	raw := tokenVersion + ":" + zone + ":" + strconv.FormatInt(seq, 10)
	return models.ChangeToken(base64.RawURLEncoding.EncodeToString([]byte(raw)))
}

// decodeChangeToken reverses encodeChangeToken and checks the cursor was
// issued for the requested zone. The empty token decodes to sequence zero.
func decodeChangeToken(token models.ChangeToken, zone string) (int64, error) {
	if token.IsZero() {
		return 0, nil
	}

	raw, err := base64.RawURLEncoding.DecodeString(string(token))
	if err != nil {
		return 0, ErrInvalidChangeToken
	}

	// zone names may contain ':', so the sequence is taken from the tail
	rest, ok := strings.CutPrefix(string(raw), tokenVersion+":")
	if !ok {
		return 0, ErrInvalidChangeToken
	}
	idx := strings.LastIndexByte(rest, ':')
	if idx < 0 || rest[:idx] != zone {
		return 0, ErrInvalidChangeToken
	}

	seq, err := strconv.ParseInt(rest[idx+1:], 10, 64)
	if err != nil || seq < 0 {
		return 0, ErrInvalidChangeToken
	}

	return seq, nil
}
