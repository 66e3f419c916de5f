// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

const (
	upsertLocalRecord = `
		INSERT INTO records (
			zone,
			record_id,
			type,
			fields,
			change_tag,
			hash,
			deleted,
			created_at,
			updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		ON CONFLICT (zone, record_id) DO UPDATE SET
			type       = excluded.type,
			fields     = excluded.fields,
			change_tag = excluded.change_tag,
			hash       = excluded.hash,
			deleted    = excluded.deleted,
			updated_at = CURRENT_TIMESTAMP;`

	getLocalRecord = `
		SELECT
			zone,
			record_id,
			type,
			fields,
			change_tag,
			hash,
			deleted,
			created_at,
			updated_at
		FROM records
		WHERE zone = $1 AND record_id = $2;`

	getLocalRecordTag = `
		SELECT change_tag
		FROM records
		WHERE zone = $1 AND record_id = $2;`

	listLocalRecords = `
		SELECT
			zone,
			record_id,
			type,
			fields,
			change_tag,
			hash,
			deleted,
			created_at,
			updated_at
		FROM records
		WHERE zone = $1 AND deleted = 0
		ORDER BY record_id;`

	listLocalStates = `
		SELECT
			zone,
			record_id,
			hash,
			change_tag,
			deleted,
			updated_at
		FROM records
		WHERE zone = $1;`

	markLocalRecordDeleted = `
		UPDATE records SET
			deleted    = 1,
			updated_at = CURRENT_TIMESTAMP
		WHERE zone = $1 AND record_id = $2;`

	dropLocalRecord = `
		DELETE FROM records
		WHERE zone = $1 AND record_id = $2;`

	setLocalRecordTag = `
		UPDATE records SET
			change_tag = $3,
			updated_at = CURRENT_TIMESTAMP
		WHERE zone = $1 AND record_id = $2;`

	// On coalescing an unsent entry the base tag is kept: the server must
	// be checked against the version the record last diverged from, not
	// against an intermediate local edit.
	enqueuePendingChange = `
		INSERT INTO pending_changes (
			zone,
			record_id,
			op,
			payload,
			base_tag,
			queued_at,
			attempts
		) VALUES ($1, $2, $3, $4, $5, CURRENT_TIMESTAMP, 0)
		ON CONFLICT (zone, record_id) DO UPDATE SET
			op        = excluded.op,
			payload   = excluded.payload,
			queued_at = excluded.queued_at,
			attempts  = 0;`

	listPendingChanges = `
		SELECT
			id,
			zone,
			record_id,
			op,
			payload,
			base_tag,
			queued_at,
			attempts
		FROM pending_changes
		WHERE zone = $1 AND id > $2
		ORDER BY id
		LIMIT $3;`

	listPendingZones = `
		SELECT DISTINCT zone
		FROM pending_changes
		ORDER BY zone;`

	restampPendingChange = `
		UPDATE pending_changes SET
			base_tag = $2,
			payload  = $3
		WHERE id = $1;`

	getSyncToken = `
		SELECT token
		FROM sync_state
		WHERE zone = $1;`

	setSyncToken = `
		INSERT INTO sync_state (zone, token)
		VALUES ($1, $2)
		ON CONFLICT (zone) DO UPDATE SET token = excluded.token;`

	resetSyncToken = `
		DELETE FROM sync_state
		WHERE zone = $1;`

	dropZoneRecords = `
		DELETE FROM records
		WHERE zone = $1;`

	dropZonePending = `
		DELETE FROM pending_changes
		WHERE zone = $1;`

	saveSession = `
		INSERT INTO session (id, login, token, user_id, saved_at)
		VALUES (1, $1, $2, $3, CURRENT_TIMESTAMP)
		ON CONFLICT (id) DO UPDATE SET
			login    = excluded.login,
			token    = excluded.token,
			user_id  = excluded.user_id,
			saved_at = excluded.saved_at;`

	getSession = `
		SELECT login, token, user_id, saved_at
		FROM session
		WHERE id = 1;`

	clearSession = `
		DELETE FROM session
		WHERE id = 1;`
)

// sqlite builds queries with ?-style placeholders for the local database.
var sqlite = sq.StatementBuilder.PlaceholderFormat(sq.Question)

// buildRemovePendingQuery deletes a set of confirmed queue entries by id.
func buildRemovePendingQuery(ids []int64) (string, []any, error) {
	query, args, err := sqlite.
		Delete("pending_changes").
		Where(sq.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildBumpAttemptsQuery increments the attempt counter of a set of entries.
func buildBumpAttemptsQuery(ids []int64) (string, []any, error) {
	query, args, err := sqlite.
		Update("pending_changes").
		Set("attempts", sq.Expr("attempts + 1")).
		Where(sq.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}
