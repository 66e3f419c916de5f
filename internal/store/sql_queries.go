package store

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

const (
	createUser = `INSERT INTO users (login, password_hash)
    VALUES ($1, $2)
    RETURNING user_id, login, password_hash, created_at;`

	findUserByLogin = `SELECT user_id, login, password_hash, created_at
    FROM users
    WHERE login = $1;`

	createZone = `INSERT INTO zones (user_id, name)
		VALUES ($1, $2)
		RETURNING user_id, name, created_at;`

	deleteZone = `DELETE FROM zones
		WHERE user_id = $1 AND name = $2;`

	zoneExists = `SELECT EXISTS (
		SELECT 1 FROM zones WHERE user_id = $1 AND name = $2
	);`

	getRecordForUpdate = `SELECT change_tag, hash, size_bytes, deleted
		FROM records
		WHERE user_id = $1 AND zone = $2 AND record_id = $3
		FOR UPDATE;`

	getRecord = `SELECT user_id, zone, record_id, type, fields, change_tag, hash, deleted, created_at, updated_at
		FROM records
		WHERE user_id = $1 AND zone = $2 AND record_id = $3;`

	insertRecord = `INSERT INTO records (user_id, zone, record_id, type, fields, refs, change_tag, hash, size_bytes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);`

	updateRecord = `UPDATE records SET
			type       = $4,
			fields     = $5,
			refs       = $6,
			change_tag = $7,
			hash       = $8,
			size_bytes = $9,
			deleted    = false,
			updated_at = NOW()
		WHERE user_id = $1 AND zone = $2 AND record_id = $3;`

	softDeleteRecord = `UPDATE records SET
			deleted    = true,
			change_tag = $4,
			size_bytes = 0,
			updated_at = NOW()
		WHERE user_id = $1 AND zone = $2 AND record_id = $3;`

	deleteZoneRecords = `DELETE FROM records
		WHERE user_id = $1 AND zone = $2;`

	insertChangeLogEntry = `INSERT INTO change_log (user_id, zone, record_id, op, change_tag)
		VALUES ($1, $2, $3, $4, $5);`

	zoneDeletedSince = `SELECT EXISTS (
		SELECT 1 FROM change_log
		WHERE user_id = $1 AND zone = $2 AND op = 'zone_delete' AND seq > $3
	);`

	getHorizon = `SELECT horizon FROM prune_state WHERE id = 1;`

	// The newest entry per record survives pruning so a fetch from the
	// empty token still converges on current state.
	pruneChangeLog = `DELETE FROM change_log
		WHERE at < $1
		  AND seq NOT IN (
			SELECT MAX(seq) FROM change_log
			GROUP BY user_id, zone, record_id
		  )
		RETURNING seq;`

	advanceHorizon = `UPDATE prune_state
		SET horizon = GREATEST(horizon, $1), pruned_at = NOW()
		WHERE id = 1;`
)

// psql builds queries with PostgreSQL-style $N placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// buildSelectChangesQuery builds the change-feed page query: log entries for
// one user and zone after sinceSeq, joined with the current record bodies.
// The limit is requested as limit+1 so the caller can detect another page.
func buildSelectChangesQuery(userID int64, zone string, sinceSeq int64, limit int) (string, []any, error) {
	query, args, err := psql.
		Select(
			"c.seq", "c.record_id", "c.op",
			"r.type", "r.fields", "r.change_tag", "r.hash", "r.deleted", "r.created_at", "r.updated_at",
		).
		From("change_log AS c").
		LeftJoin("records AS r ON r.user_id = c.user_id AND r.zone = c.zone AND r.record_id = c.record_id").
		Where(sq.Eq{"c.user_id": userID, "c.zone": zone}).
		Where(sq.Gt{"c.seq": sinceSeq}).
		Where(sq.NotEq{"c.op": "zone_delete"}).
		OrderBy("c.seq ASC").
		Limit(uint64(limit + 1)).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildSelectZonesQuery builds the zone listing for one user.
func buildSelectZonesQuery(userID int64) (string, []any, error) {
	query, args, err := psql.
		Select("user_id", "name", "created_at").
		From("zones").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildSelectCascadeQuery finds live records in one zone that reference the
// given record with the cascade action. The refs column holds a JSONB array
// of {"record_id": ..., "action": ...} objects, so containment (@>) matches
// exactly the cascading children.
func buildSelectCascadeQuery(userID int64, zone, recordID string) (string, []any, error) {
	containment := fmt.Sprintf(`[{"record_id": %q, "action": "cascade"}]`, recordID)

	query, args, err := psql.
		Select("record_id").
		From("records").
		Where(sq.Eq{"user_id": userID, "zone": zone, "deleted": false}).
		Where("refs @> ?::jsonb", containment).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildUsageQuery sums the stored payload bytes of one user's live records.
func buildUsageQuery(userID int64) (string, []any, error) {
	query, args, err := psql.
		Select("COALESCE(SUM(size_bytes), 0)").
		From("records").
		Where(sq.Eq{"user_id": userID, "deleted": false}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}
