package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrLoginAlreadyExists is returned when an attempt to register a new user
	// fails because a user with the same login already exists in the database.
	ErrLoginAlreadyExists = errors.New("login already exists")

	// ErrNoUserWasFound is returned when a query expected to match at least one
	// user record produces an empty result set.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrZoneAlreadyExists is returned when creating a zone whose name is
	// already taken by the same user.
	ErrZoneAlreadyExists = errors.New("zone already exists")

	// ErrZoneNotFound is returned when an operation targets a zone that does
	// not exist for the user and no deletion tombstone explains its absence.
	ErrZoneNotFound = errors.New("zone was not found")

	// ErrRecordNotFound is returned when a query targets a record (identified
	// by zone and record_id) that does not exist in the database.
	ErrRecordNotFound = errors.New("record was not found")

	// ErrNoSession is returned when the client has no stored session and an
	// operation requires an authenticated one.
	ErrNoSession = errors.New("no stored session")

	// ErrTokenBelowHorizon is returned when a change-feed read starts below
	// the pruned change-log horizon: entries the client has never seen were
	// already discarded, so an incremental fetch can no longer be correct and
	// the client must perform a full resynchronization.
	ErrTokenBelowHorizon = errors.New("change token is below the pruned horizon")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan record row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan record rows")

	// ErrEncodingFields is returned when a record's field map cannot be
	// serialized for storage.
	ErrEncodingFields = errors.New("failed to encode record fields")

	// ErrDecodingFields is returned when a stored field map cannot be
	// deserialized back into a record.
	ErrDecodingFields = errors.New("failed to decode record fields")
)
