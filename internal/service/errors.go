package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrWrongPassword       = errors.New("wrong password")

	ErrTokenIsExpired          = errors.New("token is expired")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	// ErrBatchTooLarge rejects a commit whose item count exceeds the
	// configured batch limit. The client is expected to split and retry.
	ErrBatchTooLarge = errors.New("batch exceeds the allowed item limit")

	// ErrQuotaExceeded surfaces a whole-batch quota failure to the caller.
	ErrQuotaExceeded = errors.New("storage quota exceeded")

	// ErrChangeTokenExpired marks a change token pointing below the pruned
	// feed horizon. Incremental fetching is no longer possible and the
	// client must resynchronize from scratch.
	ErrChangeTokenExpired = errors.New("change token expired")

	// ErrInvalidChangeToken marks a token the server cannot decode or one
	// issued for a different zone.
	ErrInvalidChangeToken = errors.New("invalid change token")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")

	// Client-side sentinels.

	// ErrZoneBusy reports a concurrent sync attempt on a zone that already
	// has an operation in flight.
	ErrZoneBusy = errors.New("zone sync already in progress")

	// ErrNotAuthenticated is returned by client services that need a
	// session before any server call can be made.
	ErrNotAuthenticated = errors.New("not authenticated")

	ErrRegisterOnServer = errors.New("registration failed on server")
	ErrLoginOnServer    = errors.New("login failed on server")
)
