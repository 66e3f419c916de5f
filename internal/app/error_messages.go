// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// zonesync server handlers and middleware.
//
// All Msg* constants are human-readable message strings that are written into
// HTTP response bodies or log entries to describe the outcome of an operation.
// Keeping them in one place ensures consistent wording throughout the API.
package app

const (
	// MsgInvalidDataProvided is returned when the request body cannot be
	// decoded or fails basic validation (e.g. missing required fields).
	MsgInvalidDataProvided = "invalid data provided"

	// MsgInvalidLoginPassword is returned when the supplied login/password
	// combination does not match any existing user record.
	MsgInvalidLoginPassword = "invalid login/password"

	// MsgInternalServerError is returned when an unexpected server-side
	// failure occurs that the client cannot resolve.
	MsgInternalServerError = "internal server error"

	// MsgTokenIsExpiredOrInvalid is returned when a JWT bearer token is
	// either expired or cannot be verified (e.g. wrong signature).
	MsgTokenIsExpiredOrInvalid = "token is expired or invalid"

	// MsgNoUserIDProvided is returned when a handler requires a user ID
	// (e.g. extracted from the JWT claim) but none is present in the
	// request context.
	MsgNoUserIDProvided = "no user ID provided"

	// MsgLoginAlreadyExists is returned when a registration attempt is
	// rejected because the requested login is already in use.
	MsgLoginAlreadyExists = "login already exists"

	// MsgRegistrationFailed is returned when the registration handler
	// encounters an unexpected error that prevents account creation.
	MsgRegistrationFailed = "registration failed"

	// MsgLoginFailed is returned when the login handler encounters an
	// unexpected error that prevents issuing a session token.
	MsgLoginFailed = "login failed"

	// MsgZoneNotFound is returned when an operation targets a zone that
	// does not exist for the authenticated user.
	MsgZoneNotFound = "zone not found"

	// MsgZoneAlreadyExists is returned when a zone creation attempt is
	// rejected because the name is already taken by the same user.
	MsgZoneAlreadyExists = "zone already exists"

	// MsgBatchTooLarge is returned when a commit batch carries more items
	// than the server-side batch limit allows.
	MsgBatchTooLarge = "commit batch exceeds the batch limit"

	// MsgTokenExpired is returned when a change token points below the
	// pruned change-log horizon and an incremental fetch is impossible.
	// The client must perform a full resynchronization.
	MsgTokenExpired = "change token expired, full resync required"

	// MsgQuotaExceeded is returned when applying a commit would push the
	// user's stored bytes over the configured quota.
	MsgQuotaExceeded = "storage quota exceeded"

	// MsgRateLimited is returned alongside a Retry-After header when the
	// per-user request budget is exhausted.
	MsgRateLimited = "rate limit exceeded, retry later"

	// MsgVersionIsNotSpecified is returned when the build version is not
	// configured and the version endpoint cannot serve a value.
	MsgVersionIsNotSpecified = "version is not specified"

	// MsgHashMismatch is returned when the transport integrity hash of a
	// request body does not match the payload.
	MsgHashMismatch = "request body hash mismatch"
)
