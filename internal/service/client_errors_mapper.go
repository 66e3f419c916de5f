// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"strings"

	"github.com/MKhiriev/zonesync/internal/adapter"
	"github.com/MKhiriev/zonesync/internal/app"
	"github.com/MKhiriev/zonesync/internal/store"
)

// mapAdapterError translates the adapter's transport error into a service
// business error. Transient errors (rate limit, unavailable) pass through
// untouched so the engine's retry policy can see them.
func mapAdapterError(err error) error {
	if err == nil {
		return nil
	}

	msg := extractBody(err)

	switch {
	case errors.Is(err, adapter.ErrBadRequest):
		return ErrInvalidDataProvided

	case errors.Is(err, adapter.ErrUnauthorized):
		switch msg {
		case app.MsgInvalidLoginPassword:
			return ErrWrongPassword
		case app.MsgTokenIsExpiredOrInvalid:
			return ErrTokenIsExpiredOrInvalid
		}
		return ErrNotAuthenticated

	case errors.Is(err, adapter.ErrZoneNotFound):
		return store.ErrZoneNotFound

	case errors.Is(err, adapter.ErrConflict):
		switch msg {
		case app.MsgLoginAlreadyExists:
			return store.ErrLoginAlreadyExists
		case app.MsgZoneAlreadyExists:
			return store.ErrZoneAlreadyExists
		}

	case errors.Is(err, adapter.ErrTokenExpired):
		return ErrChangeTokenExpired

	case errors.Is(err, adapter.ErrBatchTooLarge):
		return ErrBatchTooLarge

	case errors.Is(err, adapter.ErrQuotaExceeded):
		return ErrQuotaExceeded

	case errors.Is(err, adapter.ErrInternalServerError):
		switch msg {
		case app.MsgRegistrationFailed:
			return ErrRegisterOnServer
		case app.MsgLoginFailed:
			return ErrLoginOnServer
		}
	}

	return err
}

// extractBody extracts the body from a message of the form
// "unauthorized: <body>".
func extractBody(err error) string {
	msg := err.Error()
	if idx := strings.Index(msg, ": "); idx != -1 {
		return msg[idx+2:]
	}
	return msg
}
