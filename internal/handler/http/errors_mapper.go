package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/zonesync/internal/app"
	"github.com/MKhiriev/zonesync/internal/service"
	"github.com/MKhiriev/zonesync/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided: http.StatusBadRequest,
	service.ErrInvalidChangeToken:  http.StatusBadRequest,

	service.ErrWrongPassword:           http.StatusUnauthorized,
	service.ErrTokenIsExpired:          http.StatusUnauthorized,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,

	store.ErrNoUserWasFound: http.StatusNotFound,
	store.ErrZoneNotFound:   http.StatusNotFound,
	store.ErrRecordNotFound: http.StatusNotFound,

	store.ErrLoginAlreadyExists: http.StatusConflict,
	store.ErrZoneAlreadyExists:  http.StatusConflict,

	service.ErrChangeTokenExpired: http.StatusGone,
	service.ErrBatchTooLarge:      http.StatusRequestEntityTooLarge,
	service.ErrQuotaExceeded:      http.StatusInsufficientStorage,

	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrExecutingStatement:   http.StatusInternalServerError,
	store.ErrScanningRow:          http.StatusInternalServerError,
	store.ErrScanningRows:         http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// messageFromError picks the response body for an error. Bodies are part of
// the API contract: clients match them verbatim to recover business errors
// from transport failures, so every branch must return an app.Msg* constant.
func messageFromError(err error) string {
	switch {
	case errors.Is(err, service.ErrInvalidDataProvided),
		errors.Is(err, service.ErrInvalidChangeToken):
		return app.MsgInvalidDataProvided
	case errors.Is(err, service.ErrWrongPassword),
		errors.Is(err, store.ErrNoUserWasFound):
		return app.MsgInvalidLoginPassword
	case errors.Is(err, service.ErrTokenIsExpired),
		errors.Is(err, service.ErrTokenIsExpiredOrInvalid):
		return app.MsgTokenIsExpiredOrInvalid
	case errors.Is(err, store.ErrLoginAlreadyExists):
		return app.MsgLoginAlreadyExists
	case errors.Is(err, store.ErrZoneNotFound):
		return app.MsgZoneNotFound
	case errors.Is(err, store.ErrZoneAlreadyExists):
		return app.MsgZoneAlreadyExists
	case errors.Is(err, service.ErrChangeTokenExpired):
		return app.MsgTokenExpired
	case errors.Is(err, service.ErrBatchTooLarge):
		return app.MsgBatchTooLarge
	case errors.Is(err, service.ErrQuotaExceeded):
		return app.MsgQuotaExceeded
	default:
		return app.MsgInternalServerError
	}
}

// writeError maps a service error to its HTTP status and contractual body.
func writeError(w http.ResponseWriter, err error) {
	http.Error(w, messageFromError(err), statusFromError(err))
}
