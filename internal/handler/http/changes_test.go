// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MKhiriev/zonesync/internal/app"
	"github.com/MKhiriev/zonesync/internal/config"
	"github.com/MKhiriev/zonesync/internal/logger"
	"github.com/MKhiriev/zonesync/internal/service"
	"github.com/MKhiriev/zonesync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// Mock ChangeService
// ─────────────────────────────────────────────

type mockChangeService struct {
	fetchChangesFn func(ctx context.Context, req models.ChangesRequest) (models.ChangesResponse, error)
	pruneFn        func(ctx context.Context) (int64, error)
}

func (m *mockChangeService) FetchChanges(ctx context.Context, req models.ChangesRequest) (models.ChangesResponse, error) {
	return m.fetchChangesFn(ctx, req)
}

func (m *mockChangeService) Prune(ctx context.Context) (int64, error) {
	return m.pruneFn(ctx)
}

func newHandlerWithChanges(changes service.ChangeService) *Handler {
	return NewHandler(
		&service.Services{ChangeService: changes},
		config.Server{},
		logger.Nop(),
	)
}

func changesBody(t *testing.T, req models.ChangesRequest) string {
	t.Helper()
	b, err := json.Marshal(req)
	require.NoError(t, err)
	return string(b)
}

// ─────────────────────────────────────────────
// fetchChanges
// ─────────────────────────────────────────────

func TestFetchChanges_Success(t *testing.T) {
	want := models.ChangesResponse{
		Changes: []models.RecordChange{{RecordID: "rec-1"}},
		Token:   "next-token",
		More:    true,
		Length:  1,
	}

	changes := &mockChangeService{
		fetchChangesFn: func(_ context.Context, req models.ChangesRequest) (models.ChangesResponse, error) {
			assert.Equal(t, "notes", req.Zone)
			assert.Equal(t, models.ChangeToken("prev-token"), req.Token)
			return want, nil
		},
	}

	body := changesBody(t, models.ChangesRequest{Zone: "notes", Token: "prev-token"})

	h := newHandlerWithChanges(changes)
	rec := httptest.NewRecorder()

	h.fetchChanges(rec, authedRequest(http.MethodPost, "/api/changes/fetch", body, 7))

	require.Equal(t, http.StatusOK, rec.Code)

	var got models.ChangesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, want, got)
}

// TestFetchChanges_UserIDFromContext проверяет, что владелец фида берётся
// из токена, а не из тела запроса.
func TestFetchChanges_UserIDFromContext(t *testing.T) {
	changes := &mockChangeService{
		fetchChangesFn: func(_ context.Context, req models.ChangesRequest) (models.ChangesResponse, error) {
			assert.Equal(t, int64(42), req.UserID)
			return models.ChangesResponse{}, nil
		},
	}

	body := changesBody(t, models.ChangesRequest{UserID: 1, Zone: "notes"})

	h := newHandlerWithChanges(changes)
	rec := httptest.NewRecorder()

	h.fetchChanges(rec, authedRequest(http.MethodPost, "/api/changes/fetch", body, 42))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestFetchChanges_NoUserID(t *testing.T) {
	h := newHandlerWithChanges(&mockChangeService{})

	req := injectNopLogger(httptest.NewRequest(http.MethodPost, "/api/changes/fetch", strings.NewReader("{}")))
	rec := httptest.NewRecorder()

	h.fetchChanges(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), app.MsgNoUserIDProvided)
}

func TestFetchChanges_InvalidJSON(t *testing.T) {
	h := newHandlerWithChanges(&mockChangeService{})
	rec := httptest.NewRecorder()

	h.fetchChanges(rec, authedRequest(http.MethodPost, "/api/changes/fetch", "not json", 7))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), app.MsgInvalidDataProvided)
}

// TestFetchChanges_TokenExpired verifies the resync contract: a token below
// the pruned horizon answers 410 Gone with the exact body clients match on.
func TestFetchChanges_TokenExpired(t *testing.T) {
	changes := &mockChangeService{
		fetchChangesFn: func(_ context.Context, _ models.ChangesRequest) (models.ChangesResponse, error) {
			return models.ChangesResponse{}, service.ErrChangeTokenExpired
		},
	}

	h := newHandlerWithChanges(changes)
	rec := httptest.NewRecorder()

	h.fetchChanges(rec, authedRequest(http.MethodPost, "/api/changes/fetch", changesBody(t, models.ChangesRequest{Zone: "notes"}), 7))

	require.Equal(t, http.StatusGone, rec.Code)
	assert.Equal(t, app.MsgTokenExpired, strings.TrimSpace(rec.Body.String()))
}

func TestFetchChanges_InvalidToken(t *testing.T) {
	changes := &mockChangeService{
		fetchChangesFn: func(_ context.Context, _ models.ChangesRequest) (models.ChangesResponse, error) {
			return models.ChangesResponse{}, service.ErrInvalidChangeToken
		},
	}

	h := newHandlerWithChanges(changes)
	rec := httptest.NewRecorder()

	h.fetchChanges(rec, authedRequest(http.MethodPost, "/api/changes/fetch", changesBody(t, models.ChangesRequest{Zone: "notes"}), 7))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, app.MsgInvalidDataProvided, strings.TrimSpace(rec.Body.String()))
}

func TestFetchChanges_UnexpectedError(t *testing.T) {
	changes := &mockChangeService{
		fetchChangesFn: func(_ context.Context, _ models.ChangesRequest) (models.ChangesResponse, error) {
			return models.ChangesResponse{}, assert.AnError
		},
	}

	h := newHandlerWithChanges(changes)
	rec := httptest.NewRecorder()

	h.fetchChanges(rec, authedRequest(http.MethodPost, "/api/changes/fetch", changesBody(t, models.ChangesRequest{Zone: "notes"}), 7))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
