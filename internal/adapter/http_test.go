// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/zonesync/internal/config"
	"github.com/MKhiriev/zonesync/internal/logger"
	"github.com/MKhiriev/zonesync/internal/utils"
	"github.com/MKhiriev/zonesync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestAdapter создаёт httpServerAdapter, направленный на тестовый сервер
func newTestAdapter(t *testing.T, serverURL string) *httpServerAdapter {
	t.Helper()
	log := logger.NewClientLogger("test")
	adapterCfg := config.ClientAdapter{HTTPAddress: serverURL}
	appCfg := config.ClientApp{HashKey: "testhashkey"}

	a, err := NewHTTPServerAdapter(adapterCfg, appCfg, log)
	require.NoError(t, err)
	return a.(*httpServerAdapter)
}

func signedTestToken(t *testing.T, userID int64) string {
	t.Helper()
	token, err := utils.GenerateJWTToken("zonesync-test", userID, time.Hour, "test-sign-key")
	require.NoError(t, err)
	return token.SignedString
}

// ── Register / Login ────────────────────────────────────────────────────────

func TestRegister_Success(t *testing.T) {
	user := models.User{Login: "alice", Password: "secret"}
	signed := signedTestToken(t, 7)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/register", r.URL.Path)

		w.Header().Set("Authorization", "Bearer "+signed)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	got, err := a.Register(context.Background(), user)

	require.NoError(t, err)
	assert.Equal(t, int64(7), got.UserID)
	assert.Equal(t, signed, a.Token())
}

func TestRegister_Conflict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte("login already exists"))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.Register(context.Background(), models.User{Login: "alice", Password: "secret"})

	require.ErrorIs(t, err, ErrConflict)
}

func TestLogin_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte("invalid login/password"))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.Login(context.Background(), models.User{Login: "alice", Password: "wrong"})

	require.ErrorIs(t, err, ErrUnauthorized)
	assert.Empty(t, a.Token())
}

// ── Commit ──────────────────────────────────────────────────────────────────

func TestCommit_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/records/commit", r.URL.Path)
		assert.Contains(t, r.Header.Get("Authorization"), "Bearer ")

		var req models.CommitRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "notes", req.Zone)
		assert.Equal(t, 1, req.Length)
		assert.NotEmpty(t, req.Hash)

		_ = json.NewEncoder(w).Encode(models.CommitResponse{
			Results: []models.ItemResult{{RecordID: "rec-1", Status: models.ItemOK, ChangeTag: "tag-1"}},
			Length:  1,
		})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetToken("sometoken")

	record := models.Record{RecordID: "rec-1", Zone: "notes", Fields: models.FieldMap{
		"title": models.NewFieldString("hello"),
	}}
	resp, err := a.Commit(context.Background(), models.CommitRequest{
		Zone:  "notes",
		Saves: []models.RecordSave{{Record: record}},
	})

	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, models.ItemOK, resp.Results[0].Status)
	assert.Equal(t, "tag-1", resp.Results[0].ChangeTag)
}

func TestCommit_BatchTooLarge(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusRequestEntityTooLarge)
		_, _ = w.Write([]byte("batch exceeds limit"))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.Commit(context.Background(), models.CommitRequest{Zone: "notes"})

	require.ErrorIs(t, err, ErrBatchTooLarge)
}

func TestCommit_QuotaExceeded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInsufficientStorage)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.Commit(context.Background(), models.CommitRequest{Zone: "notes"})

	require.ErrorIs(t, err, ErrQuotaExceeded)
}

func TestCommit_RateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "3")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.Commit(context.Background(), models.CommitRequest{Zone: "notes"})

	require.ErrorIs(t, err, ErrRateLimited)

	var rateErr *RateLimitError
	require.True(t, errors.As(err, &rateErr))
	assert.Equal(t, 3*time.Second, rateErr.RetryAfter)
}

// ── FetchChanges ────────────────────────────────────────────────────────────

func TestFetchChanges_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/changes/fetch", r.URL.Path)

		var req models.ChangesRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "notes", req.Zone)

		_ = json.NewEncoder(w).Encode(models.ChangesResponse{
			Changes: []models.RecordChange{{RecordID: "rec-1", Deleted: true}},
			Token:   models.ChangeToken("next-token"),
			More:    true,
			Length:  1,
		})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetToken("sometoken")

	page, err := a.FetchChanges(context.Background(), models.ChangesRequest{Zone: "notes"})

	require.NoError(t, err)
	assert.True(t, page.More)
	assert.Equal(t, models.ChangeToken("next-token"), page.Token)
	require.Len(t, page.Changes, 1)
	assert.True(t, page.Changes[0].Deleted)
}

func TestFetchChanges_TokenExpired(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusGone)
		_, _ = w.Write([]byte("change token is below the pruned horizon"))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.FetchChanges(context.Background(), models.ChangesRequest{Zone: "notes", Token: "old"})

	require.ErrorIs(t, err, ErrTokenExpired)
}

// ── Zones ───────────────────────────────────────────────────────────────────

func TestListZones_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/zones/", r.URL.Path)

		_ = json.NewEncoder(w).Encode(models.ZonesResponse{
			Zones:  []models.Zone{{Name: "default"}, {Name: "notes"}},
			Length: 2,
		})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetToken("sometoken")

	zones, err := a.ListZones(context.Background())

	require.NoError(t, err)
	require.Len(t, zones, 2)
	assert.Equal(t, "notes", zones[1].Name)
}

func TestDeleteZone_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/zones/notes", r.URL.Path)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	err := a.DeleteZone(context.Background(), "notes")

	require.ErrorIs(t, err, ErrZoneNotFound)
}

// ── Version ─────────────────────────────────────────────────────────────────

func TestVersion_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/version/", r.URL.Path)
		_, _ = w.Write([]byte("1.2.3\n"))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	version, err := a.Version(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "1.2.3", version)
}

// ── URL normalisation ───────────────────────────────────────────────────────

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "bare host:port", in: "localhost:8080", want: "http://localhost:8080"},
		{name: "full url", in: "https://sync.example.com/", want: "https://sync.example.com"},
		{name: "empty", in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
