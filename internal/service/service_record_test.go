// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/MKhiriev/zonesync/internal/config"
	"github.com/MKhiriev/zonesync/internal/logger"
	"github.com/MKhiriev/zonesync/internal/mock"
	"github.com/MKhiriev/zonesync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func newTestRecordSvc(t *testing.T, ctrl *gomock.Controller, cfg config.Sync) (*recordService, *mock.MockRecordRepository) {
	t.Helper()
	mockRepo := mock.NewMockRecordRepository(ctrl)
	svc := NewRecordService(mockRepo, cfg, logger.Nop()).(*recordService)
	return svc, mockRepo
}

func commitSave(recordID string) models.RecordSave {
	return models.RecordSave{
		Record: models.Record{
			RecordID: recordID,
			Type:     "note",
			Fields: models.FieldMap{
				"title": models.NewFieldString("title of " + recordID),
			},
		},
	}
}

func okResults(ids ...string) []models.ItemResult {
	results := make([]models.ItemResult, 0, len(ids))
	for _, id := range ids {
		results = append(results, models.ItemResult{RecordID: id, Status: models.ItemOK, ChangeTag: "tag-" + id})
	}
	return results
}

// ---------------------------------------------------------------------------
// TestCommit_Limits
// ---------------------------------------------------------------------------

func TestCommit_BatchTooLarge(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestRecordSvc(t, ctrl, config.Sync{BatchLimit: 2})

	req := models.CommitRequest{
		UserID: 1,
		Zone:   "notes",
		Saves:  []models.RecordSave{commitSave("a"), commitSave("b"), commitSave("c")},
	}

	_, err := svc.Commit(context.Background(), req)
	require.ErrorIs(t, err, ErrBatchTooLarge)
}

func TestCommit_EmptyBatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestRecordSvc(t, ctrl, config.Sync{})

	req := models.CommitRequest{UserID: 1, Zone: "notes"}

	_, err := svc.Commit(context.Background(), req)
	require.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestCommit_InvalidRequest(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestRecordSvc(t, ctrl, config.Sync{})
	ctx := context.Background()

	t.Run("missing user", func(t *testing.T) {
		req := models.CommitRequest{Zone: "notes", Saves: []models.RecordSave{commitSave("a")}}
		_, err := svc.Commit(ctx, req)
		require.ErrorIs(t, err, ErrInvalidDataProvided)
	})

	t.Run("missing zone", func(t *testing.T) {
		req := models.CommitRequest{UserID: 1, Saves: []models.RecordSave{commitSave("a")}}
		_, err := svc.Commit(ctx, req)
		require.ErrorIs(t, err, ErrInvalidDataProvided)
	})
}

// ---------------------------------------------------------------------------
// TestCommit_AllValid
// ---------------------------------------------------------------------------

func TestCommit_AllValid(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo := newTestRecordSvc(t, ctrl, config.Sync{QuotaBytes: 1 << 20})
	ctx := context.Background()

	req := models.CommitRequest{
		UserID:  7,
		Zone:    "notes",
		Saves:   []models.RecordSave{commitSave("a"), commitSave("b")},
		Deletes: []models.RecordDelete{{RecordID: "c", BaseTag: "tag-c"}},
	}

	mockRepo.EXPECT().Commit(ctx, gomock.Any(), int64(1<<20)).DoAndReturn(
		func(_ context.Context, got models.CommitRequest, _ int64) (models.CommitResponse, error) {
			require.Len(t, got.Saves, 2)
			require.Len(t, got.Deletes, 1)

			// сохранения проштампованы владельцем, зоной и хэшем содержимого
			for _, save := range got.Saves {
				assert.Equal(t, int64(7), save.Record.UserID)
				assert.Equal(t, "notes", save.Record.Zone)
				assert.Equal(t, save.Record.ContentHash(), save.Record.Hash)
			}

			results := okResults("a", "b")
			results = append(results, models.ItemResult{RecordID: "c", Status: models.ItemOK})
			return models.CommitResponse{Results: results, Length: len(results)}, nil
		})

	resp, err := svc.Commit(ctx, req)
	require.NoError(t, err)

	require.Len(t, resp.Results, 3)
	assert.Equal(t, 3, resp.Length)
	for _, result := range resp.Results {
		assert.True(t, result.Applied())
	}
}

// ---------------------------------------------------------------------------
// TestCommit_PerItemValidation
// ---------------------------------------------------------------------------

func TestCommit_InvalidItemsDoNotBlockSiblings(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo := newTestRecordSvc(t, ctrl, config.Sync{})
	ctx := context.Background()

	badZone := commitSave("bad-zone")
	badZone.Record.Zone = "other-zone"

	noFields := commitSave("no-fields")
	noFields.Record.Fields = nil

	req := models.CommitRequest{
		UserID:  1,
		Zone:    "notes",
		Saves:   []models.RecordSave{commitSave("a"), badZone, noFields, commitSave("b")},
		Deletes: []models.RecordDelete{{RecordID: "a"}, {RecordID: "d"}},
	}

	// репозиторий получает только валидное подмножество
	mockRepo.EXPECT().Commit(ctx, gomock.Any(), int64(0)).DoAndReturn(
		func(_ context.Context, got models.CommitRequest, _ int64) (models.CommitResponse, error) {
			require.Len(t, got.Saves, 2)
			require.Len(t, got.Deletes, 1)
			assert.Equal(t, "a", got.Saves[0].Record.RecordID)
			assert.Equal(t, "b", got.Saves[1].Record.RecordID)
			assert.Equal(t, "d", got.Deletes[0].RecordID)

			results := okResults("a", "b")
			results = append(results, models.ItemResult{RecordID: "d", Status: models.ItemOK})
			return models.CommitResponse{Results: results, Length: len(results)}, nil
		})

	resp, err := svc.Commit(ctx, req)
	require.NoError(t, err)
	require.Len(t, resp.Results, 6)

	// результаты в порядке запроса: сначала saves, затем deletes
	assert.Equal(t, models.ItemOK, resp.Results[0].Status)
	assert.Equal(t, models.ItemInvalid, resp.Results[1].Status)
	assert.Equal(t, "bad-zone", resp.Results[1].RecordID)
	assert.Equal(t, models.ItemInvalid, resp.Results[2].Status)
	assert.Equal(t, "no-fields", resp.Results[2].RecordID)
	assert.Equal(t, models.ItemOK, resp.Results[3].Status)
	assert.Equal(t, models.ItemInvalid, resp.Results[4].Status) // дубликат идентификатора "a"
	assert.Equal(t, models.ItemOK, resp.Results[5].Status)

	assert.NotEmpty(t, resp.Results[1].Message)
	assert.NotEmpty(t, resp.Results[4].Message)
}

func TestCommit_AtomicAbortsOnAnyInvalid(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// репозиторий не должен быть вызван — ожиданий на мок не вешаем
	svc, _ := newTestRecordSvc(t, ctrl, config.Sync{})
	ctx := context.Background()

	noFields := commitSave("no-fields")
	noFields.Record.Fields = nil

	req := models.CommitRequest{
		UserID:  1,
		Zone:    "notes",
		Atomic:  true,
		Saves:   []models.RecordSave{commitSave("a"), noFields},
		Deletes: []models.RecordDelete{{RecordID: "c"}},
	}

	resp, err := svc.Commit(ctx, req)
	require.NoError(t, err)
	require.Len(t, resp.Results, 3)

	assert.Equal(t, models.ItemRejected, resp.Results[0].Status)
	assert.Equal(t, "a", resp.Results[0].RecordID)
	assert.Equal(t, models.ItemInvalid, resp.Results[1].Status)
	assert.Equal(t, models.ItemRejected, resp.Results[2].Status)
	assert.Equal(t, "c", resp.Results[2].RecordID)
}

func TestCommit_AllItemsInvalid(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// весь батч невалиден — до репозитория дело не доходит
	svc, _ := newTestRecordSvc(t, ctrl, config.Sync{})
	ctx := context.Background()

	noFields := commitSave("no-fields")
	noFields.Record.Fields = nil

	req := models.CommitRequest{
		UserID:  1,
		Zone:    "notes",
		Saves:   []models.RecordSave{noFields},
		Deletes: []models.RecordDelete{{RecordID: ""}},
	}

	resp, err := svc.Commit(ctx, req)
	require.NoError(t, err)
	require.Len(t, resp.Results, 2)
	assert.Equal(t, models.ItemInvalid, resp.Results[0].Status)
	assert.Equal(t, models.ItemInvalid, resp.Results[1].Status)
}

// ---------------------------------------------------------------------------
// TestCommit_RepositoryError
// ---------------------------------------------------------------------------

func TestCommit_RepositoryError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo := newTestRecordSvc(t, ctrl, config.Sync{})
	ctx := context.Background()

	req := models.CommitRequest{
		UserID: 1,
		Zone:   "notes",
		Saves:  []models.RecordSave{commitSave("a")},
	}

	dbErr := errors.New("transaction aborted")
	mockRepo.EXPECT().Commit(ctx, gomock.Any(), int64(0)).Return(models.CommitResponse{}, dbErr)

	_, err := svc.Commit(ctx, req)
	require.ErrorIs(t, err, dbErr)
}
