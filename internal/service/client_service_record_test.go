package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/MKhiriev/zonesync/internal/adapter"
	"github.com/MKhiriev/zonesync/internal/app"
	"github.com/MKhiriev/zonesync/internal/logger"
	"github.com/MKhiriev/zonesync/internal/mock"
	"github.com/MKhiriev/zonesync/internal/store"
	"github.com/MKhiriev/zonesync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestClientRecordSvc(t *testing.T, ctrl *gomock.Controller) (*clientRecordService, *mock.MockLocalRecordRepository, *mock.MockServerAdapter) {
	t.Helper()
	mockRecords := mock.NewMockLocalRecordRepository(ctrl)
	mockAdapter := mock.NewMockServerAdapter(ctrl)
	svc := NewClientRecordService(mockRecords, mockAdapter, logger.Nop()).(*clientRecordService)
	return svc, mockRecords, mockAdapter
}

func localRecord(zone, recordID string) models.Record {
	return models.Record{
		RecordID: recordID,
		Zone:     zone,
		Type:     "note",
		Fields: models.FieldMap{
			"title": models.NewFieldString("groceries"),
		},
	}
}

// ── SaveRecord ───────────────────────────────────────────────────────────────

func TestClientRecord_SaveRecord_AssignsDefaults(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRecords, _ := newTestClientRecordSvc(t, ctrl)
	ctx := context.Background()

	// ни идентификатора, ни зоны: выдаётся UUID, зона по умолчанию
	record := localRecord("", "")

	mockRecords.EXPECT().SaveRecord(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, got models.Record) (models.Record, error) {
			assert.NotEmpty(t, got.RecordID)
			assert.Equal(t, models.DefaultZone, got.Zone)
			return got, nil
		})

	saved, err := svc.SaveRecord(ctx, record)
	require.NoError(t, err)
	assert.NotEmpty(t, saved.RecordID)
	assert.Equal(t, models.DefaultZone, saved.Zone)
}

func TestClientRecord_SaveRecord_KeepsExplicitIdentity(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRecords, _ := newTestClientRecordSvc(t, ctrl)
	ctx := context.Background()

	record := localRecord("notes", "rec-1")
	mockRecords.EXPECT().SaveRecord(ctx, record).Return(record, nil)

	saved, err := svc.SaveRecord(ctx, record)
	require.NoError(t, err)
	assert.Equal(t, "rec-1", saved.RecordID)
	assert.Equal(t, "notes", saved.Zone)
}

func TestClientRecord_SaveRecord_Invalid(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _ := newTestClientRecordSvc(t, ctrl)

	record := localRecord("notes", "rec-1")
	record.Fields = nil

	_, err := svc.SaveRecord(context.Background(), record)
	require.ErrorIs(t, err, ErrInvalidDataProvided)
}

// ── GetRecord / ListRecords / DeleteRecord ───────────────────────────────────

func TestClientRecord_ReadsDelegateToMirror(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRecords, _ := newTestClientRecordSvc(t, ctrl)
	ctx := context.Background()

	record := localRecord("notes", "rec-1")

	mockRecords.EXPECT().GetRecord(ctx, "notes", "rec-1").Return(record, nil)
	got, err := svc.GetRecord(ctx, "notes", "rec-1")
	require.NoError(t, err)
	assert.Equal(t, record, got)

	mockRecords.EXPECT().ListRecords(ctx, "notes").Return([]models.Record{record}, nil)
	list, err := svc.ListRecords(ctx, "notes")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestClientRecord_DeleteRecord(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRecords, _ := newTestClientRecordSvc(t, ctrl)
	ctx := context.Background()

	mockRecords.EXPECT().DeleteRecord(ctx, "notes", "rec-1").Return(nil)
	require.NoError(t, svc.DeleteRecord(ctx, "notes", "rec-1"))

	mockRecords.EXPECT().DeleteRecord(ctx, "notes", "ghost").Return(store.ErrRecordNotFound)
	err := svc.DeleteRecord(ctx, "notes", "ghost")
	require.ErrorIs(t, err, store.ErrRecordNotFound)
}

// ── Zone management ──────────────────────────────────────────────────────────

func TestClientRecord_CreateZone(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, mockAdapter := newTestClientRecordSvc(t, ctrl)
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mockAdapter.EXPECT().CreateZone(ctx, "notes").Return(models.Zone{Name: "notes"}, nil)

		zone, err := svc.CreateZone(ctx, "notes")
		require.NoError(t, err)
		assert.Equal(t, "notes", zone.Name)
	})

	t.Run("empty name", func(t *testing.T) {
		_, err := svc.CreateZone(ctx, "")
		require.ErrorIs(t, err, ErrInvalidDataProvided)
	})

	t.Run("duplicate", func(t *testing.T) {
		serverErr := fmt.Errorf("%w: %s", adapter.ErrConflict, app.MsgZoneAlreadyExists)
		mockAdapter.EXPECT().CreateZone(ctx, "notes").Return(models.Zone{}, serverErr)

		_, err := svc.CreateZone(ctx, "notes")
		require.ErrorIs(t, err, store.ErrZoneAlreadyExists)
	})
}

func TestClientRecord_DeleteZone(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRecords, mockAdapter := newTestClientRecordSvc(t, ctrl)
	ctx := context.Background()

	t.Run("purges local copy after server confirms", func(t *testing.T) {
		gomock.InOrder(
			mockAdapter.EXPECT().DeleteZone(ctx, "notes").Return(nil),
			mockRecords.EXPECT().PurgeZone(ctx, "notes").Return(nil),
		)

		require.NoError(t, svc.DeleteZone(ctx, "notes"))
	})

	t.Run("keeps local copy on transport failure", func(t *testing.T) {
		mockAdapter.EXPECT().DeleteZone(ctx, "notes").Return(adapter.ErrUnavailable)

		err := svc.DeleteZone(ctx, "notes")
		require.ErrorIs(t, err, adapter.ErrUnavailable)
	})
}
