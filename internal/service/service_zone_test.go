package service

import (
	"context"
	"testing"

	"github.com/MKhiriev/zonesync/internal/logger"
	"github.com/MKhiriev/zonesync/internal/mock"
	"github.com/MKhiriev/zonesync/internal/store"
	"github.com/MKhiriev/zonesync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestZoneSvc(t *testing.T, ctrl *gomock.Controller) (*zoneService, *mock.MockZoneRepository) {
	t.Helper()
	mockRepo := mock.NewMockZoneRepository(ctrl)
	svc := NewZoneService(mockRepo, logger.Nop()).(*zoneService)
	return svc, mockRepo
}

// ── CreateZone ───────────────────────────────────────────────────────────────

func TestCreateZone(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo := newTestZoneSvc(t, ctrl)
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		zone := models.Zone{UserID: 1, Name: "notes"}
		mockRepo.EXPECT().CreateZone(ctx, zone).Return(zone, nil)

		created, err := svc.CreateZone(ctx, zone)
		require.NoError(t, err)
		assert.Equal(t, "notes", created.Name)
	})

	t.Run("missing name", func(t *testing.T) {
		_, err := svc.CreateZone(ctx, models.Zone{UserID: 1})
		require.ErrorIs(t, err, ErrInvalidDataProvided)
	})

	t.Run("missing owner", func(t *testing.T) {
		_, err := svc.CreateZone(ctx, models.Zone{Name: "notes"})
		require.ErrorIs(t, err, ErrInvalidDataProvided)
	})

	t.Run("duplicate name", func(t *testing.T) {
		zone := models.Zone{UserID: 1, Name: "notes"}
		mockRepo.EXPECT().CreateZone(ctx, zone).Return(models.Zone{}, store.ErrZoneAlreadyExists)

		_, err := svc.CreateZone(ctx, zone)
		require.ErrorIs(t, err, store.ErrZoneAlreadyExists)
	})
}

// ── ListZones ────────────────────────────────────────────────────────────────

func TestListZones(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo := newTestZoneSvc(t, ctrl)
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		zones := []models.Zone{{UserID: 1, Name: "notes"}, {UserID: 1, Name: "bookmarks"}}
		mockRepo.EXPECT().ListZones(ctx, int64(1)).Return(zones, nil)

		got, err := svc.ListZones(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, zones, got)
	})

	t.Run("invalid owner", func(t *testing.T) {
		_, err := svc.ListZones(ctx, 0)
		require.ErrorIs(t, err, ErrInvalidDataProvided)
	})
}

// ── DeleteZone ───────────────────────────────────────────────────────────────

func TestDeleteZone(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo := newTestZoneSvc(t, ctrl)
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mockRepo.EXPECT().DeleteZone(ctx, int64(1), "notes").Return(nil)
		require.NoError(t, svc.DeleteZone(ctx, 1, "notes"))
	})

	t.Run("unknown zone", func(t *testing.T) {
		mockRepo.EXPECT().DeleteZone(ctx, int64(1), "ghost").Return(store.ErrZoneNotFound)

		err := svc.DeleteZone(ctx, 1, "ghost")
		require.ErrorIs(t, err, store.ErrZoneNotFound)
	})

	t.Run("missing name", func(t *testing.T) {
		err := svc.DeleteZone(ctx, 1, "")
		require.ErrorIs(t, err, ErrInvalidDataProvided)
	})
}
