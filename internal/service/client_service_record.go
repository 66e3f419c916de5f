package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/zonesync/internal/adapter"
	"github.com/MKhiriev/zonesync/internal/logger"
	"github.com/MKhiriev/zonesync/internal/store"
	"github.com/MKhiriev/zonesync/internal/utils"
	"github.com/MKhiriev/zonesync/internal/validators"
	"github.com/MKhiriev/zonesync/models"
)

// clientRecordService is the concrete implementation of ClientRecordService.
// Record reads and writes never leave the local mirror; the pending queue
// carries writes to the server through the sync engine. Zone management is
// an online operation.
type clientRecordService struct {
	records   store.LocalRecordRepository
	adapter   adapter.ServerAdapter
	validator validators.Validator
	ids       *utils.UUIDGenerator

	logger *logger.Logger
}

// NewClientRecordService constructs a ClientRecordService over the local
// store and the server transport.
func NewClientRecordService(records store.LocalRecordRepository, serverAdapter adapter.ServerAdapter, logger *logger.Logger) ClientRecordService {
	return &clientRecordService{
		records:   records,
		adapter:   serverAdapter,
		validator: validators.NewRecordValidator(),
		ids:       utils.NewUUIDGenerator(),
		logger:    logger,
	}
}

// SaveRecord implements ClientRecordService.
func (s *clientRecordService) SaveRecord(ctx context.Context, record models.Record) (models.Record, error) {
	log := logger.FromContext(ctx)

	if record.RecordID == "" {
		record.RecordID = s.ids.Generate()
	}
	if record.Zone == "" {
		record.Zone = models.DefaultZone
	}

	if err := s.validator.Validate(ctx, record); err != nil {
		log.Err(err).Str("record_id", record.RecordID).Msg("invalid record")
		return models.Record{}, ErrInvalidDataProvided
	}

	saved, err := s.records.SaveRecord(ctx, record)
	if err != nil {
		log.Err(err).
			Str("zone", record.Zone).
			Str("record_id", record.RecordID).
			Msg("local record save failed")
		return models.Record{}, fmt.Errorf("local record save failed: %w", err)
	}

	return saved, nil
}

// GetRecord implements ClientRecordService.
func (s *clientRecordService) GetRecord(ctx context.Context, zone, recordID string) (models.Record, error) {
	return s.records.GetRecord(ctx, zone, recordID)
}

// ListRecords implements ClientRecordService.
func (s *clientRecordService) ListRecords(ctx context.Context, zone string) ([]models.Record, error) {
	return s.records.ListRecords(ctx, zone)
}

// DeleteRecord implements ClientRecordService.
func (s *clientRecordService) DeleteRecord(ctx context.Context, zone, recordID string) error {
	log := logger.FromContext(ctx)

	if err := s.records.DeleteRecord(ctx, zone, recordID); err != nil {
		log.Err(err).
			Str("zone", zone).
			Str("record_id", recordID).
			Msg("local record delete failed")
		return fmt.Errorf("local record delete failed: %w", err)
	}

	return nil
}

// CreateZone implements ClientRecordService.
func (s *clientRecordService) CreateZone(ctx context.Context, name string) (models.Zone, error) {
	if err := s.validator.Validate(ctx, models.Zone{Name: name}); err != nil {
		return models.Zone{}, ErrInvalidDataProvided
	}

	zone, err := s.adapter.CreateZone(ctx, name)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("zone", name).Msg("zone creation on server failed")
		return models.Zone{}, mapAdapterError(err)
	}

	return zone, nil
}

// ListZones implements ClientRecordService.
func (s *clientRecordService) ListZones(ctx context.Context) ([]models.Zone, error) {
	zones, err := s.adapter.ListZones(ctx)
	if err != nil {
		return nil, mapAdapterError(err)
	}
	return zones, nil
}

// DeleteZone implements ClientRecordService. The local purge runs only after
// the server confirmed the deletion; on transport failure the local copy
// stays intact.
func (s *clientRecordService) DeleteZone(ctx context.Context, name string) error {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, models.Zone{Name: name}); err != nil {
		return ErrInvalidDataProvided
	}

	if err := s.adapter.DeleteZone(ctx, name); err != nil {
		log.Err(err).Str("zone", name).Msg("zone deletion on server failed")
		return mapAdapterError(err)
	}

	if err := s.records.PurgeZone(ctx, name); err != nil {
		log.Err(err).Str("zone", name).Msg("local zone purge failed")
		return fmt.Errorf("local zone purge failed: %w", err)
	}

	return nil
}
