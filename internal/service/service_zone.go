package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/zonesync/internal/logger"
	"github.com/MKhiriev/zonesync/internal/store"
	"github.com/MKhiriev/zonesync/internal/validators"
	"github.com/MKhiriev/zonesync/models"
)

// zoneService is the concrete implementation of ZoneService.
type zoneService struct {
	zoneRepository store.ZoneRepository
	validator      validators.Validator

	logger *logger.Logger
}

// NewZoneService constructs a ZoneService bound to the given repository.
func NewZoneService(zoneRepository store.ZoneRepository, logger *logger.Logger) ZoneService {
	return &zoneService{
		zoneRepository: zoneRepository,
		validator:      validators.NewRecordValidator(),
		logger:         logger,
	}
}

// CreateZone registers a new zone for the owner named in zone.UserID.
// Duplicate names surface store.ErrZoneAlreadyExists.
func (s *zoneService) CreateZone(ctx context.Context, zone models.Zone) (models.Zone, error) {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, zone, validators.FieldUserID, validators.FieldZone); err != nil {
		log.Err(err).Str("func", "CreateZone").Str("zone", zone.Name).Msg("invalid zone")
		return models.Zone{}, ErrInvalidDataProvided
	}

	created, err := s.zoneRepository.CreateZone(ctx, zone)
	if err != nil {
		log.Err(err).Str("func", "CreateZone").Str("zone", zone.Name).Msg("zone creation failed")
		return models.Zone{}, fmt.Errorf("zone creation failed: %w", err)
	}

	return created, nil
}

// ListZones returns the zones owned by the given user.
func (s *zoneService) ListZones(ctx context.Context, userID int64) ([]models.Zone, error) {
	log := logger.FromContext(ctx)

	if userID <= 0 {
		return nil, ErrInvalidDataProvided
	}

	zones, err := s.zoneRepository.ListZones(ctx, userID)
	if err != nil {
		log.Err(err).Str("func", "ListZones").Int64("user_id", userID).Msg("zone listing failed")
		return nil, fmt.Errorf("zone listing failed: %w", err)
	}

	return zones, nil
}

// DeleteZone removes the zone with every record inside it and leaves a
// tombstone in the change feed so connected clients purge their copies.
func (s *zoneService) DeleteZone(ctx context.Context, userID int64, name string) error {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, models.Zone{UserID: userID, Name: name}, validators.FieldUserID, validators.FieldZone); err != nil {
		log.Err(err).Str("func", "DeleteZone").Str("zone", name).Msg("invalid zone")
		return ErrInvalidDataProvided
	}

	if err := s.zoneRepository.DeleteZone(ctx, userID, name); err != nil {
		log.Err(err).Str("func", "DeleteZone").Str("zone", name).Msg("zone deletion failed")
		return fmt.Errorf("zone deletion failed: %w", err)
	}

	return nil
}
