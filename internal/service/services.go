package service

import (
	"github.com/MKhiriev/zonesync/internal/config"
	"github.com/MKhiriev/zonesync/internal/logger"
	"github.com/MKhiriev/zonesync/internal/store"
)

// Services aggregates the server-side business services.
type Services struct {
	AuthService    AuthService
	RecordService  RecordService
	ZoneService    ZoneService
	ChangeService  ChangeService
	AppInfoService AppInfoService
}

// NewServices wires every server service to its repository and configuration.
func NewServices(repos *store.Repositories, cfg config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	appInfoService, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, err
	}

	return &Services{
		AuthService:    NewAuthService(repos.UserRepository, cfg.App, logger),
		RecordService:  NewRecordService(repos.RecordRepository, cfg.Sync, logger),
		ZoneService:    NewZoneService(repos.ZoneRepository, logger),
		ChangeService:  NewChangeService(repos.ChangeLogRepository, cfg.Sync, logger),
		AppInfoService: appInfoService,
	}, nil
}
