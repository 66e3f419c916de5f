package service

import (
	"github.com/MKhiriev/zonesync/internal/adapter"
	"github.com/MKhiriev/zonesync/internal/config"
	"github.com/MKhiriev/zonesync/internal/logger"
	"github.com/MKhiriev/zonesync/internal/store"
)

// ClientServices aggregates the client-side services.
type ClientServices struct {
	AuthService   ClientAuthService
	RecordService ClientRecordService
	SyncService   ClientSyncService
	SyncJob       ClientSyncJob
}

// NewClientServices wires the client services to the local storages and the
// server transport.
func NewClientServices(storages *store.ClientStorages, serverAdapter adapter.ServerAdapter, cfg *config.ClientConfig, logger *logger.Logger) *ClientServices {
	resolver := NewConflictResolver(cfg.Sync.ConflictPolicy)
	syncService := NewClientSyncService(storages, serverAdapter, resolver, cfg.Sync, logger)

	return &ClientServices{
		AuthService:   NewClientAuthService(storages.SessionRepository, serverAdapter, logger),
		RecordService: NewClientRecordService(storages.RecordRepository, serverAdapter, logger),
		SyncService:   syncService,
		SyncJob:       NewClientSyncJob(syncService, logger),
	}
}
