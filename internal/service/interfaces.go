package service

import (
	"context"

	"github.com/MKhiriev/zonesync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// AuthService handles user registration, credential verification, and JWT
// token lifecycle.
type AuthService interface {
	RegisterUser(ctx context.Context, user models.User) (models.User, error)
	Login(ctx context.Context, user models.User) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// RecordService applies commit batches: per-item validation, batch size
// enforcement, and delegation to the record repository for tag checks,
// cascades, and quota accounting.
type RecordService interface {
	// Commit validates and applies one batch of record mutations. Results
	// come back in request order (saves first, then deletes). A batch above
	// the configured limit fails with ErrBatchTooLarge before any item is
	// examined.
	Commit(ctx context.Context, req models.CommitRequest) (models.CommitResponse, error)
}

// ZoneService manages named record partitions for the authenticated user.
type ZoneService interface {
	CreateZone(ctx context.Context, zone models.Zone) (models.Zone, error)
	ListZones(ctx context.Context, userID int64) ([]models.Zone, error)
	DeleteZone(ctx context.Context, userID int64, name string) error
}

// ChangeService serves the per-zone change feed and owns the change token
// format. Tokens are opaque to clients; only this service encodes and
// decodes them.
type ChangeService interface {
	// FetchChanges returns one feed page after the request token.
	// An empty token reads from the beginning. Tokens pointing below the
	// pruned horizon fail with ErrTokenIsExpired, forcing a full resync.
	FetchChanges(ctx context.Context, req models.ChangesRequest) (models.ChangesResponse, error)

	// Prune removes change-log entries older than the retention window and
	// advances the expiry horizon. Called by the background prune worker.
	Prune(ctx context.Context) (int64, error)
}

// AppInfoService exposes build information.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}
