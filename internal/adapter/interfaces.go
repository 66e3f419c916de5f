// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides transport-layer abstractions for communicating with
// the sync server.
//
// The primary abstraction is [ServerAdapter], which decouples the client
// engine from the underlying protocol. The package currently ships an
// HTTP/REST implementation ([NewHTTPServerAdapter]); a gRPC implementation is
// reserved for future use.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling (e.g. [ErrConflict] for 409, [ErrTokenExpired] for 410,
// [ErrRateLimited] for 429 with the server-suggested delay attached).
package adapter

import (
	"context"

	"github.com/MKhiriev/zonesync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter defines transport-agnostic communication with the sync
// server. Implementations are responsible for serialisation, authentication
// header management, and mapping transport-level errors to the sentinel
// values defined in this package.
type ServerAdapter interface {
	// SetToken stores the bearer token that will be attached to all
	// subsequent authenticated requests. It should be called immediately
	// after a successful Register or Login.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter, or an
	// empty string if no token has been set yet.
	Token() string

	// Register creates an account on the server. On success it stores the
	// returned bearer token via SetToken.
	Register(ctx context.Context, user models.User) (models.Token, error)

	// Login authenticates against the server. On success it stores the
	// returned bearer token via SetToken.
	Login(ctx context.Context, user models.User) (models.Token, error)

	// Commit sends one batch of record mutations. Per-item dispositions
	// ride in the response; transport-level failures (auth, rate limit,
	// batch size, quota) surface as sentinel errors.
	Commit(ctx context.Context, req models.CommitRequest) (models.CommitResponse, error)

	// FetchChanges reads one page of a zone's change feed after the given
	// token. An expired token surfaces as [ErrTokenExpired]; a deleted zone
	// is reported in the response body, not as an error.
	FetchChanges(ctx context.Context, req models.ChangesRequest) (models.ChangesResponse, error)

	// CreateZone registers a new zone for the authenticated user.
	CreateZone(ctx context.Context, name string) (models.Zone, error)

	// ListZones returns the zones owned by the authenticated user.
	ListZones(ctx context.Context) ([]models.Zone, error)

	// DeleteZone removes a zone and every record inside it.
	DeleteZone(ctx context.Context, name string) error

	// Version reports the server build version.
	Version(ctx context.Context) (string, error)
}
