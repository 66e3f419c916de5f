package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/zonesync/internal/logger"
	"github.com/MKhiriev/zonesync/models"
)

// syncStateRepository is the SQLite-backed implementation of
// [SyncStateRepository].
type syncStateRepository struct {
	*DB
	logger *logger.Logger
}

func NewSyncStateRepository(db *DB, logger *logger.Logger) SyncStateRepository {
	return &syncStateRepository{
		DB:     db,
		logger: logger,
	}
}

// GetToken implements [SyncStateRepository]. A zone that has never been
// fetched yields the zero token.
func (s *syncStateRepository) GetToken(ctx context.Context, zone string) (models.ChangeToken, error) {
	log := logger.FromContext(ctx)

	var token string
	err := s.DB.QueryRowContext(ctx, getSyncToken, zone).Scan(&token)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		log.Err(err).
			Str("func", "syncStateRepository.GetToken").
			Str("zone", zone).
			Msg("failed to read change token")
		return "", fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return models.ChangeToken(token), nil
}

// ResetToken implements [SyncStateRepository].
func (s *syncStateRepository) ResetToken(ctx context.Context, zone string) error {
	log := logger.FromContext(ctx)

	if _, err := s.DB.ExecContext(ctx, resetSyncToken, zone); err != nil {
		log.Err(err).
			Str("func", "syncStateRepository.ResetToken").
			Str("zone", zone).
			Msg("failed to reset change token")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// sessionRepository is the SQLite-backed implementation of
// [SessionRepository]. The session table holds at most one row.
type sessionRepository struct {
	*DB
	logger *logger.Logger
}

func NewSessionRepository(db *DB, logger *logger.Logger) SessionRepository {
	return &sessionRepository{
		DB:     db,
		logger: logger,
	}
}

// SaveSession implements [SessionRepository].
func (s *sessionRepository) SaveSession(ctx context.Context, session models.Session) error {
	log := logger.FromContext(ctx)

	if _, err := s.DB.ExecContext(ctx, saveSession,
		session.Login, session.Token, session.UserID,
	); err != nil {
		log.Err(err).
			Str("func", "sessionRepository.SaveSession").
			Str("login", session.Login).
			Msg("failed to save session")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// GetSession implements [SessionRepository]. Returns [ErrNoSession] when no
// session has been stored.
func (s *sessionRepository) GetSession(ctx context.Context) (models.Session, error) {
	log := logger.FromContext(ctx)

	var session models.Session
	err := s.DB.QueryRowContext(ctx, getSession).Scan(
		&session.Login,
		&session.Token,
		&session.UserID,
		&session.SavedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Session{}, ErrNoSession
	}
	if err != nil {
		log.Err(err).
			Str("func", "sessionRepository.GetSession").
			Msg("failed to read session")
		return models.Session{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return session, nil
}

// ClearSession implements [SessionRepository].
func (s *sessionRepository) ClearSession(ctx context.Context) error {
	log := logger.FromContext(ctx)

	if _, err := s.DB.ExecContext(ctx, clearSession); err != nil {
		log.Err(err).
			Str("func", "sessionRepository.ClearSession").
			Msg("failed to clear session")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}
