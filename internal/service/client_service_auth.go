package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/zonesync/internal/adapter"
	"github.com/MKhiriev/zonesync/internal/logger"
	"github.com/MKhiriev/zonesync/internal/store"
	"github.com/MKhiriev/zonesync/internal/validators"
	"github.com/MKhiriev/zonesync/models"
)

// clientAuthService is the concrete implementation of ClientAuthService.
type clientAuthService struct {
	sessions  store.SessionRepository
	adapter   adapter.ServerAdapter
	validator validators.Validator

	logger *logger.Logger
}

// NewClientAuthService constructs a ClientAuthService over the given session
// store and transport.
func NewClientAuthService(sessions store.SessionRepository, serverAdapter adapter.ServerAdapter, logger *logger.Logger) ClientAuthService {
	return &clientAuthService{
		sessions:  sessions,
		adapter:   serverAdapter,
		validator: validators.NewRecordValidator(),
		logger:    logger,
	}
}

// Register implements ClientAuthService.
func (s *clientAuthService) Register(ctx context.Context, user models.User) (models.Session, error) {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, user); err != nil {
		return models.Session{}, ErrInvalidDataProvided
	}

	token, err := s.adapter.Register(ctx, user)
	if err != nil {
		log.Err(err).Str("login", user.Login).Msg("registration on server failed")
		return models.Session{}, mapAdapterError(err)
	}

	return s.openSession(ctx, user.Login, token)
}

// Login implements ClientAuthService.
func (s *clientAuthService) Login(ctx context.Context, user models.User) (models.Session, error) {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, user); err != nil {
		return models.Session{}, ErrInvalidDataProvided
	}

	token, err := s.adapter.Login(ctx, user)
	if err != nil {
		log.Err(err).Str("login", user.Login).Msg("login on server failed")
		return models.Session{}, mapAdapterError(err)
	}

	return s.openSession(ctx, user.Login, token)
}

// openSession persists the session opened by a successful register or login.
// The transport token was already stored by the adapter.
func (s *clientAuthService) openSession(ctx context.Context, login string, token models.Token) (models.Session, error) {
	session := models.Session{
		Login:   login,
		Token:   token.SignedString,
		UserID:  token.UserID,
		SavedAt: time.Now(),
	}

	if err := s.sessions.SaveSession(ctx, session); err != nil {
		logger.FromContext(ctx).Err(err).Str("login", login).Msg("session persistence failed")
		return models.Session{}, fmt.Errorf("session persistence failed: %w", err)
	}

	return session, nil
}

// RestoreSession implements ClientAuthService.
func (s *clientAuthService) RestoreSession(ctx context.Context) (models.Session, error) {
	session, err := s.sessions.GetSession(ctx)
	if err != nil {
		return models.Session{}, err
	}

	s.adapter.SetToken(session.Token)
	return session, nil
}

// Logout implements ClientAuthService.
func (s *clientAuthService) Logout(ctx context.Context) error {
	s.adapter.SetToken("")

	if err := s.sessions.ClearSession(ctx); err != nil {
		return fmt.Errorf("session cleanup failed: %w", err)
	}
	return nil
}
