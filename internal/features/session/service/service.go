package service

import (
	"context"
	"errors"
	"strings"

	"gameportal-backend/internal/features/session/models"
	"gameportal-backend/internal/features/session/repository"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrSessionInvalid  = errors.New("session invalid or expired")
	ErrTooManyAttempts = errors.New("too many login attempts")
)

// UserDirectory answers whether a profile exists for an address. Login never
// creates profiles; the profile fetch does that.
type UserDirectory interface {
	Exists(ctx context.Context, address string) (bool, error)
}

type SessionService interface {
	// Login issues a session for an address that already has a profile.
	// Attempts are bounded per address inside a rolling window so a client
	// stuck in a sign-in loop cannot hammer the endpoint.
	Login(ctx context.Context, address string) (*models.Session, error)
	// Resolve maps a bearer token to its wallet address.
	Resolve(ctx context.Context, token string) (string, error)
	Validate(ctx context.Context, token string) (*models.Session, error)
	Logout(ctx context.Context, token string) error
}

type sessionService struct {
	store    repository.Store
	throttle repository.Throttle
	users    UserDirectory
}

func NewSessionService(store repository.Store, throttle repository.Throttle, users UserDirectory) SessionService {
	return &sessionService{store: store, throttle: throttle, users: users}
}

func (s *sessionService) Login(ctx context.Context, address string) (*models.Session, error) {
	address = strings.TrimSpace(address)

	allowed, err := s.throttle.Allow(ctx, address)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, ErrTooManyAttempts
	}

	exists, err := s.users.Exists(ctx, address)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrUserNotFound
	}

	return s.store.Create(ctx, address)
}

func (s *sessionService) Resolve(ctx context.Context, token string) (string, error) {
	session, err := s.Validate(ctx, token)
	if err != nil {
		return "", err
	}

	return session.Address, nil
}

func (s *sessionService) Validate(ctx context.Context, token string) (*models.Session, error) {
	session, err := s.store.Lookup(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return nil, ErrSessionInvalid
		}
		return nil, err
	}

	return session, nil
}

func (s *sessionService) Logout(ctx context.Context, token string) error {
	return s.store.Invalidate(ctx, token)
}
