package repository

import (
	"context"
	"errors"

	"gameportal-backend/internal/features/session/models"
)

var ErrSessionNotFound = errors.New("session not found")

// Store is the session capability: create a session for an address, look a
// token back up, and invalidate it. Implementations expire sessions on their
// own; Lookup never returns an expired session.
type Store interface {
	Create(ctx context.Context, address string) (*models.Session, error)
	Lookup(ctx context.Context, id string) (*models.Session, error)
	Invalidate(ctx context.Context, id string) error
}

// Throttle bounds automatic login attempts per address.
type Throttle interface {
	// Allow reports whether another attempt is permitted inside the current
	// window, consuming one attempt when it is.
	Allow(ctx context.Context, address string) (bool, error)
}
