package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"gameportal-backend/internal/features/session/models"
	"gameportal-backend/internal/features/session/repository"
)

const (
	keyPrefixSession = "session:"
	keyPrefixAttempt = "login_attempts:"
)

// Store keeps sessions in redis with the TTL doing the expiry. This is the
// production backend; sessions survive process restarts.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

func NewStore(client *redis.Client, ttl time.Duration) repository.Store {
	return &Store{client: client, ttl: ttl}
}

func (s *Store) Create(ctx context.Context, address string) (*models.Session, error) {
	session := &models.Session{
		ID:        uuid.New().String(),
		Address:   address,
		ExpiresAt: time.Now().Add(s.ttl),
	}

	data, err := json.Marshal(session)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := s.client.Set(ctx, keyPrefixSession+session.ID, data, s.ttl).Err(); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	return session, nil
}

func (s *Store) Lookup(ctx context.Context, id string) (*models.Session, error) {
	data, err := s.client.Get(ctx, keyPrefixSession+id).Bytes()
	if err == redis.Nil {
		return nil, repository.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var session models.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	session.ID = id

	return &session, nil
}

func (s *Store) Invalidate(ctx context.Context, id string) error {
	return s.client.Del(ctx, keyPrefixSession+id).Err()
}

// LoginThrottle counts attempts per address with INCR and lets the key TTL
// reset the window.
type LoginThrottle struct {
	client      *redis.Client
	maxAttempts int
	window      time.Duration
}

func NewLoginThrottle(client *redis.Client, maxAttempts int, window time.Duration) repository.Throttle {
	return &LoginThrottle{client: client, maxAttempts: maxAttempts, window: window}
}

func (t *LoginThrottle) Allow(ctx context.Context, address string) (bool, error) {
	key := keyPrefixAttempt + address

	count, err := t.client.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to count login attempts: %w", err)
	}
	if count == 1 {
		// First attempt opens the window.
		if err := t.client.Expire(ctx, key, t.window).Err(); err != nil {
			return false, fmt.Errorf("failed to set attempt window: %w", err)
		}
	}

	return count <= int64(t.maxAttempts), nil
}
