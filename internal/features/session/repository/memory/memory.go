package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"gameportal-backend/internal/features/session/models"
	"gameportal-backend/internal/features/session/repository"
)

const sweepInterval = time.Minute

// Store is the prototype session backend: a guarded map with TTL sweeping.
// All sessions are lost on restart; that limitation is accepted, not hidden.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*models.Session
	ttl      time.Duration

	stop chan struct{}
	once sync.Once
}

func NewStore(ttl time.Duration) *Store {
	s := &Store{
		sessions: make(map[string]*models.Session),
		ttl:      ttl,
		stop:     make(chan struct{}),
	}

	go s.sweep()
	return s
}

var _ repository.Store = (*Store)(nil)

func (s *Store) Create(_ context.Context, address string) (*models.Session, error) {
	session := &models.Session{
		ID:        uuid.New().String(),
		Address:   address,
		ExpiresAt: time.Now().Add(s.ttl),
	}

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	return session, nil
}

// Lookup returns the session if it has not expired; an expired entry is
// deleted on the spot.
func (s *Store) Lookup(_ context.Context, id string) (*models.Session, error) {
	s.mu.RLock()
	session, ok := s.sessions[id]
	s.mu.RUnlock()

	if !ok {
		return nil, repository.ErrSessionNotFound
	}

	if time.Now().After(session.ExpiresAt) {
		s.mu.Lock()
		delete(s.sessions, id)
		s.mu.Unlock()
		return nil, repository.ErrSessionNotFound
	}

	copied := *session
	return &copied, nil
}

func (s *Store) Invalidate(_ context.Context, id string) error {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
	return nil
}

// Close stops the background sweeper.
func (s *Store) Close() {
	s.once.Do(func() { close(s.stop) })
}

func (s *Store) sweep() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case now := <-ticker.C:
			s.mu.Lock()
			for id, session := range s.sessions {
				if now.After(session.ExpiresAt) {
					delete(s.sessions, id)
				}
			}
			s.mu.Unlock()
		}
	}
}
