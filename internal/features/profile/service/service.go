package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"gameportal-backend/internal/features/profile/models"
	"gameportal-backend/internal/features/profile/repository"
)

var ErrUserNotFound = errors.New("user not found")

type ProfileService interface {
	// GetOrCreateByAddress returns the profile for the address, creating an
	// empty one on first sight. Idempotent apart from that single insert.
	GetOrCreateByAddress(ctx context.Context, address string) (*models.User, error)
	UpdateName(ctx context.Context, address, name string) (*models.User, error)
	Exists(ctx context.Context, address string) (bool, error)
}

type profileService struct {
	repo repository.UserRepository
}

func NewProfileService(repo repository.UserRepository) ProfileService {
	return &profileService{repo: repo}
}

func (s *profileService) GetOrCreateByAddress(ctx context.Context, address string) (*models.User, error) {
	address = strings.TrimSpace(address)

	user, err := s.repo.GetByAddress(ctx, address)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, err
	}

	newUser := &models.User{
		ID:            uuid.New().String(),
		WalletAddress: address,
	}
	if err := s.repo.Create(ctx, newUser); err != nil {
		return nil, err
	}

	// Re-read instead of returning newUser: a concurrent first fetch may have
	// won the insert, and the DB also owns the timestamps.
	return s.repo.GetByAddress(ctx, address)
}

func (s *profileService) UpdateName(ctx context.Context, address, name string) (*models.User, error) {
	user, err := s.repo.UpdateName(ctx, address, strings.TrimSpace(name))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return user, nil
}

func (s *profileService) Exists(ctx context.Context, address string) (bool, error) {
	return s.repo.ExistsByAddress(ctx, address)
}
