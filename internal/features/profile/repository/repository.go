package repository

import (
	"context"
	"errors"

	"gameportal-backend/internal/features/profile/models"
)

var ErrUserNotFound = errors.New("user not found")

type UserRepository interface {
	// Create inserts the user; a concurrent insert for the same address is
	// not an error (the row already present wins).
	Create(ctx context.Context, user *models.User) error
	GetByAddress(ctx context.Context, address string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	UpdateName(ctx context.Context, address, name string) (*models.User, error)
	ExistsByAddress(ctx context.Context, address string) (bool, error)
}
