package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"gameportal-backend/internal/features/profile/models"
	"gameportal-backend/internal/features/profile/repository"
)

type postgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) repository.UserRepository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, wallet_address, name)
		VALUES ($1, $2, $3)
		ON CONFLICT (wallet_address) DO NOTHING
	`

	_, err := r.db.ExecContext(ctx, query, user.ID, user.WalletAddress, user.Name)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (r *postgresRepository) GetByAddress(ctx context.Context, address string) (*models.User, error) {
	query := `
		SELECT id, wallet_address, name, created_at, updated_at
		FROM users
		WHERE wallet_address = $1
	`

	var user models.User
	err := r.db.QueryRowContext(ctx, query, address).Scan(
		&user.ID, &user.WalletAddress, &user.Name, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, repository.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by address: %w", err)
	}

	return &user, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := `
		SELECT id, wallet_address, name, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	var user models.User
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID, &user.WalletAddress, &user.Name, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, repository.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

func (r *postgresRepository) UpdateName(ctx context.Context, address, name string) (*models.User, error) {
	query := `
		UPDATE users
		SET name = $2, updated_at = NOW()
		WHERE wallet_address = $1
		RETURNING id, wallet_address, name, created_at, updated_at
	`

	var user models.User
	err := r.db.QueryRowContext(ctx, query, address, name).Scan(
		&user.ID, &user.WalletAddress, &user.Name, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, repository.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update user name: %w", err)
	}

	return &user, nil
}

func (r *postgresRepository) ExistsByAddress(ctx context.Context, address string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		"SELECT EXISTS (SELECT 1 FROM users WHERE wallet_address = $1)", address).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}

	return exists, nil
}
