package repository

import (
	"context"

	"gameportal-backend/internal/features/transactions/models"
)

type TransactionRepository interface {
	Insert(ctx context.Context, tx *models.Transaction) error
	// ListByUser returns transactions newest first.
	ListByUser(ctx context.Context, userID string) ([]*models.Transaction, error)
}
