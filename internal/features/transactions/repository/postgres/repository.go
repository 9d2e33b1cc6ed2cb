package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"gameportal-backend/internal/features/transactions/models"
	"gameportal-backend/internal/features/transactions/repository"
)

type postgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) repository.TransactionRepository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) Insert(ctx context.Context, tx *models.Transaction) error {
	query := `
		INSERT INTO transactions (id, user_id, type, amount, tx_hash, status, description, token_symbol, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.ExecContext(ctx, query,
		tx.ID, tx.UserID, tx.Type, tx.Amount, tx.TxHash, tx.Status,
		tx.Description, tx.TokenSymbol, tx.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}

	return nil
}

func (r *postgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.Transaction, error) {
	query := `
		SELECT id, user_id, type, amount, COALESCE(tx_hash, ''), status, description, token_symbol, created_at
		FROM transactions
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var txs []*models.Transaction
	for rows.Next() {
		var tx models.Transaction
		err := rows.Scan(&tx.ID, &tx.UserID, &tx.Type, &tx.Amount, &tx.TxHash,
			&tx.Status, &tx.Description, &tx.TokenSymbol, &tx.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txs = append(txs, &tx)
	}

	return txs, rows.Err()
}
