package models

import "time"

// Transaction is a local ledger entry for an on-chain payment or other token
// movement. Rows are immutable once written; the chain stays the source of
// truth for settlement.
type Transaction struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Type        string    `json:"type"`
	Amount      float64   `json:"amount"`
	TxHash      string    `json:"txHash"`
	Status      string    `json:"status"`
	Description string    `json:"description"`
	TokenSymbol string    `json:"tokenSymbol"`
	CreatedAt   time.Time `json:"createdAt"`
}

const (
	TypeGameFee = "game_fee"

	StatusCompleted = "completed"
	StatusPending   = "pending"
	StatusFailed    = "failed"

	DefaultTokenSymbol = "TON"
)

type CreateTransactionRequest struct {
	Type        string  `json:"type" binding:"required"`
	Amount      float64 `json:"amount" binding:"required"`
	TxHash      string  `json:"txHash"`
	Status      string  `json:"status" binding:"required"`
	Description string  `json:"description"`
	TokenSymbol string  `json:"tokenSymbol"`
}

type TransactionResponse struct {
	Transaction *Transaction `json:"transaction"`
}

type TransactionListResponse struct {
	Transactions []*Transaction `json:"transactions"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
