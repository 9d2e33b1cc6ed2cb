package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	profilemodels "gameportal-backend/internal/features/profile/models"
	profilerepo "gameportal-backend/internal/features/profile/repository"
	"gameportal-backend/internal/features/transactions/models"
	"gameportal-backend/internal/features/transactions/repository"
)

var ErrUserNotFound = errors.New("user not found")

type UserDirectory interface {
	GetByAddress(ctx context.Context, address string) (*profilemodels.User, error)
}

type TransactionService interface {
	List(ctx context.Context, address string) ([]*models.Transaction, error)
	Create(ctx context.Context, address string, req *models.CreateTransactionRequest) (*models.Transaction, error)

	// RecordGameFee writes a completed game-fee ledger entry. Used by the
	// payment flow after a successful chain submission.
	RecordGameFee(ctx context.Context, address string, amount float64, txHash, description string) error
}

type transactionService struct {
	repo  repository.TransactionRepository
	users UserDirectory
}

func NewTransactionService(repo repository.TransactionRepository, users UserDirectory) TransactionService {
	return &transactionService{repo: repo, users: users}
}

func (s *transactionService) List(ctx context.Context, address string) ([]*models.Transaction, error) {
	user, err := s.resolveUser(ctx, address)
	if err != nil {
		return nil, err
	}

	return s.repo.ListByUser(ctx, user.ID)
}

func (s *transactionService) Create(ctx context.Context, address string, req *models.CreateTransactionRequest) (*models.Transaction, error) {
	user, err := s.resolveUser(ctx, address)
	if err != nil {
		return nil, err
	}

	tokenSymbol := req.TokenSymbol
	if tokenSymbol == "" {
		tokenSymbol = models.DefaultTokenSymbol
	}

	tx := &models.Transaction{
		ID:          uuid.New().String(),
		UserID:      user.ID,
		Type:        req.Type,
		Amount:      req.Amount,
		TxHash:      req.TxHash,
		Status:      req.Status,
		Description: req.Description,
		TokenSymbol: tokenSymbol,
		CreatedAt:   time.Now(),
	}

	if err := s.repo.Insert(ctx, tx); err != nil {
		return nil, err
	}

	return tx, nil
}

func (s *transactionService) RecordGameFee(ctx context.Context, address string, amount float64, txHash, description string) error {
	_, err := s.Create(ctx, address, &models.CreateTransactionRequest{
		Type:        models.TypeGameFee,
		Amount:      amount,
		TxHash:      txHash,
		Status:      models.StatusCompleted,
		Description: description,
	})
	if err != nil {
		return fmt.Errorf("failed to record game fee: %w", err)
	}

	return nil
}

func (s *transactionService) resolveUser(ctx context.Context, address string) (*profilemodels.User, error) {
	user, err := s.users.GetByAddress(ctx, address)
	if err != nil {
		if errors.Is(err, profilerepo.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return user, nil
}
