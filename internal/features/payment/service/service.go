package service

import (
	"context"
	"errors"
	"fmt"

	"gameportal-backend/internal/common/apperrors"
	"gameportal-backend/internal/common/logger"
	gamemodels "gameportal-backend/internal/features/games/models"
	gamesvc "gameportal-backend/internal/features/games/service"
	"gameportal-backend/internal/features/payment/models"
)

var ErrGameNotFound = errors.New("game not found")

const (
	msgInsufficientFunds = "Insufficient funds: top up your wallet and try again"
	msgBalanceCheck      = "Could not verify wallet balance, please try again"
	msgSubmission        = "Transaction was not accepted, please try again"
)

// ChainGateway is the slice of the TON platform client the flow needs.
type ChainGateway interface {
	BalanceNano(ctx context.Context, address string) (int64, error)
	SubmitBOC(ctx context.Context, bocBase64 string) (string, error)
}

// GameCatalog resolves the purchased game.
type GameCatalog interface {
	GetGame(ctx context.Context, gameSlug string) (*gamemodels.Game, error)
}

// Ledger records the fee after settlement. Failures here must not undo the
// purchase.
type Ledger interface {
	RecordGameFee(ctx context.Context, address string, amount float64, txHash, description string) error
}

type PaymentService interface {
	// Purchase runs the flow to settlement. The returned result is Failed or
	// Success; a non-nil error means the request itself was unusable (unknown
	// game), not that the payment failed.
	Purchase(ctx context.Context, address string, req *models.PurchaseRequest) (*models.PurchaseResult, error)
}

type paymentService struct {
	chain   ChainGateway
	catalog GameCatalog
	ledger  Ledger

	feeNano        int64
	minBalanceNano int64
}

func NewPaymentService(chain ChainGateway, catalog GameCatalog, ledger Ledger, feeNano, minBalanceNano int64) PaymentService {
	return &paymentService{
		chain:          chain,
		catalog:        catalog,
		ledger:         ledger,
		feeNano:        feeNano,
		minBalanceNano: minBalanceNano,
	}
}

func (s *paymentService) Purchase(ctx context.Context, address string, req *models.PurchaseRequest) (*models.PurchaseResult, error) {
	game, err := s.catalog.GetGame(ctx, req.GameSlug)
	if err != nil {
		if errors.Is(err, gamesvc.ErrGameNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}

	// CheckingBalance: a wallet that cannot cover the fee never reaches the
	// chain at all.
	balance, err := s.chain.BalanceNano(ctx, address)
	if err != nil {
		logger.Error().Err(err).Str("address", address).Str("code", errorCode(err)).Msg("Balance check failed")
		return failed(msgBalanceCheck), nil
	}
	if balance < s.minBalanceNano {
		logger.Info().
			Str("address", address).
			Int64("balance_nano", balance).
			Int64("min_nano", s.minBalanceNano).
			Msg("Purchase rejected: insufficient funds")
		return failed(msgInsufficientFunds), nil
	}

	// Submitting: single attempt, no retry.
	txHash, err := s.chain.SubmitBOC(ctx, req.BOC)
	result := s.classify(txHash, err)
	if result.State != models.StateSuccess {
		return result, nil
	}

	// Best effort: a ledger miss must not block the player from the game
	// they just paid for. Under-recording is the accepted cost.
	fee := float64(s.feeNano) / 1e9
	description := fmt.Sprintf("Game fee for %s", game.Slug)
	if err := s.ledger.RecordGameFee(ctx, address, fee, txHash, description); err != nil {
		logger.Warn().
			Err(err).
			Str("address", address).
			Str("tx_hash", txHash).
			Str("game", game.Slug).
			Msg("Payment succeeded but ledger record failed")
	}

	result.PlayLink = game.PlayLink
	return result, nil
}

// classify decides the settled state of a submission. A hash with no explicit
// error counts as success; the gateway reports no richer status, so absence
// of failure is the only available signal.
func (s *paymentService) classify(txHash string, err error) *models.PurchaseResult {
	if err != nil || txHash == "" {
		logger.Error().Err(err).Str("code", errorCode(err)).Msg("Chain submission failed")
		return failed(msgSubmission)
	}

	return &models.PurchaseResult{
		State:  models.StateSuccess,
		TxHash: txHash,
	}
}

func failed(message string) *models.PurchaseResult {
	return &models.PurchaseResult{State: models.StateFailed, Message: message}
}

func errorCode(err error) string {
	if appErr, ok := apperrors.As(err); ok {
		return string(appErr.Code)
	}
	return string(apperrors.CodeInternal)
}
