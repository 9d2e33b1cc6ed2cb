package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gamemodels "gameportal-backend/internal/features/games/models"
	gamesvc "gameportal-backend/internal/features/games/service"
	"gameportal-backend/internal/features/payment/models"
)

const (
	testFeeNano        = int64(100_000_000)
	testMinBalanceNano = int64(150_000_000)
)

type fakeChain struct {
	balance    int64
	balanceErr error

	submitHash string
	submitErr  error
	submits    int
}

func (c *fakeChain) BalanceNano(_ context.Context, _ string) (int64, error) {
	return c.balance, c.balanceErr
}

func (c *fakeChain) SubmitBOC(_ context.Context, _ string) (string, error) {
	c.submits++
	return c.submitHash, c.submitErr
}

type fakeCatalog struct {
	game *gamemodels.Game
}

func (c *fakeCatalog) GetGame(_ context.Context, slug string) (*gamemodels.Game, error) {
	if c.game == nil || c.game.Slug != slug {
		return nil, gamesvc.ErrGameNotFound
	}
	return c.game, nil
}

type fakeLedger struct {
	err     error
	records int
	amount  float64
	txHash  string
}

func (l *fakeLedger) RecordGameFee(_ context.Context, _ string, amount float64, txHash, _ string) error {
	l.records++
	l.amount = amount
	l.txHash = txHash
	return l.err
}

func testGame() *gamemodels.Game {
	return &gamemodels.Game{ID: "g1", Slug: "snake", Name: "Snake", PlayLink: "https://play.example/snake"}
}

func newPurchase(chain *fakeChain, ledger *fakeLedger) PaymentService {
	return NewPaymentService(chain, &fakeCatalog{game: testGame()}, ledger, testFeeNano, testMinBalanceNano)
}

func purchaseReq() *models.PurchaseRequest {
	return &models.PurchaseRequest{GameSlug: "snake", BOC: "dGVzdA=="}
}

func TestPurchase_Success(t *testing.T) {
	chain := &fakeChain{balance: 200_000_000, submitHash: "abc123"}
	ledger := &fakeLedger{}
	svc := newPurchase(chain, ledger)

	result, err := svc.Purchase(context.Background(), "EQwallet", purchaseReq())
	require.NoError(t, err)

	assert.Equal(t, models.StateSuccess, result.State)
	assert.Equal(t, "abc123", result.TxHash)
	assert.Equal(t, "https://play.example/snake", result.PlayLink)
	assert.Equal(t, 1, chain.submits)

	require.Equal(t, 1, ledger.records)
	assert.Equal(t, 0.1, ledger.amount)
	assert.Equal(t, "abc123", ledger.txHash)
}

func TestPurchase_InsufficientFunds(t *testing.T) {
	chain := &fakeChain{balance: 100_000_000}
	ledger := &fakeLedger{}
	svc := newPurchase(chain, ledger)

	result, err := svc.Purchase(context.Background(), "EQwallet", purchaseReq())
	require.NoError(t, err)

	assert.Equal(t, models.StateFailed, result.State)
	assert.Contains(t, result.Message, "Insufficient funds")

	// An uncovered fee never reaches the chain or the ledger.
	assert.Equal(t, 0, chain.submits)
	assert.Equal(t, 0, ledger.records)
}

func TestPurchase_BalanceCheckError(t *testing.T) {
	chain := &fakeChain{balanceErr: errors.New("tonapi down")}
	svc := newPurchase(chain, &fakeLedger{})

	result, err := svc.Purchase(context.Background(), "EQwallet", purchaseReq())
	require.NoError(t, err)

	assert.Equal(t, models.StateFailed, result.State)
	assert.Equal(t, 0, chain.submits)
}

func TestPurchase_SubmissionError(t *testing.T) {
	chain := &fakeChain{balance: 200_000_000, submitErr: errors.New("liteserver rejected")}
	ledger := &fakeLedger{}
	svc := newPurchase(chain, ledger)

	result, err := svc.Purchase(context.Background(), "EQwallet", purchaseReq())
	require.NoError(t, err)

	assert.Equal(t, models.StateFailed, result.State)
	assert.Equal(t, 1, chain.submits)
	assert.Equal(t, 0, ledger.records)
}

func TestPurchase_LedgerFailureStillSucceeds(t *testing.T) {
	chain := &fakeChain{balance: 200_000_000, submitHash: "abc123"}
	ledger := &fakeLedger{err: errors.New("db down")}
	svc := newPurchase(chain, ledger)

	result, err := svc.Purchase(context.Background(), "EQwallet", purchaseReq())
	require.NoError(t, err)

	// Recording is best effort; the player keeps their purchase.
	assert.Equal(t, models.StateSuccess, result.State)
	assert.Equal(t, "abc123", result.TxHash)
	assert.Equal(t, 1, ledger.records)
}

func TestPurchase_UnknownGame(t *testing.T) {
	svc := newPurchase(&fakeChain{balance: 200_000_000}, &fakeLedger{})

	_, err := svc.Purchase(context.Background(), "EQwallet", &models.PurchaseRequest{GameSlug: "missing", BOC: "dGVzdA=="})
	assert.ErrorIs(t, err, ErrGameNotFound)
}

func TestClassify(t *testing.T) {
	svc := &paymentService{}

	tests := []struct {
		name   string
		txHash string
		err    error
		want   models.State
	}{
		{name: "hash and no error", txHash: "abc", want: models.StateSuccess},
		{name: "explicit error", txHash: "abc", err: errors.New("rejected"), want: models.StateFailed},
		{name: "empty hash", txHash: "", want: models.StateFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := svc.classify(tt.txHash, tt.err)
			assert.Equal(t, tt.want, result.State)
		})
	}
}
