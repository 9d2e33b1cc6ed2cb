package models

// State is the payment flow position. A purchase settles in Success or
// Failed; Idle exists so callers can model "nothing in flight".
type State string

const (
	StateIdle            State = "idle"
	StateCheckingBalance State = "checking_balance"
	StateSubmitting      State = "submitting"
	StateSuccess         State = "success"
	StateFailed          State = "failed"
)

// PurchaseRequest carries the game to unlock and the wallet-signed transfer
// (base64 BOC) produced by the caller's wallet.
type PurchaseRequest struct {
	GameSlug string `json:"gameSlug" binding:"required"`
	BOC      string `json:"boc" binding:"required"`
}

// PurchaseResult is the settled outcome of one purchase attempt.
type PurchaseResult struct {
	State    State  `json:"state"`
	Message  string `json:"message,omitempty"`
	TxHash   string `json:"txHash,omitempty"`
	PlayLink string `json:"playLink,omitempty"`
}

type PurchaseResponse struct {
	Result *PurchaseResult `json:"result"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
