package ton

import (
	"context"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/xssnick/tonutils-go/liteclient"
	"github.com/xssnick/tonutils-go/tlb"
	"github.com/xssnick/tonutils-go/ton"
	"github.com/xssnick/tonutils-go/tvm/cell"

	"gameportal-backend/internal/common/apperrors"
	"gameportal-backend/internal/common/logger"
)

// Client talks to the TON network two ways: TonAPI HTTP for account balance
// reads and a liteclient connection pool for pushing externally signed
// messages. Balance reads deliberately avoid the liteclient so a degraded
// lite-server set cannot block the cheap pre-checks.
type Client struct {
	apiBase    string
	apiToken   string
	httpClient *http.Client

	api ton.APIClientWrapped
}

// NewClient connects the liteclient pool using the global network config URL.
func NewClient(ctx context.Context, configURL, apiBase, apiToken string) (*Client, error) {
	if apiBase == "" {
		apiBase = "https://tonapi.io"
	}

	pool := liteclient.NewConnectionPool()
	if err := pool.AddConnectionsFromConfigUrl(ctx, configURL); err != nil {
		return nil, fmt.Errorf("failed to connect liteclient pool: %w", err)
	}

	c := &Client{
		apiBase:    strings.TrimRight(apiBase, "/"),
		apiToken:   apiToken,
		httpClient: &http.Client{Timeout: 8 * time.Second},
		api:        ton.NewAPIClient(pool).WithRetry(),
	}

	logger.Info().Str("tonapi", c.apiBase).Msg("TON client initialized")
	return c, nil
}

// BalanceNano returns the native TON balance of an address in nanoTONs.
func (c *Client) BalanceNano(ctx context.Context, address string) (int64, error) {
	var out struct {
		Balance json.Number `json:"balance"`
	}

	url := c.apiBase + "/v2/accounts/" + address
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Accept", "application/json")
	if c.apiToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, apperrors.Wrap(err, apperrors.CodeChainAPI, "balance lookup failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, apperrors.New(apperrors.CodeChainAPI, fmt.Sprintf("tonapi http %d", resp.StatusCode))
	}

	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, apperrors.Wrap(err, apperrors.CodeChainAPI, "malformed tonapi response")
	}

	n, err := strconv.ParseInt(out.Balance.String(), 10, 64)
	if err != nil {
		return 0, apperrors.Wrap(err, apperrors.CodeChainAPI, "invalid balance format")
	}

	return n, nil
}

// SubmitBOC pushes a wallet-signed external message (base64 BOC) to the
// network. It returns the hex hash of the message cell, which the caller uses
// as the transaction identifier. One attempt; retrying a transfer is the
// wallet's decision, not ours.
func (c *Client) SubmitBOC(ctx context.Context, bocBase64 string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(bocBase64)
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.CodeValidation, "invalid boc encoding")
	}

	msgCell, err := cell.FromBOC(raw)
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.CodeValidation, "invalid boc")
	}

	var ext tlb.ExternalMessage
	if err := tlb.LoadFromCell(&ext, msgCell.BeginParse()); err != nil {
		return "", apperrors.Wrap(err, apperrors.CodeValidation, "boc is not an external message")
	}

	if err := c.api.SendExternalMessage(ctx, &ext); err != nil {
		return "", apperrors.Wrap(err, apperrors.CodeChainSubmission, "external message rejected")
	}

	return hex.EncodeToString(msgCell.Hash()), nil
}
