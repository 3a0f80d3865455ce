// Package aggregator implements the signed HTTP client for the DEX
// aggregation provider: quote requests (same-chain and cross-chain),
// swap-transaction payloads, token approvals, token listings, and
// transaction status queries.
package aggregator

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	commonerrors "github.com/tarun-khatri/profitpath-smart-swap/common/errors"
	"github.com/tarun-khatri/profitpath-smart-swap/common/types"

	"github.com/tarun-khatri/profitpath-smart-swap/amounts"
)

const defaultRequestTimeout = 15 * time.Second

// Config holds the aggregation provider connection settings.
type Config struct {
	BaseURL    string
	APIKey     string
	SecretKey  string
	Passphrase string
	HTTPClient *http.Client
}

// Client is the signed HTTP client for the aggregation provider.
type Client struct {
	baseURL    string
	httpClient *http.Client
	creds      credentials
	logger     *logrus.Logger
}

// New creates a provider client from the given configuration.
func New(cfg Config, logger *logrus.Logger) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultRequestTimeout}
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: httpClient,
		creds: credentials{
			apiKey:     cfg.APIKey,
			secretKey:  cfg.SecretKey,
			passphrase: cfg.Passphrase,
		},
		logger: logger,
	}
}

// do executes one signed request and decodes the JSON response into out.
// Non-success responses become UpstreamError with the message extracted from
// the response body.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body interface{}, out interface{}) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "failed to marshal request body")
		}
	}

	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, bytes.NewReader(payload))
	if err != nil {
		return errors.Wrap(err, "failed to create request")
	}

	timestamp := time.Now().UTC().Format(time.RFC3339)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("OK-ACCESS-KEY", c.creds.apiKey)
	req.Header.Set("OK-ACCESS-SIGN", c.creds.sign(timestamp, method, path, payload))
	req.Header.Set("OK-ACCESS-TIMESTAMP", timestamp)
	req.Header.Set("OK-ACCESS-PASSPHRASE", c.creds.passphrase)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "failed to call provider")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "failed to read provider response")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &commonerrors.UpstreamError{
			StatusCode: resp.StatusCode,
			Message:    extractErrorMessage(raw),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return errors.Wrap(err, "failed to decode provider response")
	}

	return nil
}

// extractErrorMessage pulls a human-readable message out of an error body,
// falling back to the raw body text.
func extractErrorMessage(raw []byte) string {
	var er errorResponse
	if err := json.Unmarshal(raw, &er); err == nil {
		if er.Error != "" {
			return er.Error
		}
		if er.Msg != "" {
			return er.Msg
		}
	}
	return strings.TrimSpace(string(raw))
}

// ListChains returns the chains the provider supports swaps on.
func (c *Client) ListChains(ctx context.Context) ([]types.Chain, error) {
	var indexes []string
	if err := c.do(ctx, http.MethodGet, "/api/tokens/chains", nil, nil, &indexes); err != nil {
		return nil, err
	}

	chains := make([]types.Chain, 0, len(indexes))
	for _, idx := range indexes {
		chains = append(chains, types.Chain{
			ID:   idx,
			Name: types.ChainName(idx),
			Type: types.ChainTypeForIndex(idx),
		})
	}
	return chains, nil
}

// ListTokens returns the swappable tokens for one chain.
func (c *Client) ListTokens(ctx context.Context, chainID string) ([]types.Token, error) {
	query := url.Values{"chain": {chainID}}

	var tokens []types.Token
	if err := c.do(ctx, http.MethodGet, "/api/tokens", query, nil, &tokens); err != nil {
		return nil, err
	}
	return tokens, nil
}

// GetQuote requests a swap quote for the given request, using the same-chain
// or cross-chain endpoint depending on the request's chain pair, and
// normalizes both response shapes into the internal Quote form. The request
// is validated before any network call.
func (c *Client) GetQuote(ctx context.Context, req *types.SwapRequest) ([]types.Quote, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	baseAmount, err := amounts.ToBaseUnits(req.Amount, req.FromToken.Decimals)
	if err != nil {
		return nil, errors.Wrap(commonerrors.ErrInvalidRequest, err.Error())
	}

	body := quoteRequest{
		FromChain: req.FromChain,
		ToChain:   req.ToChain,
		FromToken: req.FromToken.Address,
		ToToken:   req.ToToken.Address,
		Amount:    baseAmount,
		Slippage:  req.EffectiveSlippage(),
	}

	if req.CrossChain() {
		return c.getCrossChainQuote(ctx, req, body)
	}
	return c.getSameChainQuote(ctx, req, body)
}

func (c *Client) getSameChainQuote(ctx context.Context, req *types.SwapRequest, body quoteRequest) ([]types.Quote, error) {
	var resp sameChainQuoteResponse
	if err := c.do(ctx, http.MethodPost, "/quotes", nil, body, &resp); err != nil {
		return nil, err
	}

	if len(resp.Quotes) == 0 {
		return nil, errors.Wrap(commonerrors.ErrNoRouteFound, "provider returned zero routes")
	}

	quotes := make([]types.Quote, 0, len(resp.Quotes))
	for _, raw := range resp.Quotes {
		quote, err := normalizeSameChainQuote(req, raw)
		if err != nil {
			return nil, err
		}
		quotes = append(quotes, *quote)
	}

	c.logger.WithFields(logrus.Fields{
		"fromChain": req.FromChain,
		"toChain":   req.ToChain,
		"routes":    len(quotes),
	}).Debug("Same-chain quote received")

	return quotes, nil
}

func (c *Client) getCrossChainQuote(ctx context.Context, req *types.SwapRequest, body quoteRequest) ([]types.Quote, error) {
	var resp crossChainQuoteResponse
	if err := c.do(ctx, http.MethodPost, "/crosschain/quote", nil, body, &resp); err != nil {
		return nil, err
	}

	if len(resp.Quote) == 0 || string(resp.Quote) == "null" {
		return nil, errors.Wrap(commonerrors.ErrNoRouteFound, "provider returned no cross-chain quote")
	}

	quote, err := normalizeCrossChainQuote(req, resp.Quote)
	if err != nil {
		return nil, err
	}

	c.logger.WithFields(logrus.Fields{
		"fromChain": req.FromChain,
		"toChain":   req.ToChain,
		"routes":    len(quote.Routes),
	}).Debug("Cross-chain quote received")

	return []types.Quote{*quote}, nil
}

// GetSwapCallData asks the provider for the transaction payload executing the
// selected quote, replaying the provider's quote object verbatim.
func (c *Client) GetSwapCallData(ctx context.Context, req *types.SwapRequest, quote *types.Quote) (*types.SwapCallData, error) {
	baseAmount, err := amounts.ToBaseUnits(req.Amount, req.FromToken.Decimals)
	if err != nil {
		return nil, errors.Wrap(commonerrors.ErrInvalidRequest, err.Error())
	}

	body := swapRequestBody{
		FromChain:         req.FromChain,
		ToChain:           req.ToChain,
		FromToken:         req.FromToken.Address,
		ToToken:           req.ToToken.Address,
		Amount:            baseAmount,
		Quote:             quote.Raw,
		UserWalletAddress: req.SenderAddress,
	}

	path := "/quotes/swap"
	if quote.CrossChain {
		path = "/crosschain/swap"
		body.ReceiveAddress = req.Recipient()
	}

	var resp swapDataResponse
	if err := c.do(ctx, http.MethodPost, path, nil, body, &resp); err != nil {
		return nil, err
	}

	raw := resp.SwapData
	if len(raw) == 0 {
		raw = resp.TxData
	}
	if len(raw) == 0 || string(raw) == "null" {
		return nil, errors.Wrap(commonerrors.ErrMalformedQuote, "provider returned no transaction payload")
	}

	return decodeCallData(raw)
}

// decodeCallData splits the provider payload into the EVM or Solana branch of
// the call-data union by shape: Solana payloads carry an instruction list.
func decodeCallData(raw json.RawMessage) (*types.SwapCallData, error) {
	var probe struct {
		InstructionLists json.RawMessage `json:"instructionLists"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, errors.Wrap(commonerrors.ErrMalformedQuote, "transaction payload is not an object")
	}

	if len(probe.InstructionLists) > 0 && string(probe.InstructionLists) != "null" {
		var solData types.SolanaCallData
		if err := json.Unmarshal(raw, &solData); err != nil {
			return nil, errors.Wrap(commonerrors.ErrMalformedQuote, "instruction lists are not an array")
		}
		return &types.SwapCallData{Solana: &solData}, nil
	}

	var evmData types.EVMCallData
	if err := json.Unmarshal(raw, &evmData); err != nil {
		return nil, errors.Wrap(commonerrors.ErrMalformedQuote, "failed to decode EVM transaction payload")
	}
	return &types.SwapCallData{EVM: &evmData}, nil
}

// GetApprovalData fetches the approval transaction payload granting the
// provider's router contract an allowance over the given token amount.
func (c *Client) GetApprovalData(ctx context.Context, chainIndex, tokenAddress, amount string) (*ApprovalData, error) {
	body := approveRequestBody{
		ChainIndex:           chainIndex,
		TokenContractAddress: tokenAddress,
		ApproveAmount:        amount,
	}

	var resp approveResponse
	if err := c.do(ctx, http.MethodPost, "/quotes/approve", nil, body, &resp); err != nil {
		return nil, err
	}

	if len(resp.ApproveData) == 0 {
		return nil, errors.Wrap(commonerrors.ErrApprovalFailed, "provider returned no approval payload")
	}

	return &resp.ApproveData[0], nil
}

// TransactionStatus queries the provider's status endpoint for the handle's
// transaction, mapping the provider's status string onto TxStatus.
func (c *Client) TransactionStatus(ctx context.Context, handle *types.TxHandle) (types.TxStatus, error) {
	path := "/quotes/transaction-status"
	if handle.CrossChain {
		path = "/crosschain/tx-status"
	}

	query := url.Values{
		"chainIndex": {handle.ChainID},
		"txHash":     {handle.Hash},
	}

	var resp statusResponse
	if err := c.do(ctx, http.MethodGet, path, query, nil, &resp); err != nil {
		return types.StatusPending, err
	}

	switch resp.Status {
	case "success":
		return types.StatusSucceeded, nil
	case "failed":
		return types.StatusFailed, nil
	default:
		return types.StatusPending, nil
	}
}
