package gateway

import (
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"
	"github.com/tarun-khatri/profitpath-smart-swap/amounts"
	commonerrors "github.com/tarun-khatri/profitpath-smart-swap/common/errors"
	"github.com/tarun-khatri/profitpath-smart-swap/common/types"
	"github.com/tarun-khatri/profitpath-smart-swap/intent"
)

type errorBody struct {
	Error string `json:"error"`
}

type swapBody struct {
	Request *types.SwapRequest `json:"request"`
	Quote   *types.Quote       `json:"quote"`
}

// quoteBody augments a quote with human-unit renderings of the output
// amounts, derived at full precision from the destination token's decimals.
type quoteBody struct {
	types.Quote
	AmountOutFormatted       string `json:"amountOutFormatted,omitempty"`
	MinimumReceivedFormatted string `json:"minimumReceivedFormatted,omitempty"`
}

type attemptBody struct {
	ID       string             `json:"id"`
	State    types.AttemptState `json:"state"`
	TxHash   string             `json:"txHash,omitempty"`
	Status   types.TxStatus     `json:"status,omitempty"`
	Guidance string             `json:"guidance,omitempty"`
	Error    string             `json:"error,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleChains(w http.ResponseWriter, r *http.Request) {
	chains, err := s.registry.Chains(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, chains)
}

func (s *Server) handleTokens(w http.ResponseWriter, r *http.Request) {
	chainID := r.URL.Query().Get("chain")
	if chainID == "" {
		s.writeError(w, errors.Wrap(commonerrors.ErrInvalidRequest, "chain query parameter is required"))
		return
	}

	tokens, err := s.registry.Tokens(r.Context(), chainID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tokens)
}

func (s *Server) handleIntent(w http.ResponseWriter, r *http.Request) {
	var payload intent.Payload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		s.writeError(w, errors.Wrap(commonerrors.ErrInvalidRequest, "request body is not valid JSON"))
		return
	}

	req, err := s.resolver.Resolve(r.Context(), &payload)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, req)
}

func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	var req types.SwapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errors.Wrap(commonerrors.ErrInvalidRequest, "request body is not valid JSON"))
		return
	}

	quotes, err := s.pipeline.Quote(r.Context(), &req)
	if err != nil {
		s.writeError(w, err)
		return
	}

	resp := make([]quoteBody, 0, len(quotes))
	for _, quote := range quotes {
		body := quoteBody{Quote: quote}
		if formatted, err := amounts.FromBaseUnits(quote.AmountOut, quote.ToToken.Decimals); err == nil {
			body.AmountOutFormatted = formatted
		}
		if formatted, err := amounts.FromBaseUnits(quote.MinimumReceived, quote.ToToken.Decimals); err == nil {
			body.MinimumReceivedFormatted = formatted
		}
		resp = append(resp, body)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSwap(w http.ResponseWriter, r *http.Request) {
	if s.wallets == nil {
		s.writeError(w, errors.Wrap(commonerrors.ErrSubmissionFailed, "no wallets configured on this instance"))
		return
	}

	var body swapBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Request == nil || body.Quote == nil {
		s.writeError(w, errors.Wrap(commonerrors.ErrInvalidRequest, "body must carry request and quote"))
		return
	}

	if err := body.Request.Validate(); err != nil {
		s.writeError(w, err)
		return
	}

	attempt, _ := s.pipeline.Execute(r.Context(), body.Request, body.Quote, s.wallets)

	resp := attemptBody{
		ID:     attempt.ID,
		State:  attempt.State,
		Status: attempt.FinalStatus,
	}
	if attempt.Handle != nil {
		resp.TxHash = attempt.Handle.Hash
	}
	if attempt.FinalStatus != "" {
		resp.Guidance = attempt.FinalStatus.Guidance()
	}
	if attempt.Err != nil {
		resp.Error = attempt.Err.Error()
	}

	// The attempt itself is the response even when the swap failed; HTTP
	// errors are reserved for requests that never produced an attempt.
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	hash := r.URL.Query().Get("txHash")
	chain := r.URL.Query().Get("chain")
	if hash == "" || chain == "" {
		s.writeError(w, errors.Wrap(commonerrors.ErrInvalidRequest, "txHash and chain query parameters are required"))
		return
	}

	handle := &types.TxHandle{
		Hash:       hash,
		ChainID:    chain,
		CrossChain: r.URL.Query().Get("crossChain") == "true",
	}

	status, err := s.statuses.TransactionStatus(r.Context(), handle)
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status":   string(status),
		"guidance": status.Guidance(),
	})
}

func writeJSON(w http.ResponseWriter, code int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(body)
}

// writeError maps pipeline sentinels onto HTTP status codes.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError

	var upstream *commonerrors.UpstreamError
	switch {
	case errors.Is(err, commonerrors.ErrInvalidRequest):
		code = http.StatusBadRequest
	case errors.Is(err, commonerrors.ErrNoRouteFound):
		code = http.StatusNotFound
	case errors.Is(err, commonerrors.ErrRegistryUnavailable):
		code = http.StatusServiceUnavailable
	case errors.As(err, &upstream):
		code = http.StatusBadGateway
		s.metrics.CountUpstreamError()
	}

	s.logger.WithError(err).Warn("Request failed")
	writeJSON(w, code, errorBody{Error: err.Error()})
}
