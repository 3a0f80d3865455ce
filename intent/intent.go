// Package intent turns a conversational swap payload into a validated
// SwapRequest, resolving chains and tokens against the registry.
package intent

import (
	"context"
	"regexp"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	commonerrors "github.com/tarun-khatri/profitpath-smart-swap/common/errors"
	"github.com/tarun-khatri/profitpath-smart-swap/common/types"
	"github.com/tarun-khatri/profitpath-smart-swap/registry"
)

// Payload is the raw swap intent as it arrives from the conversational
// frontend. Chains and tokens may be names, symbols, or addresses.
type Payload struct {
	FromChain      string `json:"fromChain"`
	ToChain        string `json:"toChain"`
	FromToken      string `json:"fromToken"`
	ToToken        string `json:"toToken"`
	Amount         string `json:"amount"`
	Slippage       string `json:"slippage,omitempty"`
	SenderAddress  string `json:"senderAddress"`
	ReceiveAddress string `json:"receiveAddress,omitempty"`
}

// Command shorthand: "swap <amount> <token> on <chain> to <token> on <chain>".
var commandPattern = regexp.MustCompile(`(?i)^(?:swap\s+)?(\d+\.?\d*)\s+(\S+)\s+on\s+(\S+)\s+to\s+(\S+)\s+on\s+(\S+)$`)

// Resolver converts intent payloads into validated swap requests.
type Resolver struct {
	registry *registry.Registry
	logger   *logrus.Logger
}

// NewResolver creates a resolver over the given registry.
func NewResolver(reg *registry.Registry, logger *logrus.Logger) *Resolver {
	return &Resolver{registry: reg, logger: logger}
}

// ParseCommand parses the shorthand command form into a payload. Addresses
// are not part of the shorthand and must be filled in by the caller.
func ParseCommand(command string) (*Payload, error) {
	matches := commandPattern.FindStringSubmatch(strings.TrimSpace(command))
	if matches == nil {
		return nil, errors.Wrap(commonerrors.ErrInvalidRequest,
			"expected 'swap <amount> <token> on <chain> to <token> on <chain>'")
	}

	return &Payload{
		Amount:    matches[1],
		FromToken: matches[2],
		FromChain: matches[3],
		ToToken:   matches[4],
		ToChain:   matches[5],
	}, nil
}

// Resolve maps the payload's chain and token references onto registry entries
// and returns a fully validated swap request.
func (r *Resolver) Resolve(ctx context.Context, payload *Payload) (*types.SwapRequest, error) {
	fromChain, err := r.registry.ResolveChain(ctx, payload.FromChain)
	if err != nil {
		return nil, err
	}
	toChain, err := r.registry.ResolveChain(ctx, payload.ToChain)
	if err != nil {
		return nil, err
	}

	fromToken, err := r.registry.ResolveToken(ctx, fromChain.ID, payload.FromToken)
	if err != nil {
		return nil, err
	}
	toToken, err := r.registry.ResolveToken(ctx, toChain.ID, payload.ToToken)
	if err != nil {
		return nil, err
	}

	req := &types.SwapRequest{
		FromChain:      fromChain.ID,
		ToChain:        toChain.ID,
		FromToken:      *fromToken,
		ToToken:        *toToken,
		Amount:         payload.Amount,
		Slippage:       payload.Slippage,
		SenderAddress:  payload.SenderAddress,
		ReceiveAddress: payload.ReceiveAddress,
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}

	r.logger.WithFields(logrus.Fields{
		"fromChain": req.FromChain,
		"toChain":   req.ToChain,
		"fromToken": req.FromToken.Symbol,
		"toToken":   req.ToToken.Symbol,
	}).Debug("Swap intent resolved")

	return req, nil
}
