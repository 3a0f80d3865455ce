package types

import (
	"regexp"

	commonerrors "github.com/tarun-khatri/profitpath-smart-swap/common/errors"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// DefaultSlippage is the fractional slippage tolerance applied when a request omits one.
const DefaultSlippage = "0.01"

var solanaAddressPattern = regexp.MustCompile(`^[1-9A-HJ-NP-Za-km-z]{32,44}$`)

// SwapRequest describes one user-initiated swap. It is constructed fresh per
// submission and treated as immutable once validated.
//
// Fields:
// - FromChain, ToChain: aggregator chain indexes.
// - FromToken, ToToken: resolved token reference data.
// - Amount: human-unit decimal string.
// - Slippage: fractional slippage tolerance as a decimal string.
// - SenderAddress: the connected wallet address on the source chain.
// - ReceiveAddress: destination address; required when it cannot equal the sender
//   (EVM sender swapping into Solana).
type SwapRequest struct {
	FromChain      string
	ToChain        string
	FromToken      Token
	ToToken        Token
	Amount         string
	Slippage       string
	SenderAddress  string
	ReceiveAddress string
}

// CrossChain reports whether the request spans two chains and therefore uses
// the provider's cross-chain endpoints.
func (r *SwapRequest) CrossChain() bool {
	return r.FromChain != r.ToChain
}

// Validate checks the request invariants. It must be called before any network
// call is made; conversational intent payloads go through the same checks as
// manually entered input.
func (r *SwapRequest) Validate() error {
	if r.FromChain == "" || r.ToChain == "" {
		return errors.Wrap(commonerrors.ErrInvalidRequest, "from and to chains are required")
	}
	if r.FromToken.Address == "" || r.ToToken.Address == "" {
		return errors.Wrap(commonerrors.ErrInvalidRequest, "from and to tokens are required")
	}
	if r.FromToken.ChainID != "" && r.FromToken.ChainID != r.FromChain {
		return errors.Wrap(commonerrors.ErrInvalidRequest, "fromToken does not belong to fromChain")
	}
	if r.ToToken.ChainID != "" && r.ToToken.ChainID != r.ToChain {
		return errors.Wrap(commonerrors.ErrInvalidRequest, "toToken does not belong to toChain")
	}

	amount, err := decimal.NewFromString(r.Amount)
	if err != nil {
		return errors.Wrap(commonerrors.ErrInvalidRequest, "amount is not a valid decimal")
	}
	if !amount.IsPositive() {
		return errors.Wrap(commonerrors.ErrInvalidRequest, "amount must be positive")
	}

	slippage := r.Slippage
	if slippage == "" {
		slippage = DefaultSlippage
	}
	s, err := decimal.NewFromString(slippage)
	if err != nil || !s.IsPositive() || s.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return errors.Wrap(commonerrors.ErrInvalidRequest, "slippage must be a fraction in (0, 1)")
	}

	if r.SenderAddress == "" {
		return errors.Wrap(commonerrors.ErrInvalidRequest, "sender address is required")
	}

	// A swap landing on Solana from an EVM sender cannot reuse the sender
	// address; the destination must be a valid base58 Solana address.
	if ChainTypeForIndex(r.ToChain) == SOLANA && ChainTypeForIndex(r.FromChain) == EVM {
		if r.ReceiveAddress == "" {
			return errors.Wrap(commonerrors.ErrInvalidRequest, "receive address is required for a Solana destination")
		}
		if !solanaAddressPattern.MatchString(r.ReceiveAddress) {
			return errors.Wrap(commonerrors.ErrInvalidRequest, "receive address is not a valid Solana address")
		}
	}

	return nil
}

// EffectiveSlippage returns the request slippage or the default when unset.
func (r *SwapRequest) EffectiveSlippage() string {
	if r.Slippage == "" {
		return DefaultSlippage
	}
	return r.Slippage
}

// Recipient returns the address funds land on: the explicit receive address
// when present, the sender otherwise.
func (r *SwapRequest) Recipient() string {
	if r.ReceiveAddress != "" {
		return r.ReceiveAddress
	}
	return r.SenderAddress
}
