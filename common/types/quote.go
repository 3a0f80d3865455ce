package types

import (
	"math/big"

	commonerrors "github.com/tarun-khatri/profitpath-smart-swap/common/errors"
	"github.com/pkg/errors"
)

// FeeBreakdown carries the provider's fee figures for a quote. Cross-chain
// quotes populate the bridge-specific fields; same-chain quotes leave them empty.
type FeeBreakdown struct {
	NetworkFee     string
	BridgeFee      string
	BridgeFeeToken string
	BridgeFeeUSD   string
	GasFeeUSD      string
}

// Route is one candidate path through intermediate protocols, annotated with
// the provider's share and output estimate for that path.
type Route struct {
	Path      []string
	Percent   string
	AmountOut string
	Bridge    string
}

// Quote is an immutable snapshot of one provider quote for a SwapRequest.
// It is superseded entirely by a fresh quote call, never patched.
//
// AmountIn and AmountOut are smallest-unit integers encoded as strings since
// their precision exceeds native numeric range.
type Quote struct {
	FromChain       string
	ToChain         string
	FromToken       Token
	ToToken         Token
	AmountIn        string
	AmountOut       string
	MinimumReceived string
	RouterAddress   string
	PriceImpactPct  string
	EstimateTimeSec int
	Fees            FeeBreakdown
	Routes          []Route
	CrossChain      bool

	// Raw is the provider's original quote object, replayed verbatim on the
	// swap-data request so the provider can match the quote to a transaction.
	Raw []byte
}

// ValidateAmounts enforces the quote invariant: amountIn and amountOut are
// present, nonnegative integers encoded as strings.
func (q *Quote) ValidateAmounts() error {
	for _, amount := range []string{q.AmountIn, q.AmountOut} {
		n, ok := new(big.Int).SetString(amount, 10)
		if !ok {
			return errors.Wrapf(commonerrors.ErrMalformedQuote, "amount %q is not an integer", amount)
		}
		if n.Sign() < 0 {
			return errors.Wrapf(commonerrors.ErrMalformedQuote, "amount %q is negative", amount)
		}
	}
	return nil
}
