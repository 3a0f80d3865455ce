// Package txbuilder converts provider swap payloads into signable chain
// transactions: raw calldata transactions for EVM chains, compiled versioned
// transactions for Solana.
package txbuilder

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	commonerrors "github.com/tarun-khatri/profitpath-smart-swap/common/errors"
	"github.com/tarun-khatri/profitpath-smart-swap/common/types"
)

// Builder assembles signable transactions from provider call data.
type Builder struct {
	solanaRPC SolanaRPC
	logger    *logrus.Logger
}

// New creates a builder. The Solana RPC client may be nil if only EVM swaps
// are built.
func New(solanaRPC SolanaRPC, logger *logrus.Logger) *Builder {
	return &Builder{
		solanaRPC: solanaRPC,
		logger:    logger,
	}
}

// Build converts the call data for the request's source chain into a
// signable transaction. The payer is the sending wallet's address on that
// chain.
func (b *Builder) Build(ctx context.Context, req *types.SwapRequest, call *types.SwapCallData, payer string) (*types.SignableTransaction, error) {
	switch {
	case call.EVM != nil:
		tx, err := b.buildEVM(req, call.EVM)
		if err != nil {
			return nil, err
		}
		return &types.SignableTransaction{Kind: types.KindEVM, EVM: tx}, nil

	case call.Solana != nil:
		tx, err := b.buildSolana(ctx, call.Solana, payer)
		if err != nil {
			return nil, err
		}
		return &types.SignableTransaction{Kind: types.KindSolana, Solana: tx}, nil

	default:
		return nil, errors.Wrap(commonerrors.ErrMalformedQuote, "call data carries neither branch")
	}
}
