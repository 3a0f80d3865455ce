package pipeline

import (
	"context"

	"github.com/tarun-khatri/profitpath-smart-swap/common/types"
)

// QuoteSource fetches ranked quotes, implemented by the aggregator client.
type QuoteSource interface {
	GetQuote(ctx context.Context, req *types.SwapRequest) ([]types.Quote, error)
	GetSwapCallData(ctx context.Context, req *types.SwapRequest, quote *types.Quote) (*types.SwapCallData, error)
}

// Approver establishes ERC-20 allowances before EVM swaps, implemented by the
// approval manager.
type Approver interface {
	EnsureAllowance(ctx context.Context, req *types.SwapRequest, quote *types.Quote, wallet types.EVMWallet) (bool, error)
}

// TransactionBuilder converts call data into a signable transaction.
type TransactionBuilder interface {
	Build(ctx context.Context, req *types.SwapRequest, call *types.SwapCallData, payer string) (*types.SignableTransaction, error)
}

// TransactionSubmitter broadcasts a built transaction through the wallet set.
type TransactionSubmitter interface {
	Submit(ctx context.Context, tx *types.SignableTransaction, wallets *types.WalletSet, chainID string, crossChain bool) (*types.TxHandle, error)
}

// StatusAwaiter tracks a submitted transaction to a terminal status.
type StatusAwaiter interface {
	Await(ctx context.Context, handle *types.TxHandle) (types.TxStatus, error)
}
