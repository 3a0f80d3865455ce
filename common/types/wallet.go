package types

import (
	"context"

	sol "github.com/gagliardetto/solana-go"
)

// EVMWallet signs and broadcasts EVM transactions. The pipeline holds no key
// material; implementations wrap a connected wallet client or a local key.
type EVMWallet interface {
	// Address returns the wallet's sender address as a hex string.
	Address() string

	// SendTransaction signs and broadcasts the transaction, returning its hash.
	SendTransaction(ctx context.Context, tx *EVMTransaction) (string, error)
}

// SolanaWallet signs and broadcasts Solana versioned transactions.
type SolanaWallet interface {
	// PublicKey returns the wallet's public key.
	PublicKey() sol.PublicKey

	// SendTransaction signs and broadcasts the transaction, returning its signature.
	SendTransaction(ctx context.Context, tx *sol.Transaction) (sol.Signature, error)
}

// WalletSet carries the connected wallets a swap attempt may need. Wallets are
// passed explicitly into the pipeline entry points rather than read from
// ambient state so the pipeline stays testable with mocks.
type WalletSet struct {
	EVM    EVMWallet
	Solana SolanaWallet
}
