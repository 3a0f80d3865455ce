package types

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	sol "github.com/gagliardetto/solana-go"
)

// TransactionKind discriminates the SignableTransaction union.
type TransactionKind string

const (
	// KindEVM marks a raw EVM transaction.
	KindEVM TransactionKind = "EVM"
	// KindSolana marks a Solana versioned transaction.
	KindSolana TransactionKind = "SOLANA"
)

// EVMTransaction is a ready-to-sign EVM transaction targeting the quote's
// router contract. Exactly one of GasPrice or the EIP-1559 pair is set; the
// wallet adapter supplies the nonce at signing time.
type EVMTransaction struct {
	ChainID              *big.Int
	To                   common.Address
	Data                 []byte
	Value                *big.Int
	GasLimit             uint64
	GasPrice             *big.Int
	MaxFeePerGas         *big.Int
	MaxPriorityFeePerGas *big.Int
}

// IsEIP1559 reports whether the transaction uses dynamic fee fields.
func (t *EVMTransaction) IsEIP1559() bool {
	return t.MaxFeePerGas != nil
}

// SolanaTransaction is a compiled versioned transaction ready for wallet
// signing, together with the payer it was compiled for.
type SolanaTransaction struct {
	Tx    *sol.Transaction
	Payer sol.PublicKey
}

// SignableTransaction is the tagged union produced by the transaction
// builder. Exactly one branch matching Kind is populated; consumers must
// handle both kinds exhaustively.
type SignableTransaction struct {
	Kind   TransactionKind
	EVM    *EVMTransaction
	Solana *SolanaTransaction
}

// TxHandle identifies a broadcast transaction for status tracking.
//
// Fields:
// - Hash: the transaction hash or signature.
// - ChainID: the chain index the transaction was broadcast on.
// - CrossChain: whether the swap used the cross-chain provider endpoints.
type TxHandle struct {
	Hash       string
	ChainID    string
	CrossChain bool
}
