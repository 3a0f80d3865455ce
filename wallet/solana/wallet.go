// Package solana implements a local-key Solana wallet over one RPC endpoint.
package solana

import (
	"context"

	sol "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Wallet signs and broadcasts versioned transactions with a local key.
type Wallet struct {
	client     *rpc.Client
	privateKey sol.PrivateKey
	logger     *logrus.Logger
}

// NewWallet creates a wallet from a base58-encoded private key and an RPC
// endpoint.
func NewWallet(privateKeyBase58, rpcURL string, logger *logrus.Logger) (*Wallet, error) {
	privateKey, err := sol.PrivateKeyFromBase58(privateKeyBase58)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse private key")
	}

	return &Wallet{
		client:     rpc.New(rpcURL),
		privateKey: privateKey,
		logger:     logger,
	}, nil
}

// PublicKey returns the wallet's public key.
func (w *Wallet) PublicKey() sol.PublicKey {
	return w.privateKey.PublicKey()
}

// SendTransaction signs the compiled transaction and broadcasts it, returning
// its signature.
func (w *Wallet) SendTransaction(ctx context.Context, tx *sol.Transaction) (sol.Signature, error) {
	_, err := tx.Sign(func(key sol.PublicKey) *sol.PrivateKey {
		if w.privateKey.PublicKey().Equals(key) {
			return &w.privateKey
		}

		return nil
	})
	if err != nil {
		return sol.Signature{}, errors.Wrap(err, "failed to sign transaction")
	}

	sig, err := w.client.SendTransactionWithOpts(ctx, tx, rpc.TransactionOpts{
		SkipPreflight:       false,
		PreflightCommitment: rpc.CommitmentProcessed,
	})
	if err != nil {
		return sol.Signature{}, errors.Wrap(err, "failed to send transaction")
	}

	w.logger.WithField("signature", sig.String()).Info("Transaction broadcast")

	return sig, nil
}
