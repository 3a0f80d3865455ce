// Package submitter broadcasts built swap transactions through the connected
// wallet and classifies wallet failures so callers can distinguish a user
// declining to sign from an actual broadcast failure.
package submitter

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	commonerrors "github.com/tarun-khatri/profitpath-smart-swap/common/errors"
	"github.com/tarun-khatri/profitpath-smart-swap/common/types"
)

// Submitter sends signable transactions through the wallet set.
type Submitter struct {
	logger *logrus.Logger
}

// New creates a submitter.
func New(logger *logrus.Logger) *Submitter {
	return &Submitter{logger: logger}
}

// Submit signs and broadcasts the transaction with the matching wallet and
// returns a handle for status tracking. The crossChain flag is carried into
// the handle so the poller queries the right provider endpoint.
func (s *Submitter) Submit(ctx context.Context, tx *types.SignableTransaction, wallets *types.WalletSet, chainID string, crossChain bool) (*types.TxHandle, error) {
	switch tx.Kind {
	case types.KindEVM:
		if wallets.EVM == nil {
			return nil, errors.Wrap(commonerrors.ErrSubmissionFailed, "no EVM wallet connected")
		}

		hash, err := wallets.EVM.SendTransaction(ctx, tx.EVM)
		if err != nil {
			return nil, classify(err)
		}

		s.logger.WithFields(logrus.Fields{
			"chain":  chainID,
			"txHash": hash,
		}).Info("Swap transaction submitted")

		return &types.TxHandle{Hash: hash, ChainID: chainID, CrossChain: crossChain}, nil

	case types.KindSolana:
		if wallets.Solana == nil {
			return nil, errors.Wrap(commonerrors.ErrSubmissionFailed, "no Solana wallet connected")
		}

		sig, err := wallets.Solana.SendTransaction(ctx, tx.Solana.Tx)
		if err != nil {
			return nil, classify(err)
		}

		s.logger.WithFields(logrus.Fields{
			"chain":     chainID,
			"signature": sig.String(),
		}).Info("Swap transaction submitted")

		return &types.TxHandle{Hash: sig.String(), ChainID: chainID, CrossChain: crossChain}, nil

	default:
		return nil, errors.Wrapf(commonerrors.ErrSubmissionFailed, "unknown transaction kind %q", tx.Kind)
	}
}

// classify maps a wallet error onto the submission sentinels. Sentinel
// matches win over substring matches.
func classify(err error) error {
	if errors.Is(err, commonerrors.ErrUserRejected) || errors.Is(err, commonerrors.ErrInsufficientFunds) {
		return err
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "user rejected"), strings.Contains(msg, "user denied"):
		return errors.Wrap(commonerrors.ErrUserRejected, err.Error())
	case strings.Contains(msg, "insufficient funds"), strings.Contains(msg, "insufficient lamports"):
		return errors.Wrap(commonerrors.ErrInsufficientFunds, err.Error())
	default:
		return errors.Wrap(commonerrors.ErrSubmissionFailed, err.Error())
	}
}
