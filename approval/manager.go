// Package approval ensures the provider's router contract holds a sufficient
// ERC-20 allowance before an EVM swap is built. Native-asset swaps and Solana
// swaps never need approval and pass through untouched.
package approval

import (
	"context"
	"math/big"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/tarun-khatri/profitpath-smart-swap/aggregator"
	commonerrors "github.com/tarun-khatri/profitpath-smart-swap/common/errors"
	"github.com/tarun-khatri/profitpath-smart-swap/common/types"
)

const defaultApprovalGasLimit = 100000

// PayloadSource fetches provider-built approval calldata, implemented by the
// aggregator client.
type PayloadSource interface {
	GetApprovalData(ctx context.Context, chainIndex, tokenAddress, amount string) (*aggregator.ApprovalData, error)
}

// Manager checks and establishes token allowances for EVM swaps.
type Manager struct {
	reader   AllowanceReader
	waiter   ReceiptWaiter
	payloads PayloadSource
	logger   *logrus.Logger
}

// NewManager creates an approval manager over the given backend and payload
// source. The reader and waiter are usually the same EthBackend.
func NewManager(reader AllowanceReader, waiter ReceiptWaiter, payloads PayloadSource, logger *logrus.Logger) *Manager {
	return &Manager{
		reader:   reader,
		waiter:   waiter,
		payloads: payloads,
		logger:   logger,
	}
}

// EnsureAllowance guarantees the router may spend the quoted input amount.
// It returns true if an approval transaction was sent and mined, false if the
// existing allowance already covered the amount or no approval applies.
//
// The check and the approval are idempotent: a second call with the same
// arguments finds the allowance in place and sends nothing.
func (m *Manager) EnsureAllowance(ctx context.Context, req *types.SwapRequest, quote *types.Quote, wallet types.EVMWallet) (bool, error) {
	if types.ChainTypeForIndex(req.FromChain) != types.EVM || req.FromToken.IsNative() {
		return false, nil
	}
	if wallet == nil {
		return false, errors.Wrap(commonerrors.ErrApprovalFailed, "no EVM wallet connected")
	}

	required, ok := new(big.Int).SetString(quote.AmountIn, 10)
	if !ok {
		return false, errors.Wrapf(commonerrors.ErrMalformedQuote, "quote amount %q is not an integer", quote.AmountIn)
	}

	owner := wallet.Address()
	spender := quote.RouterAddress

	current, err := m.reader.Allowance(ctx, req.FromToken.Address, owner, spender)
	if err != nil {
		return false, errors.Wrap(commonerrors.ErrApprovalFailed, err.Error())
	}

	if current.Cmp(required) >= 0 {
		m.logger.WithFields(logrus.Fields{
			"token":   req.FromToken.Symbol,
			"spender": spender,
		}).Debug("Existing allowance sufficient")
		return false, nil
	}

	payload, err := m.payloads.GetApprovalData(ctx, req.FromChain, req.FromToken.Address, required.String())
	if err != nil {
		if commonerrors.IsUpstream(err) {
			return false, err
		}
		return false, errors.Wrap(commonerrors.ErrApprovalFailed, err.Error())
	}

	tx, err := buildApprovalTx(req, payload)
	if err != nil {
		return false, err
	}

	hash, err := wallet.SendTransaction(ctx, tx)
	if err != nil {
		if isRejection(err) {
			return false, errors.Wrap(commonerrors.ErrApprovalRejected, err.Error())
		}
		return false, errors.Wrap(commonerrors.ErrApprovalFailed, err.Error())
	}

	m.logger.WithFields(logrus.Fields{
		"token":  req.FromToken.Symbol,
		"txHash": hash,
	}).Info("Approval transaction sent")

	mined, err := m.waiter.WaitMined(ctx, hash)
	if err != nil {
		return false, errors.Wrap(commonerrors.ErrApprovalFailed, err.Error())
	}
	if !mined {
		return false, errors.Wrap(commonerrors.ErrApprovalFailed, "approval transaction reverted")
	}

	return true, nil
}

// buildApprovalTx converts the provider payload into a signable transaction.
// The calldata targets the token contract; the spender is encoded inside it.
func buildApprovalTx(req *types.SwapRequest, payload *aggregator.ApprovalData) (*types.EVMTransaction, error) {
	data, err := hexutil.Decode(payload.Data)
	if err != nil {
		return nil, errors.Wrap(commonerrors.ErrApprovalFailed, "approval calldata is not valid hex")
	}

	chainID, ok := new(big.Int).SetString(req.FromChain, 10)
	if !ok {
		return nil, errors.Wrapf(commonerrors.ErrInvalidRequest, "chain index %q is not numeric", req.FromChain)
	}

	gasLimit := uint64(defaultApprovalGasLimit)
	if payload.GasLimit != "" {
		parsed, err := strconv.ParseUint(payload.GasLimit, 10, 64)
		if err == nil {
			gasLimit = parsed
		}
	}

	var gasPrice *big.Int
	if payload.GasPrice != "" {
		parsed, ok := new(big.Int).SetString(payload.GasPrice, 10)
		if !ok {
			return nil, errors.Wrapf(commonerrors.ErrApprovalFailed, "gas price %q is not an integer", payload.GasPrice)
		}
		gasPrice = parsed
	}

	return &types.EVMTransaction{
		ChainID:  chainID,
		To:       common.HexToAddress(req.FromToken.Address),
		Data:     data,
		Value:    big.NewInt(0),
		GasLimit: gasLimit,
		GasPrice: gasPrice,
	}, nil
}

// isRejection reports whether a wallet error means the user declined to sign.
func isRejection(err error) bool {
	if errors.Is(err, commonerrors.ErrUserRejected) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "user rejected") || strings.Contains(msg, "user denied")
}
