package submitter

import (
	"context"
	"testing"

	sol "github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	commonerrors "github.com/tarun-khatri/profitpath-smart-swap/common/errors"
	"github.com/tarun-khatri/profitpath-smart-swap/common/types"
)

type stubEVMWallet struct {
	hash string
	err  error
}

func (s *stubEVMWallet) Address() string { return "0x1111111111111111111111111111111111111111" }

func (s *stubEVMWallet) SendTransaction(ctx context.Context, tx *types.EVMTransaction) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.hash, nil
}

type stubSolanaWallet struct {
	sig sol.Signature
	err error
}

func (s *stubSolanaWallet) PublicKey() sol.PublicKey { return sol.PublicKey{} }

func (s *stubSolanaWallet) SendTransaction(ctx context.Context, tx *sol.Transaction) (sol.Signature, error) {
	if s.err != nil {
		return sol.Signature{}, s.err
	}
	return s.sig, nil
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func evmTx() *types.SignableTransaction {
	return &types.SignableTransaction{Kind: types.KindEVM, EVM: &types.EVMTransaction{}}
}

func TestSubmitEVM(t *testing.T) {
	s := New(quietLogger())
	wallets := &types.WalletSet{EVM: &stubEVMWallet{hash: "0xabc"}}

	handle, err := s.Submit(context.Background(), evmTx(), wallets, "1", false)
	require.NoError(t, err)
	assert.Equal(t, "0xabc", handle.Hash)
	assert.Equal(t, "1", handle.ChainID)
	assert.False(t, handle.CrossChain)
}

func TestSubmitSolana(t *testing.T) {
	s := New(quietLogger())

	sig := sol.Signature{1, 2, 3}
	wallets := &types.WalletSet{Solana: &stubSolanaWallet{sig: sig}}

	tx := &types.SignableTransaction{
		Kind:   types.KindSolana,
		Solana: &types.SolanaTransaction{Tx: &sol.Transaction{}},
	}

	handle, err := s.Submit(context.Background(), tx, wallets, "501", true)
	require.NoError(t, err)
	assert.Equal(t, sig.String(), handle.Hash)
	assert.True(t, handle.CrossChain)
}

func TestClassifyRejection(t *testing.T) {
	s := New(quietLogger())
	wallets := &types.WalletSet{EVM: &stubEVMWallet{err: errors.New("MetaMask Tx Signature: User denied transaction signature")}}

	_, err := s.Submit(context.Background(), evmTx(), wallets, "1", false)
	assert.True(t, errors.Is(err, commonerrors.ErrUserRejected))
}

func TestClassifyInsufficientFunds(t *testing.T) {
	s := New(quietLogger())
	wallets := &types.WalletSet{EVM: &stubEVMWallet{err: errors.New("insufficient funds for gas * price + value")}}

	_, err := s.Submit(context.Background(), evmTx(), wallets, "1", false)
	assert.True(t, errors.Is(err, commonerrors.ErrInsufficientFunds))
}

func TestClassifyOtherFailure(t *testing.T) {
	s := New(quietLogger())
	wallets := &types.WalletSet{EVM: &stubEVMWallet{err: errors.New("nonce too low")}}

	_, err := s.Submit(context.Background(), evmTx(), wallets, "1", false)
	assert.True(t, errors.Is(err, commonerrors.ErrSubmissionFailed))
}

func TestMissingWallet(t *testing.T) {
	s := New(quietLogger())

	_, err := s.Submit(context.Background(), evmTx(), &types.WalletSet{}, "1", false)
	assert.True(t, errors.Is(err, commonerrors.ErrSubmissionFailed))
}
