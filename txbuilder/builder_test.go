package txbuilder

import (
	"context"
	"encoding/base64"
	"encoding/binary"
	"testing"

	sol "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	commonerrors "github.com/tarun-khatri/profitpath-smart-swap/common/errors"
	"github.com/tarun-khatri/profitpath-smart-swap/common/types"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func evmRequest() *types.SwapRequest {
	return &types.SwapRequest{FromChain: "1", ToChain: "1"}
}

func evmCall() *types.EVMCallData {
	return &types.EVMCallData{
		To:       "0x2222222222222222222222222222222222222222",
		Data:     "0xdeadbeef",
		Value:    "0",
		GasLimit: "210000",
		GasPrice: "30000000000",
	}
}

func TestBuildEVMLegacy(t *testing.T) {
	b := New(nil, quietLogger())

	signable, err := b.Build(context.Background(), evmRequest(), &types.SwapCallData{EVM: evmCall()}, "")
	require.NoError(t, err)
	require.Equal(t, types.KindEVM, signable.Kind)

	tx := signable.EVM
	assert.False(t, tx.IsEIP1559())
	assert.Equal(t, "30000000000", tx.GasPrice.String())
	assert.Equal(t, uint64(210000), tx.GasLimit)
	assert.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, tx.Data)
}

func TestBuildEVMDynamicFee(t *testing.T) {
	b := New(nil, quietLogger())

	call := evmCall()
	call.GasPrice = ""
	call.MaxFeePerGas = "40000000000"
	call.MaxPriorityFeePerGas = "2000000000"

	signable, err := b.Build(context.Background(), evmRequest(), &types.SwapCallData{EVM: call}, "")
	require.NoError(t, err)

	tx := signable.EVM
	assert.True(t, tx.IsEIP1559())
	assert.Nil(t, tx.GasPrice)
	assert.Equal(t, "40000000000", tx.MaxFeePerGas.String())
}

func TestBuildEVMMixedFeeFieldsRejected(t *testing.T) {
	b := New(nil, quietLogger())

	call := evmCall()
	call.MaxFeePerGas = "40000000000"
	call.MaxPriorityFeePerGas = "2000000000"

	_, err := b.Build(context.Background(), evmRequest(), &types.SwapCallData{EVM: call}, "")
	assert.True(t, errors.Is(err, commonerrors.ErrMalformedQuote))
}

func TestBuildEVMNoFeeFieldsRejected(t *testing.T) {
	b := New(nil, quietLogger())

	call := evmCall()
	call.GasPrice = ""

	_, err := b.Build(context.Background(), evmRequest(), &types.SwapCallData{EVM: call}, "")
	assert.True(t, errors.Is(err, commonerrors.ErrMalformedQuote))
}

func TestBuildEVMMissingTarget(t *testing.T) {
	b := New(nil, quietLogger())

	call := evmCall()
	call.To = ""

	_, err := b.Build(context.Background(), evmRequest(), &types.SwapCallData{EVM: call}, "")
	assert.True(t, errors.Is(err, commonerrors.ErrMalformedQuote))
}

type stubSolanaRPC struct {
	accounts       map[sol.PublicKey][]byte
	accountErr     error
	blockhashCalls int
}

func (s *stubSolanaRPC) GetLatestBlockhash(ctx context.Context, commitment rpc.CommitmentType) (*rpc.GetLatestBlockhashResult, error) {
	s.blockhashCalls++
	return &rpc.GetLatestBlockhashResult{
		Value: &rpc.LatestBlockhashResult{
			Blockhash: sol.Hash{1, 2, 3},
		},
	}, nil
}

func (s *stubSolanaRPC) GetAccountInfo(ctx context.Context, account sol.PublicKey) (*rpc.GetAccountInfoResult, error) {
	if s.accountErr != nil {
		return nil, s.accountErr
	}
	data, ok := s.accounts[account]
	if !ok {
		return nil, errors.New("not found")
	}
	return &rpc.GetAccountInfoResult{
		Value: &rpc.Account{
			Data: rpc.DataBytesOrJSONFromBytes(data),
		},
	}, nil
}

// lookupTableData builds a syntactically valid table account: the fixed
// header with type index 1 followed by the given address entries.
func lookupTableData(entries ...sol.PublicKey) []byte {
	data := make([]byte, lookupTableHeaderLen)
	binary.LittleEndian.PutUint32(data[0:4], 1)
	for _, entry := range entries {
		data = append(data, entry.Bytes()...)
	}
	return data
}

func solanaCall(tables ...string) *types.SolanaCallData {
	if tables == nil {
		tables = []string{}
	}
	return &types.SolanaCallData{
		Instructions: []types.InstructionData{
			{
				ProgramID: "JUP6LkbZbjS1jKKwapdHNy74zcZ3tLUZoi5QNyVTaV4",
				Accounts: []types.AccountMetaData{
					{Pubkey: "7Np41oeYqPefeNQEHSv1UDhYrehxin3NStELsSKCT4K2", IsSigner: true, IsWritable: true},
				},
				Data: base64.StdEncoding.EncodeToString([]byte{1, 2, 3}),
			},
		},
		AddressLookupTables: tables,
	}
}

const testPayer = "7Np41oeYqPefeNQEHSv1UDhYrehxin3NStELsSKCT4K2"

func TestBuildSolana(t *testing.T) {
	tableKey := sol.NewWallet().PublicKey()
	stored := sol.NewWallet().PublicKey()

	rpcStub := &stubSolanaRPC{
		accounts: map[sol.PublicKey][]byte{
			tableKey: lookupTableData(stored),
		},
	}

	b := New(rpcStub, quietLogger())

	signable, err := b.Build(context.Background(), evmRequest(), &types.SwapCallData{Solana: solanaCall(tableKey.String())}, testPayer)
	require.NoError(t, err)
	require.Equal(t, types.KindSolana, signable.Kind)
	require.NotNil(t, signable.Solana.Tx)
	assert.Equal(t, testPayer, signable.Solana.Payer.String())
	assert.Equal(t, 1, rpcStub.blockhashCalls)
}

// A table that cannot be fetched aborts the build before any transaction is
// compiled.
func TestBuildSolanaUnresolvableTable(t *testing.T) {
	rpcStub := &stubSolanaRPC{accountErr: errors.New("rpc unavailable")}
	b := New(rpcStub, quietLogger())

	_, err := b.Build(context.Background(), evmRequest(), &types.SwapCallData{Solana: solanaCall(sol.NewWallet().PublicKey().String())}, testPayer)
	assert.True(t, errors.Is(err, commonerrors.ErrLookupTableUnresolvable))
}

// An empty table list is a route that needs no tables and builds directly.
func TestBuildSolanaEmptyTableList(t *testing.T) {
	b := New(&stubSolanaRPC{}, quietLogger())

	signable, err := b.Build(context.Background(), evmRequest(), &types.SwapCallData{Solana: solanaCall()}, testPayer)
	require.NoError(t, err)
	assert.NotNil(t, signable.Solana.Tx)
}

// A payload without a table list at all is malformed, matching the
// missing-instruction-list handling.
func TestBuildSolanaMissingTableList(t *testing.T) {
	b := New(&stubSolanaRPC{}, quietLogger())

	call := solanaCall()
	call.AddressLookupTables = nil

	_, err := b.Build(context.Background(), evmRequest(), &types.SwapCallData{Solana: call}, testPayer)
	assert.True(t, errors.Is(err, commonerrors.ErrMalformedQuote))
}

func TestBuildSolanaEmptyInstructions(t *testing.T) {
	b := New(&stubSolanaRPC{}, quietLogger())

	call := &types.SolanaCallData{Instructions: nil}
	_, err := b.Build(context.Background(), evmRequest(), &types.SwapCallData{Solana: call}, testPayer)
	assert.True(t, errors.Is(err, commonerrors.ErrMalformedQuote))
}

func TestDecodeLookupTableState(t *testing.T) {
	first := sol.NewWallet().PublicKey()
	second := sol.NewWallet().PublicKey()

	entries, err := decodeLookupTableState(lookupTableData(first, second))
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, first, entries[0])
	assert.Equal(t, second, entries[1])
}

func TestDecodeLookupTableStateWrongType(t *testing.T) {
	data := lookupTableData()
	binary.LittleEndian.PutUint32(data[0:4], 0)

	_, err := decodeLookupTableState(data)
	assert.Error(t, err)
}

func TestBuildEmptyUnion(t *testing.T) {
	b := New(nil, quietLogger())

	_, err := b.Build(context.Background(), evmRequest(), &types.SwapCallData{}, "")
	assert.True(t, errors.Is(err, commonerrors.ErrMalformedQuote))
}
