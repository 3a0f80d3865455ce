package approval

import (
	"context"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/pkg/errors"
)

// erc20AllowanceABI covers the single read used here. Approvals themselves
// are sent with provider-built calldata, so no other methods are needed.
const erc20AllowanceABI = `[{"constant":true,"inputs":[{"name":"owner","type":"address"},{"name":"spender","type":"address"}],"name":"allowance","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"}]`

const receiptPollInterval = time.Second

// AllowanceReader reads the current ERC-20 allowance an owner has granted a
// spender.
type AllowanceReader interface {
	Allowance(ctx context.Context, token, owner, spender string) (*big.Int, error)
}

// ReceiptWaiter blocks until a transaction is mined and reports whether it
// succeeded.
type ReceiptWaiter interface {
	WaitMined(ctx context.Context, txHash string) (bool, error)
}

// EthBackend implements AllowanceReader and ReceiptWaiter over an RPC client.
type EthBackend struct {
	clientMutex sync.RWMutex
	client      *ethclient.Client
	tokenAbi    abi.ABI
}

// NewEthBackend creates a backend over the given RPC endpoint.
func NewEthBackend(rpcURL string) (*EthBackend, error) {
	client, err := ethclient.Dial(rpcURL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to RPC endpoint")
	}

	tokenAbi, err := abi.JSON(strings.NewReader(erc20AllowanceABI))
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse token ABI")
	}

	return &EthBackend{client: client, tokenAbi: tokenAbi}, nil
}

// UpdateClient swaps the underlying RPC client, for endpoint failover.
func (b *EthBackend) UpdateClient(client *ethclient.Client) {
	b.clientMutex.Lock()
	b.client = client
	b.clientMutex.Unlock()
}

// Allowance reads allowance(owner, spender) on the token contract.
func (b *EthBackend) Allowance(ctx context.Context, token, owner, spender string) (*big.Int, error) {
	b.clientMutex.RLock()
	client := b.client
	b.clientMutex.RUnlock()

	if client == nil {
		return nil, errors.New("client not initialized")
	}

	data, err := b.tokenAbi.Pack("allowance", common.HexToAddress(owner), common.HexToAddress(spender))
	if err != nil {
		return nil, errors.Wrap(err, "failed to pack allowance data")
	}

	tokenAddr := common.HexToAddress(token)
	result, err := client.CallContract(ctx, ethereum.CallMsg{
		To:   &tokenAddr,
		Data: data,
	}, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to call allowance")
	}

	out, err := b.tokenAbi.Unpack("allowance", result)
	if err != nil {
		return nil, errors.Wrap(err, "failed to unpack allowance result")
	}

	allowance, ok := out[0].(*big.Int)
	if !ok {
		return nil, errors.New("allowance result is not an integer")
	}
	return allowance, nil
}

// WaitMined polls for the transaction receipt until the context expires.
func (b *EthBackend) WaitMined(ctx context.Context, txHash string) (bool, error) {
	b.clientMutex.RLock()
	client := b.client
	b.clientMutex.RUnlock()

	if client == nil {
		return false, errors.New("client not initialized")
	}

	ticker := time.NewTicker(receiptPollInterval)
	defer ticker.Stop()

	hash := common.HexToHash(txHash)

	for {
		select {
		case <-ctx.Done():
			return false, ctx.Err()

		case <-ticker.C:
			receipt, err := client.TransactionReceipt(ctx, hash)
			if err != nil {
				if errors.Is(err, ethereum.NotFound) {
					continue
				}
				return false, errors.Wrap(err, "failed to get transaction receipt")
			}

			return receipt.Status == ethtypes.ReceiptStatusSuccessful, nil
		}
	}
}
