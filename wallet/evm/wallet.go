// Package evm implements a local-key EVM wallet: it assigns nonces, signs
// prepared transactions, and broadcasts them over RPC.
package evm

import (
	"context"
	"crypto/ecdsa"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/tarun-khatri/profitpath-smart-swap/common/types"
)

// Wallet is a local-key wallet over one RPC endpoint.
type Wallet struct {
	clientMutex sync.RWMutex
	client      *ethclient.Client
	privateKey  *ecdsa.PrivateKey
	address     common.Address
	logger      *logrus.Logger
}

// NewWallet creates a wallet from a hex-encoded private key and an RPC
// endpoint.
func NewWallet(privateKeyHex, rpcURL string, logger *logrus.Logger) (*Wallet, error) {
	privateKey, err := crypto.HexToECDSA(privateKeyHex)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse private key")
	}

	pubKeyECDSA, ok := privateKey.Public().(*ecdsa.PublicKey)
	if !ok {
		return nil, errors.New("cannot assign public key to ECDSA")
	}

	client, err := ethclient.Dial(rpcURL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to RPC endpoint")
	}

	return &Wallet{
		client:     client,
		privateKey: privateKey,
		address:    crypto.PubkeyToAddress(*pubKeyECDSA),
		logger:     logger,
	}, nil
}

// Address returns the wallet's sender address as a hex string.
func (w *Wallet) Address() string {
	return w.address.Hex()
}

// UpdateClient swaps the underlying RPC client, for endpoint failover.
func (w *Wallet) UpdateClient(client *ethclient.Client) {
	w.clientMutex.Lock()
	w.client = client
	w.clientMutex.Unlock()
}

// SendTransaction assigns the next pending nonce, signs the transaction, and
// broadcasts it, returning the transaction hash.
func (w *Wallet) SendTransaction(ctx context.Context, tx *types.EVMTransaction) (string, error) {
	w.clientMutex.RLock()
	client := w.client
	w.clientMutex.RUnlock()

	if client == nil {
		return "", errors.New("client not initialized")
	}

	nonce, err := client.PendingNonceAt(ctx, w.address)
	if err != nil {
		return "", errors.Wrap(err, "failed to get pending nonce")
	}

	signed, err := w.signTransaction(tx, nonce)
	if err != nil {
		return "", err
	}

	if err := client.SendTransaction(ctx, signed); err != nil {
		return "", errors.Wrap(err, "failed to send transaction")
	}

	w.logger.WithFields(logrus.Fields{
		"txHash": signed.Hash().Hex(),
		"nonce":  nonce,
	}).Info("Transaction broadcast")

	return signed.Hash().Hex(), nil
}

// signTransaction materializes the prepared transaction as legacy or dynamic
// fee depending on which fee fields it carries, then signs it.
func (w *Wallet) signTransaction(tx *types.EVMTransaction, nonce uint64) (*ethtypes.Transaction, error) {
	var unsigned *ethtypes.Transaction

	if tx.IsEIP1559() {
		unsigned = ethtypes.NewTx(&ethtypes.DynamicFeeTx{
			ChainID:   tx.ChainID,
			Nonce:     nonce,
			GasTipCap: tx.MaxPriorityFeePerGas,
			GasFeeCap: tx.MaxFeePerGas,
			Gas:       tx.GasLimit,
			To:        &tx.To,
			Value:     tx.Value,
			Data:      tx.Data,
		})
	} else {
		gasPrice := tx.GasPrice
		if gasPrice == nil {
			gasPrice = big.NewInt(0)
		}
		unsigned = ethtypes.NewTransaction(
			nonce,
			tx.To,
			tx.Value,
			tx.GasLimit,
			gasPrice,
			tx.Data,
		)
	}

	auth, err := bind.NewKeyedTransactorWithChainID(w.privateKey, tx.ChainID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create keyed transactor")
	}

	signed, err := auth.Signer(w.address, unsigned)
	if err != nil {
		return nil, errors.Wrap(err, "failed to sign transaction")
	}

	return signed, nil
}
