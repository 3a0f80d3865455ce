package txbuilder

import (
	"math/big"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
	commonerrors "github.com/tarun-khatri/profitpath-smart-swap/common/errors"
	"github.com/tarun-khatri/profitpath-smart-swap/common/types"
)

const defaultSwapGasLimit = 500000

// buildEVM maps provider call data onto a signable EVM transaction. The
// legacy gas price and the EIP-1559 fee pair are mutually exclusive; a
// payload carrying both or neither is rejected rather than guessed at.
func (b *Builder) buildEVM(req *types.SwapRequest, call *types.EVMCallData) (*types.EVMTransaction, error) {
	if call.To == "" || call.Data == "" {
		return nil, errors.Wrap(commonerrors.ErrMalformedQuote, "transaction payload missing target or calldata")
	}

	data, err := hexutil.Decode(call.Data)
	if err != nil {
		return nil, errors.Wrap(commonerrors.ErrMalformedQuote, "calldata is not valid hex")
	}

	chainID, ok := new(big.Int).SetString(req.FromChain, 10)
	if !ok {
		return nil, errors.Wrapf(commonerrors.ErrInvalidRequest, "chain index %q is not numeric", req.FromChain)
	}

	value := big.NewInt(0)
	if call.Value != "" {
		value, ok = new(big.Int).SetString(call.Value, 10)
		if !ok {
			return nil, errors.Wrapf(commonerrors.ErrMalformedQuote, "value %q is not an integer", call.Value)
		}
	}

	gasLimit := uint64(defaultSwapGasLimit)
	if call.GasLimit != "" {
		gasLimit, err = strconv.ParseUint(call.GasLimit, 10, 64)
		if err != nil {
			return nil, errors.Wrapf(commonerrors.ErrMalformedQuote, "gas limit %q is not an integer", call.GasLimit)
		}
	}

	tx := &types.EVMTransaction{
		ChainID:  chainID,
		To:       common.HexToAddress(call.To),
		Data:     data,
		Value:    value,
		GasLimit: gasLimit,
	}

	hasLegacy := call.GasPrice != ""
	hasDynamic := call.MaxFeePerGas != "" || call.MaxPriorityFeePerGas != ""

	switch {
	case hasLegacy && hasDynamic:
		return nil, errors.Wrap(commonerrors.ErrMalformedQuote, "payload mixes legacy and dynamic fee fields")

	case hasLegacy:
		tx.GasPrice, ok = new(big.Int).SetString(call.GasPrice, 10)
		if !ok {
			return nil, errors.Wrapf(commonerrors.ErrMalformedQuote, "gas price %q is not an integer", call.GasPrice)
		}

	case hasDynamic:
		if call.MaxFeePerGas == "" || call.MaxPriorityFeePerGas == "" {
			return nil, errors.Wrap(commonerrors.ErrMalformedQuote, "dynamic fee fields must come as a pair")
		}
		tx.MaxFeePerGas, ok = new(big.Int).SetString(call.MaxFeePerGas, 10)
		if !ok {
			return nil, errors.Wrapf(commonerrors.ErrMalformedQuote, "max fee %q is not an integer", call.MaxFeePerGas)
		}
		tx.MaxPriorityFeePerGas, ok = new(big.Int).SetString(call.MaxPriorityFeePerGas, 10)
		if !ok {
			return nil, errors.Wrapf(commonerrors.ErrMalformedQuote, "priority fee %q is not an integer", call.MaxPriorityFeePerGas)
		}

	default:
		return nil, errors.Wrap(commonerrors.ErrMalformedQuote, "payload carries no fee fields")
	}

	return tx, nil
}
