package intent

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	commonerrors "github.com/tarun-khatri/profitpath-smart-swap/common/errors"
	"github.com/tarun-khatri/profitpath-smart-swap/common/types"
	"github.com/tarun-khatri/profitpath-smart-swap/registry"
)

type stubSource struct{}

func (stubSource) ListChains(ctx context.Context) ([]types.Chain, error) {
	return []types.Chain{
		{ID: "1", Name: "Ethereum", Type: types.EVM},
		{ID: "501", Name: "Solana", Type: types.SOLANA},
	}, nil
}

func (stubSource) ListTokens(ctx context.Context, chainID string) ([]types.Token, error) {
	switch chainID {
	case "1":
		return []types.Token{
			{Symbol: "USDC", ChainID: "1", Address: "0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48", Decimals: 6},
			{Symbol: "WETH", ChainID: "1", Address: "0xc02aaa39b223fe8d0a0e5c4f27ead9083c756cc2", Decimals: 18},
		}, nil
	case "501":
		return []types.Token{
			{Symbol: "USDC", ChainID: "501", Address: "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v", Decimals: 6},
		}, nil
	}
	return nil, nil
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func newResolver() *Resolver {
	return NewResolver(registry.New(stubSource{}, quietLogger()), quietLogger())
}

func TestParseCommand(t *testing.T) {
	payload, err := ParseCommand("swap 1.5 WETH on ethereum to USDC on solana")
	require.NoError(t, err)
	assert.Equal(t, "1.5", payload.Amount)
	assert.Equal(t, "WETH", payload.FromToken)
	assert.Equal(t, "ethereum", payload.FromChain)
	assert.Equal(t, "USDC", payload.ToToken)
	assert.Equal(t, "solana", payload.ToChain)
}

func TestParseCommandWithoutSwapPrefix(t *testing.T) {
	payload, err := ParseCommand("100 USDC on 1 to WETH on 1")
	require.NoError(t, err)
	assert.Equal(t, "100", payload.Amount)
}

func TestParseCommandMalformed(t *testing.T) {
	_, err := ParseCommand("please swap my tokens")
	assert.True(t, errors.Is(err, commonerrors.ErrInvalidRequest))
}

func TestResolveBySymbolAndName(t *testing.T) {
	resolver := newResolver()

	req, err := resolver.Resolve(context.Background(), &Payload{
		FromChain:     "ethereum",
		ToChain:       "1",
		FromToken:     "usdc",
		ToToken:       "WETH",
		Amount:        "100",
		SenderAddress: "0x1111111111111111111111111111111111111111",
	})
	require.NoError(t, err)
	assert.Equal(t, "1", req.FromChain)
	assert.Equal(t, "USDC", req.FromToken.Symbol)
	assert.Equal(t, 6, req.FromToken.Decimals)
	assert.Equal(t, "WETH", req.ToToken.Symbol)
}

func TestResolveUnknownToken(t *testing.T) {
	resolver := newResolver()

	_, err := resolver.Resolve(context.Background(), &Payload{
		FromChain:     "ethereum",
		ToChain:       "ethereum",
		FromToken:     "DOGE",
		ToToken:       "WETH",
		Amount:        "100",
		SenderAddress: "0x1111111111111111111111111111111111111111",
	})
	assert.True(t, errors.Is(err, commonerrors.ErrInvalidRequest))
}

// Resolution surfaces the receive-address rule: a Solana destination reached
// from an EVM chain needs a base58 receive address.
func TestResolveSolanaDestinationRequiresReceiveAddress(t *testing.T) {
	resolver := newResolver()

	payload := &Payload{
		FromChain:     "ethereum",
		ToChain:       "solana",
		FromToken:     "USDC",
		ToToken:       "USDC",
		Amount:        "100",
		SenderAddress: "0x1111111111111111111111111111111111111111",
	}

	_, err := resolver.Resolve(context.Background(), payload)
	assert.True(t, errors.Is(err, commonerrors.ErrInvalidRequest))

	payload.ReceiveAddress = "7Np41oeYqPefeNQEHSv1UDhYrehxin3NStELsSKCT4K2"
	req, err := resolver.Resolve(context.Background(), payload)
	require.NoError(t, err)
	assert.True(t, req.CrossChain())
}
