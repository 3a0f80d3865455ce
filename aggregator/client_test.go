package aggregator

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	commonerrors "github.com/tarun-khatri/profitpath-smart-swap/common/errors"
	"github.com/tarun-khatri/profitpath-smart-swap/common/types"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func testClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := New(Config{
		BaseURL:    server.URL,
		APIKey:     "key",
		SecretKey:  "secret",
		Passphrase: "phrase",
	}, testLogger())
	return client, server
}

func usdc(chain string) types.Token {
	return types.Token{Symbol: "USDC", ChainID: chain, Address: "0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48", Decimals: 6}
}

func weth(chain string) types.Token {
	return types.Token{Symbol: "WETH", ChainID: chain, Address: "0xc02aaa39b223fe8d0a0e5c4f27ead9083c756cc2", Decimals: 18}
}

func sameChainRequest() *types.SwapRequest {
	return &types.SwapRequest{
		FromChain:     "1",
		ToChain:       "1",
		FromToken:     usdc("1"),
		ToToken:       weth("1"),
		Amount:        "100",
		SenderAddress: "0x1111111111111111111111111111111111111111",
	}
}

func TestGetQuoteSameChain(t *testing.T) {
	var gotBody quoteRequest
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/quotes", r.URL.Path)
		require.NotEmpty(t, r.Header.Get("OK-ACCESS-KEY"))
		require.NotEmpty(t, r.Header.Get("OK-ACCESS-SIGN"))
		require.NotEmpty(t, r.Header.Get("OK-ACCESS-TIMESTAMP"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		resp := map[string]interface{}{
			"quotes": []map[string]interface{}{
				{
					"fromTokenAmount":       "100000000",
					"toTokenAmount":         "41234567890123456",
					"dexContractAddress":    "0x2222222222222222222222222222222222222222",
					"priceImpactPercentage": "0.01",
					"dexRouterList": []map[string]interface{}{
						{
							"router":        "r1",
							"routerPercent": "100",
							"subRouterList": []map[string]interface{}{
								{"dexProtocol": []map[string]interface{}{{"dexName": "Uniswap V3", "percent": "100"}}},
							},
						},
					},
				},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))

	quotes, err := client.GetQuote(context.Background(), sameChainRequest())
	require.NoError(t, err)
	require.Len(t, quotes, 1)

	quote := quotes[0]
	assert.Equal(t, "100000000", gotBody.Amount, "amount must be sent in base units")
	assert.Equal(t, "0.01", gotBody.Slippage, "default slippage applied")
	assert.Equal(t, "100000000", quote.AmountIn)
	assert.Equal(t, "41234567890123456", quote.AmountOut)
	assert.Equal(t, "0x2222222222222222222222222222222222222222", quote.RouterAddress)
	assert.False(t, quote.CrossChain)
	require.Len(t, quote.Routes, 1)
	assert.Equal(t, []string{"Uniswap V3"}, quote.Routes[0].Path)
	assert.NotEmpty(t, quote.Raw, "raw quote must be retained for the swap-data call")
}

func TestGetQuoteNoRoute(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"quotes": []interface{}{}})
	}))

	quotes, err := client.GetQuote(context.Background(), sameChainRequest())
	assert.Nil(t, quotes)
	assert.True(t, errors.Is(err, commonerrors.ErrNoRouteFound))
}

func TestGetQuoteUpstreamError(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		json.NewEncoder(w).Encode(map[string]string{"error": "aggregator maintenance window"})
	}))

	_, err := client.GetQuote(context.Background(), sameChainRequest())
	require.Error(t, err)
	assert.True(t, commonerrors.IsUpstream(err))
	assert.Contains(t, err.Error(), "aggregator maintenance window")
}

func TestGetQuoteCrossChain(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/crosschain/quote", r.URL.Path)

		resp := map[string]interface{}{
			"quote": map[string]interface{}{
				"fromChainId":        "1",
				"toChainId":          "137",
				"fromTokenAmount":    "100000000",
				"dexContractAddress": "0x3333333333333333333333333333333333333333",
				"routerList": []map[string]interface{}{
					{
						"toTokenAmount":         "99000000",
						"minimumReceived":       "98500000",
						"estimateTime":          "180",
						"priceImpactPercentage": "0.05",
						"estimateGasFeeUsd":     "1.25",
						"router": map[string]interface{}{
							"bridgeName":       "Stargate",
							"crossChainFee":    "500000",
							"crossChainFeeUsd": "0.50",
						},
					},
				},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))

	req := &types.SwapRequest{
		FromChain:     "1",
		ToChain:       "137",
		FromToken:     usdc("1"),
		ToToken:       usdc("137"),
		Amount:        "100",
		SenderAddress: "0x1111111111111111111111111111111111111111",
	}

	quotes, err := client.GetQuote(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, quotes, 1)

	quote := quotes[0]
	assert.True(t, quote.CrossChain)
	assert.Equal(t, "99000000", quote.AmountOut)
	assert.Equal(t, "98500000", quote.MinimumReceived)
	assert.Equal(t, "Stargate", quote.Routes[0].Bridge)
	assert.Equal(t, "500000", quote.Fees.BridgeFee)
	assert.Equal(t, 180, quote.EstimateTimeSec)
}

// A cross-chain request into Solana without a receive address must fail
// validation before any network call happens.
func TestGetQuoteSolanaDestinationRequiresReceiveAddress(t *testing.T) {
	var calls atomic.Int64
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))

	req := &types.SwapRequest{
		FromChain:     "1",
		ToChain:       "501",
		FromToken:     usdc("1"),
		ToToken:       types.Token{Symbol: "USDC", ChainID: "501", Address: "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v", Decimals: 6},
		Amount:        "100",
		SenderAddress: "0x1111111111111111111111111111111111111111",
	}

	_, err := client.GetQuote(context.Background(), req)
	assert.True(t, errors.Is(err, commonerrors.ErrInvalidRequest))
	assert.Equal(t, int64(0), calls.Load(), "validation must run before any network call")

	req.ReceiveAddress = "7Np41oeYqPefeNQEHSv1UDhYrehxin3NStELsSKCT4K2"
	_, err = client.GetQuote(context.Background(), req)
	// Request is now valid; the stub server returns an empty body so decoding
	// fails, but the call must have gone out.
	assert.Error(t, err)
	assert.Equal(t, int64(1), calls.Load())
}

func TestGetQuoteInvalidAmount(t *testing.T) {
	req := sameChainRequest()
	req.Amount = "0"

	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no network call expected for an invalid request")
	}))

	_, err := client.GetQuote(context.Background(), req)
	assert.True(t, errors.Is(err, commonerrors.ErrInvalidRequest))
}

func TestGetSwapCallDataEVM(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/quotes/swap", r.URL.Path)
		resp := map[string]interface{}{
			"swapData": map[string]interface{}{
				"to":       "0x2222222222222222222222222222222222222222",
				"data":     "0xdeadbeef",
				"value":    "0",
				"gasLimit": "210000",
				"gasPrice": "30000000000",
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))

	quote := &types.Quote{Raw: json.RawMessage(`{}`)}
	call, err := client.GetSwapCallData(context.Background(), sameChainRequest(), quote)
	require.NoError(t, err)
	require.NotNil(t, call.EVM)
	assert.Nil(t, call.Solana)
	assert.Equal(t, "0xdeadbeef", call.EVM.Data)
	assert.Equal(t, "30000000000", call.EVM.GasPrice)
	assert.Empty(t, call.EVM.MaxFeePerGas)
}

func TestGetSwapCallDataSolana(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]interface{}{
			"swapData": map[string]interface{}{
				"instructionLists": []map[string]interface{}{
					{
						"programId": "JUP6LkbZbjS1jKKwapdHNy74zcZ3tLUZoi5QNyVTaV4",
						"accounts": []map[string]interface{}{
							{"pubkey": "7Np41oeYqPefeNQEHSv1UDhYrehxin3NStELsSKCT4K2", "isSigner": true, "isWritable": true},
						},
						"data": "AQID",
					},
				},
				"addressLookupTableAccount": []string{"F3MfgEJe1TApJiA14nN2m4uAH4EBVrqdBnHeGeSXvQ7B"},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))

	quote := &types.Quote{Raw: json.RawMessage(`{}`)}
	call, err := client.GetSwapCallData(context.Background(), sameChainRequest(), quote)
	require.NoError(t, err)
	require.NotNil(t, call.Solana)
	assert.Nil(t, call.EVM)
	require.Len(t, call.Solana.Instructions, 1)
	assert.Len(t, call.Solana.AddressLookupTables, 1)
	assert.True(t, call.Solana.Instructions[0].Accounts[0].IsSigner)
}

func TestGetApprovalData(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/quotes/approve", r.URL.Path)

		var body approveRequestBody
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "1", body.ChainIndex)
		assert.Equal(t, "100000000", body.ApproveAmount)

		resp := map[string]interface{}{
			"approveData": []map[string]interface{}{
				{
					"dexContractAddress": "0x2222222222222222222222222222222222222222",
					"data":               "0x095ea7b3",
					"gasLimit":           "60000",
					"gasPrice":           "30000000000",
				},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))

	data, err := client.GetApprovalData(context.Background(), "1", usdc("1").Address, "100000000")
	require.NoError(t, err)
	assert.Equal(t, "0x2222222222222222222222222222222222222222", data.DexContractAddress)
}

func TestGetApprovalDataEmptyPayload(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"approveData": []interface{}{}})
	}))

	_, err := client.GetApprovalData(context.Background(), "1", usdc("1").Address, "100000000")
	assert.True(t, errors.Is(err, commonerrors.ErrApprovalFailed))
}

func TestTransactionStatus(t *testing.T) {
	status := "pending"
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/quotes/transaction-status", r.URL.Path)
		assert.Equal(t, "0xabc", r.URL.Query().Get("txHash"))
		json.NewEncoder(w).Encode(map[string]string{"status": status})
	}))

	handle := &types.TxHandle{Hash: "0xabc", ChainID: "1"}

	got, err := client.TransactionStatus(context.Background(), handle)
	require.NoError(t, err)
	assert.Equal(t, types.StatusPending, got)

	status = "success"
	got, err = client.TransactionStatus(context.Background(), handle)
	require.NoError(t, err)
	assert.Equal(t, types.StatusSucceeded, got)

	status = "failed"
	got, err = client.TransactionStatus(context.Background(), handle)
	require.NoError(t, err)
	assert.Equal(t, types.StatusFailed, got)
}

func TestTransactionStatusCrossChainPath(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/crosschain/tx-status", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]string{"status": "success"})
	}))

	got, err := client.TransactionStatus(context.Background(), &types.TxHandle{Hash: "0xabc", ChainID: "1", CrossChain: true})
	require.NoError(t, err)
	assert.Equal(t, types.StatusSucceeded, got)
}

func TestListTokensAndChains(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/tokens/chains":
			json.NewEncoder(w).Encode([]string{"1", "501"})
		case "/api/tokens":
			assert.Equal(t, "1", r.URL.Query().Get("chain"))
			json.NewEncoder(w).Encode([]types.Token{usdc("1")})
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))

	chains, err := client.ListChains(context.Background())
	require.NoError(t, err)
	require.Len(t, chains, 2)
	assert.Equal(t, "Ethereum", chains[0].Name)
	assert.Equal(t, types.EVM, chains[0].Type)
	assert.Equal(t, types.SOLANA, chains[1].Type)

	tokens, err := client.ListTokens(context.Background(), "1")
	require.NoError(t, err)
	require.Len(t, tokens, 1)
	assert.Equal(t, "USDC", tokens[0].Symbol)
}
