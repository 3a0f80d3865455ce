package aggregator

import "encoding/json"

// Wire shapes for the aggregation provider's responses. Same-chain and
// cross-chain quotes arrive in different envelopes and are normalized into
// the internal Quote shape before leaving this package.

type wireToken struct {
	TokenSymbol          string `json:"tokenSymbol"`
	TokenName            string `json:"tokenName"`
	TokenContractAddress string `json:"tokenContractAddress"`
	Decimals             int    `json:"decimals"`
}

type wireDexProtocol struct {
	DexName string `json:"dexName"`
	Percent string `json:"percent"`
}

type wireSubRouter struct {
	DexProtocol []wireDexProtocol `json:"dexProtocol"`
	FromToken   wireToken         `json:"fromToken"`
	ToToken     wireToken         `json:"toToken"`
}

type wireDexRouter struct {
	Router        string          `json:"router"`
	RouterPercent string          `json:"routerPercent"`
	SubRouterList []wireSubRouter `json:"subRouterList"`
}

// wireQuote is one same-chain quote entry, pre-ranked by the provider.
type wireQuote struct {
	FromToken             wireToken       `json:"fromToken"`
	ToToken               wireToken       `json:"toToken"`
	FromTokenAmount       string          `json:"fromTokenAmount"`
	ToTokenAmount         string          `json:"toTokenAmount"`
	DexContractAddress    string          `json:"dexContractAddress"`
	PriceImpactPercentage string          `json:"priceImpactPercentage"`
	EstimateGasFee        string          `json:"estimateGasFee"`
	DexRouterList         []wireDexRouter `json:"dexRouterList"`
}

type wireBridgeRouter struct {
	BridgeName                string `json:"bridgeName"`
	CrossChainFee             string `json:"crossChainFee"`
	CrossChainFeeTokenAddress string `json:"crossChainFeeTokenAddress"`
	CrossChainFeeUsd          string `json:"crossChainFeeUsd"`
	OtherNativeFee            string `json:"otherNativeFee"`
}

type wireCrossRouter struct {
	Router                wireBridgeRouter `json:"router"`
	ToTokenAmount         string           `json:"toTokenAmount"`
	MinimumReceived       string           `json:"minimumReceived"`
	EstimateTime          string           `json:"estimateTime"`
	PriceImpactPercentage string           `json:"priceImpactPercentage"`
	FromChainNetworkFee   string           `json:"fromChainNetworkFee"`
	ToChainNetworkFee     string           `json:"toChainNetworkFee"`
	EstimateGasFeeUsd     string           `json:"estimateGasFeeUsd"`
	FromDexRouterList     []wireDexRouter  `json:"fromDexRouterList"`
}

// wireCrossQuote is the single cross-chain quote object with its nested
// router list and bridge-specific fee fields.
type wireCrossQuote struct {
	FromChainID        string            `json:"fromChainId"`
	ToChainID          string            `json:"toChainId"`
	FromToken          wireToken         `json:"fromToken"`
	ToToken            wireToken         `json:"toToken"`
	FromTokenAmount    string            `json:"fromTokenAmount"`
	DexContractAddress string            `json:"dexContractAddress"`
	RouterList         []wireCrossRouter `json:"routerList"`
}

type quoteRequest struct {
	FromChain string `json:"fromChain"`
	ToChain   string `json:"toChain"`
	FromToken string `json:"fromToken"`
	ToToken   string `json:"toToken"`
	Amount    string `json:"amount"`
	Slippage  string `json:"slippage,omitempty"`
}

type sameChainQuoteResponse struct {
	Quotes []json.RawMessage `json:"quotes"`
}

type crossChainQuoteResponse struct {
	Quote json.RawMessage `json:"quote"`
}

type swapRequestBody struct {
	FromChain         string          `json:"fromChain"`
	ToChain           string          `json:"toChain"`
	FromToken         string          `json:"fromToken"`
	ToToken           string          `json:"toToken"`
	Amount            string          `json:"amount"`
	Quote             json.RawMessage `json:"quote"`
	UserWalletAddress string          `json:"userWalletAddress"`
	ReceiveAddress    string          `json:"receiveAddress,omitempty"`
}

type swapDataResponse struct {
	SwapData json.RawMessage `json:"swapData"`
	TxData   json.RawMessage `json:"txData"`
}

type approveRequestBody struct {
	ChainIndex           string `json:"chainIndex"`
	TokenContractAddress string `json:"tokenContractAddress"`
	ApproveAmount        string `json:"approveAmount"`
}

// ApprovalData is the provider-supplied approval transaction payload. The
// DexContractAddress is the router contract being granted the allowance; the
// calldata targets the token contract itself.
type ApprovalData struct {
	DexContractAddress string `json:"dexContractAddress"`
	Data               string `json:"data"`
	GasLimit           string `json:"gasLimit"`
	GasPrice           string `json:"gasPrice"`
}

type approveResponse struct {
	ApproveData []ApprovalData `json:"approveData"`
}

type statusResponse struct {
	Status string `json:"status"`
}

type errorResponse struct {
	Error string `json:"error"`
	Msg   string `json:"msg"`
}
