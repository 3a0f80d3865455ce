package aggregator

import (
	"encoding/json"
	"strconv"

	"github.com/pkg/errors"
	commonerrors "github.com/tarun-khatri/profitpath-smart-swap/common/errors"
	"github.com/tarun-khatri/profitpath-smart-swap/common/types"
)

// normalizeSameChainQuote maps one entry of the provider's ranked quote array
// onto the internal Quote shape. Provider ordering is preserved by the
// caller; nothing is re-ranked here.
func normalizeSameChainQuote(req *types.SwapRequest, raw json.RawMessage) (*types.Quote, error) {
	var wq wireQuote
	if err := json.Unmarshal(raw, &wq); err != nil {
		return nil, errors.Wrap(commonerrors.ErrMalformedQuote, "failed to decode quote entry")
	}

	quote := &types.Quote{
		FromChain:      req.FromChain,
		ToChain:        req.ToChain,
		FromToken:      req.FromToken,
		ToToken:        req.ToToken,
		AmountIn:       wq.FromTokenAmount,
		AmountOut:      wq.ToTokenAmount,
		RouterAddress:  wq.DexContractAddress,
		PriceImpactPct: wq.PriceImpactPercentage,
		Fees: types.FeeBreakdown{
			NetworkFee: wq.EstimateGasFee,
		},
		Routes:     dexRoutersToRoutes(wq.DexRouterList),
		CrossChain: false,
		Raw:        raw,
	}

	if err := quote.ValidateAmounts(); err != nil {
		return nil, err
	}
	return quote, nil
}

// normalizeCrossChainQuote maps the provider's single cross-chain quote with
// its nested router list onto the same internal Quote shape, so the
// transaction builder never needs to know which endpoint produced it.
func normalizeCrossChainQuote(req *types.SwapRequest, raw json.RawMessage) (*types.Quote, error) {
	var wq wireCrossQuote
	if err := json.Unmarshal(raw, &wq); err != nil {
		return nil, errors.Wrap(commonerrors.ErrMalformedQuote, "failed to decode cross-chain quote")
	}

	if len(wq.RouterList) == 0 {
		return nil, errors.Wrap(commonerrors.ErrNoRouteFound, "cross-chain quote carries no routers")
	}

	best := wq.RouterList[0]

	routes := make([]types.Route, 0, len(wq.RouterList))
	for _, router := range wq.RouterList {
		path := []string{router.Router.BridgeName}
		for _, dex := range dexRoutersToRoutes(router.FromDexRouterList) {
			path = append(path, dex.Path...)
		}
		routes = append(routes, types.Route{
			Path:      path,
			AmountOut: router.ToTokenAmount,
			Bridge:    router.Router.BridgeName,
		})
	}

	estimateTime, _ := strconv.Atoi(best.EstimateTime)

	quote := &types.Quote{
		FromChain:       req.FromChain,
		ToChain:         req.ToChain,
		FromToken:       req.FromToken,
		ToToken:         req.ToToken,
		AmountIn:        wq.FromTokenAmount,
		AmountOut:       best.ToTokenAmount,
		MinimumReceived: best.MinimumReceived,
		RouterAddress:   wq.DexContractAddress,
		PriceImpactPct:  best.PriceImpactPercentage,
		EstimateTimeSec: estimateTime,
		Fees: types.FeeBreakdown{
			NetworkFee:     best.FromChainNetworkFee,
			BridgeFee:      best.Router.CrossChainFee,
			BridgeFeeToken: best.Router.CrossChainFeeTokenAddress,
			BridgeFeeUSD:   best.Router.CrossChainFeeUsd,
			GasFeeUSD:      best.EstimateGasFeeUsd,
		},
		Routes:     routes,
		CrossChain: true,
		Raw:        raw,
	}

	if err := quote.ValidateAmounts(); err != nil {
		return nil, err
	}
	return quote, nil
}

// dexRoutersToRoutes flattens the provider's router/subrouter nesting into
// ordered protocol paths.
func dexRoutersToRoutes(routers []wireDexRouter) []types.Route {
	routes := make([]types.Route, 0, len(routers))
	for _, router := range routers {
		var path []string
		for _, sub := range router.SubRouterList {
			for _, proto := range sub.DexProtocol {
				path = append(path, proto.DexName)
			}
		}
		routes = append(routes, types.Route{
			Path:    path,
			Percent: router.RouterPercent,
		})
	}
	return routes
}
