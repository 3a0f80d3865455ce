// Package registry maintains the set of supported chains and their swappable
// tokens, caching provider listings for the lifetime of the process.
package registry

import (
	"context"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	commonerrors "github.com/tarun-khatri/profitpath-smart-swap/common/errors"
	"github.com/tarun-khatri/profitpath-smart-swap/common/types"
)

// TokenSource is the upstream listing source, implemented by the aggregator
// client and by the database-backed token store.
type TokenSource interface {
	ListChains(ctx context.Context) ([]types.Chain, error)
	ListTokens(ctx context.Context, chainID string) ([]types.Token, error)
}

// AddressResolver is an optional TokenSource extension for direct lookups by
// contract address, covering tokens absent from the cached listing. The
// database-backed store implements it.
type AddressResolver interface {
	ResolveTokenByAddress(ctx context.Context, chainID, address string) (*types.Token, error)
}

// Registry caches chain and token listings from a TokenSource. Listings are
// fetched once per chain and held until Refresh is called.
type Registry struct {
	source TokenSource
	logger *logrus.Logger

	mu     sync.RWMutex
	chains []types.Chain
	tokens map[string][]types.Token
}

// New creates a registry over the given source.
func New(source TokenSource, logger *logrus.Logger) *Registry {
	return &Registry{
		source: source,
		logger: logger,
		tokens: make(map[string][]types.Token),
	}
}

// Chains returns the supported chains, fetching them on first use.
func (r *Registry) Chains(ctx context.Context) ([]types.Chain, error) {
	r.mu.RLock()
	cached := r.chains
	r.mu.RUnlock()
	if cached != nil {
		return cached, nil
	}

	chains, err := r.source.ListChains(ctx)
	if err != nil {
		return nil, errors.Wrap(commonerrors.ErrRegistryUnavailable, err.Error())
	}

	r.mu.Lock()
	r.chains = chains
	r.mu.Unlock()

	r.logger.WithField("chains", len(chains)).Debug("Chain listing cached")
	return chains, nil
}

// Tokens returns the swappable tokens for one chain, fetching the listing on
// first use.
func (r *Registry) Tokens(ctx context.Context, chainID string) ([]types.Token, error) {
	r.mu.RLock()
	cached, ok := r.tokens[chainID]
	r.mu.RUnlock()
	if ok {
		return cached, nil
	}

	tokens, err := r.source.ListTokens(ctx, chainID)
	if err != nil {
		return nil, errors.Wrap(commonerrors.ErrRegistryUnavailable, err.Error())
	}

	r.mu.Lock()
	r.tokens[chainID] = tokens
	r.mu.Unlock()

	r.logger.WithFields(logrus.Fields{
		"chain":  chainID,
		"tokens": len(tokens),
	}).Debug("Token listing cached")

	return tokens, nil
}

// ResolveToken finds a token on a chain by symbol or contract address,
// case-insensitively.
func (r *Registry) ResolveToken(ctx context.Context, chainID, symbolOrAddress string) (*types.Token, error) {
	tokens, err := r.Tokens(ctx, chainID)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(strings.TrimSpace(symbolOrAddress))
	for i := range tokens {
		if strings.ToLower(tokens[i].Symbol) == needle || strings.ToLower(tokens[i].Address) == needle {
			return &tokens[i], nil
		}
	}

	if resolver, ok := r.source.(AddressResolver); ok {
		if token, err := resolver.ResolveTokenByAddress(ctx, chainID, needle); err == nil {
			return token, nil
		}
	}

	return nil, errors.Wrapf(commonerrors.ErrInvalidRequest, "token %q not found on chain %s", symbolOrAddress, chainID)
}

// ResolveChain finds a chain by index or display name, case-insensitively.
func (r *Registry) ResolveChain(ctx context.Context, idOrName string) (*types.Chain, error) {
	chains, err := r.Chains(ctx)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(strings.TrimSpace(idOrName))
	for i := range chains {
		if chains[i].ID == needle || strings.ToLower(chains[i].Name) == needle {
			return &chains[i], nil
		}
	}

	return nil, errors.Wrapf(commonerrors.ErrInvalidRequest, "chain %q is not supported", idOrName)
}

// Refresh drops all cached listings so the next lookups hit the source again.
func (r *Registry) Refresh() {
	r.mu.Lock()
	r.chains = nil
	r.tokens = make(map[string][]types.Token)
	r.mu.Unlock()
}
