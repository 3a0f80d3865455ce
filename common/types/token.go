package types

const (
	// EVMZeroAddress represents the zero address used as a native asset sentinel on EVM chains.
	EVMZeroAddress = "0x0000000000000000000000000000000000000000"
	// EVMNativeSentinel is the pseudo-address the aggregation provider uses for native EVM assets.
	EVMNativeSentinel = "0xeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeee"
	// SolanaNativeMint is the system program id used as the native SOL sentinel.
	SolanaNativeMint = "11111111111111111111111111111111"
)

// Token holds immutable reference data for a swappable token, keyed by (chain, address).
//
// Fields:
// - Symbol: the token ticker symbol.
// - Name: the human-readable token name.
// - ChainID: the owning chain index.
// - Address: the contract or mint address, or a native asset sentinel.
// - Decimals: the token's decimal precision.
// - LogoURL: optional logo reference.
type Token struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	ChainID  string `json:"chain"`
	Address  string `json:"address"`
	Decimals int    `json:"decimals"`
	LogoURL  string `json:"logoUrl,omitempty"`
}

// IsNative reports whether the token is the chain's native asset.
func (t Token) IsNative() bool {
	switch t.Address {
	case "", EVMZeroAddress, EVMNativeSentinel, SolanaNativeMint:
		return true
	default:
		return false
	}
}
