package types

// SolanaChainIndex is the chain index the aggregation provider assigns to Solana.
const SolanaChainIndex = "501"

// ChainType represents supported blockchain types.
type ChainType string

const (
	// EVM represents Ethereum Virtual Machine based chains (e.g. Ethereum, Arbitrum, Base, etc.)
	EVM ChainType = "EVM"
	// SOLANA represents Solana chain.
	SOLANA ChainType = "SOLANA"
	// UNKNOWN represents unknown or unsupported chain type in the system.
	UNKNOWN ChainType = "UNKNOWN"
)

// String converts ChainType to string representation.
func (t ChainType) String() string {
	return string(t)
}

// ParseChainType converts string to ChainType representation.
func ParseChainType(s string) ChainType {
	switch s {
	case EVM.String():
		return EVM
	case SOLANA.String():
		return SOLANA
	default:
		return UNKNOWN
	}
}

// ChainTypeForIndex derives the chain type from the aggregator's chain index.
// Every supported index except Solana's addresses an EVM chain.
func ChainTypeForIndex(chainIndex string) ChainType {
	if chainIndex == "" {
		return UNKNOWN
	}
	if chainIndex == SolanaChainIndex {
		return SOLANA
	}
	return EVM
}

var chainNames = map[string]string{
	"1":      "Ethereum",
	"10":     "Optimism",
	"56":     "BNB Chain",
	"137":    "Polygon",
	"169":    "Manta Pacific",
	"324":    "zkSync Era",
	"501":    "Solana",
	"5000":   "Mantle",
	"8453":   "Base",
	"42161":  "Arbitrum",
	"43114":  "Avalanche",
	"59144":  "Linea",
	"81457":  "Blast",
	"534352": "Scroll",
}

// ChainName returns the display name for an aggregator chain index, falling
// back to the index itself for chains we have no name for.
func ChainName(chainIndex string) string {
	if name, ok := chainNames[chainIndex]; ok {
		return name
	}
	return chainIndex
}

// Chain holds immutable reference data for a supported chain.
//
// Fields:
// - ID: the opaque chain index used by the aggregation provider (e.g. "1", "501").
// - Name: the human-readable chain name.
// - Type: the chain type derived from the index.
type Chain struct {
	ID   string
	Name string
	Type ChainType
}
