package types

// AccountMetaData is one account reference inside a provider-supplied Solana
// instruction, with its signer/writable flags.
type AccountMetaData struct {
	Pubkey     string `json:"pubkey"`
	IsSigner   bool   `json:"isSigner"`
	IsWritable bool   `json:"isWritable"`
}

// InstructionData is one provider-supplied Solana instruction: program id,
// ordered account list, and base64-encoded instruction data.
type InstructionData struct {
	ProgramID string            `json:"programId"`
	Accounts  []AccountMetaData `json:"accounts"`
	Data      string            `json:"data"`
}

// EVMCallData is the provider's transaction payload for an EVM swap. The
// legacy GasPrice and the EIP-1559 fee fields are mutually exclusive.
type EVMCallData struct {
	To                   string `json:"to"`
	Data                 string `json:"data"`
	Value                string `json:"value"`
	GasLimit             string `json:"gasLimit"`
	GasPrice             string `json:"gasPrice,omitempty"`
	MaxFeePerGas         string `json:"maxFeePerGas,omitempty"`
	MaxPriorityFeePerGas string `json:"maxPriorityFeePerGas,omitempty"`
}

// SolanaCallData is the provider's transaction payload for a Solana swap: an
// ordered instruction list plus the address-lookup-table accounts the
// compiled message must be resolved against.
type SolanaCallData struct {
	Instructions        []InstructionData `json:"instructionLists"`
	AddressLookupTables []string          `json:"addressLookupTableAccount"`
}

// SwapCallData is the payload returned by the provider's swap-data endpoint,
// exactly one branch populated depending on the source chain.
type SwapCallData struct {
	EVM    *EVMCallData
	Solana *SolanaCallData
}
