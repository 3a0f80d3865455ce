package txbuilder

import (
	"context"
	"encoding/base64"

	sol "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/pkg/errors"
	commonerrors "github.com/tarun-khatri/profitpath-smart-swap/common/errors"
	"github.com/tarun-khatri/profitpath-smart-swap/common/types"
)

// SolanaRPC is the subset of the RPC client the builder needs, satisfied by
// *rpc.Client.
type SolanaRPC interface {
	GetLatestBlockhash(ctx context.Context, commitment rpc.CommitmentType) (*rpc.GetLatestBlockhashResult, error)
	GetAccountInfo(ctx context.Context, account sol.PublicKey) (*rpc.GetAccountInfoResult, error)
}

// buildSolana compiles the provider's instruction list into a versioned
// transaction. All referenced lookup tables are resolved before the message
// is compiled; a transaction referencing a table this process cannot load
// would be unsignable, so resolution failure aborts the build.
func (b *Builder) buildSolana(ctx context.Context, call *types.SolanaCallData, payer string) (*types.SolanaTransaction, error) {
	if b.solanaRPC == nil {
		return nil, errors.New("solana RPC client not configured")
	}
	if len(call.Instructions) == 0 {
		return nil, errors.Wrap(commonerrors.ErrMalformedQuote, "payload carries no instructions")
	}
	// A missing table list means the payload is truncated; a present empty
	// list means the route needs no tables.
	if call.AddressLookupTables == nil {
		return nil, errors.Wrap(commonerrors.ErrMalformedQuote, "payload carries no lookup table list")
	}

	payerKey, err := sol.PublicKeyFromBase58(payer)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse payer address")
	}

	instructions, err := decodeInstructions(call.Instructions)
	if err != nil {
		return nil, err
	}

	tables, err := b.resolveLookupTables(ctx, call.AddressLookupTables)
	if err != nil {
		return nil, err
	}

	latestBlockhashResult, err := b.solanaRPC.GetLatestBlockhash(ctx, rpc.CommitmentFinalized)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get latest blockhash")
	}

	opts := []sol.TransactionOption{sol.TransactionPayer(payerKey)}
	if len(tables) > 0 {
		opts = append(opts, sol.TransactionAddressTables(tables))
	}

	tx, err := sol.NewTransaction(
		instructions,
		latestBlockhashResult.Value.Blockhash,
		opts...,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create transaction")
	}

	return &types.SolanaTransaction{Tx: tx, Payer: payerKey}, nil
}

// decodeInstructions maps provider instruction JSON onto generic instructions,
// preserving order and account flags.
func decodeInstructions(raw []types.InstructionData) ([]sol.Instruction, error) {
	instructions := make([]sol.Instruction, 0, len(raw))

	for _, inst := range raw {
		programID, err := sol.PublicKeyFromBase58(inst.ProgramID)
		if err != nil {
			return nil, errors.Wrapf(commonerrors.ErrMalformedQuote, "program id %q is not a valid key", inst.ProgramID)
		}

		accounts := make(sol.AccountMetaSlice, 0, len(inst.Accounts))
		for _, acc := range inst.Accounts {
			pubkey, err := sol.PublicKeyFromBase58(acc.Pubkey)
			if err != nil {
				return nil, errors.Wrapf(commonerrors.ErrMalformedQuote, "account %q is not a valid key", acc.Pubkey)
			}
			accounts = append(accounts, &sol.AccountMeta{
				PublicKey:  pubkey,
				IsSigner:   acc.IsSigner,
				IsWritable: acc.IsWritable,
			})
		}

		data, err := base64.StdEncoding.DecodeString(inst.Data)
		if err != nil {
			return nil, errors.Wrap(commonerrors.ErrMalformedQuote, "instruction data is not valid base64")
		}

		instructions = append(instructions, sol.NewInstruction(programID, accounts, data))
	}

	return instructions, nil
}
