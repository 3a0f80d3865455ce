package cmd

import (
	"context"
	"fmt"
	"strings"

	solrpc "github.com/gagliardetto/solana-go/rpc"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/tarun-khatri/profitpath-smart-swap/aggregator"
	"github.com/tarun-khatri/profitpath-smart-swap/amounts"
	"github.com/tarun-khatri/profitpath-smart-swap/config"
	"github.com/tarun-khatri/profitpath-smart-swap/intent"
	"github.com/tarun-khatri/profitpath-smart-swap/pipeline"
	"github.com/tarun-khatri/profitpath-smart-swap/registry"
	"github.com/tarun-khatri/profitpath-smart-swap/statuspoller"
	"github.com/tarun-khatri/profitpath-smart-swap/submitter"
	"github.com/tarun-khatri/profitpath-smart-swap/txbuilder"
)

var (
	swapSender  string
	swapReceive string
)

var swapCmd = &cobra.Command{
	Use:   "swap <amount> <token> on <chain> to <token> on <chain>",
	Short: "Quote and execute a swap from the command line",
	Long: `Quote and execute a swap using the configured wallet keys.

Example:
  profitpath swap 100 USDC on ethereum to USDC on solana --receive <address>`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		logger := newLogger(cfg.LogLevel)

		client := aggregator.New(aggregator.Config{
			BaseURL:    cfg.ProviderBaseURL,
			APIKey:     cfg.ProviderAPIKey,
			SecretKey:  cfg.ProviderSecretKey,
			Passphrase: cfg.ProviderPassphrase,
		}, logger)

		reg := registry.New(client, logger)
		resolver := intent.NewResolver(reg, logger)

		payload, err := intent.ParseCommand(strings.Join(args, " "))
		if err != nil {
			return err
		}
		payload.SenderAddress = swapSender
		payload.ReceiveAddress = swapReceive

		wallets, approver, err := buildWallets(cfg, client, logger)
		if err != nil {
			return err
		}
		if wallets == nil {
			return errors.New("no wallet keys configured; set PROFITPATH_EVM_PRIVATE_KEY or PROFITPATH_SOLANA_PRIVATE_KEY")
		}

		if payload.SenderAddress == "" {
			if wallets.EVM != nil {
				payload.SenderAddress = wallets.EVM.Address()
			} else if wallets.Solana != nil {
				payload.SenderAddress = wallets.Solana.PublicKey().String()
			}
		}

		ctx := context.Background()

		req, err := resolver.Resolve(ctx, payload)
		if err != nil {
			return err
		}

		var solanaRPC txbuilder.SolanaRPC
		if cfg.SolanaRPCURL != "" {
			solanaRPC = solrpc.New(cfg.SolanaRPCURL)
		}

		p, err := pipeline.NewBuilder(logger).
			WithQuoteSource(client).
			WithApprover(approver).
			WithTransactionBuilder(txbuilder.New(solanaRPC, logger)).
			WithSubmitter(submitter.New(logger)).
			WithStatusAwaiter(statuspoller.New(client, logger)).
			Build()
		if err != nil {
			return err
		}

		quotes, err := p.Quote(ctx, req)
		if err != nil {
			return err
		}
		if len(quotes) == 0 {
			return errors.New("no routes returned")
		}
		best := &quotes[0]

		fmt.Printf("Best route: %s %s -> %s %s (min %s %s)\n",
			req.Amount, req.FromToken.Symbol,
			formatBaseUnits(best.AmountOut, req.ToToken.Decimals), req.ToToken.Symbol,
			formatBaseUnits(best.MinimumReceived, req.ToToken.Decimals), req.ToToken.Symbol)

		attempt, err := p.Execute(ctx, req, best, wallets)
		if attempt != nil && attempt.Handle != nil {
			fmt.Printf("Transaction: %s\n", attempt.Handle.Hash)
		}
		if err != nil {
			return err
		}

		fmt.Printf("%s: %s\n", attempt.FinalStatus, attempt.FinalStatus.Guidance())
		return nil
	},
}

// formatBaseUnits renders a smallest-unit amount in human units, falling back
// to the raw figure when it does not parse.
func formatBaseUnits(raw string, decimals int) string {
	formatted, err := amounts.FromBaseUnits(raw, decimals)
	if err != nil {
		return raw
	}
	return formatted
}

func init() {
	swapCmd.Flags().StringVar(&swapSender, "sender", "", "Sender address (defaults to the configured wallet)")
	swapCmd.Flags().StringVar(&swapReceive, "receive", "", "Receive address for cross-chain destinations")
	rootCmd.AddCommand(swapCmd)
}
