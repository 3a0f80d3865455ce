package cmd

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/tarun-khatri/profitpath-smart-swap/aggregator"
	"github.com/tarun-khatri/profitpath-smart-swap/common/types"
	"github.com/tarun-khatri/profitpath-smart-swap/config"
)

var (
	statusTxHash     string
	statusChain      string
	statusCrossChain bool
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Query the status of a submitted swap transaction",
	RunE: func(cmd *cobra.Command, args []string) error {
		if statusTxHash == "" || statusChain == "" {
			return errors.New("both --tx and --chain are required")
		}

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

		handle := &types.TxHandle{
			Hash:       statusTxHash,
			ChainID:    statusChain,
			CrossChain: statusCrossChain,
		}

		status, err := client.TransactionStatus(context.Background(), handle)
		if err != nil {
			return err
		}

		fmt.Printf("%s: %s\n", status, status.Guidance())
		return nil
	},
}

func init() {
	statusCmd.Flags().StringVar(&statusTxHash, "tx", "", "Transaction hash or signature")
	statusCmd.Flags().StringVar(&statusChain, "chain", "", "Chain index the transaction was broadcast on")
	statusCmd.Flags().BoolVar(&statusCrossChain, "cross-chain", false, "Query the cross-chain status endpoint")
	rootCmd.AddCommand(statusCmd)
}
