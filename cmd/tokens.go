package cmd

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/tarun-khatri/profitpath-smart-swap/aggregator"
	"github.com/tarun-khatri/profitpath-smart-swap/config"
	"github.com/tarun-khatri/profitpath-smart-swap/dbconfig"
	"github.com/tarun-khatri/profitpath-smart-swap/dbconfig/models"
)

var (
	tokensChain string
	tokensSync  bool
)

var tokensCmd = &cobra.Command{
	Use:   "tokens",
	Short: "List supported chains, or the swappable tokens on one chain",
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

		ctx := context.Background()

		if tokensSync {
			return syncTokens(ctx, cfg, client, logger)
		}

		if tokensChain == "" {
			chains, err := client.ListChains(ctx)
			if err != nil {
				return err
			}
			for _, chain := range chains {
				fmt.Printf("%-8s %-12s %s\n", chain.ID, chain.Type, chain.Name)
			}
			return nil
		}

		tokens, err := client.ListTokens(ctx, tokensChain)
		if err != nil {
			return err
		}
		for _, token := range tokens {
			fmt.Printf("%-10s %-3d %s\n", token.Symbol, token.Decimals, token.Address)
		}
		return nil
	},
}

// syncTokens refreshes the Postgres token reference store from the provider's
// listings. Only chains already present in the chains table are synced.
func syncTokens(ctx context.Context, cfg *config.Config, client *aggregator.Client, logger *logrus.Logger) error {
	if cfg.PostgresDSN == "" {
		return errors.New("token sync needs a database; set PROFITPATH_POSTGRES_DSN")
	}

	store, err := dbconfig.NewDBConfig(cfg.PostgresDSN)
	if err != nil {
		return err
	}

	chains, err := client.ListChains(ctx)
	if err != nil {
		return err
	}

	var synced int
	for _, chain := range chains {
		if _, err := store.GetChainByIndex(ctx, chain.ID); err != nil {
			if errors.Is(err, dbconfig.ErrChainNotFound) {
				logger.WithField("chain", chain.ID).Warn("Chain not in reference store, skipping")
				continue
			}
			return err
		}

		tokens, err := client.ListTokens(ctx, chain.ID)
		if err != nil {
			return errors.Wrapf(err, "failed to list tokens for chain %s", chain.ID)
		}

		for _, token := range tokens {
			row := &models.Token{
				ChainIndex: chain.ID,
				Symbol:     token.Symbol,
				Name:       token.Name,
				Address:    token.Address,
				Decimals:   token.Decimals,
				LogoURL:    token.LogoURL,
			}
			if err := store.UpsertToken(ctx, row); err != nil {
				return errors.Wrapf(err, "failed to upsert %s on chain %s", token.Symbol, chain.ID)
			}
			synced++
		}
	}

	fmt.Printf("Synced %d tokens\n", synced)
	return nil
}

func init() {
	tokensCmd.Flags().StringVar(&tokensChain, "chain", "", "Chain index to list tokens for")
	tokensCmd.Flags().BoolVar(&tokensSync, "sync", false, "Refresh the Postgres token store from the provider listings")
	rootCmd.AddCommand(tokensCmd)
}
