package cmd

import (
	"net/http"

	solrpc "github.com/gagliardetto/solana-go/rpc"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/tarun-khatri/profitpath-smart-swap/aggregator"
	"github.com/tarun-khatri/profitpath-smart-swap/approval"
	"github.com/tarun-khatri/profitpath-smart-swap/common/types"
	"github.com/tarun-khatri/profitpath-smart-swap/config"
	"github.com/tarun-khatri/profitpath-smart-swap/dbconfig"
	"github.com/tarun-khatri/profitpath-smart-swap/gateway"
	"github.com/tarun-khatri/profitpath-smart-swap/intent"
	"github.com/tarun-khatri/profitpath-smart-swap/observability"
	"github.com/tarun-khatri/profitpath-smart-swap/pipeline"
	"github.com/tarun-khatri/profitpath-smart-swap/registry"
	"github.com/tarun-khatri/profitpath-smart-swap/statuspoller"
	"github.com/tarun-khatri/profitpath-smart-swap/submitter"
	"github.com/tarun-khatri/profitpath-smart-swap/txbuilder"
	walletevm "github.com/tarun-khatri/profitpath-smart-swap/wallet/evm"
	walletsolana "github.com/tarun-khatri/profitpath-smart-swap/wallet/solana"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the swap HTTP gateway",
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

		// Listings come from Postgres when a DSN is configured, otherwise
		// straight from the provider.
		var tokenSource registry.TokenSource = client
		if cfg.PostgresDSN != "" {
			store, err := dbconfig.NewDBConfig(cfg.PostgresDSN)
			if err != nil {
				return err
			}
			tokenSource = store
		}

		reg := registry.New(tokenSource, logger)
		metrics := observability.New(prometheus.DefaultRegisterer)

		var solanaRPC txbuilder.SolanaRPC
		if cfg.SolanaRPCURL != "" {
			solanaRPC = solrpc.New(cfg.SolanaRPCURL)
		}
		builder := txbuilder.New(solanaRPC, logger)

		wallets, approver, err := buildWallets(cfg, client, logger)
		if err != nil {
			return err
		}

		p, err := pipeline.NewBuilder(logger).
			WithQuoteSource(client).
			WithApprover(approver).
			WithTransactionBuilder(builder).
			WithSubmitter(submitter.New(logger)).
			WithStatusAwaiter(statuspoller.New(client, logger)).
			WithMetrics(metrics).
			Build()
		if err != nil {
			return err
		}

		server := gateway.NewServer(gateway.Config{
			Registry: reg,
			Resolver: intent.NewResolver(reg, logger),
			Pipeline: p,
			Statuses: client,
			Wallets:  wallets,
			Metrics:  metrics,
		}, logger)

		logger.WithField("addr", cfg.ListenAddr).Info("Gateway listening")
		return http.ListenAndServe(cfg.ListenAddr, server.Router())
	},
}

// buildWallets wires local-key wallets and the approval manager from the
// configured keys. Without an EVM key the instance serves quotes only and the
// approval stage runs against a nil wallet, which it reports cleanly.
func buildWallets(cfg *config.Config, client *aggregator.Client, logger *logrus.Logger) (*types.WalletSet, pipeline.Approver, error) {
	wallets := &types.WalletSet{}

	var approver pipeline.Approver

	if cfg.EVMPrivateKey != "" && cfg.EVMRPCURL != "" {
		evmWallet, err := walletevm.NewWallet(cfg.EVMPrivateKey, cfg.EVMRPCURL, logger)
		if err != nil {
			return nil, nil, err
		}
		wallets.EVM = evmWallet

		backend, err := approval.NewEthBackend(cfg.EVMRPCURL)
		if err != nil {
			return nil, nil, err
		}
		approver = approval.NewManager(backend, backend, client, logger)
	} else {
		// No EVM key: approval still answers for Solana and native swaps.
		approver = approval.NewManager(nil, nil, client, logger)
	}

	if cfg.SolanaPrivateKey != "" && cfg.SolanaRPCURL != "" {
		solanaWallet, err := walletsolana.NewWallet(cfg.SolanaPrivateKey, cfg.SolanaRPCURL, logger)
		if err != nil {
			return nil, nil, err
		}
		wallets.Solana = solanaWallet
	}

	if wallets.EVM == nil && wallets.Solana == nil {
		logger.Warn("No wallet keys configured, swap execution disabled")
		return nil, approver, nil
	}

	return wallets, approver, nil
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
