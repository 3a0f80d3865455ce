// Package config loads application settings from environment variables and
// an optional config file.
package config

import (
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Config holds the application configuration.
type Config struct {
	ProviderBaseURL    string
	ProviderAPIKey     string
	ProviderSecretKey  string
	ProviderPassphrase string

	EVMRPCURL    string
	SolanaRPCURL string

	EVMPrivateKey    string
	SolanaPrivateKey string

	PostgresDSN string
	ListenAddr  string
	LogLevel    string
}

// Load reads configuration from environment variables and the optional
// .profitpath.yaml config file.
func Load() (*Config, error) {
	viper.SetConfigName(".profitpath")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("$HOME")
	viper.AddConfigPath(".")

	viper.SetDefault("provider_base_url", "https://www.okx.com")
	viper.SetDefault("listen_addr", ":8080")
	viper.SetDefault("log_level", "info")

	viper.SetEnvPrefix("PROFITPATH")
	viper.AutomaticEnv()

	_ = viper.ReadInConfig()

	cfg := &Config{
		ProviderBaseURL:    viper.GetString("provider_base_url"),
		ProviderAPIKey:     viper.GetString("provider_api_key"),
		ProviderSecretKey:  viper.GetString("provider_secret_key"),
		ProviderPassphrase: viper.GetString("provider_passphrase"),
		EVMRPCURL:          viper.GetString("evm_rpc_url"),
		SolanaRPCURL:       viper.GetString("solana_rpc_url"),
		EVMPrivateKey:      viper.GetString("evm_private_key"),
		SolanaPrivateKey:   viper.GetString("solana_private_key"),
		PostgresDSN:        viper.GetString("postgres_dsn"),
		ListenAddr:         viper.GetString("listen_addr"),
		LogLevel:           viper.GetString("log_level"),
	}

	if cfg.ProviderAPIKey == "" || cfg.ProviderSecretKey == "" || cfg.ProviderPassphrase == "" {
		return nil, errors.New("provider credentials not found; set PROFITPATH_PROVIDER_API_KEY, PROFITPATH_PROVIDER_SECRET_KEY, and PROFITPATH_PROVIDER_PASSPHRASE")
	}

	return cfg, nil
}
