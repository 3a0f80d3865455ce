package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "profitpath",
	Short: "Cross-chain token swap service over a DEX aggregation provider",
	Long: `profitpath quotes and executes token swaps, same-chain and cross-chain,
through a DEX aggregation provider. It handles token approvals, builds and
submits the swap transaction, and tracks it to confirmation.

Examples:
  profitpath serve
  profitpath tokens --chain 1
  profitpath status --tx 0xabc... --chain 1`,
	Version: "0.1.0",
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
}

func newLogger(level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	logger.SetLevel(parsed)

	if verbose, _ := rootCmd.PersistentFlags().GetBool("verbose"); verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	return logger
}
