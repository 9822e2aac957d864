package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "marketlens",
	Short: "marketlens - cross-asset comparison analytics",
	Long: `marketlens fetches daily price history for stocks, indexes, and
cryptocurrencies and computes comparison metrics between them:
correlation, relative performance, volatility ratio, alpha, and beta.`,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug mode")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
