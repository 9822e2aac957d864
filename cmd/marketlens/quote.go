package main

import (
	"context"
	"fmt"
	"time"

	"github.com/davidqio/marketlens/internal/core"
	"github.com/davidqio/marketlens/internal/logger"
	"github.com/spf13/cobra"
)

var quoteType string

var quoteCmd = &cobra.Command{
	Use:   "quote <symbol>",
	Short: "Fetch the latest quote for a symbol",
	Args:  cobra.ExactArgs(1),
	RunE:  runQuote,
}

func init() {
	quoteCmd.Flags().StringVar(&quoteType, "type", "stock", "asset type of the symbol")
	rootCmd.AddCommand(quoteCmd)
}

func runQuote(cmd *cobra.Command, args []string) error {
	log := logger.Must(debug)
	defer log.Sync()

	cfg, err := loadConfig(log)
	if err != nil {
		return err
	}

	assetType, ok := core.ParseAssetType(quoteType)
	if !ok {
		return fmt.Errorf("unknown asset type %q", quoteType)
	}

	a, err := buildApp(cfg, log)
	if err != nil {
		return fmt.Errorf("building app: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	quote, err := a.Quote(ctx, assetType, args[0])
	if err != nil {
		return err
	}

	fmt.Printf("%s (%s)\n", quote.Symbol, quote.Source)
	fmt.Printf("  Price:      %.2f\n", quote.Price)
	if quote.PreviousClose > 0 {
		fmt.Printf("  Prev close: %.2f\n", quote.PreviousClose)
	}
	if quote.ChangePercent != 0 {
		fmt.Printf("  Change:     %.2f%%\n", quote.ChangePercent)
	}
	if quote.Volume > 0 {
		fmt.Printf("  Volume:     %d\n", quote.Volume)
	}
	return nil
}
