package main

import (
	"context"
	"fmt"
	"time"

	"github.com/davidqio/marketlens/internal/core"
	"github.com/davidqio/marketlens/internal/logger"
	"github.com/spf13/cobra"
)

var (
	metricsType string
	metricsDays int
)

var metricsCmd = &cobra.Command{
	Use:   "metrics <symbol>",
	Short: "Compute single-asset metrics for a symbol",
	Args:  cobra.ExactArgs(1),
	RunE:  runMetrics,
}

func init() {
	metricsCmd.Flags().StringVar(&metricsType, "type", "stock", "asset type of the symbol")
	metricsCmd.Flags().IntVar(&metricsDays, "days", 0, "lookback window in days (0 = configured default)")
	rootCmd.AddCommand(metricsCmd)
}

func runMetrics(cmd *cobra.Command, args []string) error {
	log := logger.Must(debug)
	defer log.Sync()

	cfg, err := loadConfig(log)
	if err != nil {
		return err
	}

	assetType, ok := core.ParseAssetType(metricsType)
	if !ok {
		return fmt.Errorf("unknown asset type %q", metricsType)
	}

	a, err := buildApp(cfg, log)
	if err != nil {
		return fmt.Errorf("building app: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	m, err := a.AssetMetrics(ctx, assetType, args[0], metricsDays, false)
	if err != nil {
		return err
	}

	fmt.Printf("%s\n", args[0])
	fmt.Printf("  Close:        %.2f\n", m.Close)
	fmt.Printf("  Prev close:   %.2f\n", m.PreviousClose)
	fmt.Printf("  Open:         %.2f  High: %.2f  Low: %.2f\n", m.Open, m.High, m.Low)
	fmt.Printf("  Volume:       %d\n", m.Volume)
	fmt.Printf("  50-day avg:   %.2f\n", m.FiftyDayAvg)
	fmt.Printf("  200-day avg:  %.2f\n", m.TwoHundredDayAvg)
	fmt.Printf("  Year high:    %.2f\n", m.YearHigh)
	fmt.Printf("  Year low:     %.2f\n", m.YearLow)
	return nil
}
