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
	compareTypeA   string
	compareTypeB   string
	compareDays    int
	compareAsIndex bool
)

var compareCmd = &cobra.Command{
	Use:   "compare <symbol-a> <symbol-b>",
	Short: "Compare two assets over their overlapping dates",
	Long: `Compare fetches daily history for both symbols and reports pairwise
metrics over the dates the two series share. With --index the second
symbol is treated as a benchmark and alpha/beta are reported instead.`,
	Args: cobra.ExactArgs(2),
	RunE: runCompare,
}

func init() {
	compareCmd.Flags().StringVar(&compareTypeA, "type-a", "stock", "asset type of the first symbol")
	compareCmd.Flags().StringVar(&compareTypeB, "type-b", "stock", "asset type of the second symbol")
	compareCmd.Flags().IntVar(&compareDays, "days", 0, "lookback window in days (0 = configured default)")
	compareCmd.Flags().BoolVar(&compareAsIndex, "index", false, "treat the second symbol as a benchmark index")
	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	log := logger.Must(debug)
	defer log.Sync()

	cfg, err := loadConfig(log)
	if err != nil {
		return err
	}

	typeA, ok := core.ParseAssetType(compareTypeA)
	if !ok {
		return fmt.Errorf("unknown asset type %q", compareTypeA)
	}
	typeB, ok := core.ParseAssetType(compareTypeB)
	if !ok {
		return fmt.Errorf("unknown asset type %q", compareTypeB)
	}

	a, err := buildApp(cfg, log)
	if err != nil {
		return fmt.Errorf("building app: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	symbolA, symbolB := args[0], args[1]

	if compareAsIndex {
		cmp, err := a.CompareWithIndex(ctx, typeA, symbolA, typeB, symbolB, compareDays, false)
		if err != nil {
			return err
		}
		fmt.Printf("%s vs %s (benchmark)\n", symbolA, symbolB)
		fmt.Printf("  Correlation: %.2f\n", cmp.Correlation)
		fmt.Printf("  Alpha:       %.2f\n", cmp.Alpha)
		fmt.Printf("  Beta:        %.2f\n", cmp.Beta)
		return nil
	}

	cmp, err := a.ComparePeers(ctx, typeA, symbolA, typeB, symbolB, compareDays, false)
	if err != nil {
		return err
	}
	fmt.Printf("%s vs %s\n", symbolA, symbolB)
	fmt.Printf("  Correlation:          %.2f\n", cmp.Correlation)
	fmt.Printf("  Relative performance: %.2f%%\n", cmp.RelativePerformance)
	fmt.Printf("  Volatility ratio:     %.2f\n", cmp.VolatilityRatio)
	return nil
}
