package collector

import (
	"context"

	"github.com/davidqio/marketlens/internal/core"
)

// Source supplies daily price series and quotes for a class of assets.
// Implementations normalize every bar's date to core.DateLayout and return
// series sorted ascending by date with no duplicate dates, so downstream
// date joins work on exact string equality.
type Source interface {
	// Metadata
	Name() string
	SupportedAssets() []core.AssetType

	// Data fetching. days is the lookback window in calendar days.
	FetchSeries(ctx context.Context, symbol string, days int) (core.PriceSeries, error)
	FetchQuote(ctx context.Context, symbol string) (*core.Quote, error)
}
