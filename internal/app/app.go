// Package app wires sources, cache, analytics, and the archive into the
// operations the API and CLI expose.
package app

import (
	"context"
	"time"

	"github.com/davidqio/marketlens/internal/analytics"
	"github.com/davidqio/marketlens/internal/archive"
	"github.com/davidqio/marketlens/internal/cache"
	"github.com/davidqio/marketlens/internal/collector"
	"github.com/davidqio/marketlens/internal/config"
	"github.com/davidqio/marketlens/internal/core"
	"github.com/davidqio/marketlens/internal/metrics"
	"go.uber.org/zap"
)

// App is the main application orchestrator.
type App struct {
	cfg     *config.Config
	logger  *zap.Logger
	sources *collector.Registry
	cache   *cache.SeriesCache
	store   archive.Store
	metrics *metrics.Registry
}

// New creates a new App instance.
func New(cfg *config.Config, logger *zap.Logger) *App {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &App{
		cfg:     cfg,
		logger:  logger,
		sources: collector.NewRegistry(),
		cache:   cache.New(cfg.Cache.TTL),
	}
}

// RegisterSource adds a price source to the app.
func (a *App) RegisterSource(s collector.Source) {
	a.sources.Register(s)
}

// SetArchive enables snapshot archiving of fetched series.
func (a *App) SetArchive(store archive.Store) {
	a.store = store
}

// SetMetrics enables Prometheus instrumentation.
func (a *App) SetMetrics(reg *metrics.Registry) {
	a.metrics = reg
}

// Sources returns the source registry.
func (a *App) Sources() *collector.Registry {
	return a.sources
}

// GetSeries returns the price series for a symbol, serving from cache
// unless refresh is set or the entry has expired. Fresh fetches are
// archived when a snapshot store is configured.
func (a *App) GetSeries(ctx context.Context, assetType core.AssetType, symbol string, days int, refresh bool) (core.PriceSeries, error) {
	if days <= 0 {
		days = a.cfg.Cache.DefaultLookback
	}

	if refresh {
		a.cache.Invalidate(symbol)
	} else if series, ok := a.cache.Get(symbol, days); ok {
		a.recordCacheLookup(true)
		return series, nil
	}
	a.recordCacheLookup(false)

	src, ok := a.sources.ForAsset(assetType)
	if !ok {
		return nil, core.WrapError(core.ErrSourceNotFound, nil)
	}

	start := time.Now()
	series, err := src.FetchSeries(ctx, symbol, days)
	a.recordFetch(src.Name(), err, time.Since(start))
	if err != nil {
		a.logger.Warn("series fetch failed",
			zap.String("source", src.Name()),
			zap.String("symbol", symbol),
			zap.Error(err),
		)
		return nil, err
	}

	a.cache.Put(symbol, days, series)
	a.archiveSnapshot(ctx, assetType, symbol, src.Name(), series)

	return series, nil
}

// Quote returns the latest quote for a symbol, always fetched live.
func (a *App) Quote(ctx context.Context, assetType core.AssetType, symbol string) (*core.Quote, error) {
	src, ok := a.sources.ForAsset(assetType)
	if !ok {
		return nil, core.WrapError(core.ErrSourceNotFound, nil)
	}

	start := time.Now()
	quote, err := src.FetchQuote(ctx, symbol)
	a.recordFetch(src.Name(), err, time.Since(start))
	return quote, err
}

// AssetMetrics fetches a symbol's series and computes its single-asset
// metrics.
func (a *App) AssetMetrics(ctx context.Context, assetType core.AssetType, symbol string, days int, refresh bool) (analytics.AssetMetrics, error) {
	series, err := a.GetSeries(ctx, assetType, symbol, days, refresh)
	if err != nil {
		return analytics.AssetMetrics{}, err
	}
	return analytics.ComputeMetrics(series), nil
}

// ComparePeers compares two assets pairwise over their overlapping dates.
func (a *App) ComparePeers(ctx context.Context, typeA core.AssetType, symbolA string, typeB core.AssetType, symbolB string, days int, refresh bool) (analytics.PairComparison, error) {
	seriesA, err := a.GetSeries(ctx, typeA, symbolA, days, refresh)
	if err != nil {
		return analytics.PairComparison{}, err
	}
	seriesB, err := a.GetSeries(ctx, typeB, symbolB, days, refresh)
	if err != nil {
		return analytics.PairComparison{}, err
	}

	a.recordComparison("peer")
	return analytics.CompareAssets(seriesA, seriesB), nil
}

// CompareWithIndex compares an asset against a benchmark index.
func (a *App) CompareWithIndex(ctx context.Context, assetType core.AssetType, symbol string, indexType core.AssetType, indexSymbol string, days int, refresh bool) (analytics.IndexComparison, error) {
	series, err := a.GetSeries(ctx, assetType, symbol, days, refresh)
	if err != nil {
		return analytics.IndexComparison{}, err
	}
	index, err := a.GetSeries(ctx, indexType, indexSymbol, days, refresh)
	if err != nil {
		return analytics.IndexComparison{}, err
	}

	a.recordComparison("index")
	return analytics.CompareToIndex(series, index), nil
}

// Refresh drops all cached windows for a symbol.
func (a *App) Refresh(symbol string) {
	a.cache.Invalidate(symbol)
}

// RefreshAll empties the series cache.
func (a *App) RefreshAll() {
	a.cache.InvalidateAll()
}

// CacheLen returns the number of live cache entries.
func (a *App) CacheLen() int {
	return a.cache.Len()
}

func (a *App) archiveSnapshot(ctx context.Context, assetType core.AssetType, symbol, source string, series core.PriceSeries) {
	if a.store == nil || len(series) == 0 {
		return
	}

	snap := archive.Snapshot{
		Symbol:    symbol,
		AssetType: assetType,
		Source:    source,
		TakenAt:   time.Now().UTC(),
		Series:    series,
	}

	key, err := a.store.Save(ctx, snap)
	if err != nil {
		a.recordSnapshot("error")
		a.logger.Warn("snapshot save failed",
			zap.String("symbol", symbol),
			zap.Error(err),
		)
		return
	}
	a.recordSnapshot("ok")
	a.logger.Debug("snapshot saved",
		zap.String("symbol", symbol),
		zap.String("key", key),
	)
}

func (a *App) recordCacheLookup(hit bool) {
	if a.metrics != nil {
		a.metrics.RecordCacheLookup(hit)
	}
}

func (a *App) recordFetch(source string, err error, d time.Duration) {
	if a.metrics == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	a.metrics.RecordFetch(source, status, d.Seconds())
}

func (a *App) recordComparison(kind string) {
	if a.metrics != nil {
		a.metrics.RecordComparison(kind)
	}
}

func (a *App) recordSnapshot(status string) {
	if a.metrics != nil {
		a.metrics.RecordSnapshot(status)
	}
}
