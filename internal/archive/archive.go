// Package archive persists point-in-time snapshots of fetched price
// series, giving the dashboard a replayable record of what each vendor
// returned on a given day.
package archive

import (
	"context"
	"fmt"
	"time"

	"github.com/davidqio/marketlens/internal/core"
)

// Snapshot is one fetched series with its provenance.
type Snapshot struct {
	Symbol    string           `json:"symbol"`
	AssetType core.AssetType   `json:"asset_type"`
	Source    string           `json:"source"`
	TakenAt   time.Time        `json:"taken_at"`
	Series    core.PriceSeries `json:"series"`
}

// Store defines the interface for snapshot storage backends
type Store interface {
	// Save persists a snapshot and returns its key
	Save(ctx context.Context, snap Snapshot) (string, error)

	// Load retrieves a snapshot by key
	Load(ctx context.Context, key string) (*Snapshot, error)

	// List returns the keys of all snapshots for a symbol, oldest first
	List(ctx context.Context, symbol string) ([]string, error)

	// Delete removes a snapshot
	Delete(ctx context.Context, key string) error
}

// snapshotKey builds the storage key for a snapshot. One snapshot per
// symbol per calendar day; a re-fetch on the same day overwrites.
func snapshotKey(snap Snapshot) string {
	return fmt.Sprintf("series/%s/%s.json", snap.Symbol, snap.TakenAt.UTC().Format(core.DateLayout))
}
