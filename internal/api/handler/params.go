// internal/api/handler/params.go
package handler

import (
	"net/http"
	"strconv"

	"github.com/davidqio/marketlens/internal/core"
)

// assetTypeParam reads an asset type query parameter, defaulting when
// the parameter is absent.
func assetTypeParam(r *http.Request, name string, def core.AssetType) (core.AssetType, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, true
	}
	return core.ParseAssetType(raw)
}

// daysParam reads the lookback window in days. Zero means "use the
// configured default".
func daysParam(r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("days")
	if raw == "" {
		return 0, true
	}
	days, err := strconv.Atoi(raw)
	if err != nil || days < 1 {
		return 0, false
	}
	return days, true
}

// refreshParam reads the cache-bypass flag.
func refreshParam(r *http.Request) bool {
	return r.URL.Query().Get("refresh") == "true"
}
