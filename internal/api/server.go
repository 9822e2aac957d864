// internal/api/server.go
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/davidqio/marketlens/internal/api/handler"
	"github.com/davidqio/marketlens/internal/api/middleware"
	"github.com/davidqio/marketlens/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// App bundles the application operations the HTTP layer exposes.
type App interface {
	handler.AssetsApp
	handler.CompareApp
	handler.RefreshApp
}

// Server represents the marketlens HTTP server.
type Server struct {
	httpServer *http.Server
	logger     *zap.Logger
	mux        *http.ServeMux
}

// Config holds server configuration.
type Config struct {
	Host        string
	Port        int
	APIKey      string
	MetricsPath string
}

// NewServer creates a new HTTP server. A nil metrics registry disables
// instrumentation and the metrics endpoint.
func NewServer(cfg Config, app App, reg *metrics.Registry, logger *zap.Logger) *Server {
	mux := http.NewServeMux()

	var root http.Handler = mux
	if reg != nil {
		root = metrics.HTTPMiddleware(reg)(root)
	}
	root = middleware.RequestID()(root)

	s := &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
			Handler:      root,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: logger,
		mux:    mux,
	}

	s.setupRoutes(cfg, app, reg)
	return s
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes(cfg Config, app App, reg *metrics.Registry) {
	assets := handler.NewAssetsHandler(app)
	compare := handler.NewCompareHandler(app)
	refresh := handler.NewRefreshHandler(app)

	// Health stays open; everything else under /api requires the key
	// when one is configured.
	auth := middleware.APIKeyAuth(cfg.APIKey)

	s.mux.HandleFunc("GET /api/health", s.handleHealth)
	s.mux.Handle("GET /api/assets/{symbol}/metrics", auth(http.HandlerFunc(assets.Metrics)))
	s.mux.Handle("GET /api/assets/{symbol}/quote", auth(http.HandlerFunc(assets.Quote)))
	s.mux.Handle("GET /api/compare", auth(http.HandlerFunc(compare.Peers)))
	s.mux.Handle("GET /api/compare/index", auth(http.HandlerFunc(compare.Index)))
	s.mux.Handle("POST /api/refresh", auth(http.HandlerFunc(refresh.Refresh)))

	if reg != nil {
		path := cfg.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		s.mux.Handle("GET "+path, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	}
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}

// Handler returns the server's root handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
