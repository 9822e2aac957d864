package main

import (
	"fmt"

	"github.com/davidqio/marketlens/internal/app"
	"github.com/davidqio/marketlens/internal/archive"
	"github.com/davidqio/marketlens/internal/collector/cmc"
	"github.com/davidqio/marketlens/internal/collector/fmp"
	"github.com/davidqio/marketlens/internal/config"
	"go.uber.org/zap"
)

// loadConfig reads the config file or falls back to defaults.
func loadConfig(log *zap.Logger) (*config.Config, error) {
	var cfg *config.Config
	var err error

	if cfgFile != "" {
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	} else {
		cfg = config.Defaults()
		log.Warn("no config file specified, using defaults")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// buildApp constructs the application with all configured sources and
// the snapshot archive.
func buildApp(cfg *config.Config, log *zap.Logger) (*app.App, error) {
	a := app.New(cfg, log)

	if cfg.Sources.FMP.Enabled {
		src := fmp.New(cfg.Sources.FMP.APIKey)
		if cfg.Sources.FMP.BaseURL != "" {
			src = fmp.NewWithBaseURL(cfg.Sources.FMP.APIKey, cfg.Sources.FMP.BaseURL)
		}
		a.RegisterSource(src)
	}
	if cfg.Sources.CMC.Enabled {
		src := cmc.New(cfg.Sources.CMC.APIKey)
		if cfg.Sources.CMC.BaseURL != "" {
			src = cmc.NewWithBaseURL(cfg.Sources.CMC.APIKey, cfg.Sources.CMC.BaseURL)
		}
		a.RegisterSource(src)
	}

	if cfg.Archive.Enabled {
		store, err := buildArchive(cfg)
		if err != nil {
			return nil, fmt.Errorf("creating archive: %w", err)
		}
		a.SetArchive(store)
	}

	return a, nil
}

func buildArchive(cfg *config.Config) (archive.Store, error) {
	switch cfg.Archive.Type {
	case "localfs":
		return archive.NewLocalFS(cfg.Archive.Path)
	case "s3":
		return archive.NewS3(archive.S3Config{
			Bucket:    cfg.Archive.S3.Bucket,
			Endpoint:  cfg.Archive.S3.Endpoint,
			Region:    cfg.Archive.S3.Region,
			AccessKey: cfg.Archive.S3.AccessKey,
			SecretKey: cfg.Archive.S3.SecretKey,
			Prefix:    cfg.Archive.S3.Prefix,
		})
	default:
		return nil, fmt.Errorf("unknown archive type: %s", cfg.Archive.Type)
	}
}
