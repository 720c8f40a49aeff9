package main

import (
	"context"
	"fmt"

	"github.com/rewired-gh/launchdash/internal/config"
	"github.com/rewired-gh/launchdash/internal/dashboard"
	"github.com/rewired-gh/launchdash/internal/logger"
	"github.com/rewired-gh/launchdash/internal/storage"
)

// bootstrap loads configuration, sets up logging and loads the dataset.
// Every failure here aborts the command before anything is served.
func bootstrap(ctx context.Context) (*config.Config, *dashboard.Dashboard, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger.Init(cfg.Logging.Level, cfg.Logging.Format)
	logger.Info("Configuration loaded from %s", configPath)

	store, err := storage.Load(ctx, storage.Source{
		Path:           cfg.Dataset.Path,
		Delimiter:      []rune(cfg.Dataset.Delimiter)[0],
		Table:          cfg.Dataset.Table,
		Timeout:        cfg.Dataset.Timeout,
		MaxRetries:     cfg.Dataset.MaxRetries,
		RetryDelayBase: cfg.Dataset.RetryDelayBase,
	})
	if err != nil {
		return nil, nil, err
	}
	logger.Info("Loaded %d launch records from %d sites (payload %.0f–%.0f kg)",
		store.Len(), len(store.Sites()), store.MinPayload(), store.MaxPayload())
	logger.Debug("Launch sites: %v", store.Sites())

	return cfg, dashboard.New(store), nil
}
