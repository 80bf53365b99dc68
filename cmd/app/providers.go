package main

import (
	"github.com/yanqian/shelter-console/internal/domain/catalog"
	"github.com/yanqian/shelter-console/internal/domain/health"
	"github.com/yanqian/shelter-console/internal/domain/submission"
	"github.com/yanqian/shelter-console/internal/infra/config"
)

func provideSubmissionConfig(cfg *config.Config) submission.Config {
	return submission.Config{
		PredictTimeout: cfg.Predictor.PredictTimeout,
		HistoryLimit:   cfg.History.Limit,
	}
}

func provideHealthConfig(cfg *config.Config) health.Config {
	return health.Config{
		Schedule:    cfg.Health.Schedule,
		PollTimeout: cfg.Health.PollTimeout,
	}
}

func provideCatalogConfig(cfg *config.Config) catalog.Config {
	return catalog.Config{CacheTTL: cfg.Catalog.CacheTTL}
}
