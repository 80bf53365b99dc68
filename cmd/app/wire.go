//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/shelter-console/internal/bootstrap"
	"github.com/yanqian/shelter-console/internal/domain/catalog"
	"github.com/yanqian/shelter-console/internal/domain/health"
	"github.com/yanqian/shelter-console/internal/domain/submission"
	"github.com/yanqian/shelter-console/internal/domain/viewstate"
	"github.com/yanqian/shelter-console/internal/infra/config"
	"github.com/yanqian/shelter-console/internal/infra/predictapi"
	httpiface "github.com/yanqian/shelter-console/internal/interface/http"
	"github.com/yanqian/shelter-console/pkg/logger"
	"github.com/yanqian/shelter-console/pkg/metrics"
)

func initializeApp() (*bootstrap.App, func(), error) {
	wire.Build(
		config.Load,
		logger.New,
		metrics.NewRecorder,
		viewstate.New,
		provideSubmissionConfig,
		provideHealthConfig,
		provideCatalogConfig,
		bootstrap.NewPredictorClient,
		bootstrap.NewHistoryRepository,
		bootstrap.NewCatalogStore,
		submission.NewService,
		health.NewMonitor,
		catalog.NewService,
		wire.Bind(new(submission.Predictor), new(*predictapi.Client)),
		wire.Bind(new(submission.View), new(*viewstate.ViewState)),
		wire.Bind(new(submission.Metrics), new(*metrics.Recorder)),
		wire.Bind(new(health.Pinger), new(*predictapi.Client)),
		wire.Bind(new(health.Indicator), new(*viewstate.ViewState)),
		wire.Bind(new(health.Metrics), new(*metrics.Recorder)),
		wire.Bind(new(catalog.Fetcher), new(*predictapi.Client)),
		wire.Bind(new(httpiface.ViewSource), new(*viewstate.ViewState)),
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil, nil
}
