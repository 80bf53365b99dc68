package catalog

import (
	"context"
	"log/slog"
	"time"

	"github.com/yanqian/shelter-console/internal/domain/forecast"
)

// Config wires runtime settings for the sector catalog.
type Config struct {
	CacheTTL time.Duration
}

// Fetcher loads the catalog from the prediction service.
type Fetcher interface {
	Info(ctx context.Context) (forecast.Catalog, error)
}

// Store caches the catalog between fetches.
type Store interface {
	Get(ctx context.Context) (forecast.Catalog, bool, error)
	Save(ctx context.Context, catalog forecast.Catalog, ttl time.Duration) error
}

// Service exposes the sectors the operator can choose from.
type Service interface {
	// Catalog never fails; when the service is unreachable it returns the
	// built-in defaults.
	Catalog(ctx context.Context) forecast.Catalog
}

type service struct {
	cfg     Config
	fetcher Fetcher
	store   Store
	logger  *slog.Logger
}

// NewService is a wire provider for the catalog domain.
func NewService(cfg Config, fetcher Fetcher, store Store, logger *slog.Logger) Service {
	return &service{cfg: cfg, fetcher: fetcher, store: store, logger: logger.With("component", "catalog.service")}
}

func (s *service) Catalog(ctx context.Context) forecast.Catalog {
	cached, ok, err := s.store.Get(ctx)
	if err != nil {
		s.logger.Warn("catalog cache read failed", "error", err)
	}
	if ok {
		return cached
	}

	fetched, err := s.fetcher.Info(ctx)
	if err != nil {
		s.logger.Warn("catalog fetch failed, using defaults", "error", err)
		return Defaults()
	}
	fetched = withDefaults(fetched)
	if err := s.store.Save(ctx, fetched, s.cfg.CacheTTL); err != nil {
		s.logger.Warn("catalog cache write failed", "error", err)
	}
	s.logger.Info("catalog refreshed", "sectors", len(fetched.Sectors))
	return fetched
}

// Defaults mirrors what the prediction service publishes for its model.
func Defaults() forecast.Catalog {
	return forecast.Catalog{
		Sectors:     []string{"Families", "Men", "Mixed Adult", "Women", "Youth"},
		Temperature: forecast.TemperatureRange{Min: -25, Max: 30, Step: 1},
		SampleDates: []string{"2025-01-15", "2025-06-15", "2025-12-25"},
	}
}

func withDefaults(c forecast.Catalog) forecast.Catalog {
	defaults := Defaults()
	if len(c.Sectors) == 0 {
		c.Sectors = defaults.Sectors
	}
	if c.Temperature == (forecast.TemperatureRange{}) {
		c.Temperature = defaults.Temperature
	}
	if len(c.SampleDates) == 0 {
		c.SampleDates = defaults.SampleDates
	}
	return c
}
