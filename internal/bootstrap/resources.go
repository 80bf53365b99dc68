package bootstrap

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/shelter-console/internal/domain/catalog"
	"github.com/yanqian/shelter-console/internal/domain/submission"
	"github.com/yanqian/shelter-console/internal/infra/catalogstore"
	"github.com/yanqian/shelter-console/internal/infra/config"
	"github.com/yanqian/shelter-console/internal/infra/historyrepo"
	"github.com/yanqian/shelter-console/internal/infra/predictapi"
)

// NewPredictorClient builds the client for the upstream prediction service.
func NewPredictorClient(cfg *config.Config) *predictapi.Client {
	return predictapi.NewClient(cfg.Predictor.BaseURL, predictapi.Paths{
		Predict: cfg.Predictor.PredictPath,
		Health:  cfg.Predictor.HealthPath,
		Info:    cfg.Predictor.InfoPath,
	})
}

// NewHistoryRepository returns the Postgres history when reachable, falling
// back to memory on any setup failure.
func NewHistoryRepository(cfg *config.Config, logger *slog.Logger) (submission.HistoryRepository, func()) {
	fallback := historyrepo.NewMemoryRepository(cfg.History.MemoryCapacity)
	noop := func() {}
	dsn := strings.TrimSpace(cfg.History.Postgres.DSN)
	if dsn == "" {
		logger.Info("history postgres dsn not set, using memory repository")
		return fallback, noop
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Error("invalid postgres dsn, using memory repository", "error", err)
		return fallback, noop
	}
	if cfg.History.Postgres.MaxConns > 0 {
		poolConfig.MaxConns = cfg.History.Postgres.MaxConns
	}
	if cfg.History.Postgres.MinConns > 0 {
		poolConfig.MinConns = cfg.History.Postgres.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		logger.Error("failed to initialize postgres pool, using memory repository", "error", err)
		return fallback, noop
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		logger.Error("postgres ping failed, using memory repository", "error", err)
		pool.Close()
		return fallback, noop
	}
	repo := historyrepo.NewPostgresRepository(pool)
	if err := repo.EnsureSchema(ctx); err != nil {
		logger.Error("history schema setup failed, using memory repository", "error", err)
		pool.Close()
		return fallback, noop
	}
	logger.Info("history postgres repository enabled")
	return repo, pool.Close
}

// NewCatalogStore returns the Valkey cache when enabled and reachable,
// falling back to memory otherwise.
func NewCatalogStore(cfg *config.Config, logger *slog.Logger) (catalog.Store, func()) {
	noop := func() {}
	if !cfg.Catalog.Redis.Enabled {
		return catalogstore.NewMemoryStore(), noop
	}
	opt, err := buildValkeyOptions(cfg.Catalog.Redis.Addr)
	if err != nil {
		logger.Error("invalid valkey configuration, falling back to memory store", "error", err)
		return catalogstore.NewMemoryStore(), noop
	}
	client, err := valkey.NewClient(opt)
	if err != nil {
		logger.Error("failed to create valkey client, falling back to memory store", "error", err)
		return catalogstore.NewMemoryStore(), noop
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		logger.Error("valkey ping failed, falling back to memory store", "error", err)
		client.Close()
		return catalogstore.NewMemoryStore(), noop
	}
	logger.Info("catalog valkey store enabled", "addr", cfg.Catalog.Redis.Addr)
	return catalogstore.NewValkeyStore(client, cfg.Catalog.Redis.Prefix), client.Close
}

func buildValkeyOptions(addr string) (valkey.ClientOption, error) {
	if strings.Contains(addr, "://") {
		return valkey.ParseURL(addr)
	}
	return valkey.ClientOption{InitAddress: []string{addr}}, nil
}
