package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/yanqian/shelter-console/internal/bootstrap"
	"github.com/yanqian/shelter-console/internal/domain/catalog"
	"github.com/yanqian/shelter-console/internal/domain/health"
	"github.com/yanqian/shelter-console/internal/domain/submission"
	"github.com/yanqian/shelter-console/internal/domain/viewstate"
	"github.com/yanqian/shelter-console/internal/infra/config"
	"github.com/yanqian/shelter-console/internal/interface/tui"
	"github.com/yanqian/shelter-console/pkg/logger"
	"github.com/yanqian/shelter-console/pkg/metrics"
	"github.com/yanqian/shelter-console/pkg/util"
)

const shutdownGrace = 5 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "shelter-console: %v\n", err)
		os.Exit(1)
	}
}

// run owns every resource so its defers fire before main decides the exit code.
func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logFile, err := os.OpenFile(logPath(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()
	slogLogger := logger.NewWithWriter(logFile)

	recorder := metrics.NewRecorder()
	view := viewstate.New()
	view.SetDefaults(util.Today(nil))
	client := bootstrap.NewPredictorClient(cfg)

	history, closeHistory := bootstrap.NewHistoryRepository(cfg, slogLogger)
	defer closeHistory()
	store, closeStore := bootstrap.NewCatalogStore(cfg, slogLogger)
	defer closeStore()

	submissions := submission.NewService(submission.Config{
		PredictTimeout: cfg.Predictor.PredictTimeout,
		HistoryLimit:   cfg.History.Limit,
	}, client, view, history, recorder, slogLogger)
	catalogSvc := catalog.NewService(catalog.Config{CacheTTL: cfg.Catalog.CacheTTL}, client, store, slogLogger)
	monitor := health.NewMonitor(health.Config{
		Schedule:    cfg.Health.Schedule,
		PollTimeout: cfg.Health.PollTimeout,
	}, client, view, recorder, slogLogger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := monitor.Start(ctx); err != nil {
		return fmt.Errorf("start health monitor: %w", err)
	}
	defer shutdown(submissions, monitor, shutdownGrace, slogLogger)

	model := tui.NewModel(submissions, view, catalogSvc)
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("tui exited: %w", err)
	}
	return nil
}

func logPath() string {
	if path := os.Getenv("LOG_FILE"); path != "" {
		return path
	}
	return "shelter-console.log"
}

type stopper interface {
	Stop() context.Context
}

// shutdown abandons the in-flight submission and waits up to grace for
// health polls to return.
func shutdown(submissions submission.Service, monitor stopper, grace time.Duration, logger *slog.Logger) {
	submissions.Cancel()
	select {
	case <-monitor.Stop().Done():
	case <-time.After(grace):
		logger.Warn("health polls did not finish before exit")
	}
}
