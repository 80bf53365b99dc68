package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/yanqian/shelter-console/internal/domain/health"
	"github.com/yanqian/shelter-console/internal/domain/submission"
	"github.com/yanqian/shelter-console/internal/domain/viewstate"
	"github.com/yanqian/shelter-console/internal/infra/config"
	"github.com/yanqian/shelter-console/pkg/util"
)

const shutdownTimeout = 10 * time.Second

// App encapsulates the console lifecycle: the HTTP server plus the health
// monitor that feeds its badge.
type App struct {
	cfg         *config.Config
	logger      *slog.Logger
	server      *http.Server
	monitor     *health.Monitor
	view        *viewstate.ViewState
	submissions submission.Service
}

// NewApp is used by Wire to build the runnable app.
func NewApp(cfg *config.Config, logger *slog.Logger, server *http.Server, monitor *health.Monitor, view *viewstate.ViewState, submissions submission.Service) *App {
	return &App{
		cfg:         cfg,
		logger:      logger.With("component", "bootstrap"),
		server:      server,
		monitor:     monitor,
		view:        view,
		submissions: submissions,
	}
}

// Run starts polling and serving, and blocks until shutdown.
func (a *App) Run(ctx context.Context) error {
	a.view.SetDefaults(util.Today(nil))
	if err := a.monitor.Start(ctx); err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("http server starting", "address", a.cfg.HTTP.Address)
		if err := a.server.ListenAndServe(); err != nil {
			errCh <- err
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			runErr = err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil && runErr == nil {
		runErr = err
	}
	a.submissions.Cancel()
	select {
	case <-a.monitor.Stop().Done():
	case <-shutdownCtx.Done():
		a.logger.Warn("health polls did not finish before shutdown deadline")
	}
	return runErr
}
