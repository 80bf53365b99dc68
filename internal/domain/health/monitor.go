package health

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/yanqian/shelter-console/internal/domain/forecast"
)

// Config controls the polling cadence.
type Config struct {
	// Schedule is a cron spec; "@every 30s" matches the console's default.
	Schedule    string
	PollTimeout time.Duration
}

// Pinger checks the prediction service.
type Pinger interface {
	Health(ctx context.Context) error
}

// Indicator receives each poll's verdict.
type Indicator interface {
	SetHealth(forecast.ServiceHealth)
}

// Metrics counts poll results.
type Metrics interface {
	ObserveHealth(status string)
}

// Monitor polls the health endpoint on a schedule and updates the badge.
// Polls may overlap when one outlives the interval; whichever resolves last
// sets the badge.
type Monitor struct {
	cfg       Config
	pinger    Pinger
	indicator Indicator
	metrics   Metrics
	logger    *slog.Logger

	mu      sync.Mutex
	cron    *cron.Cron
	cancel  context.CancelFunc
	polls   *sync.WaitGroup
	running bool
}

// NewMonitor wires a monitor. Start must be called to begin polling.
func NewMonitor(cfg Config, pinger Pinger, indicator Indicator, metrics Metrics, logger *slog.Logger) *Monitor {
	if cfg.Schedule == "" {
		cfg.Schedule = "@every 30s"
	}
	return &Monitor{
		cfg:       cfg,
		pinger:    pinger,
		indicator: indicator,
		metrics:   metrics,
		logger:    logger.With("component", "health.monitor"),
	}
}

// Poll checks once and publishes the result. It never fails: any error,
// non-2xx status, timeout or panic in the pinger maps to Offline. A poll whose
// ctx is cancelled publishes nothing.
func (m *Monitor) Poll(ctx context.Context) (status forecast.ServiceHealth) {
	status = forecast.HealthOffline
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("health check panicked", "panic", r)
			status = forecast.HealthOffline
		}
		if ctx.Err() != nil {
			// Aborted by Stop or shutdown; the last real verdict stands.
			m.logger.Debug("health poll abandoned", "error", ctx.Err())
			return
		}
		m.indicator.SetHealth(status)
		m.metrics.ObserveHealth(status.String())
	}()

	pollCtx := ctx
	if m.cfg.PollTimeout > 0 {
		var cancel context.CancelFunc
		pollCtx, cancel = context.WithTimeout(ctx, m.cfg.PollTimeout)
		defer cancel()
	}

	if err := m.pinger.Health(pollCtx); err != nil {
		m.logger.Warn("health poll failed", "error", err)
		return forecast.HealthOffline
	}
	m.logger.Debug("health poll succeeded")
	return forecast.HealthOnline
}

// Start polls once right away and then on the configured schedule until Stop
// is called or ctx ends.
func (m *Monitor) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.running {
		return nil
	}

	baseCtx, cancel := context.WithCancel(ctx)
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(m.cfg.Schedule, func() { m.scheduledPoll(baseCtx) }); err != nil {
		cancel()
		return fmt.Errorf("schedule health poll %q: %w", m.cfg.Schedule, err)
	}
	scheduler.Start()

	m.cron = scheduler
	m.cancel = cancel
	m.running = true
	m.logger.Info("health monitor started", "schedule", m.cfg.Schedule)

	polls := &sync.WaitGroup{}
	m.polls = polls
	polls.Add(1)
	go func() {
		defer polls.Done()
		m.Poll(baseCtx)
	}()
	return nil
}

// Stop halts the schedule and aborts in-flight polls. The returned context is
// done once every running poll has returned.
func (m *Monitor) Stop() context.Context {
	m.mu.Lock()
	defer m.mu.Unlock()

	done, finish := context.WithCancel(context.Background())
	if !m.running {
		finish()
		return done
	}

	m.cancel()
	cronDone := m.cron.Stop()
	m.running = false
	m.logger.Info("health monitor stopped")

	polls := m.polls
	go func() {
		<-cronDone.Done()
		polls.Wait()
		finish()
	}()
	return done
}

// scheduledPoll runs on cron goroutines; cron's stop context covers them.
func (m *Monitor) scheduledPoll(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	m.Poll(ctx)
}
