package submission

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yanqian/shelter-console/internal/domain/forecast"
	apperrors "github.com/yanqian/shelter-console/pkg/errors"
	"github.com/yanqian/shelter-console/pkg/util"
)

const historySaveTimeout = 5 * time.Second

// Service owns the submit lifecycle.
type Service interface {
	// Submit validates the form, issues the prediction and drives the view
	// until the request resolves. It never leaves the view loading.
	Submit(ctx context.Context, in forecast.FormInput) Outcome
	// Cancel aborts the in-flight submission, if any, and clears loading.
	Cancel()
	// History lists recent issued submissions, newest first.
	History(ctx context.Context, limit int) ([]Record, error)
}

type service struct {
	cfg       Config
	predictor Predictor
	view      View
	history   HistoryRepository
	metrics   Metrics
	logger    *slog.Logger
	now       func() time.Time
	newID     func() string

	mu         sync.Mutex
	inFlight   bool
	generation uint64
	cancelReq  context.CancelFunc
}

// NewService is a wire provider for the submission domain.
func NewService(cfg Config, predictor Predictor, view View, history HistoryRepository, metrics Metrics, logger *slog.Logger) Service {
	return &service{
		cfg:       cfg,
		predictor: predictor,
		view:      view,
		history:   history,
		metrics:   metrics,
		logger:    logger.With("component", "submission.service"),
		now:       util.NowUTC,
		newID:     uuid.NewString,
	}
}

func (s *service) Submit(ctx context.Context, in forecast.FormInput) Outcome {
	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		s.logger.Info("submission rejected while another is in flight")
		s.metrics.ObserveSubmission(string(StatusRejected))
		return Outcome{Status: StatusRejected, Message: RejectedMessage}
	}
	req, err := forecast.Validate(in)
	if err != nil {
		s.mu.Unlock()
		message := apperrors.MessageOf(err)
		s.view.ShowError(message)
		s.metrics.ObserveSubmission(string(StatusInvalid))
		return Outcome{Status: StatusInvalid, Message: message, Err: err}
	}
	s.inFlight = true
	s.generation++
	gen := s.generation
	reqCtx, cancel := s.requestContext(ctx)
	s.cancelReq = cancel
	s.mu.Unlock()

	s.view.ClearError()
	s.view.ShowLoading()
	defer s.finish(gen, cancel)

	started := s.now()
	result, err := s.predictor.Predict(reqCtx, req)
	latency := s.now().Sub(started)
	s.metrics.ObservePrediction(latency)

	outcome := s.classify(result, err)
	applied := s.applyIfCurrent(gen, func() {
		if outcome.Status == StatusSucceeded {
			s.view.ShowResult(result)
			return
		}
		s.view.ShowError(outcome.Message)
	})
	if !applied {
		s.logger.Info("dropping superseded prediction response", "generation", gen)
		s.metrics.ObserveSubmission(string(StatusSuperseded))
		return Outcome{Status: StatusSuperseded, Err: err}
	}

	s.metrics.ObserveSubmission(string(outcome.Status))
	if outcome.Status == StatusSucceeded {
		s.logger.Info("prediction succeeded", "date", req.Date, "sector", req.Sector, "demand", result.PredictedShelterDemand, "latency_ms", latency.Milliseconds())
	} else {
		s.logger.Warn("prediction failed", "date", req.Date, "sector", req.Sector, "status", outcome.Status, "error", err, "latency_ms", latency.Milliseconds())
	}
	s.record(ctx, req, outcome, latency)
	return outcome
}

func (s *service) Cancel() {
	s.mu.Lock()
	if !s.inFlight {
		s.mu.Unlock()
		return
	}
	s.generation++
	cancel := s.cancelReq
	s.inFlight = false
	s.cancelReq = nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	s.view.ClearLoading()
	s.logger.Info("in-flight submission cancelled")
}

func (s *service) History(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 || (s.cfg.HistoryLimit > 0 && limit > s.cfg.HistoryLimit) {
		limit = s.cfg.HistoryLimit
	}
	if limit <= 0 {
		limit = 20
	}
	records, err := s.history.Recent(ctx, limit)
	if err != nil {
		return nil, apperrors.Wrap("history_error", "failed to load submission history", err)
	}
	return records, nil
}

// requestContext detaches from the caller so a dropped HTTP client cannot
// abort a submission every viewer is watching. Only Cancel and the
// configured timeout end it.
func (s *service) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	detached := context.WithoutCancel(ctx)
	if s.cfg.PredictTimeout > 0 {
		return context.WithTimeout(detached, s.cfg.PredictTimeout)
	}
	return context.WithCancel(detached)
}

// finish runs on every path out of Submit, panics included.
func (s *service) finish(gen uint64, cancel context.CancelFunc) {
	cancel()
	s.mu.Lock()
	current := gen == s.generation
	if current {
		s.inFlight = false
		s.cancelReq = nil
	}
	s.mu.Unlock()
	if current {
		s.view.ClearLoading()
	}
}

func (s *service) applyIfCurrent(gen uint64, apply func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		return false
	}
	apply()
	return true
}

func (s *service) classify(result forecast.PredictionResult, err error) Outcome {
	if err == nil {
		res := result
		return Outcome{Status: StatusSucceeded, Result: &res}
	}
	status := StatusRequestFailed
	if apperrors.IsCode(err, forecast.CodeTransportError) {
		status = StatusTransportFailed
	}
	message := apperrors.MessageOf(err)
	if apperrors.CodeOf(err) == "" || message == "" {
		message = forecast.GenericFailureMessage
	}
	return Outcome{Status: status, Message: message, Err: err}
}

func (s *service) record(ctx context.Context, req forecast.PredictionRequest, outcome Outcome, latency time.Duration) {
	if s.history == nil {
		return
	}
	rec := Record{
		ID:          s.newID(),
		SubmittedAt: s.now().UTC(),
		Request:     req,
		Outcome:     outcome.Status,
		Message:     outcome.Message,
		LatencyMs:   latency.Milliseconds(),
	}
	if outcome.Result != nil {
		demand := outcome.Result.PredictedShelterDemand
		rec.Demand = &demand
	}
	saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), historySaveTimeout)
	defer cancel()
	if err := s.history.Save(saveCtx, rec); err != nil {
		s.logger.Error("failed to save submission history", "id", rec.ID, "error", err)
	}
}
