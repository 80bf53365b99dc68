package submission

import (
	"context"
	"time"

	"github.com/yanqian/shelter-console/internal/domain/forecast"
)

// HistoryRepository persists issued submissions.
type HistoryRepository interface {
	Save(ctx context.Context, record Record) error
	Recent(ctx context.Context, limit int) ([]Record, error)
}

// Predictor issues prediction requests.
type Predictor interface {
	Predict(ctx context.Context, req forecast.PredictionRequest) (forecast.PredictionResult, error)
}

// View is the subset of the view state the controller drives.
type View interface {
	ShowLoading()
	ClearLoading()
	ShowResult(forecast.PredictionResult)
	ShowError(message string)
	ClearError()
}

// Metrics receives submission counters.
type Metrics interface {
	ObserveSubmission(outcome string)
	ObservePrediction(d time.Duration)
}
