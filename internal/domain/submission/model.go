package submission

import (
	"time"

	"github.com/yanqian/shelter-console/internal/domain/forecast"
)

// Config wires runtime settings for the submission flow.
type Config struct {
	// PredictTimeout bounds one prediction round trip. Zero disables it.
	PredictTimeout time.Duration
	HistoryLimit   int
}

// Status classifies how a submission ended.
type Status string

const (
	StatusSucceeded       Status = "succeeded"
	StatusRequestFailed   Status = "request_failed"
	StatusTransportFailed Status = "transport_failed"
	StatusInvalid         Status = "invalid"
	StatusRejected        Status = "rejected"
	StatusSuperseded      Status = "superseded"
)

// Outcome is returned to the surface that triggered the submission.
type Outcome struct {
	Status  Status                     `json:"status"`
	Result  *forecast.PredictionResult `json:"result,omitempty"`
	Message string                     `json:"message,omitempty"`
	Err     error                      `json:"-"`
}

// Record is one request that reached the network, as kept in history.
type Record struct {
	ID          string                     `json:"id"`
	SubmittedAt time.Time                  `json:"submittedAt"`
	Request     forecast.PredictionRequest `json:"request"`
	Outcome     Status                     `json:"outcome"`
	Demand      *int                       `json:"demand,omitempty"`
	Message     string                     `json:"message,omitempty"`
	LatencyMs   int64                      `json:"latencyMs"`
}

// RejectedMessage explains why a submission was ignored.
const RejectedMessage = "a prediction is already in progress"
