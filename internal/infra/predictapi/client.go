package predictapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/yanqian/shelter-console/internal/domain/forecast"
	apperrors "github.com/yanqian/shelter-console/pkg/errors"
)

const (
	defaultBaseURL = "http://localhost:8000"
	errorBodyLimit = 64 << 10
)

// Paths locates the three upstream endpoints relative to the base URL.
type Paths struct {
	Predict string
	Health  string
	Info    string
}

// DefaultPaths matches the prediction service's routes.
func DefaultPaths() Paths {
	return Paths{Predict: "/api/predict", Health: "/api/health", Info: "/api/info"}
}

// Client talks to the shelter demand prediction service. Deadlines come from
// the caller's context; the underlying http.Client has no timeout of its own.
type Client struct {
	baseURL    string
	paths      Paths
	httpClient *http.Client
}

// NewClient builds an API client.
func NewClient(baseURL string, paths Paths) *Client {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	defaults := DefaultPaths()
	if paths.Predict == "" {
		paths.Predict = defaults.Predict
	}
	if paths.Health == "" {
		paths.Health = defaults.Health
	}
	if paths.Info == "" {
		paths.Info = defaults.Info
	}
	return &Client{
		baseURL:    strings.TrimRight(trimmed, "/"),
		paths:      paths,
		httpClient: &http.Client{},
	}
}

// Predict posts a validated request. Failures are AppErrors coded
// request_error (wrapping *RequestError) or transport_error (wrapping
// *TransportError); their message is what the operator should see.
func (c *Client) Predict(ctx context.Context, req forecast.PredictionRequest) (forecast.PredictionResult, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return forecast.PredictionResult{}, fmt.Errorf("marshal prediction request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+c.paths.Predict, bytes.NewReader(body))
	if err != nil {
		return forecast.PredictionResult{}, fmt.Errorf("build prediction request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		terr := &TransportError{Err: err}
		return forecast.PredictionResult{}, apperrors.Wrap(forecast.CodeTransportError, terr.Reason(), terr)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
		rerr := &RequestError{Status: resp.StatusCode, Detail: parseDetail(payload)}
		message := rerr.Detail
		if message == "" {
			message = forecast.GenericFailureMessage
		}
		return forecast.PredictionResult{}, apperrors.Wrap(forecast.CodeRequestError, message, rerr)
	}

	result, err := decodeResult(resp.Body)
	if err != nil {
		rerr := &RequestError{Status: resp.StatusCode}
		return forecast.PredictionResult{}, apperrors.Wrap(forecast.CodeRequestError, forecast.GenericFailureMessage, fmt.Errorf("%w: %v", rerr, err))
	}
	return result, nil
}

// Health returns nil when the service answers 2xx. The body is ignored.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+c.paths.Health, nil)
	if err != nil {
		return fmt.Errorf("build health request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("health request failed: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, errorBodyLimit))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("health request error: status=%d", resp.StatusCode)
	}
	return nil
}

// Info fetches the sector catalog and input guidance.
func (c *Client) Info(ctx context.Context) (forecast.Catalog, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+c.paths.Info, nil)
	if err != nil {
		return forecast.Catalog{}, fmt.Errorf("build info request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return forecast.Catalog{}, fmt.Errorf("info request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return forecast.Catalog{}, fmt.Errorf("info request error: status=%d body=%s", resp.StatusCode, string(payload))
	}

	var catalog forecast.Catalog
	if err := json.NewDecoder(resp.Body).Decode(&catalog); err != nil {
		return forecast.Catalog{}, fmt.Errorf("decode info response: %w", err)
	}
	return catalog, nil
}

type resultWire struct {
	Date                   string   `json:"date"`
	Sector                 string   `json:"sector"`
	MinTempCelsius         *float64 `json:"min_temp_celsius"`
	PredictedShelterDemand *int     `json:"predicted_shelter_demand"`
}

func decodeResult(r io.Reader) (forecast.PredictionResult, error) {
	var wire resultWire
	if err := json.NewDecoder(r).Decode(&wire); err != nil {
		return forecast.PredictionResult{}, fmt.Errorf("decode prediction response: %w", err)
	}
	if wire.PredictedShelterDemand == nil {
		return forecast.PredictionResult{}, fmt.Errorf("prediction response missing predicted_shelter_demand")
	}
	if *wire.PredictedShelterDemand < 0 {
		return forecast.PredictionResult{}, fmt.Errorf("prediction response has negative demand %d", *wire.PredictedShelterDemand)
	}
	if wire.MinTempCelsius == nil {
		return forecast.PredictionResult{}, fmt.Errorf("prediction response missing min_temp_celsius")
	}
	return forecast.PredictionResult{
		Date:                   wire.Date,
		Sector:                 wire.Sector,
		MinTempCelsius:         *wire.MinTempCelsius,
		PredictedShelterDemand: *wire.PredictedShelterDemand,
	}, nil
}

// parseDetail pulls a string "detail" out of an error body. Anything else,
// including FastAPI's list-shaped validation details, yields "".
func parseDetail(payload []byte) string {
	var body struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(payload, &body); err != nil || len(body.Detail) == 0 {
		return ""
	}
	var detail string
	if err := json.Unmarshal(body.Detail, &detail); err != nil {
		return ""
	}
	return strings.TrimSpace(detail)
}
