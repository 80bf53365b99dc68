package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRecorderExposesCounters(t *testing.T) {
	rec := NewRecorder()
	rec.ObserveSubmission("succeeded")
	rec.ObserveSubmission("succeeded")
	rec.ObserveSubmission("invalid")
	rec.ObservePrediction(120 * time.Millisecond)
	rec.ObserveHealth("online")

	w := httptest.NewRecorder()
	rec.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	require.Contains(t, body, `shelter_console_submissions_total{outcome="succeeded"} 2`)
	require.Contains(t, body, `shelter_console_submissions_total{outcome="invalid"} 1`)
	require.Contains(t, body, `shelter_console_health_polls_total{status="online"} 1`)
	require.True(t, strings.Contains(body, "shelter_console_prediction_request_seconds_count 1"))
}

func TestNilRecorderIsSafe(t *testing.T) {
	var rec *Recorder
	rec.ObserveSubmission("succeeded")
	rec.ObserveHealth("offline")
	rec.ObservePrediction(time.Second)
}
