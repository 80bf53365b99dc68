package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder counts submission outcomes and health poll results.
type Recorder struct {
	registry    *prometheus.Registry
	submissions *prometheus.CounterVec
	latency     prometheus.Histogram
	healthPolls *prometheus.CounterVec
}

// NewRecorder registers the console collectors on a private registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "shelter_console",
			Name:      "submissions_total",
			Help:      "Form submissions by outcome.",
		}, []string{"outcome"}),
		latency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "shelter_console",
			Name:      "prediction_request_seconds",
			Help:      "Latency of prediction requests that reached the network.",
			Buckets:   prometheus.DefBuckets,
		}),
		healthPolls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "shelter_console",
			Name:      "health_polls_total",
			Help:      "Health polls by resulting status.",
		}, []string{"status"}),
	}
	r.registry.MustRegister(r.submissions, r.latency, r.healthPolls)
	return r
}

// ObserveSubmission counts one submission outcome.
func (r *Recorder) ObserveSubmission(outcome string) {
	if r == nil {
		return
	}
	r.submissions.WithLabelValues(outcome).Inc()
}

// ObservePrediction records how long a prediction round trip took.
func (r *Recorder) ObservePrediction(d time.Duration) {
	if r == nil {
		return
	}
	r.latency.Observe(d.Seconds())
}

// ObserveHealth counts one completed poll.
func (r *Recorder) ObserveHealth(status string) {
	if r == nil {
		return
	}
	r.healthPolls.WithLabelValues(status).Inc()
}

// Handler exposes the registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Gatherer is used by tests to inspect collected values.
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}
