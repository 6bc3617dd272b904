// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PredictionRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_prediction_requests_total",
			Help: "Total number of prediction requests handled",
		},
		[]string{"status"},
	)

	PredictionFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_prediction_failures_total",
			Help: "Total number of prediction requests that failed",
		},
		[]string{"error_code"},
	)

	PredictionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "gateway_prediction_duration_seconds",
			Help: "End to end duration of prediction requests in seconds",
		},
		[]string{"status"},
	)

	UpstreamDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "gateway_upstream_duration_seconds",
			Help: "Duration of calls to the model-serving endpoint in seconds",
		},
	)
)
