/*
Package metrics exposes Prometheus collectors for the recommendation service.

HTTP:
  - http_requests_total{method,route,status}
  - http_request_duration_seconds{method,route}

Recommendations:
  - recommendations_total{outcome}: outcome is results, empty or error
  - recommendation_duration_seconds
  - recommendation_cache_total{result}: hit or miss

Model:
  - model_labels, model_vocabulary_size, model_training_duration_seconds
*/
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5},
		},
		[]string{"method", "route"},
	)

	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendations_total",
			Help: "Recommendation requests by outcome",
		},
		[]string{"outcome"},
	)

	RecommendationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommendation_duration_seconds",
			Help:    "Time spent scoring and ranking one request",
			Buckets: []float64{.0005, .001, .005, .01, .05, .1, .5},
		},
	)

	RecommendationCache = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_cache_total",
			Help: "Recommendation cache lookups by result",
		},
		[]string{"result"},
	)

	ModelLabels = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "model_labels",
			Help: "Job titles the loaded model can recommend",
		},
	)

	ModelVocabularySize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "model_vocabulary_size",
			Help: "Terms in the fitted feature space",
		},
	)

	ModelTrainingDuration = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "model_training_duration_seconds",
			Help: "Wall time of the last model training",
		},
	)
)

const (
	OutcomeResults = "results"
	OutcomeEmpty   = "empty"
	OutcomeError   = "error"

	CacheHit  = "hit"
	CacheMiss = "miss"
)
