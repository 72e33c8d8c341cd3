package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/Skufu/GoSymptom/internal/analysis"
)

var (
	AnalysesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "symptom_analyses_total",
			Help: "Total number of symptom analyses by resulting risk tier",
		},
		[]string{"endpoint", "tier"},
	)

	AnalysisDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "symptom_analysis_duration_seconds",
			Help:    "Duration of symptom analysis in seconds",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .05},
		},
		[]string{"endpoint"},
	)

	DetectedSymptoms = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "symptom_detected_count",
			Help:    "Number of symptoms detected per analysis",
			Buckets: prometheus.LinearBuckets(0, 1, 10),
		},
	)

	LLMRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "llm_requests_total",
			Help: "Text generation requests by outcome (ok, fallback, skipped)",
		},
		[]string{"outcome"},
	)
)

// ObserveAnalysis records one pipeline run served by endpoint.
func ObserveAnalysis(endpoint string, res analysis.Result, elapsed time.Duration) {
	AnalysesTotal.WithLabelValues(endpoint, string(res.Risk.Tier)).Inc()
	AnalysisDuration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
	DetectedSymptoms.Observe(float64(len(res.DetectedSymptoms)))
}
