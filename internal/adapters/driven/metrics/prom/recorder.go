// Package prom records pipeline metrics with Prometheus.
package prom

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/custodia-labs/qadigest/internal/core/ports/driven"
)

const namespace = "qadigest"

// Ensure Recorder implements the interface.
var _ driven.MetricsRecorder = (*Recorder)(nil)

// Recorder implements driven.MetricsRecorder with Prometheus collectors.
type Recorder struct {
	// PipelineRuns counts pipeline runs.
	// Labels: result (ok, error)
	PipelineRuns *prometheus.CounterVec

	// PipelineDuration tracks end-to-end pipeline latency.
	PipelineDuration prometheus.Histogram

	// GuardrailViolations counts violations by code.
	// Labels: code (EMPTY_SUMMARY, LOW_CITATION_DENSITY, PII_DETECTED)
	GuardrailViolations *prometheus.CounterVec

	// Confidence tracks the distribution of summary confidence.
	Confidence prometheus.Histogram

	// StoreFailures counts swallowed durable-store failures.
	// Labels: op (save, get)
	StoreFailures *prometheus.CounterVec
}

// New registers the collectors with reg. A nil reg uses the default registerer.
func New(reg prometheus.Registerer) *Recorder {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Recorder{
		PipelineRuns: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "pipeline_runs_total",
				Help:      "Total number of summary pipeline runs",
			},
			[]string{"result"},
		),
		PipelineDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "pipeline_duration_seconds",
				Help:      "Duration of summary pipeline runs in seconds",
				Buckets:   prometheus.DefBuckets,
			},
		),
		GuardrailViolations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "guardrail_violations_total",
				Help:      "Total number of guardrail violations by code",
			},
			[]string{"code"},
		),
		Confidence: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "summary_confidence",
				Help:      "Confidence of persisted summaries",
				Buckets:   prometheus.LinearBuckets(0, 0.1, 10),
			},
		),
		StoreFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "store_failures_total",
				Help:      "Total number of durable summary store failures",
			},
			[]string{"op"},
		),
	}
}

// PipelineCompleted records one pipeline run.
func (r *Recorder) PipelineCompleted(result string, elapsed time.Duration) {
	r.PipelineRuns.WithLabelValues(result).Inc()
	r.PipelineDuration.Observe(elapsed.Seconds())
}

// SummaryScored records a summary's confidence.
func (r *Recorder) SummaryScored(confidence float64) {
	r.Confidence.Observe(confidence)
}

// GuardrailViolated records one violation.
func (r *Recorder) GuardrailViolated(code string) {
	r.GuardrailViolations.WithLabelValues(code).Inc()
}

// StoreFailed records a durable-store failure.
func (r *Recorder) StoreFailed(op string) {
	r.StoreFailures.WithLabelValues(op).Inc()
}
