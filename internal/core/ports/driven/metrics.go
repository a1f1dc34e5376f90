package driven

import "time"

// MetricsRecorder receives pipeline measurements.
// Implementations must be safe for concurrent use.
type MetricsRecorder interface {
	// PipelineCompleted records one pipeline run. result is "ok" or "error".
	PipelineCompleted(result string, elapsed time.Duration)

	// SummaryScored records the confidence of a persisted summary.
	SummaryScored(confidence float64)

	// GuardrailViolated records one guardrail violation.
	GuardrailViolated(code string)

	// StoreFailed records a swallowed durable-store failure. op is "save", "get" or "open".
	StoreFailed(op string)
}

// NopMetrics discards all measurements.
type NopMetrics struct{}

func (NopMetrics) PipelineCompleted(string, time.Duration) {}
func (NopMetrics) SummaryScored(float64)                   {}
func (NopMetrics) GuardrailViolated(string)                {}
func (NopMetrics) StoreFailed(string)                      {}
