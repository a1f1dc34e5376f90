package prom

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gathered returns metric families by name.
func gathered(t *testing.T, reg *prometheus.Registry) map[string]float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)

	out := make(map[string]float64)
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			key := mf.GetName()
			for _, lp := range m.GetLabel() {
				key += "|" + lp.GetValue()
			}
			switch {
			case m.GetCounter() != nil:
				out[key] = m.GetCounter().GetValue()
			case m.GetHistogram() != nil:
				out[key] = float64(m.GetHistogram().GetSampleCount())
			}
		}
	}
	return out
}

func TestRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := New(reg)

	r.PipelineCompleted("ok", 20*time.Millisecond)
	r.PipelineCompleted("ok", 30*time.Millisecond)
	r.PipelineCompleted("error", time.Millisecond)
	r.SummaryScored(0.65)
	r.GuardrailViolated("PII_DETECTED")
	r.StoreFailed("save")

	got := gathered(t, reg)
	assert.Equal(t, 2.0, got["qadigest_pipeline_runs_total|ok"])
	assert.Equal(t, 1.0, got["qadigest_pipeline_runs_total|error"])
	assert.Equal(t, 3.0, got["qadigest_pipeline_duration_seconds"])
	assert.Equal(t, 1.0, got["qadigest_summary_confidence"])
	assert.Equal(t, 1.0, got["qadigest_guardrail_violations_total|PII_DETECTED"])
	assert.Equal(t, 1.0, got["qadigest_store_failures_total|save"])
}

func TestNew_SeparateRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		New(prometheus.NewRegistry())
		New(prometheus.NewRegistry())
	})
}
