package services

import (
	"context"
	"sync"
	"time"

	"github.com/custodia-labs/qadigest/internal/core/domain"
)

// --- Mock implementations ---

// mockConfigStore implements driven.ConfigStore for testing.
type mockConfigStore struct {
	values  map[string]any
	saved   int
	failOn  string
	saveErr error
}

func newMockConfigStore() *mockConfigStore {
	return &mockConfigStore{values: make(map[string]any)}
}

func (m *mockConfigStore) Get(key string) (any, bool) {
	v, ok := m.values[key]
	return v, ok
}

func (m *mockConfigStore) GetString(key string) string {
	if s, ok := m.values[key].(string); ok {
		return s
	}
	return ""
}

func (m *mockConfigStore) GetInt(key string) int {
	switch v := m.values[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}

func (m *mockConfigStore) GetFloat(key string) float64 {
	switch v := m.values[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	}
	return 0
}

func (m *mockConfigStore) GetBool(key string) bool {
	b, _ := m.values[key].(bool)
	return b
}

func (m *mockConfigStore) GetStringSlice(key string) []string {
	s, _ := m.values[key].([]string)
	return s
}

func (m *mockConfigStore) Set(key string, value any) error {
	if m.failOn != "" && key == m.failOn {
		return errMockSet
	}
	m.values[key] = value
	return nil
}

func (m *mockConfigStore) Save() error {
	m.saved++
	return m.saveErr
}

func (m *mockConfigStore) Load() error { return nil }

func (m *mockConfigStore) Path() string { return "/tmp/qadigest/config.toml" }

var errMockSet = &domain.ValidationError{Field: "mock", Message: "mock set failure"}

// failingSummaryStore implements driven.SummaryStore and fails every call.
type failingSummaryStore struct {
	err   error
	saves int
}

func (f *failingSummaryStore) Save(_ context.Context, _ *domain.SummaryRecord) error {
	f.saves++
	return f.err
}

func (f *failingSummaryStore) Get(_ context.Context, _ string) (*domain.SummaryRecord, error) {
	return nil, f.err
}

func (f *failingSummaryStore) Close() error { return nil }

// recordingMetrics implements driven.MetricsRecorder and keeps every call.
type recordingMetrics struct {
	mu         sync.Mutex
	runs       []string
	scores     []float64
	violations []string
	failures   []string
}

func (r *recordingMetrics) PipelineCompleted(result string, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runs = append(r.runs, result)
}

func (r *recordingMetrics) SummaryScored(confidence float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scores = append(r.scores, confidence)
}

func (r *recordingMetrics) GuardrailViolated(code string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.violations = append(r.violations, code)
}

func (r *recordingMetrics) StoreFailed(op string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures = append(r.failures, op)
}
