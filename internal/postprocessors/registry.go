package postprocessors

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/custodia-labs/qadigest/internal/core/domain"
	"github.com/custodia-labs/qadigest/internal/core/ports/driven"
)

// BuilderFunc creates a stage for an already resolved chunk config.
type BuilderFunc func(cfg domain.ChunkConfig) (driven.PostProcessor, error)

// Registry maps stage names to builders. It is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	builders map[string]BuilderFunc
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{builders: make(map[string]BuilderFunc)}
}

// Register adds a builder under name.
// Names are case-insensitive and may only be registered once.
func (r *Registry) Register(name string, builder BuilderFunc) error {
	key := registryKey(name)
	if key == "" {
		return fmt.Errorf("%w: empty stage name", domain.ErrInvalidInput)
	}
	if builder == nil {
		return fmt.Errorf("%w: nil builder for stage %q", domain.ErrInvalidInput, key)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.builders[key]; dup {
		return fmt.Errorf("%w: stage %q already registered", domain.ErrInvalidInput, key)
	}
	r.builders[key] = builder
	return nil
}

// MustRegister is Register that panics on error. Use it for built-in stages.
func (r *Registry) MustRegister(name string, builder BuilderFunc) {
	if err := r.Register(name, builder); err != nil {
		panic(err)
	}
}

// Build creates the named stage for cfg.
func (r *Registry) Build(name string, cfg domain.ChunkConfig) (driven.PostProcessor, error) {
	key := registryKey(name)

	r.mu.RLock()
	builder, ok := r.builders[key]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: stage %q", domain.ErrUnsupportedType, name)
	}

	stage, err := builder(cfg)
	if err != nil {
		return nil, fmt.Errorf("stage %q: %w", key, err)
	}
	return stage, nil
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.builders[registryKey(name)]
	return ok
}

// Names returns the registered stage names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.builders))
	for name := range r.builders {
		names = append(names, name)
	}
	r.mu.RUnlock()
	sort.Strings(names)
	return names
}

func registryKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
