package postprocessors

import (
	"fmt"

	"github.com/custodia-labs/qadigest/internal/core/domain"
	"github.com/custodia-labs/qadigest/internal/core/ports/driven"
)

// Factory builds a fresh processor pipeline per request from a registry.
// It implements the PostProcessorFactory interface.
type Factory struct {
	registry *Registry
	names    []string
	defaults domain.ChunkConfig
}

// Verify interface compliance.
var _ driven.PostProcessorFactory = (*Factory)(nil)

// NewFactory creates a factory that chains the named processors in order.
// defaults fill any chunk config field a request leaves at zero.
func NewFactory(registry *Registry, defaults domain.ChunkConfig, names ...string) *Factory {
	if len(names) == 0 {
		names = []string{StageChunker}
	}
	return &Factory{
		registry: registry,
		names:    names,
		defaults: defaults,
	}
}

// NewDefaultFactory creates a factory with the built-in processors registered.
func NewDefaultFactory(defaults domain.ChunkConfig) *Factory {
	r := NewRegistry()
	RegisterDefaults(r)
	return NewFactory(r, defaults)
}

// Resolve merges a request's chunk config with the factory defaults and clamps it.
func (f *Factory) Resolve(cfg domain.ChunkConfig) domain.ChunkConfig {
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = f.defaults.ChunkSize
	}
	if cfg.ChunkOverlap <= 0 {
		cfg.ChunkOverlap = f.defaults.ChunkOverlap
	}
	return cfg.Normalised()
}

// Build creates the pipeline for the given chunk config.
func (f *Factory) Build(cfg domain.ChunkConfig) (driven.PostProcessorPipeline, error) {
	resolved := f.Resolve(cfg)

	pipeline := NewPipeline()
	for _, name := range f.names {
		stage, err := f.registry.Build(name, resolved)
		if err != nil {
			return nil, fmt.Errorf("build pipeline: %w", err)
		}
		pipeline.Then(stage)
	}
	return pipeline, nil
}
