// Package postprocessors turns a normalised document into indexed-ready chunks.
package postprocessors

import (
	"context"
	"fmt"

	"github.com/custodia-labs/qadigest/internal/core/domain"
	"github.com/custodia-labs/qadigest/internal/core/ports/driven"
)

// Pipeline runs chunking stages in order over one document.
// A fresh pipeline is built per request, so it holds no shared state.
type Pipeline struct {
	stages []driven.PostProcessor
}

var _ driven.PostProcessorPipeline = (*Pipeline)(nil)

// NewPipeline returns a pipeline running stages in the given order.
func NewPipeline(stages ...driven.PostProcessor) *Pipeline {
	p := &Pipeline{}
	for _, s := range stages {
		p.Then(s)
	}
	return p
}

// Then appends a stage and returns the pipeline. Nil stages are ignored.
func (p *Pipeline) Then(stage driven.PostProcessor) *Pipeline {
	if stage != nil {
		p.stages = append(p.stages, stage)
	}
	return p
}

// Stages returns the stage names in execution order.
func (p *Pipeline) Stages() []string {
	names := make([]string, len(p.stages))
	for i, s := range p.stages {
		names[i] = s.Name()
	}
	return names
}

// Process feeds the document through every stage.
// The first stage sees nil chunks; later stages see the previous stage's output.
// Cancellation is checked before each stage.
func (p *Pipeline) Process(ctx context.Context, doc *domain.Document) ([]domain.Chunk, error) {
	if doc == nil {
		return nil, fmt.Errorf("%w: nil document", domain.ErrInvalidInput)
	}

	var chunks []domain.Chunk
	for i, stage := range p.stages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out, err := stage.Process(ctx, doc, chunks)
		if err != nil {
			return nil, fmt.Errorf("stage %d (%s): %w", i, stage.Name(), err)
		}
		chunks = out
	}
	return chunks, nil
}
