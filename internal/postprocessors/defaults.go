package postprocessors

import (
	"github.com/custodia-labs/qadigest/internal/core/domain"
	"github.com/custodia-labs/qadigest/internal/core/ports/driven"
	"github.com/custodia-labs/qadigest/internal/postprocessors/chunker"
)

// StageChunker is the name of the built-in token chunker.
const StageChunker = "chunker"

// RegisterDefaults registers the built-in stages.
func RegisterDefaults(r *Registry) {
	r.MustRegister(StageChunker, buildChunker)
}

func buildChunker(cfg domain.ChunkConfig) (driven.PostProcessor, error) {
	return chunker.New(chunker.WithConfig(cfg)), nil
}
