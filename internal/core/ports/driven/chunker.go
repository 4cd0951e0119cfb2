package driven

import (
	"context"

	"github.com/quarry-labs/passage/internal/core/domain"
)

// Chunker is one chunking strategy. Implementations are pure and
// synchronous: they operate only on their arguments and return a fresh
// slice, so independent calls may run concurrently.
//
// Chunk indices within the returned slice are contiguous from 0;
// TotalChunks and ContentHash are filled in by the orchestrator once
// the final batch is known.
type Chunker interface {
	// Name returns the strategy name for logging and configuration.
	Name() string

	// Chunk splits the extracted content into bounded chunks.
	// Empty input yields a nil slice and no error.
	Chunk(ctx context.Context, doc *domain.Document, content *domain.ExtractedContent, opts domain.ChunkingOptions) ([]domain.Chunk, error)
}
