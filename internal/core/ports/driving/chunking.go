package driving

import (
	"context"

	"github.com/quarry-labs/passage/internal/core/domain"
)

// ChunkResult is the outcome of one chunking call.
type ChunkResult struct {
	// Chunks is the final batch, sorted by ascending chunk index.
	Chunks []domain.Chunk

	// Analysis is the structure classification that drove selection.
	Analysis domain.StructureAnalysis

	// Strategy is the strategy that actually produced the chunks.
	// When a strategy fails this records the plain-text fallback,
	// not the strategy originally selected.
	Strategy domain.ChunkingStrategy

	// FellBack is true when the selected strategy failed and the
	// plain-text fallback produced the chunks instead.
	FellBack bool
}

// ChunkingService is the only entry point external collaborators call
// to turn extracted content into chunks.
type ChunkingService interface {
	// ChunkDocument analyzes the content, selects a strategy, and
	// produces the document's chunk batch. It never fails on
	// structure-detection problems; only a defect in the plain-text
	// fallback propagates as an error.
	ChunkDocument(ctx context.Context, doc *domain.Document, content *domain.ExtractedContent, opts domain.ChunkingOptions) (*ChunkResult, error)

	// Analyze returns the structure classification for raw text without
	// producing chunks.
	Analyze(text string, fileType string) domain.StructureAnalysis
}

// IngestResult is the outcome of ingesting one file end to end.
type IngestResult struct {
	// Document is the extracted document record.
	Document domain.Document

	// Chunks is the produced batch (nil when Unchanged).
	Chunks []domain.Chunk

	// Strategy is the chunking strategy that produced the batch.
	Strategy domain.ChunkingStrategy

	// Unchanged is true when the stored content hashes already match
	// and re-indexing was skipped.
	Unchanged bool
}

// IngestService runs the full extract → analyze → chunk → store
// pipeline for local files.
type IngestService interface {
	// IngestFile processes one file. When a chunk store is configured
	// the batch is persisted; identical content is skipped idempotently.
	IngestFile(ctx context.Context, path string, opts domain.ChunkingOptions) (*IngestResult, error)
}
