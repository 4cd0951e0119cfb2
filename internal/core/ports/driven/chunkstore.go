package driven

import (
	"context"

	"github.com/quarry-labs/passage/internal/core/domain"
)

// ChunkStore persists documents and their chunk batches.
// Backed by SQLite for metadata storage.
type ChunkStore interface {
	// SaveDocument stores or updates a document.
	SaveDocument(ctx context.Context, doc *domain.Document) error

	// SaveChunks atomically replaces the stored batch for the chunks'
	// document. Re-chunking therefore never leaves a mixed batch behind.
	SaveChunks(ctx context.Context, chunks []domain.Chunk) error

	// GetDocument retrieves a document by ID.
	GetDocument(ctx context.Context, id string) (*domain.Document, error)

	// GetChunks retrieves a document's chunks ordered by chunk index.
	GetChunks(ctx context.Context, documentID string) ([]domain.Chunk, error)

	// GetChunk retrieves a specific chunk by ID.
	GetChunk(ctx context.Context, id string) (*domain.Chunk, error)

	// ChunkHashes returns the stored content hashes for a document in
	// chunk index order. Used to detect unchanged content before
	// re-indexing.
	ChunkHashes(ctx context.Context, documentID string) ([]string, error)

	// DeleteDocument removes a document and its chunks.
	DeleteDocument(ctx context.Context, id string) error

	// ListDocuments returns documents for a course, or all documents
	// when courseID is empty.
	ListDocuments(ctx context.Context, courseID string) ([]domain.Document, error)
}
