// Package memory provides in-memory implementations of the storage
// ports for testing and for runs that don't need persistence.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/quarry-labs/passage/internal/core/domain"
	"github.com/quarry-labs/passage/internal/core/ports/driven"
)

// Ensure ChunkStore implements the interface.
var _ driven.ChunkStore = (*ChunkStore)(nil)

// ChunkStore is an in-memory implementation of driven.ChunkStore.
type ChunkStore struct {
	mu        sync.RWMutex
	documents map[string]domain.Document
	chunks    map[string][]domain.Chunk // documentID -> batch in index order
}

// NewChunkStore creates a new in-memory chunk store.
func NewChunkStore() *ChunkStore {
	return &ChunkStore{
		documents: make(map[string]domain.Document),
		chunks:    make(map[string][]domain.Chunk),
	}
}

// SaveDocument stores or updates a document.
func (s *ChunkStore) SaveDocument(ctx context.Context, doc *domain.Document) error {
	if doc == nil || doc.ID == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents[doc.ID] = *doc
	return nil
}

// SaveChunks atomically replaces the stored batch for the chunks'
// document. An empty slice is a no-op.
func (s *ChunkStore) SaveChunks(ctx context.Context, chunks []domain.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}
	documentID := chunks[0].DocumentID
	for _, c := range chunks {
		if c.DocumentID != documentID {
			return domain.ErrInvalidInput
		}
	}

	batch := make([]domain.Chunk, len(chunks))
	copy(batch, chunks)
	sort.SliceStable(batch, func(i, j int) bool {
		return batch[i].ChunkIndex < batch[j].ChunkIndex
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	s.chunks[documentID] = batch
	return nil
}

// GetDocument retrieves a document by ID.
func (s *ChunkStore) GetDocument(ctx context.Context, id string) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.documents[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &doc, nil
}

// GetChunks retrieves a document's chunks ordered by chunk index.
func (s *ChunkStore) GetChunks(ctx context.Context, documentID string) ([]domain.Chunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	batch, ok := s.chunks[documentID]
	if !ok {
		return []domain.Chunk{}, nil
	}
	out := make([]domain.Chunk, len(batch))
	copy(out, batch)
	return out, nil
}

// GetChunk retrieves a specific chunk by ID.
func (s *ChunkStore) GetChunk(ctx context.Context, id string) (*domain.Chunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, batch := range s.chunks {
		for _, c := range batch {
			if c.ID == id {
				chunk := c
				return &chunk, nil
			}
		}
	}
	return nil, domain.ErrNotFound
}

// ChunkHashes returns the stored content hashes in chunk index order.
func (s *ChunkStore) ChunkHashes(ctx context.Context, documentID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	batch := s.chunks[documentID]
	hashes := make([]string, len(batch))
	for i, c := range batch {
		hashes[i] = c.ContentHash
	}
	return hashes, nil
}

// DeleteDocument removes a document and its chunks.
func (s *ChunkStore) DeleteDocument(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.documents[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.documents, id)
	delete(s.chunks, id)
	return nil
}

// ListDocuments returns documents for a course, or all documents when
// courseID is empty. Results are sorted by title for stable output.
func (s *ChunkStore) ListDocuments(ctx context.Context, courseID string) ([]domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	docs := make([]domain.Document, 0, len(s.documents))
	for _, doc := range s.documents {
		if courseID != "" && doc.CourseID != courseID {
			continue
		}
		docs = append(docs, doc)
	}
	sort.Slice(docs, func(i, j int) bool {
		if docs[i].Title != docs[j].Title {
			return docs[i].Title < docs[j].Title
		}
		return docs[i].ID < docs[j].ID
	})
	return docs, nil
}
