package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/quarry-labs/passage/internal/core/domain"
	"github.com/quarry-labs/passage/internal/core/ports/driven"
	"github.com/quarry-labs/passage/internal/core/ports/driving"
	"github.com/quarry-labs/passage/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// IngestService runs the extract, chunk and persist pipeline for
// local files.
type IngestService struct {
	extractors driven.ExtractorRegistry
	chunking   driving.ChunkingService
	store      driven.ChunkStore
}

// NewIngestService creates a new ingest service.
// The store parameter is optional (can be nil); without it results are
// returned but never persisted.
func NewIngestService(
	extractors driven.ExtractorRegistry,
	chunking driving.ChunkingService,
	store driven.ChunkStore,
) *IngestService {
	return &IngestService{
		extractors: extractors,
		chunking:   chunking,
		store:      store,
	}
}

// IngestFile extracts, chunks and stores one file.
// Re-ingesting a file whose chunk hashes are unchanged is a no-op.
func (s *IngestService) IngestFile(
	ctx context.Context, path string, opts domain.ChunkingOptions,
) (*driving.IngestResult, error) {
	logger.Section("File Ingestion")
	logger.Debug("Path: %s", path)

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	fileType := strings.ToLower(strings.TrimPrefix(filepath.Ext(absPath), "."))
	extractor, err := s.extractors.ForFile(fileType)
	if err != nil {
		return nil, fmt.Errorf("selecting extractor: %w", err)
	}

	raw := &domain.RawDocument{
		URI:      absPath,
		FileType: fileType,
		Content:  data,
	}
	extracted, err := extractor.Extract(ctx, raw)
	if err != nil {
		return nil, fmt.Errorf("extracting %s: %w", filepath.Base(absPath), err)
	}

	doc := extracted.Document
	doc.Status = domain.StatusProcessing

	chunkResult, err := s.chunking.ChunkDocument(ctx, &doc, &extracted.Content, opts)
	if err != nil {
		doc.Status = domain.StatusError
		if s.store != nil {
			_ = s.store.SaveDocument(ctx, &doc)
		}
		return nil, fmt.Errorf("chunking %s: %w", filepath.Base(absPath), err)
	}

	result := &driving.IngestResult{
		Document: doc,
		Chunks:   chunkResult.Chunks,
		Strategy: chunkResult.Strategy,
	}

	if s.store == nil {
		result.Document.Status = domain.StatusComplete
		return result, nil
	}

	// Skip persistence when the stored batch already matches.
	if unchanged, err := s.isUnchanged(ctx, doc.ID, chunkResult.Chunks); err == nil && unchanged {
		logger.Debug("Content unchanged, skipping re-index")
		result.Unchanged = true
		result.Chunks = nil
		result.Document.Status = domain.StatusComplete
		return result, nil
	}

	doc.Status = domain.StatusComplete
	doc.UpdatedAt = time.Now().UTC()
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = doc.UpdatedAt
	}

	if err := s.store.SaveDocument(ctx, &doc); err != nil {
		return nil, fmt.Errorf("saving document: %w", err)
	}
	if err := s.store.SaveChunks(ctx, chunkResult.Chunks); err != nil {
		return nil, fmt.Errorf("saving chunks: %w", err)
	}

	result.Document = doc
	logger.Debug("Stored %d chunks for %s", len(chunkResult.Chunks), doc.ID)
	return result, nil
}

// isUnchanged compares the new batch's content hashes against the
// stored ones, position by position.
func (s *IngestService) isUnchanged(
	ctx context.Context, documentID string, chunks []domain.Chunk,
) (bool, error) {
	stored, err := s.store.ChunkHashes(ctx, documentID)
	if err != nil {
		return false, err
	}
	if len(stored) == 0 || len(stored) != len(chunks) {
		return false, nil
	}
	for i, c := range chunks {
		if stored[i] != c.ContentHash {
			return false, nil
		}
	}
	return true, nil
}
