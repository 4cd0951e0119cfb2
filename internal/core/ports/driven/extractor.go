package driven

import (
	"context"

	"github.com/quarry-labs/passage/internal/core/domain"
)

// Extractor produces structured content from raw file bytes.
// Each extractor handles specific file extensions (e.g., md, csv).
// Binary-format parsing beyond these simple wrappers is an external
// concern; extractors here are deliberately thin.
type Extractor interface {
	// SupportedExtensions returns the lowercased extensions (without
	// the dot) this extractor handles.
	SupportedExtensions() []string

	// Priority returns the selection priority (higher = preferred).
	// Format-specific extractors should return 50-89.
	// Fallback extractors should return 1-9.
	Priority() int

	// Extract transforms raw bytes into a document and its extracted
	// content. The returned content is treated as an immutable snapshot.
	Extract(ctx context.Context, raw *domain.RawDocument) (*ExtractResult, error)
}

// ExtractResult contains the output of extraction.
type ExtractResult struct {
	// Document carries identity and provenance for the source file.
	Document domain.Document

	// Content is the flat text, sections, and structure flags.
	Content domain.ExtractedContent
}

// ExtractorRegistry selects an extractor for a raw document.
type ExtractorRegistry interface {
	// Register adds an extractor to the registry.
	Register(e Extractor)

	// ForFile returns the highest-priority extractor supporting the
	// file's extension, or the fallback when none matches.
	ForFile(fileType string) (Extractor, error)
}
