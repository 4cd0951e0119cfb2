package services

import (
	"context"
	"sort"
	"time"

	"github.com/quarry-labs/passage/internal/analysis"
	"github.com/quarry-labs/passage/internal/core/domain"
	"github.com/quarry-labs/passage/internal/core/ports/driven"
	"github.com/quarry-labs/passage/internal/core/ports/driving"
	"github.com/quarry-labs/passage/internal/logger"
	"github.com/quarry-labs/passage/internal/metadata"
)

// Ensure ChunkingService implements the interface.
var _ driving.ChunkingService = (*ChunkingService)(nil)

// TableSectionThreshold is the fraction of table-bearing sections above
// which a document is chunked with the table-heavy strategy.
const TableSectionThreshold = 0.3

// MinTitledSections is the number of titled sections a document needs
// before the structured strategy applies.
const MinTitledSections = 3

// ChunkingService selects a chunking strategy from analysed document
// structure and runs it, falling back to plain text on failure.
type ChunkingService struct {
	analyzer   *analysis.Analyzer
	structured driven.Chunker
	tables     driven.Chunker
	plain      driven.Chunker
	now        func() time.Time
}

// NewChunkingService creates a new chunking service.
// The three chunkers back the structured, table_only/table_heavy and
// plain_text strategies respectively.
func NewChunkingService(
	analyzer *analysis.Analyzer,
	structuredChunker driven.Chunker,
	tableChunker driven.Chunker,
	plainChunker driven.Chunker,
) *ChunkingService {
	return &ChunkingService{
		analyzer:   analyzer,
		structured: structuredChunker,
		tables:     tableChunker,
		plain:      plainChunker,
		now:        time.Now,
	}
}

// Analyze runs structure analysis on raw text without chunking it.
func (s *ChunkingService) Analyze(text, fileType string) domain.StructureAnalysis {
	return s.analyzer.Analyze(text, fileType)
}

// ChunkDocument chunks extracted content with an automatically selected
// strategy. The returned result records the strategy actually used and
// whether a fallback was taken.
func (s *ChunkingService) ChunkDocument(
	ctx context.Context,
	doc *domain.Document,
	content *domain.ExtractedContent,
	opts domain.ChunkingOptions,
) (*driving.ChunkResult, error) {
	opts = opts.Normalized()

	logger.Section("Document Chunking")
	logger.Debug("Document: %s (%s)", doc.ID, doc.FileType)

	result := &driving.ChunkResult{
		Chunks:   []domain.Chunk{},
		Strategy: domain.StrategyPlainText,
	}

	// Empty content chunks to nothing. Not an error.
	if content == nil || content.IsEmpty() {
		logger.Debug("Empty content, no chunks produced")
		result.Analysis = s.analyzer.Analyze("", doc.FileType)
		return result, nil
	}

	result.Analysis = s.analyzer.Analyze(analysisText(content), doc.FileType)

	strategy := s.selectStrategy(content)
	logger.Debug("Selected strategy: %s", strategy)

	chunks, err := s.runStrategy(ctx, strategy, doc, content, opts)
	if err != nil {
		// Any strategy failure degrades to plain text rather than
		// losing the document.
		logger.Debug("Strategy %s failed (%v), falling back to plain text", strategy, err)
		chunks, err = s.plain.Chunk(ctx, doc, content, opts)
		if err != nil {
			return nil, err
		}
		strategy = domain.StrategyPlainText
		result.FellBack = true
	}

	result.Strategy = strategy
	result.Chunks = s.finalize(doc, chunks, strategy)

	logger.Debug("Produced %d chunks", len(result.Chunks))
	return result, nil
}

// selectStrategy picks a chunking strategy from extracted structure.
// Checks run in priority order: spreadsheet sources are pure tables,
// table-dense documents get the table-heavy split, documents with
// enough titled sections are chunked hierarchically, and everything
// else is plain text.
func (s *ChunkingService) selectStrategy(content *domain.ExtractedContent) domain.ChunkingStrategy {
	if content.Structure.IsSpreadsheet {
		return domain.StrategyTableOnly
	}
	if content.TableSectionRatio() > TableSectionThreshold {
		return domain.StrategyTableHeavy
	}
	if content.TitledSectionCount() >= MinTitledSections {
		return domain.StrategyStructured
	}
	return domain.StrategyPlainText
}

func (s *ChunkingService) runStrategy(
	ctx context.Context,
	strategy domain.ChunkingStrategy,
	doc *domain.Document,
	content *domain.ExtractedContent,
	opts domain.ChunkingOptions,
) ([]domain.Chunk, error) {
	switch strategy {
	case domain.StrategyTableOnly:
		return s.tables.Chunk(ctx, doc, content, opts)
	case domain.StrategyTableHeavy:
		return s.chunkTableHeavy(ctx, doc, content, opts)
	case domain.StrategyStructured:
		return s.structured.Chunk(ctx, doc, content, opts)
	default:
		return s.plain.Chunk(ctx, doc, content, opts)
	}
}

// chunkTableHeavy routes table sections through the table chunker and
// the remaining sections through the plain text chunker, then merges
// the two lists back into page order.
func (s *ChunkingService) chunkTableHeavy(
	ctx context.Context,
	doc *domain.Document,
	content *domain.ExtractedContent,
	opts domain.ChunkingOptions,
) ([]domain.Chunk, error) {
	var tableSections, textSections []domain.Section
	for _, sec := range content.Sections {
		if sec.Table != nil {
			tableSections = append(tableSections, sec)
		} else {
			textSections = append(textSections, sec)
		}
	}

	tableContent := &domain.ExtractedContent{
		Sections:  tableSections,
		Structure: content.Structure,
	}
	tableChunks, err := s.tables.Chunk(ctx, doc, tableContent, opts)
	if err != nil {
		return nil, err
	}

	var textChunks []domain.Chunk
	if len(textSections) > 0 {
		textContent := &domain.ExtractedContent{
			Sections:  textSections,
			Structure: content.Structure,
		}
		textChunks, err = s.plain.Chunk(ctx, doc, textContent, opts)
		if err != nil {
			return nil, err
		}
	}

	merged := make([]domain.Chunk, 0, len(tableChunks)+len(textChunks))
	merged = append(merged, tableChunks...)
	merged = append(merged, textChunks...)

	// Stable sort keeps each list's internal order for equal pages.
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].PageNumber < merged[j].PageNumber
	})

	return merged, nil
}

// finalize assigns contiguous indices, deterministic IDs, totals,
// content hashes, timestamps and derived metadata. Chunker-assigned
// indices are overwritten so merged strategies stay contiguous.
func (s *ChunkingService) finalize(
	doc *domain.Document, chunks []domain.Chunk, strategy domain.ChunkingStrategy,
) []domain.Chunk {
	now := s.now().UTC()
	total := len(chunks)

	for i := range chunks {
		c := &chunks[i]
		c.DocumentID = doc.ID
		c.ChunkIndex = i
		c.TotalChunks = total
		c.ID = domain.ChunkID(doc.ID, i)
		c.ContentHash = domain.HashContent(c.Content)
		c.CreatedAt = now
		c.Keywords = metadata.Keywords(c.Content)
		c.References = metadata.References(c.Content)

		if c.Metadata == nil {
			c.Metadata = make(map[string]any)
		}
		c.Metadata["strategy"] = string(strategy)
		if doc.Title != "" {
			c.Metadata["document_title"] = doc.Title
		}
	}
	return chunks
}

// analysisText prefers the extractor's full text and reconstructs it
// from sections when the extractor only produced sections.
func analysisText(content *domain.ExtractedContent) string {
	if content.FullText != "" {
		return content.FullText
	}
	var b []byte
	for _, sec := range content.Sections {
		if sec.Title != "" {
			b = append(b, sec.Title...)
			b = append(b, '\n')
		}
		b = append(b, sec.Content...)
		b = append(b, '\n', '\n')
	}
	return string(b)
}
