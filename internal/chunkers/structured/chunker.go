// Package structured implements the hierarchy-aware chunking strategy.
// Flat extracted sections are reconstructed into an ancestor tree and
// each section is emitted with its full heading lineage; oversized
// section bodies are decomposed into typed content blocks that are
// kept whole or split according to the preservation options.
//
// Structure reconstruction is best-effort. Any failure degrades to
// whole-document plain-text chunking; the structured path never raises
// past the orchestrator.
package structured

import (
	"context"
	"strings"

	"github.com/quarry-labs/passage/internal/chunkers/table"
	"github.com/quarry-labs/passage/internal/chunkers/text"
	"github.com/quarry-labs/passage/internal/core/domain"
	"github.com/quarry-labs/passage/internal/core/ports/driven"
	"github.com/quarry-labs/passage/internal/logger"
)

// Ensure Chunker implements the interface.
var _ driven.Chunker = (*Chunker)(nil)

// Chunker is the structured strategy.
type Chunker struct {
	fallback *text.Chunker
}

// New creates a new structured chunker.
func New() *Chunker {
	return &Chunker{fallback: text.New()}
}

// Name returns the strategy name.
func (c *Chunker) Name() string {
	return string(domain.StrategyStructured)
}

// Chunk reconstructs the section hierarchy and emits chunks carrying
// each section's heading lineage. On any structural failure the whole
// document is re-chunked through the plain-text fallback instead; the
// transition is logged, never surfaced as an error.
func (c *Chunker) Chunk(ctx context.Context, doc *domain.Document, content *domain.ExtractedContent, opts domain.ChunkingOptions) ([]domain.Chunk, error) {
	if content.IsEmpty() {
		return nil, nil
	}
	opts = opts.Normalized()

	chunks, err := c.chunkHierarchy(doc, content, opts)
	if err != nil {
		logger.Debug("structured chunking failed (%v), falling back to plain text", err)
		return c.fallback.Chunk(ctx, doc, content, opts)
	}

	for i := range chunks {
		chunks[i].ChunkIndex = i
		chunks[i].ID = domain.ChunkID(doc.ID, i)
		chunks[i].TotalChunks = len(chunks)
	}
	return chunks, nil
}

// chunkHierarchy builds the tree and walks it, accumulating chunks in
// document order. Indices are assigned by the caller once the full
// batch is known, so no counter is threaded through the recursion.
func (c *Chunker) chunkHierarchy(doc *domain.Document, content *domain.ExtractedContent, opts domain.ChunkingOptions) ([]domain.Chunk, error) {
	roots, err := BuildHierarchy(content.Sections)
	if err != nil {
		return nil, err
	}

	var chunks []domain.Chunk
	for _, root := range roots {
		root.Walk(nil, func(node *domain.DocumentSection, ancestors []string) bool {
			chunks = append(chunks, c.emitSection(doc, node, ancestors, opts)...)
			return true
		})
	}
	return chunks, nil
}

// emitSection produces the chunks for one section node.
func (c *Chunker) emitSection(doc *domain.Document, node *domain.DocumentSection, ancestors []string, opts domain.ChunkingOptions) []domain.Chunk {
	var out []domain.Chunk

	emit := func(content string, chunkType domain.ChunkType) {
		content = strings.TrimSpace(content)
		if content == "" {
			return
		}
		out = append(out, domain.Chunk{
			DocumentID:       doc.ID,
			Content:          content,
			Type:             chunkType,
			Heading:          node.Heading,
			SectionHierarchy: copyStrings(ancestors),
			SectionNumber:    node.SectionNumber,
			HierarchyLevel:   node.Level,
			PageNumber:       node.PageNumber,
		})
	}

	if node.Table != nil {
		c.emitTable(node.Table, opts, emit)
	}

	body := strings.TrimSpace(node.Content)
	if body == "" {
		return out
	}

	if len(body) <= opts.MaxChunkSize {
		emit(body, domain.ChunkText)
		return out
	}

	for _, block := range ClassifyBlocks(body) {
		switch block.Type {
		case domain.ChunkTable:
			c.emitTable(&domain.TableData{Raw: block.Text}, opts, emit)
		case domain.ChunkProcedure:
			// Procedures are atomic: splitting a step sequence destroys
			// its meaning.
			emit(block.Text, domain.ChunkProcedure)
		case domain.ChunkCode:
			if opts.PreserveCode || len(block.Text) <= opts.MaxChunkSize {
				emit(block.Text, domain.ChunkCode)
				continue
			}
			for _, piece := range text.SplitText(block.Text, opts) {
				emit(piece, domain.ChunkCode)
			}
		case domain.ChunkList:
			// Item boundaries first in both modes. PreserveLists keeps
			// an oversized single item whole; without it the item goes
			// through the text cascade.
			for _, piece := range SplitListItems(block.Text, opts.MaxChunkSize) {
				if opts.PreserveLists || len(piece) <= opts.MaxChunkSize {
					emit(piece, domain.ChunkList)
					continue
				}
				for _, sub := range text.SplitText(piece, opts) {
					emit(sub, domain.ChunkList)
				}
			}
		default:
			for _, piece := range text.SplitText(block.Text, opts) {
				emit(piece, domain.ChunkText)
			}
		}
	}
	return out
}

// emitTable emits a section's table, whole when preservation is on,
// row-split with a replicated header otherwise.
func (c *Chunker) emitTable(t *domain.TableData, opts domain.ChunkingOptions, emit func(string, domain.ChunkType)) {
	if opts.PreserveTables {
		emit(table.Render(t), domain.ChunkTable)
		return
	}
	for _, part := range table.Split(t, opts.MaxChunkSize) {
		emit(part.Content, domain.ChunkTable)
	}
}

// copyStrings snapshots the ancestor chain so later tree mutation can
// never alias into an emitted chunk.
func copyStrings(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
