// Package table implements the tabular chunking strategy. Tables are
// split only at row boundaries and the recognised header row is
// replicated into every continuation chunk, so no data row is ever
// separated from an interpretable header.
package table

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/quarry-labs/passage/internal/core/domain"
	"github.com/quarry-labs/passage/internal/core/ports/driven"
)

// Ensure Chunker implements the interface.
var _ driven.Chunker = (*Chunker)(nil)

var (
	separatorRowPattern = regexp.MustCompile(`^[\s|:+=-]+$`)
	captionPattern      = regexp.MustCompile(`(?i)^table\s*\d*\s*[:.-]?\s*(.*)$`)
)

// headerVocabulary are cell values that strongly suggest a header row.
var headerVocabulary = map[string]struct{}{
	"name": {}, "id": {}, "no": {}, "number": {}, "date": {}, "type": {},
	"description": {}, "value": {}, "qty": {}, "quantity": {}, "amount": {},
	"total": {}, "status": {}, "item": {}, "part": {}, "model": {},
	"serial": {}, "unit": {}, "code": {}, "category": {}, "notes": {},
}

// Chunker is the tabular strategy. It processes only sections carrying
// a detected table; non-tabular residue is the caller's concern.
type Chunker struct{}

// New creates a new table chunker.
func New() *Chunker {
	return &Chunker{}
}

// Name returns the strategy name.
func (c *Chunker) Name() string {
	return string(domain.StrategyTableOnly)
}

// Chunk emits table chunks for every table-bearing section.
func (c *Chunker) Chunk(_ context.Context, doc *domain.Document, content *domain.ExtractedContent, opts domain.ChunkingOptions) ([]domain.Chunk, error) {
	if content.IsEmpty() {
		return nil, nil
	}
	opts = opts.Normalized()

	var chunks []domain.Chunk
	for _, section := range content.Sections {
		if section.Table == nil {
			continue
		}
		for _, part := range Split(section.Table, opts.MaxChunkSize) {
			chunk := domain.Chunk{
				DocumentID: doc.ID,
				Content:    part.Content,
				ChunkIndex: len(chunks),
				Type:       domain.ChunkTable,
				Heading:    part.Heading,
				PageNumber: section.PageNumber,
			}
			if chunk.Heading == "" {
				chunk.Heading = section.Title
			}
			chunk.ID = domain.ChunkID(doc.ID, chunk.ChunkIndex)
			chunks = append(chunks, chunk)
		}
	}

	for i := range chunks {
		chunks[i].TotalChunks = len(chunks)
	}
	return chunks, nil
}

// Part is one emitted slice of a table.
type Part struct {
	// Content is the serialised rows, header first when one exists.
	Content string

	// Heading is the synthesised caption, with a "Part N" suffix on
	// continuations.
	Heading string
}

// Split divides a table into parts of at most maxSize characters.
// The header row, when recognised, is repeated at the top of every
// part. A single row that alone exceeds the bound is emitted as one
// oversized part rather than fragmented further: a lone row cannot be
// meaningfully split.
func Split(t *domain.TableData, maxSize int) []Part {
	rows := t.Rows
	if len(rows) == 0 {
		rows = ParseRows(t.Raw)
	}
	caption := tableCaption(t)

	if len(rows) == 0 {
		// Malformed table content: emit it as a single opaque part
		// rather than losing it.
		raw := strings.TrimSpace(t.Raw)
		if raw == "" {
			return nil
		}
		return []Part{{Content: raw, Heading: caption}}
	}

	var header []string
	dataRows := rows
	if HasHeaderRow(rows) {
		header = rows[0]
		dataRows = rows[1:]
	}

	var groups [][][]string
	var current [][]string

	for _, row := range dataRows {
		candidate := append(current, row)
		if len(current) > 0 && len(serialiseRows(header, candidate)) > maxSize {
			groups = append(groups, current)
			current = [][]string{row}
			continue
		}
		current = candidate
	}
	if len(current) > 0 || len(groups) == 0 {
		groups = append(groups, current)
	}

	parts := make([]Part, 0, len(groups))
	for i, group := range groups {
		heading := caption
		if i > 0 && heading != "" {
			heading = fmt.Sprintf("%s (Part %d)", caption, i+1)
		}
		parts = append(parts, Part{
			Content: serialiseRows(header, group),
			Heading: heading,
		})
	}
	return parts
}

// Render serialises a full table, all rows in pipe form, without
// splitting. Falls back to the raw text when no grid is available.
func Render(t *domain.TableData) string {
	if len(t.Rows) > 0 {
		return serialiseRows(nil, t.Rows)
	}
	return strings.TrimSpace(t.Raw)
}

// ParseRows parses a table's raw textual form into a cell grid.
// Markdown pipes, ASCII box-art, and tab-separated layouts are
// recognised; separator-only rows are dropped.
func ParseRows(raw string) [][]string {
	var rows [][]string
	for _, line := range strings.Split(raw, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || separatorRowPattern.MatchString(trimmed) {
			continue
		}

		var cells []string
		switch {
		case strings.Contains(trimmed, "|"):
			cells = splitPipeRow(trimmed)
		case strings.Contains(trimmed, "\t"):
			cells = strings.Split(trimmed, "\t")
		default:
			continue
		}

		cleaned := make([]string, 0, len(cells))
		for _, cell := range cells {
			cleaned = append(cleaned, strings.TrimSpace(cell))
		}
		if len(cleaned) > 0 {
			rows = append(rows, cleaned)
		}
	}
	return rows
}

// splitPipeRow splits a pipe-delimited row, tolerating both "|a|b|"
// and "a | b" layouts.
func splitPipeRow(line string) []string {
	line = strings.Trim(line, "|")
	return strings.Split(line, "|")
}

// HasHeaderRow applies the header heuristic: the first row is treated
// as a header when it is non-numeric while the next row is numeric,
// when its cells are markedly shorter than the data row average, or
// when its cells match common header vocabulary.
func HasHeaderRow(rows [][]string) bool {
	if len(rows) < 2 {
		return false
	}
	first, second := rows[0], rows[1]

	if numericCells(first) == 0 && numericCells(second) > 0 {
		return true
	}

	if avg := averageCellLength(second); avg > 0 && averageCellLength(first) < 0.6*avg {
		return true
	}

	vocabulary := 0
	for _, cell := range first {
		if _, ok := headerVocabulary[strings.ToLower(strings.TrimSpace(cell))]; ok {
			vocabulary++
		}
	}
	return vocabulary*2 >= len(first) && vocabulary > 0
}

// numericCells counts cells that parse as numbers.
func numericCells(row []string) int {
	count := 0
	for _, cell := range row {
		cell = strings.TrimSpace(strings.Trim(cell, "%$€£"))
		cell = strings.ReplaceAll(cell, ",", "")
		if cell == "" {
			continue
		}
		if _, err := strconv.ParseFloat(cell, 64); err == nil {
			count++
		}
	}
	return count
}

// averageCellLength is the mean trimmed cell length of a row.
func averageCellLength(row []string) float64 {
	if len(row) == 0 {
		return 0
	}
	total := 0
	for _, cell := range row {
		total += len(strings.TrimSpace(cell))
	}
	return float64(total) / float64(len(row))
}

// serialiseRows renders header and rows in pipe form.
func serialiseRows(header []string, rows [][]string) string {
	var lines []string
	if header != nil {
		lines = append(lines, serialiseRow(header))
	}
	for _, row := range rows {
		lines = append(lines, serialiseRow(row))
	}
	return strings.Join(lines, "\n")
}

func serialiseRow(cells []string) string {
	return "| " + strings.Join(cells, " | ") + " |"
}

// tableCaption picks the caption from the table metadata or the first
// caption-shaped line of the raw text.
func tableCaption(t *domain.TableData) string {
	if t.Caption != "" {
		return t.Caption
	}
	first, _, _ := strings.Cut(strings.TrimSpace(t.Raw), "\n")
	first = strings.TrimSpace(first)
	if m := captionPattern.FindStringSubmatch(first); m != nil && !strings.ContainsAny(first, "|\t") {
		return first
	}
	return ""
}
