package structured

import (
	"regexp"
	"strings"

	"github.com/quarry-labs/passage/internal/core/domain"
)

// Block is one blank-line-delimited segment of a section body,
// classified by light pattern matching.
type Block struct {
	Type domain.ChunkType
	Text string
}

var (
	blockBoundary = regexp.MustCompile(`\n\s*\n`)

	procedureLine = regexp.MustCompile(`(?im)^\s*step\s+\d+\s*:`)
	listItemLine  = regexp.MustCompile(`^\s*(?:[-*•]|\d+[.)]|[a-zA-Z][.)])\s+\S`)
	indentedLine  = regexp.MustCompile(`^(?:    |\t)`)
	pipeRowLine   = regexp.MustCompile(`\|.*\|`)
	boxArtLine    = regexp.MustCompile(`\+-{3,}\+`)
)

// ClassifyBlocks splits a section body on blank lines and classifies
// each segment. Classification is heuristic; anything unrecognised is
// plain text.
func ClassifyBlocks(body string) []Block {
	var blocks []Block
	for _, segment := range blockBoundary.Split(body, -1) {
		if strings.TrimSpace(segment) == "" {
			continue
		}
		blocks = append(blocks, Block{
			Type: classifySegment(segment),
			Text: strings.Trim(segment, "\n"),
		})
	}
	return blocks
}

// classifySegment decides a segment's block type in precedence order:
// code fences, tables, procedures, lists, then text.
func classifySegment(segment string) domain.ChunkType {
	trimmed := strings.TrimSpace(segment)
	lines := strings.Split(trimmed, "\n")

	if strings.HasPrefix(trimmed, "```") || mostlyIndented(lines) {
		return domain.ChunkCode
	}
	if isTableSegment(lines) {
		return domain.ChunkTable
	}
	if procedureLine.MatchString(trimmed) {
		return domain.ChunkProcedure
	}
	if listItems(lines) >= 2 {
		return domain.ChunkList
	}
	return domain.ChunkText
}

// isTableSegment requires at least two delimited rows or box art.
func isTableSegment(lines []string) bool {
	rows := 0
	for _, line := range lines {
		if boxArtLine.MatchString(line) {
			return true
		}
		if pipeRowLine.MatchString(line) || strings.Count(line, "\t") >= 2 {
			rows++
		}
	}
	return rows >= 2
}

// listItems counts lines opening a new list item.
func listItems(lines []string) int {
	count := 0
	for _, line := range lines {
		if listItemLine.MatchString(line) {
			count++
		}
	}
	return count
}

// mostlyIndented reports whether a multi-line segment is dominated by
// deep indentation, the classic shape of an unfenced code block.
func mostlyIndented(lines []string) bool {
	if len(lines) < 2 {
		return false
	}
	indented := 0
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if indentedLine.MatchString(line) {
			indented++
		}
	}
	return indented*2 > len(lines)
}

// SplitListItems splits a list block only between items, never
// mid-item. Items are accumulated greedily up to maxSize; a single
// item longer than maxSize stays whole.
func SplitListItems(block string, maxSize int) []string {
	lines := strings.Split(block, "\n")

	var items []string
	var item []string
	for _, line := range lines {
		if listItemLine.MatchString(line) && len(item) > 0 {
			items = append(items, strings.Join(item, "\n"))
			item = item[:0]
		}
		item = append(item, line)
	}
	if len(item) > 0 {
		items = append(items, strings.Join(item, "\n"))
	}

	var pieces []string
	var buf strings.Builder
	for _, it := range items {
		if buf.Len() > 0 && buf.Len()+1+len(it) > maxSize {
			pieces = append(pieces, buf.String())
			buf.Reset()
		}
		if buf.Len() > 0 {
			buf.WriteByte('\n')
		}
		buf.WriteString(it)
	}
	if buf.Len() > 0 {
		pieces = append(pieces, buf.String())
	}
	return pieces
}
