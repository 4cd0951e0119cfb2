package extract

import (
	"context"
	"strings"

	"github.com/quarry-labs/passage/internal/chunkers/table"
	"github.com/quarry-labs/passage/internal/core/domain"
	"github.com/quarry-labs/passage/internal/core/ports/driven"
)

// Ensure Markdown implements the interface.
var _ driven.Extractor = (*Markdown)(nil)

// Markdown extracts ATX headings as sections and recognises pipe
// tables inside section bodies.
type Markdown struct{}

// NewMarkdown creates the markdown extractor.
func NewMarkdown() *Markdown {
	return &Markdown{}
}

// SupportedExtensions returns the extensions this extractor handles.
func (e *Markdown) SupportedExtensions() []string {
	return []string{"md", "markdown"}
}

// Priority returns the format-specific priority.
func (e *Markdown) Priority() int {
	return 60
}

// Extract splits the document on ATX headings. Text before the first
// heading becomes an untitled preamble section. A section whose body
// is predominantly a pipe table carries parsed TableData.
func (e *Markdown) Extract(ctx context.Context, raw *domain.RawDocument) (*driven.ExtractResult, error) {
	text := normaliseNewlines(string(raw.Content))
	lines := strings.Split(text, "\n")

	var sections []domain.Section
	var title string
	var current *domain.Section
	var body []string

	flush := func() {
		if current == nil && len(body) == 0 {
			return
		}
		content := strings.TrimSpace(strings.Join(body, "\n"))
		if current == nil {
			// Preamble before the first heading.
			if content == "" {
				body = nil
				return
			}
			current = &domain.Section{}
		}
		current.Content = content
		current.Table = detectTable(content)
		sections = append(sections, *current)
		current = nil
		body = nil
	}

	for _, line := range lines {
		level, heading := parseHeading(line)
		if level == 0 {
			body = append(body, line)
			continue
		}
		flush()
		if title == "" && level == 1 {
			title = heading
		}
		current = &domain.Section{Title: heading, Level: level}
	}
	flush()

	structure := domain.StructureInfo{}
	for _, sec := range sections {
		if sec.Table != nil {
			structure.HasTables = true
		}
		if strings.EqualFold(sec.Title, "table of contents") || strings.EqualFold(sec.Title, "contents") {
			structure.HasTableOfContents = true
		}
	}

	return &driven.ExtractResult{
		Document: newDocument(raw, title),
		Content: domain.ExtractedContent{
			FullText:  text,
			Sections:  sections,
			Structure: structure,
		},
	}, nil
}

// parseHeading returns the ATX heading level and text, or level 0 for
// non-heading lines.
func parseHeading(line string) (int, string) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "#") {
		return 0, ""
	}
	level := 0
	for level < len(trimmed) && trimmed[level] == '#' {
		level++
	}
	if level > 6 {
		return 0, ""
	}
	rest := strings.TrimSpace(trimmed[level:])
	if rest == "" {
		return 0, ""
	}
	return level, strings.TrimRight(rest, "# ")
}

// detectTable parses a section body as a table when most of its
// non-blank lines are pipe rows. Mixed prose-and-table sections stay
// plain; the chunking core classifies their blocks instead.
func detectTable(content string) *domain.TableData {
	if content == "" {
		return nil
	}
	lines := strings.Split(content, "\n")
	nonBlank, pipeRows := 0, 0
	for _, line := range lines {
		t := strings.TrimSpace(line)
		if t == "" {
			continue
		}
		nonBlank++
		if strings.Contains(t, "|") {
			pipeRows++
		}
	}
	if nonBlank < 2 || pipeRows*4 < nonBlank*3 {
		return nil
	}

	rows := table.ParseRows(content)
	if len(rows) < 2 {
		return nil
	}
	return &domain.TableData{
		Rows: rows,
		Raw:  content,
	}
}
