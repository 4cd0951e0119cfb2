package extract

import (
	"context"
	"strings"

	"github.com/quarry-labs/passage/internal/core/domain"
	"github.com/quarry-labs/passage/internal/core/ports/driven"
)

// Ensure PlainText implements the interface.
var _ driven.Extractor = (*PlainText)(nil)

// PlainText is the fallback extractor. It produces a single flat text
// body with no sections and leaves structure discovery to analysis.
type PlainText struct{}

// NewPlainText creates the fallback plain text extractor.
func NewPlainText() *PlainText {
	return &PlainText{}
}

// SupportedExtensions returns the extensions this extractor handles.
// It also registers for the empty extension so extension-less files
// fall through to it.
func (e *PlainText) SupportedExtensions() []string {
	return []string{"txt", "text", "log", "rst", ""}
}

// Priority returns the fallback priority.
func (e *PlainText) Priority() int {
	return 1
}

// Extract wraps the raw bytes as flat text. Form feeds are treated as
// page breaks: each page becomes an untitled section carrying its page
// number, so chunk provenance survives for paginated text exports.
func (e *PlainText) Extract(ctx context.Context, raw *domain.RawDocument) (*driven.ExtractResult, error) {
	text := normaliseNewlines(string(raw.Content))

	content := domain.ExtractedContent{
		FullText: strings.ReplaceAll(text, "\f", "\n"),
	}
	if strings.Contains(text, "\f") {
		for i, page := range strings.Split(text, "\f") {
			page = strings.TrimSpace(page)
			if page == "" {
				continue
			}
			content.Sections = append(content.Sections, domain.Section{
				Content:    page,
				PageNumber: i + 1,
			})
		}
	}

	return &driven.ExtractResult{
		Document: newDocument(raw, ""),
		Content:  content,
	}, nil
}

// normaliseNewlines converts CRLF and lone CR line endings to LF.
func normaliseNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
