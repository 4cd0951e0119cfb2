package extract

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/quarry-labs/passage/internal/core/domain"
	"github.com/quarry-labs/passage/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.ExtractorRegistry = (*Registry)(nil)

// Registry selects extractors by file extension and priority.
type Registry struct {
	extractors []driven.Extractor
}

// NewRegistry creates an empty extractor registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// NewDefaultRegistry creates a registry with all built-in extractors.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(NewMarkdown())
	r.Register(NewSpreadsheet())
	r.Register(NewPlainText())
	return r
}

// Register adds an extractor to the registry.
func (r *Registry) Register(e driven.Extractor) {
	r.extractors = append(r.extractors, e)
}

// ForFile returns the highest-priority extractor supporting the
// extension. The extension comparison is case-insensitive. Unknown
// extensions fall through to whichever extractor registered the empty
// extension, so plain-text handles anything nothing else claims.
func (r *Registry) ForFile(fileType string) (driven.Extractor, error) {
	fileType = strings.ToLower(strings.TrimPrefix(fileType, "."))

	if e := r.match(fileType); e != nil {
		return e, nil
	}
	if e := r.match(""); e != nil {
		return e, nil
	}
	return nil, fmt.Errorf("%w: no extractor for file type %q", domain.ErrUnsupportedType, fileType)
}

func (r *Registry) match(ext string) driven.Extractor {
	var best driven.Extractor
	for _, e := range r.extractors {
		for _, supported := range e.SupportedExtensions() {
			if supported != ext {
				continue
			}
			if best == nil || e.Priority() > best.Priority() {
				best = e
			}
		}
	}
	return best
}

// documentID derives a stable UUID from the source URI.
// Re-ingesting the same path keeps the same document identity, which
// is what makes hash-based re-index skipping possible.
func documentID(uri string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(uri)).String()
}

// titleFromURI derives a fallback document title from the file name.
func titleFromURI(uri string) string {
	base := filepath.Base(uri)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// newDocument builds the common document record for an extracted file.
func newDocument(raw *domain.RawDocument, title string) domain.Document {
	if title == "" {
		title = titleFromURI(raw.URI)
	}
	return domain.Document{
		ID:       documentID(raw.URI),
		Title:    title,
		FileType: raw.FileType,
		URI:      raw.URI,
		Status:   domain.StatusPending,
	}
}
